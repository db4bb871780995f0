// Package checkout creates Pagopar transactions, looks up order state and
// validates payment notification tokens.
package checkout

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/arandu-labs/pagopar-go/internal/transport"
	"github.com/arandu-labs/pagopar-go/pkg/apierror"
	"github.com/arandu-labs/pagopar-go/pkg/config"
)

// Request describes a transaction to be created in local currency (PYG).
// CommerceOrderID must be unique across environments.
type Request struct {
	CommerceOrderID string
	Items           []Item
	// Amount is the total transaction amount in Guaraníes.
	Amount         int
	PaymentType    PaymentType
	MaxPaymentDate time.Time
	Buyer          Buyer
	Description    string
}

// USDRequest describes a transaction in foreign currency (USD). Only the
// basic item fields are used; BuyerPaysCommission transfers the payment
// commission to the buyer.
type USDRequest struct {
	CommerceOrderID     string
	Items               []Item
	Amount              int
	PaymentType         PaymentType
	Buyer               Buyer
	BuyerPaysCommission bool
	Description         string
}

// Client issues checkout calls against the gateway.
type Client interface {
	// Create initializes a transaction in Guaraníes and returns the
	// Pagopar order hash to redirect the buyer to.
	Create(ctx context.Context, req Request) (*Transaction, error)
	// CreateUSD initializes a transaction in US dollars.
	CreateUSD(ctx context.Context, req USDRequest) (*Transaction, error)
	// GetOrder retrieves the current state of an order by its Pagopar
	// hash. An unknown hash yields an error matching
	// apierror.ErrOrderNotFound.
	GetOrder(ctx context.Context, orderHash string) (*Order, error)
	// ListPaymentMethods returns the payment methods enabled for the
	// commerce.
	ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error)
	// Reverse requests the reversal of a paid order. Same-day requests may
	// run immediately; later ones are scheduled.
	Reverse(ctx context.Context, orderHash string) ([]ReversedOrder, error)
}

type client struct {
	cfg *config.Config
}

// NewClient returns a checkout client bound to the given config.
func NewClient(cfg *config.Config) Client {
	return &client{cfg: cfg}
}

// CheckoutURL returns the redirection URL the buyer completes the payment
// at. Passing a non-zero payment type preselects the method, skipping the
// selection screen (available to approved merchants only). No I/O.
func CheckoutURL(orderHash string, paymentType PaymentType) string {
	u := "https://www.pagopar.com/pagos/" + orderHash
	if paymentType != 0 {
		u += "?forma_pago=" + strconv.Itoa(int(paymentType))
	}
	return u
}

// VerifyPayment reports whether a payment notification token matches the
// hash recomputed from the commerce private token and the order identifier.
// Local integrity check only, no network call.
func VerifyPayment(cfg *config.Config, token, orderID string) bool {
	return token == transport.Token(cfg.PrivateToken, orderID)
}

func (c *client) Create(ctx context.Context, req Request) (*Transaction, error) {
	if err := validateRequest(req.CommerceOrderID, req.Items, req.Amount, req.Buyer); err != nil {
		return nil, err
	}

	items := normalizeItems(req.Items)
	orderType := OrderSimple
	if countSellers(items) > 1 {
		orderType = OrderSplitBilling
	}

	result, err := transport.Send[[]Transaction](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "comercios/2.0/iniciar-transaccion",
		TokenData: strconv.Itoa(req.Amount),
		Payload: map[string]any{
			"monto_total":         req.Amount,
			"tipo_pedido":         orderType,
			"fecha_maxima_pago":   req.MaxPaymentDate.Format(transport.DateTimeLayout),
			"id_pedido_comercio":  req.CommerceOrderID,
			"descripcion_resumen": req.Description,
			"forma_pago":          req.PaymentType,
			"comprador":           buyerPayload(req.Buyer),
			"compras_items":       items,
		},
	})
	if err != nil {
		return nil, err
	}
	return firstTransaction(result)
}

func (c *client) CreateUSD(ctx context.Context, req USDRequest) (*Transaction, error) {
	if err := validateRequest(req.CommerceOrderID, req.Items, req.Amount, req.Buyer); err != nil {
		return nil, err
	}

	result, err := transport.Send[[]Transaction](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "comercios/2.0/iniciar-transaccion-divisa",
		TokenData: strconv.Itoa(req.Amount),
		Payload: map[string]any{
			"monto_total":                    req.Amount,
			"moneda":                         "USD",
			"comision_transladada_comprador": req.BuyerPaysCommission,
			"id_pedido_comercio":             req.CommerceOrderID,
			"descripcion_resumen":            req.Description,
			"forma_pago":                     req.PaymentType,
			"comprador": map[string]any{
				"nombre":       req.Buyer.Name,
				"email":        req.Buyer.Email,
				"telefono":     req.Buyer.Phone,
				"documento":    req.Buyer.Document,
				"ruc":          req.Buyer.RUC,
				"razon_social": req.Buyer.LegalName,
			},
			"compras_items": req.Items,
		},
	})
	if err != nil {
		return nil, err
	}
	return firstTransaction(result)
}

func (c *client) GetOrder(ctx context.Context, orderHash string) (*Order, error) {
	result, err := transport.Send[[]Order](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "pedidos/1.1/traer",
		TokenData: "CONSULTA",
		Payload: map[string]any{
			"hash_pedido":       orderHash,
			"datos_adicionales": true,
		},
		PublicTokenKey: "token_publico",
	})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, apierror.New("pedido inexistente", http.StatusOK)
	}
	return &result[0], nil
}

func (c *client) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	return transport.Send[[]PaymentMethod](ctx, c.cfg, transport.Request{
		Method:         http.MethodPost,
		Path:           "forma-pago/1.1/traer/",
		TokenData:      "FORMA-PAGO",
		PublicTokenKey: "token_publico",
	})
}

func (c *client) Reverse(ctx context.Context, orderHash string) ([]ReversedOrder, error) {
	return transport.Send[[]ReversedOrder](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "pedidos/1.1/reversar",
		TokenData: "PEDIDO-REVERSAR",
		Payload: map[string]any{
			"hash_pedido": orderHash,
		},
		PublicTokenKey: "token_publico",
	})
}

func validateRequest(commerceOrderID string, items []Item, amount int, buyer Buyer) error {
	switch {
	case commerceOrderID == "":
		return &apierror.ValidationError{Field: "commerce order id", Reason: "must not be empty"}
	case len(items) == 0:
		return &apierror.ValidationError{Field: "items", Reason: "must not be empty"}
	case amount <= 0:
		return &apierror.ValidationError{Field: "amount", Reason: "must be positive"}
	case buyer.Name == "":
		return &apierror.ValidationError{Field: "buyer name", Reason: "must not be empty"}
	case buyer.Email == "":
		return &apierror.ValidationError{Field: "buyer email", Reason: "must not be empty"}
	case buyer.Phone == "":
		return &apierror.ValidationError{Field: "buyer phone", Reason: "must not be empty"}
	case buyer.Document == "":
		return &apierror.ValidationError{Field: "buyer document", Reason: "must not be empty"}
	}
	return nil
}

// normalizeItems fills the category and city defaults without mutating the
// caller's slice.
func normalizeItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].CategoryID == "" {
			out[i].CategoryID = "909"
		}
		if out[i].CityID == "" {
			out[i].CityID = "1"
		}
	}
	return out
}

func countSellers(items []Item) int {
	sellers := make(map[string]struct{}, len(items))
	for _, item := range items {
		sellers[item.SellerPublicKey] = struct{}{}
	}
	return len(sellers)
}

func buyerPayload(b Buyer) map[string]any {
	cityID := b.CityID
	if cityID == "" {
		cityID = "1"
	}
	return map[string]any{
		"nombre":               b.Name,
		"email":                b.Email,
		"telefono":             b.Phone,
		"documento":            b.Document,
		"tipo_documento":       b.DocumentType,
		"ruc":                  b.RUC,
		"razon_social":         b.LegalName,
		"ciudad":               cityID,
		"direccion":            b.Address,
		"direccion_referencia": b.AddressRef,
		"coordenadas":          b.AddressCoordinates,
	}
}

func firstTransaction(result []Transaction) (*Transaction, error) {
	if len(result) == 0 {
		return nil, fmt.Errorf("pagopar: empty transaction result")
	}
	return &result[0], nil
}
