// Package courier requests freight quotes and courier option lists from the
// gateway's unified shipping endpoint.
package courier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/arandu-labs/pagopar-go/internal/transport"
	"github.com/arandu-labs/pagopar-go/pkg/apierror"
	"github.com/arandu-labs/pagopar-go/pkg/checkout"
	"github.com/arandu-labs/pagopar-go/pkg/config"
)

// FreightRequest describes the order whose shipping costs are to be
// calculated. PaymentType is optional; leave it zero when the method is not
// chosen yet.
type FreightRequest struct {
	CommerceOrderID string
	Items           []PhysicalItem
	Amount          int
	MaxPaymentDate  time.Time
	Buyer           checkout.Buyer
	PaymentType     checkout.PaymentType
	Description     string
}

// Client issues shipping calls against the gateway.
type Client interface {
	// ListCities returns the cities served by the associated delivery
	// providers (currently AEX and MOBI).
	ListCities(ctx context.Context) ([]City, error)
	// ListNeighborhoods returns the cities including their neighborhoods.
	ListNeighborhoods(ctx context.Context) ([]City, error)
	// ListCategories returns the freight-calculation categories.
	ListCategories(ctx context.Context) ([]Category, error)
	// CalculateFreight returns the request items enriched with the
	// shipping options and costs of every enabled method.
	CalculateFreight(ctx context.Context, req FreightRequest) ([]PhysicalItem, error)
}

type client struct {
	cfg *config.Config
}

// NewClient returns a courier client bound to the given config.
func NewClient(cfg *config.Config) Client {
	return &client{cfg: cfg}
}

func (c *client) ListCities(ctx context.Context) ([]City, error) {
	return transport.Send[[]City](ctx, c.cfg, transport.Request{
		Method:         http.MethodPost,
		Path:           "ciudades/1.1/traer",
		TokenData:      "CIUDADES",
		PublicTokenKey: "token_publico",
	})
}

func (c *client) ListNeighborhoods(ctx context.Context) ([]City, error) {
	// The endpoint nests each city inside an extra array level.
	groups, err := transport.Send[[][]json.RawMessage](ctx, c.cfg, transport.Request{
		Method:         http.MethodPost,
		Path:           "ciudades/1.1/traer-barrios",
		TokenData:      "CIUDADES",
		PublicTokenKey: "token_publico",
	})
	if err != nil {
		return nil, err
	}

	var cities []City
	for _, group := range groups {
		for _, raw := range group {
			var city City
			if err := json.Unmarshal(raw, &city); err != nil {
				return nil, fmt.Errorf("pagopar: decode city: %w", err)
			}
			cities = append(cities, city)
		}
	}
	return cities, nil
}

func (c *client) ListCategories(ctx context.Context) ([]Category, error) {
	return transport.Send[[]Category](ctx, c.cfg, transport.Request{
		Method:         http.MethodPost,
		Path:           "categorias/2.0/traer",
		TokenData:      "CATEGORIAS",
		PublicTokenKey: "token_publico",
	})
}

func (c *client) CalculateFreight(ctx context.Context, req FreightRequest) ([]PhysicalItem, error) {
	if len(req.Items) == 0 {
		return nil, &apierror.ValidationError{Field: "items", Reason: "must not be empty"}
	}

	var paymentType any
	if req.PaymentType != 0 {
		paymentType = req.PaymentType
	}

	result, err := transport.Send[map[string]json.RawMessage](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "calcular-flete/2.0/traer",
		TokenData: "CALCULAR-FLETE",
		Payload: map[string]any{
			"monto_total":         req.Amount,
			"tipo_pedido":         checkout.OrderSimple,
			"fecha_maxima_pago":   req.MaxPaymentDate.Format(transport.DateTimeLayout),
			"id_pedido_comercio":  req.CommerceOrderID,
			"descripcion_resumen": req.Description,
			"forma_pago":          paymentType,
			"comprador":           freightBuyerPayload(req.Buyer),
			"compras_items":       req.Items,
		},
	})
	if err != nil {
		return nil, err
	}

	// The response repeats the request payload with the MOBI and AEX
	// methods filled in.
	var items []PhysicalItem
	if err := json.Unmarshal(result["compras_items"], &items); err != nil {
		return nil, fmt.Errorf("pagopar: decode freight items: %w", err)
	}
	return items, nil
}

// SelectShippingMethod records the chosen method and its cost on the item's
// shipping options. Courier methods (AEX, MOBI) require the option id of the
// specific service; pickup and own delivery do not.
func SelectShippingMethod(item *PhysicalItem, method ShippingMethod, optionID string) error {
	opts := &item.ShippingOptions
	cost := 0

	if method == ShippingAEX || method == ShippingMOBI {
		courierMethod := opts.AEX
		if method == ShippingMOBI {
			courierMethod = opts.MOBI
		}
		if courierMethod == nil {
			return &apierror.ValidationError{
				Field:  "shipping method",
				Reason: fmt.Sprintf("%s not offered for this item", method),
			}
		}
		option, ok := findOption(courierMethod.Options, optionID)
		if !ok {
			return &apierror.ValidationError{
				Field:  "option id",
				Reason: "not in the method's option list",
			}
		}
		cost = option.Cost
		id := optionID
		courierMethod.OptionID = &id
	}

	if opts.CommerceCommission == nil {
		opts.CommerceCommission = new(int)
	}
	opts.ShippingCost = &cost
	opts.SelectedMethod = method
	return nil
}

func findOption(options []CourierOption, optionID string) (CourierOption, bool) {
	for _, option := range options {
		if option.OptionID == optionID {
			return option, true
		}
	}
	return CourierOption{}, false
}

func freightBuyerPayload(b checkout.Buyer) map[string]any {
	cityID := b.CityID
	if cityID == "" {
		cityID = "1"
	}
	return map[string]any{
		"nombre":               b.Name,
		"ciudad":               cityID,
		"email":                b.Email,
		"telefono":             b.Phone,
		"tipo_documento":       b.DocumentType,
		"documento":            b.Document,
		"direccion":            b.Address,
		"direccion_referencia": b.AddressRef,
		"coordenadas":          b.AddressCoordinates,
		"ruc":                  b.RUC,
		"razon_social":         b.LegalName,
	}
}
