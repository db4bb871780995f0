// Package payment manages tokenized card references and triggers recurring
// charges through the gateway's pago-recurrente endpoints.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/arandu-labs/pagopar-go/internal/transport"
	"github.com/arandu-labs/pagopar-go/pkg/apierror"
	"github.com/arandu-labs/pagopar-go/pkg/config"
)

const recurringToken = "PAGO-RECURRENTE"

// PreAuthorizeRequest reserves funds on a stored card. CardID is the numeric
// card identifier from ListCards, not the alias token. Unconfirmed
// preauthorizations are cancelled by the gateway after 30 days.
type PreAuthorizeRequest struct {
	CardID                string
	Amount                int
	CommerceClientID      int
	CommerceTransactionID int
}

// PreAuthRef identifies an existing preauthorization for confirmation or
// cancellation.
type PreAuthRef struct {
	OrderHash             string
	TransactionID         string
	CommerceTransactionID int
	CommerceClientID      int
}

// Client issues recurring-payment calls against the gateway.
type Client interface {
	// AddClient registers a customer. Must run before the first card
	// registration; repeated calls with the same id are safe.
	AddClient(ctx context.Context, commerceClientID int, fullName, email, phone string) (*Customer, error)
	// AddCard starts card registration and returns the provider alias
	// token used to build the registration iframe.
	AddCard(ctx context.Context, commerceClientID int, returnURL string, provider CardProvider) (string, error)
	// ConfirmCard completes the registration once the customer returns
	// from the iframe flow.
	ConfirmCard(ctx context.Context, commerceClientID int, returnURL string) error
	// ListCards returns the customer's stored cards with fresh alias
	// tokens.
	ListCards(ctx context.Context, commerceClientID int) ([]Card, error)
	// DeleteCard removes a stored card by its alias token.
	DeleteCard(ctx context.Context, commerceClientID int, cardAliasToken string) error
	// Pay charges an order to a stored card.
	Pay(ctx context.Context, commerceClientID int, cardAliasToken, orderHash string) error
	// PreAuthorize reserves funds on a card.
	PreAuthorize(ctx context.Context, req PreAuthorizeRequest) (*PreAuthorization, error)
	// ConfirmPreauthorization captures previously reserved funds.
	ConfirmPreauthorization(ctx context.Context, ref PreAuthRef) error
	// CancelPreauthorization releases reserved funds; a cancelled
	// preauthorization cannot be confirmed.
	CancelPreauthorization(ctx context.Context, ref PreAuthRef) (string, error)
	// PersonalPay charges an order through Billetera Personal.
	PersonalPay(ctx context.Context, orderHash, phone string) error
}

type client struct {
	cfg *config.Config
}

// NewClient returns a recurring-payment client bound to the given config.
func NewClient(cfg *config.Config) Client {
	return &client{cfg: cfg}
}

func (c *client) AddClient(ctx context.Context, commerceClientID int, fullName, email, phone string) (*Customer, error) {
	customer, err := transport.Send[Customer](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "pago-recurrente/3.0/agregar-cliente/",
		TokenData: recurringToken,
		Payload: map[string]any{
			"identificador":   commerceClientID,
			"nombre_apellido": fullName,
			"email":           email,
			"celular":         phone,
		},
		PublicTokenKey: "token_publico",
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *client) AddCard(ctx context.Context, commerceClientID int, returnURL string, provider CardProvider) (string, error) {
	return transport.Send[string](ctx, c.cfg, transport.Request{
		Method: http.MethodPost,
		Path:   "pago-recurrente/3.0/agregar-tarjeta/",
		Payload: map[string]any{
			"url":           returnURL,
			"proveedor":     provider,
			"identificador": commerceClientID,
		},
		PublicTokenKey: "token_publico",
	})
}

func (c *client) ConfirmCard(ctx context.Context, commerceClientID int, returnURL string) error {
	// The gateway answers a literal "Ok".
	_, err := transport.Send[string](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "pago-recurrente/3.0/confirmar-tarjeta/",
		TokenData: recurringToken,
		Payload: map[string]any{
			"url":           returnURL,
			"identificador": commerceClientID,
		},
		PublicTokenKey: "token_publico",
	})
	return err
}

func (c *client) ListCards(ctx context.Context, commerceClientID int) ([]Card, error) {
	return transport.Send[[]Card](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "pago-recurrente/3.0/listar-tarjeta/",
		TokenData: recurringToken,
		Payload: map[string]any{
			"identificador": commerceClientID,
		},
		PublicTokenKey: "token_publico",
	})
}

func (c *client) DeleteCard(ctx context.Context, commerceClientID int, cardAliasToken string) error {
	_, err := transport.Send[string](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "pago-recurrente/3.0/eliminar-tarjeta/",
		TokenData: recurringToken,
		Payload: map[string]any{
			"identificador": commerceClientID,
			"tarjeta":       cardAliasToken,
		},
		PublicTokenKey: "token_publico",
	})
	return err
}

func (c *client) Pay(ctx context.Context, commerceClientID int, cardAliasToken, orderHash string) error {
	_, err := transport.Send[string](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "pago-recurrente/3.0/pagar/",
		TokenData: recurringToken,
		Payload: map[string]any{
			"hash_pedido":   orderHash,
			"tarjeta":       cardAliasToken,
			"identificador": commerceClientID,
		},
		PublicTokenKey: "token_publico",
	})
	return err
}

func (c *client) PreAuthorize(ctx context.Context, req PreAuthorizeRequest) (*PreAuthorization, error) {
	preauth, err := transport.Send[PreAuthorization](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "pago-recurrente/3.0/preautorizar/",
		TokenData: recurringToken,
		Payload: map[string]any{
			"tarjeta":        req.CardID,
			"monto":          req.Amount,
			"id_transaccion": req.CommerceTransactionID,
			"identificador":  req.CommerceClientID,
		},
		PublicTokenKey: "token_publico",
	})
	if err != nil {
		return nil, err
	}
	return &preauth, nil
}

func (c *client) ConfirmPreauthorization(ctx context.Context, ref PreAuthRef) error {
	_, err := transport.Send[string](ctx, c.cfg, transport.Request{
		Method:         http.MethodPost,
		Path:           "pago-recurrente/3.0/confirmar-preautorizacion/",
		TokenData:      recurringToken,
		Payload:        preAuthPayload(ref),
		PublicTokenKey: "token_publico",
	})
	return err
}

func (c *client) CancelPreauthorization(ctx context.Context, ref PreAuthRef) (string, error) {
	return transport.Send[string](ctx, c.cfg, transport.Request{
		Method:         http.MethodPost,
		Path:           "pago-recurrente/3.0/cancelar-preautorizacion/",
		TokenData:      recurringToken,
		Payload:        preAuthPayload(ref),
		PublicTokenKey: "token_publico",
	})
}

func (c *client) PersonalPay(ctx context.Context, orderHash, phone string) error {
	// The gateway answers "Transaccion aprobada.".
	_, err := transport.Send[string](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "billetera-personal/1.0/pagar",
		TokenData: "pagar",
		Payload: map[string]any{
			"hash_pedido": orderHash,
			"celular":     phone,
		},
		PublicTokenKey: "token_publico",
	})
	return err
}

func preAuthPayload(ref PreAuthRef) map[string]any {
	return map[string]any{
		"hash_pedido":    ref.OrderHash,
		"transaccion":    ref.TransactionID,
		"id_transaccion": ref.CommerceTransactionID,
		"identificador":  ref.CommerceClientID,
	}
}

// BancardIframeURL builds the Bancard card registration iframe URL for an
// alias token returned by AddCard. Equivalent to Bancard.Cards.createForm
// from bancard-checkout.js v5.0.1. A nil style uses the stock colors.
func BancardIframeURL(aliasToken string, style *BancardIframeStyle, environment string) (string, error) {
	var hostname string
	switch environment {
	case "production":
		hostname = "vpos.infonet.com.py"
	case "sandbox":
		hostname = "vpos.infonet.com.py:8888"
	case "development":
		hostname = "desa.infonet.com.py:8085"
	default:
		return "", &apierror.ValidationError{
			Field:  "environment",
			Reason: fmt.Sprintf("unknown environment %q", environment),
		}
	}

	iframeStyle := DefaultBancardStyle()
	if style != nil {
		iframeStyle = *style
	}
	styles, err := json.Marshal(iframeStyle)
	if err != nil {
		return "", fmt.Errorf("pagopar: encode iframe style: %w", err)
	}

	query := url.Values{}
	query.Set("process_id", aliasToken)
	query.Set("styles", string(styles))
	return fmt.Sprintf("https://%s/checkout/register_card/new?%s", hostname, query.Encode()), nil
}

// UpayIframeURL builds the uPay card registration iframe URL for an alias
// token returned by AddCard.
func UpayIframeURL(aliasToken string) string {
	return "https://www.pagopar.com/upay-iframe/?id-form=" + aliasToken
}
