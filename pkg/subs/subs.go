// Package subs parses and authenticates the subscription webhook payloads
// the gateway posts to the commerce.
package subs

import (
	"encoding/json"
	"fmt"

	"github.com/arandu-labs/pagopar-go/internal/transport"
	"github.com/arandu-labs/pagopar-go/pkg/apierror"
	"github.com/arandu-labs/pagopar-go/pkg/config"
)

// ActionType tells which subscription event triggered a notification.
type ActionType string

const (
	ActionSubscribed   ActionType = "suscripcion"
	ActionUnsubscribed ActionType = "desuscripcion"
	ActionPaid         ActionType = "pagado"
)

// User is the subscriber the notification refers to.
type User struct {
	TokenID   string `json:"token_identificador"`
	Name      string `json:"nombre"`
	Lastname  string `json:"apellido"`
	Email     string `json:"email"`
	Phone     string `json:"celular"`
	Document  string `json:"documento"`
	LegalName string `json:"razon_social"`
	RUC       string `json:"ruc"`
}

// Subscription carries the subscription details of a notification.
type Subscription struct {
	SubID           string `json:"id"`
	SubDate         string `json:"fecha_suscripcion"`
	SubLink         string `json:"link_suscripcion"`
	CommerceSubID   string `json:"identificador_comercio"`
	Amount          string `json:"monto"`
	Title           string `json:"titulo"`
	HistoricalTitle string `json:"titulo_suscripcion"`
	// Status is e.g. "Pendiente de Pago", "Cancelada" or "Pagada".
	Status string `json:"estado"`
	// DebitAmount counts the billing cycles already charged.
	DebitAmount *string `json:"cantidad_debito"`
	VisitAmount string  `json:"visitas"`
	// Periodicity is e.g. "Mensual".
	Periodicity        string  `json:"periodicidad"`
	PaymentMethodID    string  `json:"identificador_forma_pago"`
	PaymentMethodTitle string  `json:"titulo_forma_pago"`
	Validity           string  `json:"vigencia"`
	UnsubDate          *string `json:"fecha_desuscripcion,omitempty"`
}

// Payment is present only on payment notifications.
type Payment struct {
	OrderHash          string `json:"hash_pedido"`
	Receipt            string `json:"comprobante_interno"`
	PaymentDate        string `json:"fecha_pago"`
	PaymentMethodID    string `json:"identificador_forma_pago_transaccion"`
	PaymentMethodTitle string `json:"titulo_forma_pago_transaccion"`
}

// Notification is a subscription event posted by the gateway. Token is the
// verification hash over the commerce private token and the action type.
type Notification struct {
	Action       ActionType   `json:"tipo_accion"`
	Token        string       `json:"token"`
	User         User         `json:"usuario"`
	Subscription Subscription `json:"suscripcion"`
	Payment      *Payment     `json:"pago,omitempty"`
}

// ParseNotification decodes a raw webhook payload. It does not authenticate
// the sender; call Verify (or use ParseVerified) before acting on it.
func ParseNotification(payload []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("pagopar: decode subscription notification: %w", err)
	}
	return &n, nil
}

// Verify recomputes the notification hash from the commerce private token
// and the action type, and compares it with the payload token.
func (n *Notification) Verify(cfg *config.Config) error {
	if n.Token != transport.Token(cfg.PrivateToken, string(n.Action)) {
		return apierror.ErrSignatureMismatch
	}
	return nil
}

// ParseVerified decodes a payload and rejects it unless its token matches
// the hash recomputed from the commerce credentials.
func ParseVerified(cfg *config.Config, payload []byte) (*Notification, error) {
	n, err := ParseNotification(payload)
	if err != nil {
		return nil, err
	}
	if err := n.Verify(cfg); err != nil {
		return nil, err
	}
	return n, nil
}
