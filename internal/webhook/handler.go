// Package webhook receives the notifications Pagopar posts to the commerce:
// payment results, subscription events and inventory synchronization
// batches. Every payload is authenticated before any event is dispatched.
package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/arandu-labs/pagopar-go/pkg/apierror"
	"github.com/arandu-labs/pagopar-go/pkg/checkout"
	"github.com/arandu-labs/pagopar-go/pkg/config"
	"github.com/arandu-labs/pagopar-go/pkg/subs"
	"github.com/arandu-labs/pagopar-go/pkg/sync"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 64 << 10

// PaymentNotice is the order result the gateway posts once a payment
// settles or is cancelled.
type PaymentNotice struct {
	OrderHash   string `json:"hash_pedido"`
	OrderNumber string `json:"numero_pedido"`
	Token       string `json:"token"`
	Paid        bool   `json:"pagado"`
	Cancelled   bool   `json:"cancelado"`
	Amount      string `json:"monto"`
}

// Events receives authenticated notifications. SyncReceived may return the
// per-log results to acknowledge; returning nil acknowledges every log as
// processed.
type Events interface {
	PaymentConfirmed(ctx context.Context, notice PaymentNotice)
	SubscriptionEvent(ctx context.Context, n *subs.Notification)
	SyncReceived(ctx context.Context, req *sync.Request) []sync.Result
}

// NopEvents ignores every notification.
type NopEvents struct{}

func (NopEvents) PaymentConfirmed(context.Context, PaymentNotice)           {}
func (NopEvents) SubscriptionEvent(context.Context, *subs.Notification)     {}
func (NopEvents) SyncReceived(context.Context, *sync.Request) []sync.Result { return nil }

// Handler serves the notification endpoints.
type Handler struct {
	cfg    *config.Config
	events Events
	log    *slog.Logger
}

// NewHandler wires the notification endpoints to the given event sink. A
// nil events sink acknowledges everything without acting on it.
func NewHandler(cfg *config.Config, events Events, log *slog.Logger) *Handler {
	if events == nil {
		events = NopEvents{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{cfg: cfg, events: events, log: log}
}

// PaymentResult validates a payment notification token and echoes the
// payload back, which is the acknowledgement the gateway expects.
func (h *Handler) PaymentResult(c *gin.Context) {
	var notice PaymentNotice
	if err := c.ShouldBindJSON(&notice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if !checkout.VerifyPayment(h.cfg, notice.Token, notice.OrderNumber) {
		h.log.Warn("payment notification rejected",
			"order", notice.OrderNumber, "request_id", RequestIDFromContext(c))
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
		return
	}

	if notice.Paid {
		h.events.PaymentConfirmed(c.Request.Context(), notice)
	}
	h.log.Info("payment notification accepted",
		"order", notice.OrderNumber, "paid", notice.Paid)
	c.JSON(http.StatusOK, notice)
}

// Subscription authenticates and dispatches a subscription event.
func (h *Handler) Subscription(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	n, err := subs.ParseVerified(h.cfg, body)
	switch {
	case errors.Is(err, apierror.ErrSignatureMismatch):
		h.log.Warn("subscription notification rejected",
			"request_id", RequestIDFromContext(c))
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	h.events.SubscriptionEvent(c.Request.Context(), n)
	h.log.Info("subscription notification accepted",
		"action", n.Action, "subscription", n.Subscription.SubID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Synchronization parses an inventory batch and responds with the per-log
// acknowledgement envelope.
func (h *Handler) Synchronization(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	req, err := sync.ParseSynchronization(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.PublicToken != h.cfg.PublicToken {
		h.log.Warn("synchronization rejected: unknown public token",
			"request_id", RequestIDFromContext(c))
		c.JSON(http.StatusForbidden, gin.H{"error": "unknown commerce"})
		return
	}

	results := h.events.SyncReceived(c.Request.Context(), req)
	if results == nil {
		results = ackAll(req)
	}
	h.log.Info("synchronization acknowledged", "logs", len(req.Logs))
	c.JSON(http.StatusOK, sync.RespondSynchronization(results...))
}

func readBody(c *gin.Context) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
}

// ackAll marks every log in the batch as processed.
func ackAll(req *sync.Request) []sync.Result {
	results := make([]sync.Result, 0, len(req.Logs))
	for _, entry := range req.Logs {
		switch log := entry.(type) {
		case sync.ProductLog:
			// The commerce-side product id is only known to the
			// application; a custom Events sink fills it in.
			results = append(results, sync.ProductResult{
				InventoryResult: sync.InventoryResult{
					LogID:     log.LogID,
					Type:      log.Type,
					ProductID: log.ProductID,
					Success:   true,
				},
			})
		case sync.InventoryLog:
			results = append(results, sync.InventoryResult{
				LogID:     log.LogID,
				Type:      log.Type,
				ProductID: log.ProductID,
				Success:   true,
			})
		}
	}
	return results
}
