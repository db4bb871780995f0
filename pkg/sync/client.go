// Package sync pushes product and inventory records to the gateway's sales
// links endpoints, and parses the inbound synchronization batches the
// gateway posts back to the commerce.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/arandu-labs/pagopar-go/internal/transport"
	"github.com/arandu-labs/pagopar-go/pkg/config"
)

const salesLinkToken = "LINKS-VENTA"

// Client issues product synchronization calls against the gateway.
type Client interface {
	// CreateProduct publishes a new product.
	CreateProduct(ctx context.Context, req ProductRequest) (*ProductOperation, error)
	// EditProduct updates an existing product.
	EditProduct(ctx context.Context, req ProductRequest) (*ProductOperation, error)
}

type client struct {
	cfg *config.Config
}

// NewClient returns a sync client bound to the given config.
func NewClient(cfg *config.Config) Client {
	return &client{cfg: cfg}
}

func (c *client) CreateProduct(ctx context.Context, req ProductRequest) (*ProductOperation, error) {
	return c.productCall(ctx, "links-venta/1.1/agregar/", req)
}

func (c *client) EditProduct(ctx context.Context, req ProductRequest) (*ProductOperation, error) {
	return c.productCall(ctx, "links-venta/1.1/editar/", req)
}

func (c *client) productCall(ctx context.Context, path string, req ProductRequest) (*ProductOperation, error) {
	categoryID := req.CategoryID
	if categoryID == "" {
		categoryID = "979"
	}

	op, err := transport.Send[ProductOperation](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      path,
		TokenData: salesLinkToken,
		Payload: map[string]any{
			"id_producto":  req.CommerceProductID,
			"categoria":    categoryID,
			"link_venta":   "",
			"link_publico": req.Importable,
			"activo":       req.Enabled,
			"monto":        req.Price,
			"titulo":       req.Title,
			"descripcion":  req.Description,
			"cantidad":     req.Stock,
			"imagen":       req.Images,
			"envio_aex":    req.AEX,
			"envio_mobi":   req.MOBI,
		},
		PublicTokenKey: "token_publico",
	})
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// ParseSynchronization decodes an inbound synchronization batch, picking the
// product or inventory shape per log entry from its tipo_aviso.
func ParseSynchronization(payload []byte) (*Request, error) {
	var raw struct {
		PublicToken string            `json:"token_publico"`
		Token       string            `json:"token"`
		Data        []json.RawMessage `json:"datos"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("pagopar: decode synchronization request: %w", err)
	}

	req := &Request{
		PublicToken: raw.PublicToken,
		Token:       raw.Token,
		Logs:        make([]Log, 0, len(raw.Data)),
	}
	for _, entry := range raw.Data {
		var head struct {
			Type LogType `json:"tipo_aviso"`
		}
		if err := json.Unmarshal(entry, &head); err != nil {
			return nil, fmt.Errorf("pagopar: decode synchronization log: %w", err)
		}

		switch head.Type {
		case CreatedProduct, ModifiedProduct:
			var log ProductLog
			if err := json.Unmarshal(entry, &log); err != nil {
				return nil, fmt.Errorf("pagopar: decode product log: %w", err)
			}
			req.Logs = append(req.Logs, log)
		default:
			var log InventoryLog
			if err := json.Unmarshal(entry, &log); err != nil {
				return nil, fmt.Errorf("pagopar: decode inventory log: %w", err)
			}
			req.Logs = append(req.Logs, log)
		}
	}
	return req, nil
}

// RespondSynchronization builds the acknowledgement the gateway expects for
// a processed batch.
func RespondSynchronization(results ...Result) Response {
	if results == nil {
		results = []Result{}
	}
	return Response{Data: results, Success: true}
}
