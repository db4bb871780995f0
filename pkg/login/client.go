// Package login implements the Pagopar Login account-linking flow: building
// the linking redirect URL, confirming a linking, and fetching commerce data.
package login

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/arandu-labs/pagopar-go/internal/transport"
	"github.com/arandu-labs/pagopar-go/pkg/config"
)

// Client issues login-area calls against the gateway.
type Client interface {
	// ConfirmLinking finalizes the linking after the user returns from the
	// linking URL, and returns the child commerce data.
	ConfirmLinking(ctx context.Context, childPublicToken string, userID int) (*Commerce, error)
	// LinkedCommerce retrieves linked (child) commerce data in real time.
	LinkedCommerce(ctx context.Context, childPublicToken string, userID int) (*Commerce, error)
	// Commerce retrieves the commerce's own data in real time.
	Commerce(ctx context.Context) (*Commerce, error)
}

type client struct {
	cfg *config.Config
}

// NewClient returns a login client bound to the given config.
func NewClient(cfg *config.Config) Client {
	return &client{cfg: cfg}
}

// LinkingURL builds the URL the user visits to log in or register a Pagopar
// account and link it to the parent commerce. After the flow the user is
// redirected to redirectURL with an extra hash_comercio parameter carrying
// the child commerce public key. plan optionally preselects the Pagopar plan
// the user subscribes to. No I/O.
func LinkingURL(commerceHash, userID, redirectURL string, plan *int) string {
	query := url.Values{}
	query.Set("hash_comercio", commerceHash)
	query.Set("usuario_id", userID)
	query.Set("url_redirect", redirectURL)
	if plan != nil {
		query.Set("plan", strconv.Itoa(*plan))
	}
	return "https://www.pagopar.com/v1.0/pagopar-login/login/?" + query.Encode()
}

func (c *client) ConfirmLinking(ctx context.Context, childPublicToken string, userID int) (*Commerce, error) {
	return c.linkingCall(ctx, "pagopar-login/2.0/confirmar-vinculacion/", childPublicToken, userID)
}

func (c *client) LinkedCommerce(ctx context.Context, childPublicToken string, userID int) (*Commerce, error) {
	return c.linkingCall(ctx, "pagopar-login/2.0/datos-comercio/", childPublicToken, userID)
}

func (c *client) Commerce(ctx context.Context) (*Commerce, error) {
	commerce, err := transport.Send[Commerce](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      "comercios/2.0/datos-comercio/",
		TokenData: "DATOS-COMERCIO",
	})
	if err != nil {
		return nil, err
	}
	return &commerce, nil
}

func (c *client) linkingCall(ctx context.Context, path, childPublicToken string, userID int) (*Commerce, error) {
	commerce, err := transport.Send[Commerce](ctx, c.cfg, transport.Request{
		Method:    http.MethodPost,
		Path:      path,
		TokenData: "PAGOPAR-LOGIN",
		Payload: map[string]any{
			"token_comercio_hijo": childPublicToken,
			"usuario_id":          userID,
		},
	})
	if err != nil {
		return nil, err
	}
	return &commerce, nil
}
