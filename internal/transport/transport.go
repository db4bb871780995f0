// Package transport implements the signed request/response plumbing shared
// by every Pagopar endpoint: token computation, payload signing, and the
// {"respuesta": bool, "resultado": ...} envelope.
package transport

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/arandu-labs/pagopar-go/pkg/apierror"
	"github.com/arandu-labs/pagopar-go/pkg/config"
)

// DateTimeLayout is the timestamp format the gateway expects in request
// payloads ("fecha_maxima_pago" and friends).
const DateTimeLayout = "2006-01-02 15:04:05"

const (
	defaultTokenKey       = "token"
	defaultPublicTokenKey = "public_key"
)

// Token returns the request token for the given token data: the lowercase
// hex SHA1 of the commerce private token concatenated with the data.
func Token(privateToken, tokenData string) string {
	sum := sha1.Sum([]byte(privateToken + tokenData))
	return hex.EncodeToString(sum[:])
}

// Request describes one call against the gateway. TokenData is the
// endpoint-specific seed hashed into the request token. TokenKey and
// PublicTokenKey override the payload key names for endpoints that expect
// "token_publico" instead of "public_key".
type Request struct {
	Method         string
	Path           string
	TokenData      string
	Payload        map[string]any
	TokenKey       string
	PublicTokenKey string
}

type envelope struct {
	Success bool            `json:"respuesta"`
	Result  json.RawMessage `json:"resultado"`
}

// Send signs and issues a request, decodes the response envelope and
// unmarshals a successful result into T. Vendor rejections surface as
// *apierror.Error.
func Send[T any](ctx context.Context, cfg *config.Config, req Request) (T, error) {
	var zero T

	if req.TokenKey == "" {
		req.TokenKey = defaultTokenKey
	}
	if req.PublicTokenKey == "" {
		req.PublicTokenKey = defaultPublicTokenKey
	}

	payload := req.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	payload[req.TokenKey] = Token(cfg.PrivateToken, req.TokenData)
	payload[req.PublicTokenKey] = cfg.PublicToken

	endpoint, err := url.JoinPath(cfg.BaseURL, req.Path)
	if err != nil {
		return zero, fmt.Errorf("pagopar: bad endpoint path %q: %w", req.Path, err)
	}

	var body io.Reader
	if req.Method == http.MethodGet {
		endpoint += "?" + queryValues(payload).Encode()
	} else {
		b, err := json.Marshal(payload)
		if err != nil {
			return zero, fmt.Errorf("pagopar: encode payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return zero, fmt.Errorf("pagopar: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return zero, fmt.Errorf("pagopar: %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("pagopar: read response: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.DebugContext(ctx, "pagopar request",
			"method", req.Method, "path", req.Path, "status", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return zero, apierror.New("", resp.StatusCode)
		}
		return zero, fmt.Errorf("pagopar: decode response: %w", err)
	}

	if !env.Success {
		return zero, apierror.New(resultMessage(env.Result), resp.StatusCode)
	}
	if len(env.Result) == 0 {
		return zero, nil
	}

	var result T
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return zero, fmt.Errorf("pagopar: decode result: %w", err)
	}
	return result, nil
}

// resultMessage extracts the vendor error text: on failure the "resultado"
// field carries a plain string.
func resultMessage(result json.RawMessage) string {
	var msg string
	if err := json.Unmarshal(result, &msg); err != nil {
		return string(result)
	}
	return msg
}

func queryValues(payload map[string]any) url.Values {
	values := url.Values{}
	for key, val := range payload {
		switch v := val.(type) {
		case []string:
			for _, item := range v {
				values.Add(key, item)
			}
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}
	return values
}
