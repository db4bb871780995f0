// Package config holds the commerce credentials and the shared HTTP client
// used by every Pagopar API client.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	// DefaultBaseURL is the production Pagopar API root.
	DefaultBaseURL = "https://api.pagopar.com/api/"

	// EnvPrivateToken and EnvPublicToken name the environment variables
	// read by FromEnv.
	EnvPrivateToken = "PAGOPAR_PRIVATE_TOKEN"
	EnvPublicToken  = "PAGOPAR_PUBLIC_TOKEN"

	defaultTimeout = 30 * time.Second
)

var ErrMissingCredentials = errors.New("pagopar: missing commerce credentials")

// Config carries the commerce token pair and the HTTP client shared by all
// API clients. Build it once with New or FromEnv and pass it to each
// NewClient; it is safe for concurrent use.
type Config struct {
	PrivateToken string
	PublicToken  string

	// BaseURL is the API root requests are issued against. Defaults to
	// DefaultBaseURL; override it to target a staging environment or a
	// test server.
	BaseURL string

	// HTTPClient performs every request. Defaults to a client with a
	// 30 second timeout.
	HTTPClient *http.Client

	// Logger, when set, receives a debug record per request.
	Logger *slog.Logger

	proxyURL string
}

type Option func(*Config)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *Config) { cfg.HTTPClient = c }
}

// WithBaseURL points the clients at a different API root.
func WithBaseURL(u string) Option {
	return func(cfg *Config) { cfg.BaseURL = u }
}

// WithProxy routes requests through the given proxy URL.
func WithProxy(proxyURL string) Option {
	return func(cfg *Config) { cfg.proxyURL = proxyURL }
}

// WithLogger enables per-request debug logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) { cfg.Logger = l }
}

// New builds a Config from an explicit credential pair.
func New(privateToken, publicToken string, opts ...Option) (*Config, error) {
	if privateToken == "" || publicToken == "" {
		return nil, ErrMissingCredentials
	}

	cfg := &Config{
		PrivateToken: privateToken,
		PublicToken:  publicToken,
		BaseURL:      DefaultBaseURL,
		HTTPClient:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.proxyURL != "" {
		u, err := url.Parse(cfg.proxyURL)
		if err != nil {
			return nil, fmt.Errorf("pagopar: invalid proxy url: %w", err)
		}
		cfg.HTTPClient.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
	}

	return cfg, nil
}

// FromEnv builds a Config from PAGOPAR_PRIVATE_TOKEN and
// PAGOPAR_PUBLIC_TOKEN.
func FromEnv(opts ...Option) (*Config, error) {
	return New(os.Getenv(EnvPrivateToken), os.Getenv(EnvPublicToken), opts...)
}
