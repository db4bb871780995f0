package webhook

import (
	"log/slog"
	"os"

	"github.com/arandu-labs/pagopar-go/pkg/config"

	"github.com/gin-gonic/gin"
)

// Run loads credentials and server configuration, then serves the
// notification endpoints until the listener fails.
func Run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	srvCfg := LoadServerConfig()
	logger := newLogger(srvCfg.ParseLevel())
	slog.SetDefault(logger)

	handler := NewHandler(cfg, nil, logger)
	router := NewRouter(handler)

	logger.Info("webhookd listening", "addr", srvCfg.Addr)
	return router.Run(srvCfg.Addr)
}

// NewRouter builds the gin engine serving the notification endpoints.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	hooks := router.Group("/webhooks")
	{
		hooks.POST("/payment", h.PaymentResult)
		hooks.POST("/subscription", h.Subscription)
		hooks.POST("/sync", h.Synchronization)
	}
	return router
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
