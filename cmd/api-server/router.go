package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"modhome/internal/events"
	"modhome/internal/logging"
	"modhome/internal/observability"
	"modhome/internal/product"
	"modhome/internal/quote"
	"modhome/internal/store"
)

type deps struct {
	Store    *store.Store
	Products *product.Handler
	Quotes   *quote.Handler
	Hub      *events.Hub
	Metrics  *observability.Metrics
	Logger   *zap.Logger
	Source   string // catalog source, reported by /health
	Snapshot snapshotClock
}

// snapshotClock is implemented by catalog sources that record when they
// were last written (the SQLite mirror).
type snapshotClock interface {
	SavedAt(ctx context.Context) (time.Time, error)
}

func newRouter(d deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinMiddleware(d.Logger), d.Metrics.Middleware())

	// Optional: avoid "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "ok", "source": d.Source}
		if d.Snapshot != nil {
			savedAt, err := d.Snapshot.SavedAt(c.Request.Context())
			if err != nil {
				d.Logger.Warn("catalog snapshot unavailable", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "degraded",
					"source": d.Source,
					"error":  "catalog snapshot unavailable",
				})
				return
			}
			body["saved_at"] = nil
			if !savedAt.IsZero() {
				body["saved_at"] = savedAt.UTC().Format(time.RFC3339)
			}
		}
		c.JSON(http.StatusOK, body)
	})

	router.GET("/ready", func(c *gin.Context) {
		if !d.Store.Loaded() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"ws_clients": d.Hub.Count(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"products":   d.Store.Len(),
			"ws_clients": d.Hub.Count(),
		})
	})

	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	router.GET("/ws", events.Handler(d.Hub))

	d.Products.RegisterRoutes(router.Group("/products"))
	d.Products.RegisterCatalogRoutes(router.Group(""))
	d.Quotes.RegisterRoutes(router.Group("/quotes"))

	return router
}

func withCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Accept-Language"},
		MaxAge:         600,
	}).Handler(h)
}
