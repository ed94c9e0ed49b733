package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"modhome/internal/config"
	"modhome/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.Must(cfg.Debug)
	defer func() { _ = logger.Sync() }()

	router := newRouter(cfg.MirrorFile, logger)

	logger.Info("mirror-server listening",
		zap.String("addr", cfg.MirrorAddr),
		zap.String("file", cfg.MirrorFile),
	)
	if err := http.ListenAndServe(cfg.MirrorAddr, router); err != nil {
		logger.Error("mirror-server stopped", zap.Error(err))
		os.Exit(1)
	}
}

// newRouter serves the raw catalog file at GET /products, re-read on every
// request so the file can be swapped while running.
func newRouter(dataPath string, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.GinMiddleware(logger))

	router.GET("/products", func(c *gin.Context) {
		b, err := os.ReadFile(dataPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read catalog: " + err.Error()})
			return
		}
		// validate JSON so a bad file doesn't silently break the scraper
		var tmp []json.RawMessage
		if err := json.Unmarshal(b, &tmp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog is not a JSON array: " + err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json", b)
	})
	return router
}
