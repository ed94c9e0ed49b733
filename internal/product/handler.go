package product

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"modhome/internal/catalog"
	"modhome/internal/categorize"
	"modhome/internal/events"
	"modhome/internal/locale"
	"modhome/internal/store"
	"modhome/pkg/models"
)

// Loader returns a full catalog snapshot (JSON file or SQLite mirror).
type Loader interface {
	Load(ctx context.Context) ([]models.Product, error)
}

type Handler struct {
	Store       *store.Store
	Categorizer *categorize.Categorizer // optional; fills empty categories
	FeatureCap  int
	Loader      Loader
	Events      events.Broadcaster
	// OnReload is told the outcome of every reload.
	OnReload func(products int, err error)
	Logger   *zap.Logger
}

func NewHandler(s *store.Store, loader Loader) *Handler {
	return &Handler{
		Store:      s,
		FeatureCap: catalog.DefaultFeatureCap,
		Loader:     loader,
		Events:     events.Nop{},
		OnReload:   func(int, error) {},
		Logger:     zap.NewNop(),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)        // GET /products
	rg.GET("/:id", h.getByID) // GET /products/:id
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

// RegisterCatalogRoutes adds /categories and /catalog/reload.
func (h *Handler) RegisterCatalogRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.categories)
	rg.POST("/catalog/reload", h.reload)
}

// Reload replaces the store content with a fresh snapshot from the Loader.
func (h *Handler) Reload(ctx context.Context) (int, error) {
	if h.Loader == nil {
		return 0, errors.New("no catalog loader configured")
	}
	products, err := h.Loader.Load(ctx)
	if err == nil {
		err = h.Store.Replace(products)
	}
	if err != nil {
		h.Logger.Error("catalog reload failed", zap.Error(err))
		h.OnReload(0, err)
		return 0, err
	}
	h.Logger.Info("catalog loaded", zap.Int("products", len(products)))
	h.OnReload(len(products), nil)
	h.Events.Broadcast(events.Event{Type: events.CatalogReloaded, Count: len(products), At: time.Now().UTC()})
	return len(products), nil
}

func (h *Handler) list(c *gin.Context) {
	q := store.Query{
		Q:        c.Query("q"),
		Category: c.Query("category"),
		Limit:    parseInt(c.Query("limit"), store.DefaultLimit),
		Offset:   parseInt(c.Query("offset"), 0),
	}.Normalize()

	items, total := h.Store.List(q)
	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.Store.Get(id)
	if err != nil {
		h.fail(c, err, "get failed")
		return
	}
	c.JSON(http.StatusOK, p)
}

type productReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Features    []string `json:"features"`
}

// toProduct validates req and fills derived fields. It writes the 400
// response itself and reports false on bad input.
func (h *Handler) toProduct(c *gin.Context) (models.Product, bool) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return models.Product{}, false
	}
	p := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       strings.TrimSpace(req.Price),
		Image:       strings.TrimSpace(req.Image),
		Category:    strings.TrimSpace(req.Category),
		Features:    catalog.NormalizeFeatures(req.Features, h.FeatureCap),
	}
	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return models.Product{}, false
	}
	if p.Price == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price required"})
		return models.Product{}, false
	}
	if p.Category == "" {
		if h.Categorizer == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
			return models.Product{}, false
		}
		p.Category = h.Categorizer.Categorize(p)
	} else if h.Categorizer != nil && !slices.Contains(h.Categorizer.Labels(), p.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return models.Product{}, false
	}
	return p, true
}

func (h *Handler) create(c *gin.Context) {
	p, ok := h.toProduct(c)
	if !ok {
		return
	}
	created, err := h.Store.Create(p)
	if err != nil {
		h.fail(c, err, "create failed")
		return
	}
	h.Events.Broadcast(events.Event{Type: events.ProductCreated, ProductID: created.ID, At: time.Now().UTC()})
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, ok := h.toProduct(c)
	if !ok {
		return
	}
	p.ID = id
	updated, err := h.Store.Update(p)
	if err != nil {
		h.fail(c, err, "update failed")
		return
	}
	h.Events.Broadcast(events.Event{Type: events.ProductUpdated, ProductID: id, At: time.Now().UTC()})
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Store.Delete(id); err != nil {
		h.fail(c, err, "delete failed")
		return
	}
	h.Events.Broadcast(events.Event{Type: events.ProductDeleted, ProductID: id, At: time.Now().UTC()})
	c.Status(http.StatusNoContent)
}

func (h *Handler) categories(c *gin.Context) {
	lang := locale.Negotiate(c.GetHeader("Accept-Language"))
	if v, ok := locale.Parse(c.Query("lang")); ok {
		lang = v
	}

	cats := h.Store.Categories()
	for i := range cats {
		cats[i].Name = cats[i].Label
		if h.Categorizer != nil {
			cats[i].Name = h.Categorizer.Localize(cats[i].Label, lang)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"lang":  lang,
		"total": h.Store.Len(),
		"items": cats,
	})
}

func (h *Handler) reload(c *gin.Context) {
	n, err := h.Reload(c.Request.Context())
	if err != nil {
		if errors.Is(err, store.ErrClosed) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store closed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": n})
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store closed"})
	default:
		h.Logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
