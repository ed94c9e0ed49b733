package quote

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"modhome/internal/locale"
	"modhome/pkg/models"
)

// Products is the catalog lookup a quote is checked against.
type Products interface {
	Get(id int) (models.Product, error)
}

type Handler struct {
	Repo     *Repo
	Products Products
	// OnCreate runs after a quote is stored.
	OnCreate func(models.Quote)
}

func NewHandler(repo *Repo, products Products) *Handler {
	return &Handler{Repo: repo, Products: products, OnCreate: func(models.Quote) {}}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.getByID)
	rg.DELETE("/:id", h.delete)
}

type createReq struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Locale    string `json:"locale"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if req.ProductID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id required"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid email required"})
		return
	}
	if _, err := h.Products.Get(req.ProductID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	lang, ok := locale.Parse(req.Locale)
	if !ok {
		lang = locale.Negotiate(c.GetHeader("Accept-Language"))
	}

	q := h.Repo.Create(models.Quote{
		ProductID: req.ProductID,
		Name:      name,
		Email:     addr.Address,
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		Locale:    lang,
	})
	h.OnCreate(q)
	c.JSON(http.StatusCreated, q)
}

func (h *Handler) list(c *gin.Context) {
	productID := parseInt(c.Query("product_id"), 0)
	limit, offset := pageBounds(parseInt(c.Query("limit"), 20), parseInt(c.Query("offset"), 0))

	items, total := h.Repo.List(productID, limit, offset)
	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	q, err := h.Repo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func parseID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return "", false
	}
	return id.String(), true
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
