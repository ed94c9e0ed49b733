package product

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modhome/internal/categorize"
	"modhome/internal/events"
	"modhome/internal/store"
	"modhome/pkg/models"
)

type stubLoader struct {
	products []models.Product
	err      error
}

func (l stubLoader) Load(context.Context) ([]models.Product, error) { return l.products, l.err }

type recorder struct{ got []events.Event }

func (r *recorder) Broadcast(e events.Event) { r.got = append(r.got, e) }

var catalogFixture = []models.Product{
	{ID: 1, Name: "Folding Container House A", Price: "$500", Image: "img1.jpg", Category: "Folding", Features: []string{}},
	{ID: 2, Name: "Capsule Pod X", Price: "$300", Image: "img2.jpg", Category: "Capsule", Features: []string{}},
}

func setup(t *testing.T) (*gin.Engine, *Handler, *recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p, err := categorize.NewRegistry().Get("container-v1")
	require.NoError(t, err)
	c, err := categorize.New(p)
	require.NoError(t, err)

	h := NewHandler(store.New(), stubLoader{products: catalogFixture})
	h.Categorizer = c
	rec := &recorder{}
	h.Events = rec
	_, err = h.Reload(context.Background())
	require.NoError(t, err)
	rec.got = nil

	r := gin.New()
	h.RegisterRoutes(r.Group("/products"))
	h.RegisterCatalogRoutes(r.Group(""))
	return r, h, rec
}

func do(r *gin.Engine, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList(t *testing.T) {
	r, _, _ := setup(t)

	w := do(r, http.MethodGet, "/products?category=capsule", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total  int              `json:"total"`
		Limit  int              `json:"limit"`
		Offset int              `json:"offset"`
		Items  []models.Product `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 20, resp.Limit)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Capsule Pod X", resp.Items[0].Name)

	w = do(r, http.MethodGet, "/products?limit=500&offset=-1", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
	assert.Equal(t, 2, resp.Total)
}

func TestGet(t *testing.T) {
	r, _, _ := setup(t)

	w := do(r, http.MethodGet, "/products/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"features":[]`)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/products/99", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/products/abc", nil).Code)
}

func TestCreate_CategorizesAndNormalizes(t *testing.T) {
	r, h, rec := setup(t)

	w := do(r, http.MethodPost, "/products", gin.H{
		"name":     " Expandable Container Home ",
		"price":    "$1,200",
		"image":    "img3.jpg",
		"features": []string{"Steel", "steel", " "},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "Expandable Container Home", p.Name)
	assert.Equal(t, "Folding", p.Category)
	assert.Equal(t, []string{"Steel"}, p.Features)
	assert.Equal(t, 3, h.Store.Len())

	require.Len(t, rec.got, 1)
	assert.Equal(t, events.ProductCreated, rec.got[0].Type)
	assert.Equal(t, 3, rec.got[0].ProductID)
}

func TestCreate_Validation(t *testing.T) {
	r, h, _ := setup(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/products", gin.H{"price": "$1"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/products", gin.H{"name": "x"}).Code)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	h.Categorizer = nil
	w = do(r, http.MethodPost, "/products", gin.H{"name": "x", "price": "$1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"category required"}`, w.Body.String())
}

func TestCreate_RejectsUnknownCategory(t *testing.T) {
	r, h, rec := setup(t)

	w := do(r, http.MethodPost, "/products", gin.H{"name": "Folding House B", "price": "$700", "category": "Spaceship"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"unknown category"}`, w.Body.String())

	w = do(r, http.MethodPut, "/products/2", gin.H{"name": "Capsule Pod Y", "price": "$350", "category": "Spaceship"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, 2, h.Store.Len())
	assert.Empty(t, rec.got)

	w = do(r, http.MethodPost, "/products", gin.H{"name": "Steel Box", "price": "$700", "category": "Container"})
	assert.Equal(t, http.StatusCreated, w.Code)

	h.Categorizer = nil
	w = do(r, http.MethodPost, "/products", gin.H{"name": "Steel Box", "price": "$700", "category": "Spaceship"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateDelete(t *testing.T) {
	r, _, rec := setup(t)

	w := do(r, http.MethodPut, "/products/2", gin.H{"name": "Capsule Pod Y", "price": "$350", "category": "Capsule"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Capsule Pod Y")

	assert.Equal(t, http.StatusNotFound,
		do(r, http.MethodPut, "/products/42", gin.H{"name": "x", "price": "$1", "category": "Capsule"}).Code)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/products/2", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/products/2", nil).Code)

	require.Len(t, rec.got, 2)
	assert.Equal(t, events.ProductUpdated, rec.got[0].Type)
	assert.Equal(t, events.ProductDeleted, rec.got[1].Type)
}

func TestCategories_Localized(t *testing.T) {
	r, _, _ := setup(t)

	w := do(r, http.MethodGet, "/categories", nil, "Accept-Language", "fr-CA,fr;q=0.9")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Lang  string                 `json:"lang"`
		Total int                    `json:"total"`
		Items []models.CategoryCount `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fr", resp.Lang)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	names := map[string]string{}
	for _, c := range resp.Items {
		names[c.Label] = c.Name
	}
	assert.Equal(t, "Pliable", names["Folding"])

	w = do(r, http.MethodGet, "/categories?lang=en", nil, "Accept-Language", "fr")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "en", resp.Lang)
}

func TestReload(t *testing.T) {
	r, h, rec := setup(t)

	var outcomes []error
	h.OnReload = func(_ int, err error) { outcomes = append(outcomes, err) }

	h.Loader = stubLoader{products: catalogFixture[:1]}
	w := do(r, http.MethodPost, "/catalog/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"products":1}`, w.Body.String())
	assert.Equal(t, 1, h.Store.Len())
	require.Len(t, rec.got, 1)
	assert.Equal(t, events.CatalogReloaded, rec.got[0].Type)

	h.Loader = stubLoader{err: errors.New("disk gone")}
	w = do(r, http.MethodPost, "/catalog/reload", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, h.Store.Len(), "failed reload keeps the old snapshot")

	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes[0])
	assert.Error(t, outcomes[1])
}

func TestClosedStore(t *testing.T) {
	r, h, _ := setup(t)
	h.Store.Close()

	w := do(r, http.MethodPost, "/products", gin.H{"name": "x", "price": "$1", "category": "Capsule"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodPost, "/catalog/reload", nil).Code)
}
