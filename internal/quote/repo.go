// Package quote keeps the storefront's "request a quote" submissions in
// memory for the lifetime of the process.
package quote

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"modhome/pkg/models"
)

var ErrNotFound = errors.New("quote not found")

type Repo struct {
	mu     sync.RWMutex
	quotes map[string]models.Quote
	now    func() time.Time
}

func NewRepo() *Repo {
	return &Repo{
		quotes: make(map[string]models.Quote),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create assigns an id and timestamp to q and stores it.
func (r *Repo) Create(q models.Quote) models.Quote {
	q.ID = uuid.NewString()
	q.CreatedAt = r.now()

	r.mu.Lock()
	r.quotes[q.ID] = q
	r.mu.Unlock()
	return q
}

func (r *Repo) GetByID(id string) (models.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.quotes[id]
	if !ok {
		return models.Quote{}, ErrNotFound
	}
	return q, nil
}

// List returns quotes newest first, optionally for one product (productID > 0),
// together with the total number of matches.
func (r *Repo) List(productID, limit, offset int) ([]models.Quote, int) {
	limit, offset = pageBounds(limit, offset)

	r.mu.RLock()
	matched := make([]models.Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		if productID > 0 && q.ProductID != productID {
			continue
		}
		matched = append(matched, q)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if offset >= total {
		return []models.Quote{}, total
	}
	return matched[offset:min(offset+limit, total)], total
}

func (r *Repo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quotes[id]; !ok {
		return ErrNotFound
	}
	delete(r.quotes, id)
	return nil
}

func (r *Repo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.quotes)
}

// Clear drops every quote; called on shutdown.
func (r *Repo) Clear() {
	r.mu.Lock()
	r.quotes = make(map[string]models.Quote)
	r.mu.Unlock()
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
