// Package store is the storefront's in-memory product table. One Store is
// created at process start, filled from the published catalog and cleared on
// shutdown; nothing survives a restart.
package store

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"modhome/internal/catalog"
	"modhome/pkg/models"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrClosed   = errors.New("store closed")
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Query struct {
	Q        string // keyword in name/description
	Category string
	Limit    int
	Offset   int
}

// Normalize clamps limit and offset to the accepted range.
func (q Query) Normalize() Query {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.Q = strings.TrimSpace(q.Q)
	q.Category = strings.TrimSpace(q.Category)
	return q
}

type Store struct {
	mu       sync.RWMutex
	products []models.Product // ordered by id
	nextID   int
	loaded   bool
	closed   bool
}

func New() *Store {
	return &Store{nextID: 1}
}

// Replace swaps in a full catalog snapshot. Ids are kept as published.
func (s *Store) Replace(products []models.Product) error {
	cp := make([]models.Product, len(products))
	next := 1
	for i, p := range products {
		cp[i] = clone(p)
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].ID < cp[j].ID })

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.products = cp
	s.nextID = next
	s.loaded = true
	return nil
}

// LoadJSON reads a published catalog file into the store.
func (s *Store) LoadJSON(path string) (int, error) {
	products, err := catalog.ReadProducts(path)
	if err != nil {
		return 0, err
	}
	if err := s.Replace(products); err != nil {
		return 0, err
	}
	return len(products), nil
}

// List returns one page of matching products and the total match count.
func (s *Store) List(q Query) ([]models.Product, int) {
	q = q.Normalize()
	needle := strings.ToLower(q.Q)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Product
	for _, p := range s.products {
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	items := make([]models.Product, 0, q.Limit)
	if q.Offset >= total {
		return items, total
	}
	end := min(q.Offset+q.Limit, total)
	for _, p := range matched[q.Offset:end] {
		items = append(items, clone(p))
	}
	return items, total
}

func (s *Store) Get(id int) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		return models.Product{}, ErrNotFound
	}
	return clone(s.products[i]), nil
}

// Create assigns the next free id and stores p.
func (s *Store) Create(p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Product{}, ErrClosed
	}
	p = clone(p)
	p.ID = s.nextID
	s.nextID++
	s.products = append(s.products, p)
	return clone(p), nil
}

// Update replaces the product with p.ID.
func (s *Store) Update(p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Product{}, ErrClosed
	}
	i := s.index(p.ID)
	if i < 0 {
		return models.Product{}, ErrNotFound
	}
	s.products[i] = clone(p)
	return clone(p), nil
}

func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

// Categories counts products per category, largest first; ties by label.
func (s *Store) Categories() []models.CategoryCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{}
	for _, p := range s.products {
		counts[p.Category]++
	}
	out := make([]models.CategoryCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, models.CategoryCount{
			Label:   label,
			Count:   n,
			Percent: float64(n) * 100 / float64(len(s.products)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Snapshot returns a copy of every product in id order.
func (s *Store) Snapshot() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = clone(p)
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Loaded reports whether a catalog snapshot has been loaded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded && !s.closed
}

// Close drops every product. Later writes fail with ErrClosed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.loaded = false
	s.closed = true
}

// index finds id by binary search; ids only ever grow so the slice stays sorted.
func (s *Store) index(id int) int {
	i := sort.Search(len(s.products), func(i int) bool { return s.products[i].ID >= id })
	if i < len(s.products) && s.products[i].ID == id {
		return i
	}
	return -1
}

func clone(p models.Product) models.Product {
	if p.Features == nil {
		p.Features = []string{}
	} else {
		p.Features = append([]string{}, p.Features...)
	}
	return p
}
