// Package events pushes catalog changes to connected websocket clients.
package events

import "time"

const (
	ProductCreated  = "product.created"
	ProductUpdated  = "product.updated"
	ProductDeleted  = "product.deleted"
	CatalogReloaded = "catalog.reloaded"
)

type Event struct {
	Type      string    `json:"type"`
	ProductID int       `json:"product_id,omitempty"`
	Count     int       `json:"count,omitempty"` // catalog size after a reload
	At        time.Time `json:"at"`
}

// Broadcaster is what handlers need to announce a change.
type Broadcaster interface {
	Broadcast(Event)
}

// Nop discards events.
type Nop struct{}

func (Nop) Broadcast(Event) {}
