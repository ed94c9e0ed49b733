package models

import "time"

// Quote is a customer's request for a price quote on one product.
type Quote struct {
	ID        string    `json:"id"`
	ProductID int       `json:"product_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	Locale    string    `json:"locale"`
	CreatedAt time.Time `json:"created_at"`
}
