package entities

import "time"

// SearchEntry records one search prompt for the history/analytics
// side-channel. It never feeds back into ranking.
type SearchEntry struct {
	ID        string    `json:"id" db:"id"`
	Prompt    string    `json:"prompt" db:"prompt"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Favorite links a user to a saved product.
type Favorite struct {
	ID         string    `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	ProductURL string    `json:"product_url" db:"product_url"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
