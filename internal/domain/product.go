package domain

import "time"

// Product is a handcrafted item listed by an artisan.
type Product struct {
	ID              string    `json:"id"`
	ArtisanID       string    `json:"artisan_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	Category        string    `json:"category"`
	Images          []string  `json:"images"`
	Story           string    `json:"story,omitempty"`
	CulturalContext string    `json:"cultural_context,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
