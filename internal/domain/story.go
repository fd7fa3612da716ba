package domain

import "time"

// Story is a published artisan heritage narrative.
type Story struct {
	ID        string    `json:"id"`
	ArtisanID string    `json:"artisan_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AudioURL  string    `json:"audio_url,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
