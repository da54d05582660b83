package domain

import "time"

// Business is the tenant boundary. A deployment hosts a single business
// record; exams, batches and announcements all hang off it.
type Business struct {
	ID            int64     `json:"id"`
	InstituteName string    `json:"instituteName"`
	Tagline       string    `json:"tagline,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	YoutubeURL    string    `json:"youtubeUrl,omitempty"`
	InstagramURL  string    `json:"instagramUrl,omitempty"`
	LinkedinURL   string    `json:"linkedinUrl,omitempty"`
	FacebookURL   string    `json:"facebookUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
