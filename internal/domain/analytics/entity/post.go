package entity

import "math"

// MediaType represents the kind of media a post carries
type MediaType string

const (
	MediaTypePhoto    MediaType = "photo"
	MediaTypeVideo    MediaType = "video"
	MediaTypeCarousel MediaType = "carousel"
)

// IsValid returns true for the known media types
func (m MediaType) IsValid() bool {
	switch m {
	case MediaTypePhoto, MediaTypeVideo, MediaTypeCarousel:
		return true
	}
	return false
}

// Post represents a normalized Instagram post
type Post struct {
	ID             string    `json:"id"`
	Caption        string    `json:"caption"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	MediaType      MediaType `json:"media_type"`
	MediaURL       string    `json:"media_url"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	Timestamp      string    `json:"timestamp"`       // ISO-8601
	EngagementRate float64   `json:"engagement_rate"` // Percentage of followers, 2 decimals
}

// Engagements returns likes plus comments, saturating at math.MaxInt64
func (p Post) Engagements() int64 {
	return AddCounts(p.Likes, p.Comments)
}

// AddCounts adds two non-negative counts, saturating at math.MaxInt64
func AddCounts(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
