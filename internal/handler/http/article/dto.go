// Package article provides HTTP handlers for the stored-article endpoints:
// paginated listing and detail lookup.
package article

import (
	"time"

	"newspulse/internal/domain/entity"
)

// DTO is the JSON shape of a stored article.
type DTO struct {
	ID          int64     `json:"id" example:"1"`
	SourceID    int64     `json:"source_id,omitempty" example:"1"`
	SourceName  string    `json:"source_name,omitempty" example:"NewsPulse Samples"`
	Title       string    `json:"title" example:"Tech stocks rally as chipmakers report record growth"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url" example:"https://samples.newspulse.dev/articles/tech-stocks-rally"`
	ImageURL    string    `json:"image_url,omitempty"`
	Sentiment   string    `json:"sentiment" example:"POSITIVE"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at" example:"2024-03-18T09:00:00Z"`
	CreatedAt   time.Time `json:"created_at" example:"2024-03-18T10:00:00Z"`
}

// toDTO converts a domain article plus its source name into the wire shape.
func toDTO(a *entity.Article, sourceName string) DTO {
	var sourceID int64
	if a.SourceID != nil {
		sourceID = *a.SourceID
	}
	return DTO{
		ID:          a.ID,
		SourceID:    sourceID,
		SourceName:  sourceName,
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		Sentiment:   string(a.Sentiment),
		Summary:     a.Summary,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
	}
}
