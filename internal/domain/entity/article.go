// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article, Source and Category, along
// with their validation rules and domain-specific errors.
package entity

import "time"

// Sentiment is the three-way polarity label attached to an article.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// Valid reports whether s is one of the three known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Article represents an enriched news article in the system.
// Its canonical URL is the deduplication key: an article whose URL is
// already stored is never re-created by ingestion.
type Article struct {
	ID          int64
	SourceID    *int64 // nullable: fallback articles may carry no source row
	Title       string
	Description string
	Content     string
	URL         string
	ImageURL    string
	Sentiment   Sentiment
	Summary     string
	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RichestText returns the most substantial text available for enrichment,
// preferring body content over description over title.
func (a *Article) RichestText() string {
	if a.Content != "" {
		return a.Content
	}
	if a.Description != "" {
		return a.Description
	}
	return a.Title
}
