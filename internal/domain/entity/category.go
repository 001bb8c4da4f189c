package entity

import "time"

// DefaultCategory is the category label used when a fetch request does not
// specify one.
const DefaultCategory = "general"

// Category represents a news category under which articles are fetched.
// Names are globally unique; categories are created lazily per distinct
// label encountered during ingestion.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArticleCategory links an article to the category it was fetched under.
// At most one link exists per (article, category) pair.
type ArticleCategory struct {
	ID         int64
	ArticleID  int64
	CategoryID int64
	CreatedAt  time.Time
}
