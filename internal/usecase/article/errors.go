// Package article provides the read-side use cases for enriched articles.
// The pipeline exposes no update or delete operations on articles; saved
// flags and other per-user state live with an external collaborator.
package article

import "errors"

// Sentinel errors for article queries.
var (
	// ErrArticleNotFound indicates the requested article does not exist.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates a non-positive article ID.
	ErrInvalidArticleID = errors.New("invalid article ID")
)
