package fetcher

import "errors"

// Sentinel errors for content fetching. Callers fall back to the feed's
// own content on any of these rather than failing the article.
var (
	ErrInvalidURL        = errors.New("invalid URL")
	ErrPrivateIP         = errors.New("URL resolves to private IP")
	ErrTimeout           = errors.New("content fetch timed out")
	ErrBodyTooLarge      = errors.New("response body too large")
	ErrTooManyRedirects  = errors.New("too many redirects")
	ErrReadabilityFailed = errors.New("readability extraction failed")
)
