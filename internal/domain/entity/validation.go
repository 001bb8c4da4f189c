package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength caps stored URLs; anything longer is rejected before it
// reaches the database.
const maxURLLength = 2048

// ValidateURL checks that a URL is syntactically usable as an article or
// source link: non-empty, within the length cap, http(s), and carrying a
// host. Network-level concerns (DNS resolution, private address ranges) are
// deliberately not checked here; they belong to the component that actually
// opens connections.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("must not exceed %d characters", maxURLLength),
		}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "is not a well-formed URL"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "must use http or https"}
	}
	if parsed.Host == "" {
		return &ValidationError{Field: "url", Message: "must include a host"}
	}
	return nil
}
