package entity

import "time"

// Default locale values applied when a never-seen source name is created
// during ingestion and the upstream payload carries no locale information.
const (
	DefaultSourceLanguage = "en"
	DefaultSourceCountry  = "us"
)

// Source represents a news publisher in the system.
// Its name is globally unique; sources are created lazily the first time a
// never-seen name appears in a batch and are never updated by ingestion.
type Source struct {
	ID          int64
	Name        string
	Description string
	URL         string
	Category    string
	Language    string
	Country     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the Source entity fields before persistence.
func (s *Source) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if s.URL != "" {
		if err := ValidateURL(s.URL); err != nil {
			return err
		}
	}
	return nil
}
