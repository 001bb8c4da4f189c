package worker

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"newspulse/internal/pkg/config"
)

// CategorySources is one category and the RSS feeds crawled into it.
type CategorySources struct {
	Name  string   `yaml:"name"`
	Feeds []string `yaml:"feeds"`
}

// SourcesConfig is the parsed sources YAML:
//
//	categories:
//	  - name: technology
//	    feeds:
//	      - https://example.com/tech/feed.xml
type SourcesConfig struct {
	Categories []CategorySources `yaml:"categories"`
}

// FeedCount returns the total number of feeds across all categories.
func (s *SourcesConfig) FeedCount() int {
	n := 0
	for _, c := range s.Categories {
		n += len(c.Feeds)
	}
	return n
}

// LoadSources reads and validates the sources YAML at path. Every category
// needs a name and every feed must be an absolute http(s) URL.
func LoadSources(path string) (*SourcesConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var cfg SourcesConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}

	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("sources file %s lists no categories", path)
	}

	seen := make(map[string]bool, len(cfg.Categories))
	for i, cat := range cfg.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("category %d has no name", i)
		}
		if seen[cat.Name] {
			return nil, fmt.Errorf("category %q listed twice", cat.Name)
		}
		seen[cat.Name] = true

		if len(cat.Feeds) == 0 {
			return nil, fmt.Errorf("category %q has no feeds", cat.Name)
		}
		for _, feedURL := range cat.Feeds {
			if err := config.ValidateBaseURL(feedURL); err != nil {
				return nil, fmt.Errorf("category %q feed %q: %w", cat.Name, feedURL, err)
			}
		}
	}

	return &cfg, nil
}
