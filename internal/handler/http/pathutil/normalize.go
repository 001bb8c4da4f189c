package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern pairs a route regex with its normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns lists the dynamic routes. Evaluated in order, pre-compiled at
// initialization.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/articles/\d+$`), Template: "/articles/:id"},
}

// NormalizePath collapses dynamic URL paths into templates so metrics labels
// keep bounded cardinality: /articles/123 becomes /articles/:id. Static
// paths such as /news, /healthz, and /metrics pass through unchanged. Query
// parameters and trailing slashes are stripped first.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}
