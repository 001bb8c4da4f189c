package respond

import "regexp"

var (
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9_-]+`)
	apiKeyPattern       = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)
	dsnPasswordPattern  = regexp.MustCompile(`(://[^:/@]+:)[^@]+(@)`)
)

// SanitizeError masks credentials that may appear in error messages before
// they are written to logs. API keys and connection-string passwords are
// replaced with asterisks.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	// sk-ant- を先に処理しないと汎用パターンに食われる
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = apiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = dsnPasswordPattern.ReplaceAllString(msg, "${1}****${2}")
	return msg
}
