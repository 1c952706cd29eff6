package logger

import "regexp"

// development is set by Setup. When false, ErrDetail withholds error detail
// entirely so store error text and identifiers never reach production logs.
var development = true

var (
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	tokenPattern  = regexp.MustCompile(`[a-zA-Z0-9]{32,}`)
	secretPattern = regexp.MustCompile(`(?i)(password|pwd|token|key|secret)=\S+`)
	uidPattern    = regexp.MustCompile(`(?i)uid:\s*['"]?[a-zA-Z0-9]{20,}['"]?`)
	apiKeyPattern = regexp.MustCompile(`AIza[a-zA-Z0-9_-]{35}`)
)

// Redact masks credential-looking substrings in a log message: email
// addresses, long alphanumeric tokens, password/key/secret assignments,
// uid-tagged identifiers, and provider API keys.
func Redact(message string) string {
	message = emailPattern.ReplaceAllString(message, "[EMAIL]")
	message = tokenPattern.ReplaceAllString(message, "[TOKEN]")
	message = secretPattern.ReplaceAllString(message, "$1=[REDACTED]")
	message = uidPattern.ReplaceAllString(message, "uid: [UID]")
	message = apiKeyPattern.ReplaceAllString(message, "[API_KEY]")
	return message
}

// ErrDetail returns the loggable detail for an error: the redacted message in
// development, a generic line everywhere else. Pair it with a context field
// so production logs still say where the failure happened.
func ErrDetail(err error) string {
	if err == nil {
		return ""
	}
	if development {
		return Redact(err.Error())
	}
	return "An error occurred"
}
