// Package redact strips credentials, connection strings, file paths and
// other sensitive fragments from strings before they are logged or returned
// in error responses.
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Stack trace fragments
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	// Database connection strings with embedded credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database)://[^@\s]+@`)

	// Credentials and tokens
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// File paths
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	winPathRegex  = regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`)

	// SQL queries and fragments
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX)(?:[\s\w,*()='"]+)?`,
	)

	// Applied in order.
	rules = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{stackTraceRegex, "[STACK_TRACE_REDACTED]"},
		{dbConnRegex, RedactedCredentialPlaceholder},
		{passwordRegex, RedactedCredentialPlaceholder},
		{apiKeyRegex, RedactedKeyPlaceholder},
		{unixPathRegex, RedactedPathPlaceholder},
		{winPathRegex, RedactedPathPlaceholder},
		{sqlRegex, "[REDACTED_SQL]"},
	}

	sensitiveQueryKeys = []string{"token", "key", "secret", "password", "signature", "sig", "auth"}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// URL removes user info and the values of credential-like query parameters
// from raw, keeping scheme, host and path readable for logs. Unparseable
// input is replaced entirely.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return RedactionPlaceholder
	}

	u.User = nil

	q := u.Query()
	changed := false
	for name := range q {
		lower := strings.ToLower(name)
		for _, s := range sensitiveQueryKeys {
			if strings.Contains(lower, s) {
				q.Set(name, "REDACTED")
				changed = true
				break
			}
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}

	return u.String()
}
