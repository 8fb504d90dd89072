package logger

import (
	"fmt"
	"strings"
)

// Redacted replaces masked values in logs.
const Redacted = "***REDACTED***"

// DefaultSensitiveColumns lists column name fragments whose bound values are
// never logged.
var DefaultSensitiveColumns = []string{
	"password", "passwd", "pwd",
	"token", "api_key", "apikey",
	"secret", "auth",
	"credit_card", "card_number", "cvv", "cvc",
	"ssn", "private_key",
}

// Sanitizer masks parameter values bound to sensitive columns before they
// reach a log line. Because the builder knows which column every placeholder
// belongs to, masking is done per parameter rather than per statement.
type Sanitizer struct {
	fragments []string
}

// NewSanitizer creates a sanitizer for the given column name fragments.
// With no fragments, DefaultSensitiveColumns is used.
func NewSanitizer(fragments ...string) *Sanitizer {
	if len(fragments) == 0 {
		fragments = DefaultSensitiveColumns
	}
	lower := make([]string, len(fragments))
	for i, f := range fragments {
		lower[i] = strings.ToLower(f)
	}
	return &Sanitizer{fragments: lower}
}

// IsSensitive reports whether column matches any configured fragment
// (case-insensitive substring match).
func (s *Sanitizer) IsSensitive(column string) bool {
	column = strings.ToLower(column)
	for _, f := range s.fragments {
		if strings.Contains(column, f) {
			return true
		}
	}
	return false
}

// MaskParams returns a copy of params where every value whose bound column is
// sensitive is replaced by Redacted. columns[i] names the column bound to
// params[i]; missing or empty names are never masked. params is not modified.
func (s *Sanitizer) MaskParams(columns []string, params []any) []any {
	masked := make([]any, len(params))
	copy(masked, params)
	for i := range masked {
		if i < len(columns) && columns[i] != "" && s.IsSensitive(columns[i]) {
			masked[i] = Redacted
		}
	}
	return masked
}

// FormatParams renders params for a log line, truncating long values.
func (s *Sanitizer) FormatParams(params []any) string {
	if len(params) == 0 {
		return "[]"
	}

	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = formatValue(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}

	const maxLen = 100
	str := fmt.Sprintf("%v", v)
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}
