// Package security guards raw SQL handed to the client and keeps an audit
// trail of executed statements.
package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrUnsafeQuery is returned when raw SQL matches an injection pattern.
	ErrUnsafeQuery = errors.New("unsafe SQL pattern")
	// ErrUnsafeParam is returned when a string parameter looks like an
	// injection payload.
	ErrUnsafeParam = errors.New("suspicious parameter value")
)

// Validator rejects raw SQL text and parameters that match common injection
// patterns. Statements rendered by the builder never pass through it.
type Validator struct {
	patterns []*regexp.Regexp
	strict   bool
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithStrict also rejects any OR, AND, UNION, EXEC or EXECUTE keyword.
// Expect false positives.
func WithStrict(strict bool) ValidatorOption {
	return func(v *Validator) {
		v.strict = strict
	}
}

// NewValidator returns a Validator with the default pattern set.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{patterns: compilePatterns(queryPatterns)}
	for _, opt := range opts {
		opt(v)
	}
	if v.strict {
		v.patterns = append(v.patterns, compilePatterns(strictPatterns)...)
	}
	return v
}

// Matched against the upper-cased statement.
var queryPatterns = []string{
	// comments
	`--\s`,
	`/\*.*\*/`,
	`#\s`,

	// stacked statements
	`;\s*(DROP|DELETE|TRUNCATE|ALTER|CREATE)\s+`,

	`UNION\s+(ALL\s+)?SELECT`,

	// procedure execution
	`XP_CMDSHELL`,
	`SP_EXECUTESQL`,
	`\bEXEC(UTE)?\s*\(`,
	`\bEXEC\s+(XP|SP)_`,

	// metadata access and timing probes
	`INFORMATION_SCHEMA`,
	`PG_SLEEP\s*\(`,
	`BENCHMARK\s*\(`,
	`WAITFOR\s+DELAY`,

	// tautologies
	`\s+OR\s+1\s*=\s*1\b`,
	`\s+OR\s+'1'\s*=\s*'1'`,
	`\s+AND\s+1\s*=\s*0\b`,
}

var strictPatterns = []string{
	`\bOR\b`,
	`\bAND\b`,
	`\bUNION\b`,
	`\bEXEC\b`,
	`\bEXECUTE\b`,
}

// Matched as substrings of upper-cased string parameters.
var paramIndicators = []string{
	"'--",
	"';",
	"' OR ",
	"' AND ",
	"/*",
	"*/",
	"' UNION ",
	"' DROP ",
	"XP_",
}

// ValidateQuery returns ErrUnsafeQuery if query matches any pattern.
func (v *Validator) ValidateQuery(query string) error {
	upper := strings.ToUpper(query)
	for _, p := range v.patterns {
		if p.MatchString(upper) {
			return fmt.Errorf("%w: matches %s", ErrUnsafeQuery, p)
		}
	}
	return nil
}

// ValidateParams returns ErrUnsafeParam for the first string parameter that
// contains an injection indicator. Non-string parameters are ignored.
func (v *Validator) ValidateParams(params []any) error {
	for i, p := range params {
		s, ok := p.(string)
		if !ok {
			continue
		}
		upper := strings.ToUpper(s)
		for _, ind := range paramIndicators {
			if strings.Contains(upper, ind) {
				return fmt.Errorf("%w at index %d", ErrUnsafeParam, i)
			}
		}
	}
	return nil
}

// Validate checks both the statement and its parameters.
func (v *Validator) Validate(query string, params []any) error {
	if err := v.ValidateQuery(query); err != nil {
		return err
	}
	return v.ValidateParams(params)
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}
