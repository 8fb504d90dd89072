package dialects

import "strings"

// Quote wraps an identifier in the given quote character and doubles every
// quote character inside it, so the result is always a single SQL token.
//
// The name is expected to be unquoted. A name already bounded by the quote
// character on both ends is not wrapped again, but its inner quotes are still
// doubled, so quoting the output of Quote a second time escapes it twice:
//
//	Quote(`a"b`, '"')     // "a""b"
//	Quote(`"a""b"`, '"')  // "a""""b"
func Quote(name string, quote rune) string {
	q := string(quote)
	if len(name) < 2*len(q) || !strings.HasPrefix(name, q) || !strings.HasSuffix(name, q) {
		name = q + name + q
	}
	inner := name[len(q) : len(name)-len(q)]
	return q + strings.ReplaceAll(inner, q, q+q) + q
}
