package identity

import "strings"

// MaxNameLength is the longest player name. Anything longer after sanitising is
// treated as a unique id.
const MaxNameLength = 16

// StripTag removes a clan or rank tag prefix such as "[Admin] Notch". The text
// between the first ']' and the following ']' (or the end of the string) is kept.
// The result never contains ']'.
func StripTag(s string) string {
	idx := strings.IndexByte(s, ']')
	if idx < 0 {
		return s
	}

	rest := s[idx+1:]
	if end := strings.IndexByte(rest, ']'); end >= 0 {
		rest = rest[:end]
	}

	return rest
}

// Sanitize keeps only ASCII letters, digits and underscores.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if isNameChar(s[i]) {
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

func isNameChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// IsName reports whether a sanitised string is looked up as a name rather than a
// unique id.
func IsName(sanitized string) bool {
	return len(sanitized) <= MaxNameLength
}
