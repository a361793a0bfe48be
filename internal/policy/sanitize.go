package policy

import (
	"regexp"
	"strconv"
	"strings"
)

var safeIdentifierRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// SanitizeLiteral transforms a raw string into a token safe to interpolate
// into generated SQL text. Every interpolation path in the query templater
// goes through this rule; it is total and deterministic.
//
//   - empty/blank input yields the literal NULL
//   - input that parses entirely as an integer is emitted bare, unquoted
//   - anything else has embedded single quotes doubled, characters outside
//     [A-Za-z0-9 .,;:@-] stripped, and is wrapped in single quotes
func SanitizeLiteral(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "NULL"
	}
	if _, err := strconv.Atoi(trimmed); err == nil {
		return trimmed
	}

	var b strings.Builder
	b.Grow(len(raw) + 2)
	b.WriteByte('\'')
	for _, r := range raw {
		switch {
		case r == '\'':
			b.WriteString("''")
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '.', r == ',', r == ';', r == ':', r == '@', r == '-':
			b.WriteRune(r)
		}
		// everything else is stripped
	}
	b.WriteByte('\'')
	return b.String()
}

// SanitizeProcedureParam validates a value bound as a stored-procedure
// parameter. The value is passed through unmodified when it matches the safe
// identifier pattern ^[A-Za-z0-9_-]+$; blank or non-matching input falls
// back to "0".
func SanitizeProcedureParam(raw string) string {
	if strings.TrimSpace(raw) == "" || !safeIdentifierRE.MatchString(raw) {
		return "0"
	}
	return raw
}
