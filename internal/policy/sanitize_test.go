package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "NULL"},
		{"blank", "   ", "NULL"},
		{"integer passes bare", "42", "42"},
		{"negative integer", "-7", "-7"},
		{"integer with spaces", " 42 ", "42"},
		{"plain string quoted", "ALFKI", "'ALFKI'"},
		{"embedded quote doubled", "O'Brien", "'O''Brien'"},
		{"injection characters stripped", "1; DROP TABLE x--", "'1; DROP TABLE x--'"},
		{"disallowed characters stripped", `a"b$c(d)e`, "'abcde'"},
		{"allowed punctuation kept", "a.b,c;d:e@f-g", "'a.b,c;d:e@f-g'"},
		{"quote only", "'", "''''"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeLiteral(tt.in))
		})
	}
}

func TestSanitizeLiteral_IdempotentOnNumerics(t *testing.T) {
	assert.Equal(t, "42", SanitizeLiteral(SanitizeLiteral("42")))
}

func TestSanitizeLiteral_NoUnescapedQuotes(t *testing.T) {
	out := SanitizeLiteral("O'Brien")
	// Strip the wrapping quotes; every interior quote must appear doubled.
	inner := out[1 : len(out)-1]
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\'' {
			if i+1 >= len(inner) || inner[i+1] != '\'' {
				t.Fatalf("unescaped quote in %q", out)
			}
			i++
		}
	}
}

func TestSanitizeProcedureParam(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain identifier", "abc-123", "abc-123"},
		{"numeric", "11", "11"},
		{"underscore", "user_7", "user_7"},
		{"empty falls back", "", "0"},
		{"blank falls back", "  ", "0"},
		{"injection falls back", "; DROP TABLE x", "0"},
		{"spaces fall back", "a b", "0"},
		{"quote falls back", "a'b", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeProcedureParam(tt.in))
		})
	}
}
