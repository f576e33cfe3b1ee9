package common

import (
	"go/token"
	"strings"
	"unicode"
)

// UnknownStr is the display name used for out-of-range enum values.
const UnknownStr = "unknown"

// LowerFirst lowercases the first rune of s: "CustomerType" -> "customerType".
func LowerFirst(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])

	return string(runes)
}

// SnakeCase converts an identifier to snake_case: "HTTPStatus" -> "http_status".
func SnakeCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}

	return strings.Join(words, "_")
}

// IsIdent reports whether s is a valid, non-keyword Go identifier.
func IsIdent(s string) bool {
	return token.IsIdentifier(s)
}

// IsIdentRune reports whether r may appear in a Go identifier.
func IsIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// splitWords splits a string into words (handles camelCase, PascalCase, snake_case).
func splitWords(s string) []string {
	var words []string
	var current []rune

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}

			continue
		}

		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				if len(current) > 0 {
					words = append(words, string(current))
					current = nil
				}
			}
		}

		current = append(current, r)
	}

	if len(current) > 0 {
		words = append(words, string(current))
	}

	return words
}
