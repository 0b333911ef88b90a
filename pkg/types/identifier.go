package types

import (
	"strings"
	"unicode"
)

// IsIdentifier returns true if the string is a valid identifier
// (starts with a letter or underscore, contains only letters, digits and underscores)
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

// IsQualifiedName returns true if the string is two identifiers joined by a
// period, e.g. Sql.ExecuteQuery
func IsQualifiedName(s string) bool {
	toolkit, name, ok := strings.Cut(s, ".")
	return ok && IsIdentifier(toolkit) && IsIdentifier(name)
}
