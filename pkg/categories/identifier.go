package categories

import "strings"

// IdentifierLength is the length of a content identifier folder name.
const IdentifierLength = 32

// IsIdentifier reports whether name is a content identifier: exactly 32
// hexadecimal characters, in any case.
func IsIdentifier(name string) bool {
	if len(name) != IdentifierLength {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// NormalizeIdentifier returns the comparison form of an identifier.
func NormalizeIdentifier(name string) string {
	return strings.ToLower(name)
}

// SameIdentifier reports whether a and b denote the same content.
func SameIdentifier(a, b string) bool {
	return IsIdentifier(a) && IsIdentifier(b) && NormalizeIdentifier(a) == NormalizeIdentifier(b)
}
