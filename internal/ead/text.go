package ead

import (
	"fmt"
	"unicode/utf8"
)

// checkText rejects values that cannot appear unchanged in an XML 1.0
// document: invalid UTF-8 and runes outside the Char production.
func checkText(field string, pos int, identifier, value string) error {
	if validXMLText(value) {
		return nil
	}
	return &ValidationError{
		Field:      field,
		Item:       pos,
		Identifier: identifier,
		Message:    fmt.Sprintf("%s %q contains characters XML cannot represent", field, value),
		Err:        ErrInvalidCharacter,
	}
}

func validXMLText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return false
		}
	}
	return true
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
