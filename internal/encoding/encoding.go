// Package encoding provides UTF-8 safety helpers for parsed document text.
package encoding

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ToUTF8 returns text converted to valid UTF-8. Input that is already
// valid is returned unchanged. Invalid input is decoded as Latin-1,
// which cannot fail and maps every byte to a valid rune; this loses
// fidelity for multi-byte legacy encodings but never corrupts length
// accounting downstream.
func ToUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	converted, _, err := transform.String(charmap.ISO8859_1.NewDecoder(), text)
	if err != nil {
		// Last resort: strip invalid sequences.
		return string([]rune(text))
	}
	return converted
}
