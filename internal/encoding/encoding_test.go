package encoding

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestToUTF8_ValidInputUnchanged(t *testing.T) {
	assert.Equal(t, "plain ascii", ToUTF8("plain ascii"))
	assert.Equal(t, "accents: café", ToUTF8("accents: café"))
}

func TestToUTF8_Latin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 but invalid as a standalone UTF-8 byte.
	input := "caf\xe9"
	out := ToUTF8(input)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "café", out)
}

func TestToUTF8_ArbitraryBytes(t *testing.T) {
	out := ToUTF8("\xff\xfe\x80")
	assert.True(t, utf8.ValidString(out))
}
