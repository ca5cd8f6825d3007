package langmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "English 🇬🇧", DisplayName("en"))
	assert.Equal(t, "Indonesian 🇮🇩", DisplayName("id"))
	// Unknown codes pass through
	assert.Equal(t, "xx", DisplayName("xx"))
	assert.Equal(t, "", DisplayName(""))
}

func TestCode(t *testing.T) {
	assert.Equal(t, "en", Code("English 🇬🇧"))
	assert.Equal(t, "fr", Code("French 🇫🇷"))
	// Raw codes and unknown values pass through
	assert.Equal(t, "en", Code("en"))
	assert.Equal(t, "Klingon", Code("Klingon"))
}

func TestRoundTrip(t *testing.T) {
	for code := range All() {
		assert.Equal(t, code, Code(DisplayName(code)))
	}
}

func TestAllReturnsCopy(t *testing.T) {
	m := All()
	assert.Len(t, m, 13)

	m["en"] = "tampered"
	assert.Equal(t, "English 🇬🇧", DisplayName("en"))
}
