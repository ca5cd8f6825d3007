// Package langmap translates between the raw 2-letter language codes the
// model operates on and the human-readable display names a UI shows. The
// translation lives entirely at the presentation boundary.
package langmap

// displayNames maps ISO-like codes to "name + flag" display strings
var displayNames = map[string]string{
	"pt": "Portuguese 🇵🇹",
	"ru": "Russian 🇷🇺",
	"ar": "Arabic 🇸🇦",
	"ja": "Japanese 🇯🇵",
	"fr": "French 🇫🇷",
	"en": "English 🇬🇧",
	"es": "Spanish 🇪🇸",
	"de": "German 🇩🇪",
	"zh": "Chinese 🇨🇳",
	"hi": "Hindi 🇮🇳",
	"ko": "Korean 🇰🇷",
	"id": "Indonesian 🇮🇩",
	"it": "Italian 🇮🇹",
}

var codes = func() map[string]string {
	m := make(map[string]string, len(displayNames))
	for code, display := range displayNames {
		m[display] = code
	}
	return m
}()

// DisplayName returns the display string for a code; unknown codes pass
// through unchanged
func DisplayName(code string) string {
	if display, ok := displayNames[code]; ok {
		return display
	}
	return code
}

// Code resolves a display string back to its raw code; raw codes and unknown
// values pass through unchanged, so callers may feed either form
func Code(display string) string {
	if code, ok := codes[display]; ok {
		return code
	}
	return display
}

// All returns a copy of the full code-to-display mapping
func All() map[string]string {
	out := make(map[string]string, len(displayNames))
	for code, display := range displayNames {
		out[code] = display
	}
	return out
}
