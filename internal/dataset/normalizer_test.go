package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifadr/engagemeter/internal/types"
)

func TestNormalizeRate(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "keeps fractional value",
			input:    0.45,
			expected: 0.45,
		},
		{
			name:     "keeps boundary value of 2",
			input:    2.0,
			expected: 2.0,
		},
		{
			name:     "rescales percentage value",
			input:    45,
			expected: 0.45,
		},
		{
			name:     "rescales raw 150 to 1.5 regardless of domain plausibility",
			input:    150,
			expected: 1.5,
		},
		{
			name:     "keeps zero",
			input:    0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeRate(tt.input))
		})
	}
}

func TestNormalizeRateIdempotence(t *testing.T) {
	values := []float64{0, 0.01, 0.5, 1.0, 1.99, 2.0, 2.01, 45, 100, 150, 12345}

	for _, v := range values {
		once := NormalizeRate(v)
		twice := NormalizeRate(once)
		assert.Equal(t, once, twice, "normalize(normalize(%v)) must equal normalize(%v)", v, v)
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "splits trims and lower-cases",
			input:    "A, b ,C",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "drops empty tokens from consecutive delimiters",
			input:    "promo,,sale, ,deal",
			expected: []string{"promo", "sale", "deal"},
		},
		{
			name:     "empty field yields no tokens",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace-only field yields no tokens",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "single token",
			input:    " Fashion ",
			expected: []string{"fashion"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitTags(tt.input))
		})
	}
}

func TestFirstToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "first of several",
			input:    "Sale, deal, discount",
			expected: "sale",
		},
		{
			name:     "single value",
			input:    " Promo ",
			expected: "promo",
		},
		{
			name:     "empty field",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FirstToken(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := []types.Post{
		{
			Platform:       "Twitter",
			DayOfWeek:      "Monday",
			Language:       "en",
			Hashtags:       "Promo, SALE",
			Keywords:       "sale,deal",
			EngagementRate: 150,
			ToxicityScore:  0.3,
		},
		{
			Platform:       "Instagram",
			DayOfWeek:      "Tuesday",
			Language:       "id",
			Hashtags:       "",
			Keywords:       "fashion",
			EngagementRate: 0.8,
			ToxicityScore:  55,
		},
	}

	norm := Normalize(raw)

	// Rates rescaled in the copy, input untouched
	assert.Equal(t, 1.5, norm.Posts[0].EngagementRate)
	assert.Equal(t, 0.3, norm.Posts[0].ToxicityScore)
	assert.Equal(t, 0.8, norm.Posts[1].EngagementRate)
	assert.Equal(t, 0.55, norm.Posts[1].ToxicityScore)
	assert.Equal(t, float64(150), raw[0].EngagementRate)

	// Exploded tables: one row per token, inheriting the post by reference
	require.Len(t, norm.HashtagRows, 2)
	assert.Equal(t, "promo", norm.HashtagRows[0].Token)
	assert.Equal(t, "sale", norm.HashtagRows[1].Token)
	assert.Same(t, &norm.Posts[0], norm.HashtagRows[0].Post)

	require.Len(t, norm.KeywordRows, 3)
	assert.Equal(t, "sale", norm.KeywordRows[0].Token)
	assert.Equal(t, "deal", norm.KeywordRows[1].Token)
	assert.Equal(t, "fashion", norm.KeywordRows[2].Token)
	assert.Same(t, &norm.Posts[1], norm.KeywordRows[2].Post)
}
