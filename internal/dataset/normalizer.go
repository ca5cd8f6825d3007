package dataset

import (
	"strings"

	"github.com/hanifadr/engagemeter/internal/types"
)

// Normalized holds the canonical dataset plus the exploded hashtag/keyword
// tables. All three are produced together; consumers share them read-only.
type Normalized struct {
	Posts       []types.Post
	HashtagRows []types.TagRow
	KeywordRows []types.TagRow
}

// NormalizeRate rescales a percentage-encoded value into the canonical [0,1]
// range. Values above 2 are assumed to be percentages and divided by 100;
// legitimate fractional values never exceed 2, so anything at or below is
// kept as-is. Idempotent: a rescaled value stays below 2.
func NormalizeRate(v float64) float64 {
	if v > 2 {
		return v / 100
	}
	return v
}

// SplitTags splits a comma-delimited multi-value field into trimmed,
// lower-cased tokens. Empty tokens from consecutive delimiters are dropped.
func SplitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(raw, ",") {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// FirstToken returns the token preceding the first delimiter, trimmed and
// lower-cased. This is the single-valued model feature, distinct from the
// exploded rows which carry every token.
func FirstToken(raw string) string {
	if raw == "" {
		return ""
	}
	first, _, _ := strings.Cut(raw, ",")
	return strings.ToLower(strings.TrimSpace(first))
}

// Normalize rescales the two rate columns and explodes hashtags and keywords
// into one-row-per-token tables. The input slice is not mutated.
func Normalize(raw []types.Post) *Normalized {
	posts := make([]types.Post, len(raw))
	copy(posts, raw)

	for i := range posts {
		posts[i].EngagementRate = NormalizeRate(posts[i].EngagementRate)
		posts[i].ToxicityScore = NormalizeRate(posts[i].ToxicityScore)
	}

	norm := &Normalized{Posts: posts}
	for i := range posts {
		post := &norm.Posts[i]
		for _, token := range SplitTags(post.Hashtags) {
			norm.HashtagRows = append(norm.HashtagRows, types.TagRow{Token: token, Post: post})
		}
		for _, token := range SplitTags(post.Keywords) {
			norm.KeywordRows = append(norm.KeywordRows, types.TagRow{Token: token, Post: post})
		}
	}

	return norm
}
