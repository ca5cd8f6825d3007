// Package rankings builds the descriptive ranking boards over historical
// posts: counts by day and language, the top posts by engagement and likes,
// and the most used hashtags and keywords. Each board carries a short
// generated summary so a rendering layer can show it verbatim.
package rankings

import (
	"fmt"
	"sort"

	"github.com/hanifadr/engagemeter/internal/dataset"
	"github.com/hanifadr/engagemeter/internal/langmap"
	"github.com/hanifadr/engagemeter/internal/types"
)

const topN = 10

// CountRow is one bar of a frequency board
type CountRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PostRow is one entry of a top-posts board
type PostRow struct {
	Text     string  `json:"text"`
	Platform string  `json:"platform"`
	Value    float64 `json:"value"`
}

// Board pairs ranked rows with a one-line quick analysis
type Board[R any] struct {
	Rows    []R    `json:"rows"`
	Insight string `json:"insight,omitempty"`
}

// Boards holds all six ranking views
type Boards struct {
	DayCounts      Board[CountRow] `json:"day_counts"`
	TopEngagement  Board[PostRow]  `json:"top_engagement"`
	TopLikes       Board[PostRow]  `json:"top_likes"`
	LanguageCounts Board[CountRow] `json:"language_counts"`
	TopHashtags    Board[CountRow] `json:"top_hashtags"`
	TopKeywords    Board[CountRow] `json:"top_keywords"`
}

// Overview is the dataset headline row: size, modal platform, language
// spread and the most active day
type Overview struct {
	TotalPosts    int    `json:"total_posts"`
	TopPlatform   string `json:"top_platform"`
	LanguageCount int    `json:"language_count"`
	TopDay        string `json:"top_day"`
}

// truncate shortens post text for display, mirroring a 60-character title
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= 60 {
		return text
	}
	return string(runes[:60]) + "..."
}

// countBoard ranks values by frequency, descending; ties keep
// first-encounter order so output is deterministic
func countBoard(values []string, limit int) []CountRow {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	rows := make([]CountRow, 0, len(order))
	for _, v := range order {
		rows = append(rows, CountRow{Label: v, Count: counts[v]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// topPosts ranks posts by the given metric, descending, keeping dataset
// order for equal values
func topPosts(posts []types.Post, metric func(types.Post) float64, limit int) []PostRow {
	idx := make([]int, len(posts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return metric(posts[idx[a]]) > metric(posts[idx[b]])
	})

	if len(idx) > limit {
		idx = idx[:limit]
	}

	rows := make([]PostRow, 0, len(idx))
	for _, i := range idx {
		rows = append(rows, PostRow{
			Text:     truncate(posts[i].TextContent),
			Platform: posts[i].Platform,
			Value:    metric(posts[i]),
		})
	}
	return rows
}

// Build computes every ranking board from the normalized dataset
func Build(norm *dataset.Normalized) *Boards {
	boards := &Boards{}

	days := make([]string, 0, len(norm.Posts))
	languages := make([]string, 0, len(norm.Posts))
	for _, post := range norm.Posts {
		days = append(days, post.DayOfWeek)
		languages = append(languages, post.Language)
	}

	boards.DayCounts.Rows = countBoard(days, 0)
	if rows := boards.DayCounts.Rows; len(rows) > 0 {
		busiest := rows[0]
		quietest := rows[len(rows)-1]
		boards.DayCounts.Insight = fmt.Sprintf(
			"%s is the busiest day (%d posts): the audience is most active, but competition peaks too. "+
				"If results lag on it, try a quieter day such as %s.",
			busiest.Label, busiest.Count, quietest.Label)
	}

	boards.TopEngagement.Rows = topPosts(norm.Posts, func(p types.Post) float64 { return p.EngagementRate }, topN)
	if rows := boards.TopEngagement.Rows; len(rows) > 0 {
		boards.TopEngagement.Insight = fmt.Sprintf(
			"The %s post at %.2f%% engagement is your benchmark. Study its format, tone and topic and reuse them as a template.",
			rows[0].Platform, rows[0].Value*100)
	}

	boards.TopLikes.Rows = topPosts(norm.Posts, func(p types.Post) float64 { return p.LikesCount }, topN)
	if rows := boards.TopLikes.Rows; len(rows) > 0 {
		boards.TopLikes.Insight = fmt.Sprintf(
			"The %s post with %d likes is your virality champion - a format worth reusing for brand-awareness campaigns.",
			rows[0].Platform, int(rows[0].Value))
	}

	boards.LanguageCounts.Rows = countBoard(languages, 0)
	for i, row := range boards.LanguageCounts.Rows {
		boards.LanguageCounts.Rows[i].Label = langmap.DisplayName(row.Label)
	}
	if rows := boards.LanguageCounts.Rows; len(rows) > 1 {
		boards.LanguageCounts.Insight = fmt.Sprintf(
			"%s is your primary audience (%d posts). Consider translating top content into %s to reach the next segment.",
			rows[0].Label, rows[0].Count, rows[1].Label)
	}

	hashtags := make([]string, 0, len(norm.HashtagRows))
	for _, row := range norm.HashtagRows {
		hashtags = append(hashtags, row.Token)
	}
	boards.TopHashtags.Rows = countBoard(hashtags, topN)
	if rows := boards.TopHashtags.Rows; len(rows) > 1 {
		boards.TopHashtags.Insight = fmt.Sprintf(
			"#%s is your central theme (%d uses). To avoid fatigue, pair it with a niche tag such as #%s.",
			rows[0].Label, rows[0].Count, rows[1].Label)
	}

	keywords := make([]string, 0, len(norm.KeywordRows))
	for _, row := range norm.KeywordRows {
		keywords = append(keywords, row.Token)
	}
	boards.TopKeywords.Rows = countBoard(keywords, topN)
	if rows := boards.TopKeywords.Rows; len(rows) > 0 {
		boards.TopKeywords.Insight = fmt.Sprintf(
			"'%s' is the main focus of your content strategy (%d uses). Test it across platforms with the forecast endpoint.",
			rows[0].Label, rows[0].Count)
	}

	return boards
}

// BuildOverview computes the dataset headline stats
func BuildOverview(posts []types.Post) Overview {
	platforms := make([]string, 0, len(posts))
	days := make([]string, 0, len(posts))
	languageSet := make(map[string]struct{})
	for _, post := range posts {
		platforms = append(platforms, post.Platform)
		days = append(days, post.DayOfWeek)
		if post.Language != "" {
			languageSet[post.Language] = struct{}{}
		}
	}

	overview := Overview{
		TotalPosts:    len(posts),
		LanguageCount: len(languageSet),
	}
	if rows := countBoard(platforms, 1); len(rows) > 0 {
		overview.TopPlatform = rows[0].Label
	}
	if rows := countBoard(days, 1); len(rows) > 0 {
		overview.TopDay = rows[0].Label
	}
	return overview
}
