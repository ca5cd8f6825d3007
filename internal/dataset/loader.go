package dataset

import (
	"encoding/csv"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/hanifadr/engagemeter/internal/errors"
	"github.com/hanifadr/engagemeter/internal/types"
)

// Column names the loader requires in the CSV header. The schema is an
// external contract; extra columns are ignored.
var requiredColumns = []string{
	"day_of_week", "platform", "language", "text_content",
	"hashtags", "keywords", "campaign_name",
	"likes_count", "shares_count", "comments_count",
	"impressions", "toxicity_score", "engagement_rate", "emotion_type",
}

// Load reads the engagement dataset from a CSV file. A missing file or a
// header without the required columns is fatal (DataUnavailable); individual
// rows with unparsable numerics are skipped with a warning.
func Load(path string) ([]types.Post, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataUnavailableError(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewDataUnavailableError(path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, errors.NewDataUnavailableError(path,
				errors.NewInternalError("missing required column: "+col, nil))
		}
	}

	var posts []types.Post
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		post := types.Post{
			DayOfWeek:    field("day_of_week"),
			Platform:     field("platform"),
			Language:     field("language"),
			TextContent:  field("text_content"),
			Hashtags:     field("hashtags"),
			Keywords:     field("keywords"),
			CampaignName: field("campaign_name"),
			EmotionType:  field("emotion_type"),
		}

		// Empty numeric cells become NaN; downstream aggregation skips
		// them per-column and model training drops the whole row.
		numericOK := true
		parse := func(col string, dst *float64) {
			raw := field(col)
			if raw == "" {
				*dst = math.NaN()
				return
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				numericOK = false
				return
			}
			*dst = v
		}

		parse("likes_count", &post.LikesCount)
		parse("shares_count", &post.SharesCount)
		parse("comments_count", &post.CommentsCount)
		parse("impressions", &post.Impressions)
		parse("toxicity_score", &post.ToxicityScore)
		parse("engagement_rate", &post.EngagementRate)

		if !numericOK {
			skipped++
			continue
		}

		posts = append(posts, post)
	}

	if skipped > 0 {
		slog.Warn("Skipped unparsable dataset rows", "path", path, "skipped", skipped)
	}
	if len(posts) == 0 {
		return nil, errors.NewDataUnavailableError(path,
			errors.NewInternalError("dataset contains no usable rows", nil))
	}

	slog.Info("Dataset loaded", "path", path, "rows", len(posts))
	return posts, nil
}
