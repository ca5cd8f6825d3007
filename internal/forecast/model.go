package forecast

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/hanifadr/engagemeter/internal/dataset"
	"github.com/hanifadr/engagemeter/internal/errors"
	"github.com/hanifadr/engagemeter/internal/types"
)

// FeatureColumns are the six categorical predictors, in encoding order
var FeatureColumns = []string{
	"day_of_week", "language", "platform", "keyword_model", "hashtag_model", "campaign_name",
}

// Model is the fitted dual estimator: a multi-output regressor for the six
// numeric metrics and a classifier for the emotion label, sharing one one-hot
// encoding. Immutable once trained; safe for concurrent Predict calls.
type Model struct {
	encoder    *oneHotEncoder
	regressor  *regressionForest
	classifier *classificationForest
	emotions   []string // sorted; class index -> label
	rows       int
}

// Train derives the model features, drops incomplete rows and fits both
// estimators. Returns InsufficientTrainingData when no fully-observed rows
// remain.
func Train(posts []types.Post, cfg ForestConfig) (*Model, error) {
	start := time.Now()

	var featureRows [][]string
	var targetRows [][]float64
	var emotionLabels []string

	for i := range posts {
		post := &posts[i]
		row := []string{
			post.DayOfWeek,
			post.Language,
			post.Platform,
			dataset.FirstToken(post.Keywords),
			dataset.FirstToken(post.Hashtags),
			post.CampaignName,
		}

		complete := post.EmotionType != ""
		for _, v := range row {
			if v == "" {
				complete = false
			}
		}

		// Canonical target order: likes, shares, comments, toxicity,
		// impressions, engagement rate.
		targets := []float64{
			post.LikesCount,
			post.SharesCount,
			post.CommentsCount,
			post.ToxicityScore,
			post.Impressions,
			post.EngagementRate,
		}
		for _, v := range targets {
			if math.IsNaN(v) {
				complete = false
			}
		}

		if !complete {
			continue
		}

		featureRows = append(featureRows, row)
		targetRows = append(targetRows, targets)
		emotionLabels = append(emotionLabels, post.EmotionType)
	}

	if len(featureRows) == 0 {
		return nil, errors.NewInsufficientDataError(
			"no fully-observed rows remain after dropping incomplete posts")
	}

	encoder := newOneHotEncoder(FeatureColumns)
	encoder.fit(featureRows)

	encoded := make([][]float64, len(featureRows))
	for i, row := range featureRows {
		encoded[i] = encoder.transform(row)
	}

	emotionSet := make(map[string]int)
	for _, label := range emotionLabels {
		emotionSet[label] = 0
	}
	emotions := make([]string, 0, len(emotionSet))
	for label := range emotionSet {
		emotions = append(emotions, label)
	}
	sort.Strings(emotions)
	for class, label := range emotions {
		emotionSet[label] = class
	}

	labels := make([]int, len(emotionLabels))
	for i, label := range emotionLabels {
		labels[i] = emotionSet[label]
	}

	model := &Model{
		encoder:    encoder,
		regressor:  fitRegressionForest(encoded, targetRows, cfg),
		classifier: fitClassificationForest(encoded, labels, len(emotions), cfg),
		emotions:   emotions,
		rows:       len(featureRows),
	}

	slog.Info("Dual model trained",
		"rows", model.rows,
		"features", encoder.width,
		"emotions", len(emotions),
		"trees", cfg.Trees,
		"duration_ms", time.Since(start).Milliseconds())

	return model, nil
}

// Predict forecasts the six metrics and the emotion label for one record.
// Category values outside the training vocabulary are accepted; they simply
// contribute no signal.
func (m *Model) Predict(req types.ForecastRequest) (types.MetricVector, string) {
	features := m.encoder.transform([]string{
		req.DayOfWeek,
		req.Language,
		req.Platform,
		req.Keyword,
		req.Hashtag,
		req.Campaign,
	})

	reg := m.regressor.predict(features)
	emotion := m.emotions[m.classifier.predict(features)]

	return types.MetricVector{
		Likes:          reg[0],
		Shares:         reg[1],
		Comments:       reg[2],
		Toxicity:       reg[3],
		Impressions:    reg[4],
		EngagementRate: reg[5],
	}, emotion
}

// Vocabularies returns, per predictor column, the sorted set of values
// observed during training. Used to populate selection inputs and to flag
// out-of-vocabulary requests at the boundary.
func (m *Model) Vocabularies() map[string][]string {
	out := make(map[string][]string, len(FeatureColumns))
	for col, name := range FeatureColumns {
		out[name] = m.encoder.vocabulary(col)
	}
	return out
}

// TrainingRows reports how many fully-observed rows the model was fitted on
func (m *Model) TrainingRows() int {
	return m.rows
}
