package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifadr/engagemeter/internal/errors"
	"github.com/hanifadr/engagemeter/internal/types"
)

func trainingPosts() []types.Post {
	return []types.Post{
		{DayOfWeek: "Monday", Language: "en", Platform: "Twitter", Keywords: "sale,deal", Hashtags: "promo", CampaignName: "Summer",
			LikesCount: 100, SharesCount: 20, CommentsCount: 10, ToxicityScore: 0.1, Impressions: 2000, EngagementRate: 0.4, EmotionType: "Happy"},
		{DayOfWeek: "Monday", Language: "en", Platform: "Twitter", Keywords: "sale", Hashtags: "promo", CampaignName: "Summer",
			LikesCount: 120, SharesCount: 25, CommentsCount: 12, ToxicityScore: 0.15, Impressions: 2500, EngagementRate: 0.5, EmotionType: "Happy"},
		{DayOfWeek: "Friday", Language: "id", Platform: "Instagram", Keywords: "fashion", Hashtags: "ootd", CampaignName: "Launch",
			LikesCount: 300, SharesCount: 60, CommentsCount: 40, ToxicityScore: 0.05, Impressions: 9000, EngagementRate: 1.2, EmotionType: "Happy"},
		{DayOfWeek: "Friday", Language: "id", Platform: "Instagram", Keywords: "fashion", Hashtags: "ootd", CampaignName: "Launch",
			LikesCount: 280, SharesCount: 55, CommentsCount: 38, ToxicityScore: 0.07, Impressions: 8500, EngagementRate: 1.1, EmotionType: "Happy"},
		{DayOfWeek: "Sunday", Language: "fr", Platform: "Facebook", Keywords: "debat", Hashtags: "politique", CampaignName: "News",
			LikesCount: 50, SharesCount: 8, CommentsCount: 30, ToxicityScore: 0.7, Impressions: 4000, EngagementRate: 0.3, EmotionType: "Angry"},
		{DayOfWeek: "Sunday", Language: "fr", Platform: "Facebook", Keywords: "debat", Hashtags: "politique", CampaignName: "News",
			LikesCount: 40, SharesCount: 6, CommentsCount: 28, ToxicityScore: 0.8, Impressions: 3800, EngagementRate: 0.25, EmotionType: "Angry"},
	}
}

func smallConfig() ForestConfig {
	cfg := DefaultForestConfig()
	cfg.Trees = 10
	return cfg
}

func TestTrainAndPredict(t *testing.T) {
	model, err := Train(trainingPosts(), smallConfig())
	require.NoError(t, err)
	assert.Equal(t, 6, model.TrainingRows())

	metrics, emotion := model.Predict(types.ForecastRequest{
		DayOfWeek: "Friday", Language: "id", Platform: "Instagram",
		Keyword: "fashion", Hashtag: "ootd", Campaign: "Launch",
	})

	assert.Contains(t, []string{"Angry", "Happy"}, emotion)
	assert.Greater(t, metrics.Likes, 0.0)
	assert.Greater(t, metrics.EngagementRate, 0.0)
	assert.Greater(t, metrics.Impressions, 0.0)
}

func TestTrainDeterministic(t *testing.T) {
	req := types.ForecastRequest{
		DayOfWeek: "Monday", Language: "en", Platform: "Twitter",
		Keyword: "sale", Hashtag: "promo", Campaign: "Summer",
	}

	m1, err := Train(trainingPosts(), smallConfig())
	require.NoError(t, err)
	m2, err := Train(trainingPosts(), smallConfig())
	require.NoError(t, err)

	metrics1, emotion1 := m1.Predict(req)
	metrics2, emotion2 := m2.Predict(req)
	assert.Equal(t, metrics1, metrics2)
	assert.Equal(t, emotion1, emotion2)

	// A second Predict on the same model is also identical
	metrics3, emotion3 := m1.Predict(req)
	assert.Equal(t, metrics1, metrics3)
	assert.Equal(t, emotion1, emotion3)
}

func TestPredictUnknownCategories(t *testing.T) {
	model, err := Train(trainingPosts(), smallConfig())
	require.NoError(t, err)

	metrics, emotion := model.Predict(types.ForecastRequest{
		DayOfWeek: "Wednesday", Language: "de", Platform: "TikTok",
		Keyword: "unseen", Hashtag: "unseen", Campaign: "Unseen",
	})

	assert.NotEmpty(t, emotion)
	assert.False(t, math.IsNaN(metrics.EngagementRate))
}

func TestTrainNoUsableRows(t *testing.T) {
	posts := []types.Post{
		{DayOfWeek: "Monday", Language: "en", Platform: "Twitter", Keywords: "sale", Hashtags: "promo", CampaignName: "Summer",
			EngagementRate: 0.4}, // no emotion label
		{DayOfWeek: "Monday", Language: "", Platform: "Twitter", Keywords: "sale", Hashtags: "promo", CampaignName: "Summer",
			EngagementRate: 0.4, EmotionType: "Happy"}, // empty feature
	}

	_, err := Train(posts, smallConfig())
	require.Error(t, err)
	assert.True(t, errors.IsInsufficientData(err))
}

func TestTrainDropsNaNTargetRows(t *testing.T) {
	posts := trainingPosts()
	posts[0].LikesCount = math.NaN()

	model, err := Train(posts, smallConfig())
	require.NoError(t, err)
	assert.Equal(t, 5, model.TrainingRows())
}

func TestVocabularies(t *testing.T) {
	model, err := Train(trainingPosts(), smallConfig())
	require.NoError(t, err)

	vocabs := model.Vocabularies()
	require.Len(t, vocabs, len(FeatureColumns))

	assert.Equal(t, []string{"Friday", "Monday", "Sunday"}, vocabs["day_of_week"])
	assert.Equal(t, []string{"Facebook", "Instagram", "Twitter"}, vocabs["platform"])
	assert.Equal(t, []string{"en", "fr", "id"}, vocabs["language"])
	// Model features use the first comma-delimited token only
	assert.Equal(t, []string{"debat", "fashion", "sale"}, vocabs["keyword_model"])
	assert.Equal(t, []string{"ootd", "politique", "promo"}, vocabs["hashtag_model"])
}
