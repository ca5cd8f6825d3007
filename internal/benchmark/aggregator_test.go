package benchmark

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifadr/engagemeter/internal/types"
)

func samplePosts() []types.Post {
	return []types.Post{
		{Platform: "Twitter", DayOfWeek: "Monday", Language: "en", EngagementRate: 0.4, ToxicityScore: 0.1, SharesCount: 10, CommentsCount: 5, Impressions: 1000},
		{Platform: "Twitter", DayOfWeek: "Monday", Language: "en", EngagementRate: 0.6, ToxicityScore: 0.3, SharesCount: 20, CommentsCount: 15, Impressions: 3000},
		{Platform: "Twitter", DayOfWeek: "Friday", Language: "id", EngagementRate: 0.2, ToxicityScore: 0.2, SharesCount: 6, CommentsCount: 4, Impressions: 2000},
		{Platform: "Instagram", DayOfWeek: "Tuesday", Language: "en", EngagementRate: 0.9, ToxicityScore: 0.05, SharesCount: 40, CommentsCount: 30, Impressions: 8000},
	}
}

func TestComputePlatformStats(t *testing.T) {
	store := Compute(samplePosts(), nil)

	twitter, ok := store.PlatformStats("Twitter")
	require.True(t, ok)
	assert.InDelta(t, 0.4, twitter.AvgEngagement, 1e-9)
	assert.InDelta(t, 0.2, twitter.AvgToxicity, 1e-9)
	assert.Equal(t, "Monday", twitter.TopDay)

	insta, ok := store.PlatformStats("Instagram")
	require.True(t, ok)
	assert.InDelta(t, 0.9, insta.AvgEngagement, 1e-9)

	_, ok = store.PlatformStats("TikTok")
	assert.False(t, ok)

	assert.Len(t, store.AllPlatforms(), 2)
}

func TestComputeDayAndLanguageLookups(t *testing.T) {
	store := Compute(samplePosts(), nil)

	assert.InDelta(t, 0.5, store.DayEngagement("Twitter", "Monday", 0), 1e-9)
	assert.InDelta(t, 0.2, store.DayEngagement("Twitter", "Friday", 0), 1e-9)
	assert.Equal(t, 0.33, store.DayEngagement("Twitter", "Sunday", 0.33))

	assert.InDelta(t, 0.5, store.LanguageEngagement("Twitter", "en", 0), 1e-9)
	assert.Equal(t, 0.25, store.LanguageEngagement("Twitter", "fr", 0.25))
}

func TestComputeKeywordMeans(t *testing.T) {
	posts := samplePosts()
	rows := []types.TagRow{
		{Token: "sale", Post: &posts[0]},
		{Token: "sale", Post: &posts[1]},
		{Token: "deal", Post: &posts[3]},
		{Token: "", Post: &posts[2]},
	}

	store := Compute(posts, rows)

	assert.InDelta(t, 0.5, store.KeywordEngagement("sale", 0), 1e-9)
	assert.InDelta(t, 0.9, store.KeywordEngagement("deal", 0), 1e-9)
	assert.Equal(t, 0.0, store.KeywordEngagement("", 0))
	assert.Equal(t, 0.1, store.KeywordEngagement("unknown", 0.1))
}

func TestComputeGoldenCombo(t *testing.T) {
	posts := []types.Post{
		{Platform: "Instagram", DayOfWeek: "Monday", Language: "en", EngagementRate: 0.9},
		{Platform: "Twitter", DayOfWeek: "Friday", Language: "id", EngagementRate: 0.3},
		{Platform: "Facebook", DayOfWeek: "Sunday", Language: "fr", EngagementRate: 0.5},
	}

	store := Compute(posts, nil)

	golden := store.Golden()
	require.NotNil(t, golden)
	assert.Equal(t, "Instagram", golden.Platform)
	assert.Equal(t, "Monday", golden.Day)
	assert.Equal(t, "en", golden.Language)
	assert.InDelta(t, 0.9, golden.AvgEngagement, 1e-9)
}

func TestComputeGoldenComboEmptyDataset(t *testing.T) {
	store := Compute(nil, nil)
	assert.Nil(t, store.Golden())
}

func TestComputeSkipsNaNObservations(t *testing.T) {
	posts := []types.Post{
		{Platform: "Twitter", DayOfWeek: "Monday", Language: "en", EngagementRate: 0.4, ToxicityScore: math.NaN()},
		{Platform: "Twitter", DayOfWeek: "Monday", Language: "en", EngagementRate: math.NaN(), ToxicityScore: 0.3},
	}

	store := Compute(posts, nil)

	twitter, ok := store.PlatformStats("Twitter")
	require.True(t, ok)
	assert.InDelta(t, 0.4, twitter.AvgEngagement, 1e-9)
	assert.InDelta(t, 0.3, twitter.AvgToxicity, 1e-9)
}

func TestModalValueTieBreak(t *testing.T) {
	// Monday and Friday both appear twice; first-encountered wins
	assert.Equal(t, "Monday", modalValue([]string{"Monday", "Friday", "Friday", "Monday"}))
	assert.Equal(t, "Friday", modalValue([]string{"Friday", "Monday", "Monday", "Friday"}))
	assert.Equal(t, "", modalValue(nil))
}

func TestComputeGlobals(t *testing.T) {
	globals := ComputeGlobals(samplePosts())

	assert.InDelta(t, 0.525, globals.AvgEngagement, 1e-9)
	assert.InDelta(t, 0.1625, globals.AvgToxicity, 1e-9)
	assert.InDelta(t, 19, globals.AvgShares, 1e-9)
	assert.InDelta(t, 13.5, globals.AvgComments, 1e-9)
	assert.InDelta(t, 3500, globals.AvgImpressions, 1e-9)
	assert.Equal(t, "Monday", globals.TopDay)
}

func TestComputeGlobalsEmpty(t *testing.T) {
	globals := ComputeGlobals(nil)
	assert.Equal(t, GlobalStats{}, globals)
}

func TestComputeGlobalsSkipsNaN(t *testing.T) {
	posts := []types.Post{
		{Platform: "Twitter", DayOfWeek: "Monday", EngagementRate: 0.5, SharesCount: math.NaN()},
		{Platform: "Twitter", DayOfWeek: "Monday", EngagementRate: 0.7, SharesCount: 10},
	}

	globals := ComputeGlobals(posts)
	assert.InDelta(t, 0.6, globals.AvgEngagement, 1e-9)
	assert.InDelta(t, 10, globals.AvgShares, 1e-9)
}
