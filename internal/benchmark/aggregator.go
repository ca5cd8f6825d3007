package benchmark

import (
	"log/slog"
	"math"

	"github.com/hanifadr/engagemeter/internal/types"
)

// meanAccumulator tracks a running mean per key while preserving
// first-encounter order for deterministic tie-breaking
type meanAccumulator[K comparable] struct {
	sums   map[K]float64
	counts map[K]int
	order  []K
}

func newMeanAccumulator[K comparable]() *meanAccumulator[K] {
	return &meanAccumulator[K]{
		sums:   make(map[K]float64),
		counts: make(map[K]int),
	}
}

// add folds one observation into the running mean. NaN observations are
// skipped so missing numeric cells do not poison group means.
func (a *meanAccumulator[K]) add(key K, value float64) {
	if math.IsNaN(value) {
		return
	}
	if _, seen := a.counts[key]; !seen {
		a.order = append(a.order, key)
	}
	a.sums[key] += value
	a.counts[key]++
}

func (a *meanAccumulator[K]) means() map[K]float64 {
	out := make(map[K]float64, len(a.sums))
	for key, sum := range a.sums {
		out[key] = sum / float64(a.counts[key])
	}
	return out
}

// best returns the key with the highest mean. Ties resolve to the
// first-encountered key so results are stable for a fixed input.
func (a *meanAccumulator[K]) best() (K, float64, bool) {
	var bestKey K
	bestMean := 0.0
	found := false
	for _, key := range a.order {
		mean := a.sums[key] / float64(a.counts[key])
		if !found || mean > bestMean {
			bestKey, bestMean, found = key, mean, true
		}
	}
	return bestKey, bestMean, found
}

// modalValue returns the most frequent value in first-encounter order for
// equal counts
func modalValue(values []string) string {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	best := ""
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// Compute builds the benchmark store from the normalized dataset and the
// exploded keyword table. Inputs are never mutated.
func Compute(posts []types.Post, keywordRows []types.TagRow) *Store {
	store := &Store{
		platforms: make(map[string]PlatformStats),
		days:      make(map[PlatformDay]float64),
		languages: make(map[PlatformLanguage]float64),
		keywords:  make(map[string]float64),
	}

	// Per-platform means and modal day
	engagement := newMeanAccumulator[string]()
	toxicity := newMeanAccumulator[string]()
	daysByPlatform := make(map[string][]string)
	for _, post := range posts {
		engagement.add(post.Platform, post.EngagementRate)
		toxicity.add(post.Platform, post.ToxicityScore)
		daysByPlatform[post.Platform] = append(daysByPlatform[post.Platform], post.DayOfWeek)
	}
	toxicityMeans := toxicity.means()
	for platform, avgEng := range engagement.means() {
		store.platforms[platform] = PlatformStats{
			Platform:      platform,
			AvgEngagement: avgEng,
			AvgToxicity:   toxicityMeans[platform],
			TopDay:        modalValue(daysByPlatform[platform]),
		}
	}

	// Pairwise (platform, day) and (platform, language) engagement means
	dayAcc := newMeanAccumulator[PlatformDay]()
	langAcc := newMeanAccumulator[PlatformLanguage]()
	for _, post := range posts {
		dayAcc.add(PlatformDay{Platform: post.Platform, Day: post.DayOfWeek}, post.EngagementRate)
		langAcc.add(PlatformLanguage{Platform: post.Platform, Language: post.Language}, post.EngagementRate)
	}
	store.days = dayAcc.means()
	store.languages = langAcc.means()

	// Per-keyword means over ALL exploded tokens
	keywordAcc := newMeanAccumulator[string]()
	for _, row := range keywordRows {
		if row.Token == "" {
			continue
		}
		keywordAcc.add(row.Token, row.Post.EngagementRate)
	}
	store.keywords = keywordAcc.means()

	// Golden combination: tolerates partial failure; an empty dataset simply
	// yields no entry rather than failing the whole computation
	comboAcc := newMeanAccumulator[[3]string]()
	for _, post := range posts {
		comboAcc.add([3]string{post.Platform, post.DayOfWeek, post.Language}, post.EngagementRate)
	}
	if combo, mean, ok := comboAcc.best(); ok {
		store.golden = &GoldenCombo{
			Platform:      combo[0],
			Day:           combo[1],
			Language:      combo[2],
			AvgEngagement: mean,
		}
	} else {
		slog.Warn("Golden combination unavailable", "rows", len(posts))
	}

	slog.Info("Benchmarks computed",
		"platforms", len(store.platforms),
		"platform_days", len(store.days),
		"platform_languages", len(store.languages),
		"keywords", len(store.keywords),
		"golden_combo", store.golden != nil)

	return store
}

// mean averages the non-NaN values; an all-missing column averages to 0
func mean(values []float64) float64 {
	sum := 0.0
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ComputeGlobals derives the dataset-wide fallback metrics
func ComputeGlobals(posts []types.Post) GlobalStats {
	if len(posts) == 0 {
		return GlobalStats{}
	}

	engagement := make([]float64, 0, len(posts))
	toxicity := make([]float64, 0, len(posts))
	shares := make([]float64, 0, len(posts))
	comments := make([]float64, 0, len(posts))
	impressions := make([]float64, 0, len(posts))
	days := make([]string, 0, len(posts))
	for _, post := range posts {
		engagement = append(engagement, post.EngagementRate)
		toxicity = append(toxicity, post.ToxicityScore)
		shares = append(shares, post.SharesCount)
		comments = append(comments, post.CommentsCount)
		impressions = append(impressions, post.Impressions)
		days = append(days, post.DayOfWeek)
	}

	return GlobalStats{
		AvgEngagement:  mean(engagement),
		AvgToxicity:    mean(toxicity),
		AvgShares:      mean(shares),
		AvgComments:    mean(comments),
		AvgImpressions: mean(impressions),
		TopDay:         modalValue(days),
	}
}
