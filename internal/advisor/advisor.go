// Package advisor turns a raw forecast into qualitative, benchmark-aware
// suggestions. It is a pure function of its inputs: no mutation, no side
// effects, and missing benchmark entries always resolve through the supplied
// global fallbacks instead of failing.
package advisor

import (
	"fmt"

	"github.com/hanifadr/engagemeter/internal/benchmark"
	"github.com/hanifadr/engagemeter/internal/types"
)

// highRiskToxicity is the threshold above which a negative-leaning post is
// classified as provocative rather than merely off-tone
const highRiskToxicity = 0.6

// ruleContext bundles everything a rule may inspect, with platform-specific
// baselines already resolved against the global fallbacks
type ruleContext struct {
	pred    types.MetricVector
	emotion string
	req     types.ForecastRequest
	store   *benchmark.Store
	global  benchmark.GlobalStats

	platformAvgEngagement float64
	platformAvgToxicity   float64
	platformTopDay        string
}

// rule evaluates against the context and reports whether it fired. Rules are
// independent; several may fire for one forecast.
type rule func(ctx *ruleContext) (string, bool)

// orderedRules is the fixed evaluation order. The persona rule is first and
// mutually exclusive internally; the golden-combination footnote is always
// last.
var orderedRules = []rule{
	personaRule,
	engagementBandRule,
	weakestDayRule,
	keywordQualityRule,
	emotionToxicityRule,
	goldenComboRule,
}

// Advise evaluates the rule set in order and returns every advisory that fired
func Advise(pred types.MetricVector, emotion string, req types.ForecastRequest, store *benchmark.Store, global benchmark.GlobalStats) []string {
	ctx := &ruleContext{
		pred:    pred,
		emotion: emotion,
		req:     req,
		store:   store,
		global:  global,

		platformAvgEngagement: global.AvgEngagement,
		platformAvgToxicity:   global.AvgToxicity,
		platformTopDay:        global.TopDay,
	}

	if stats, ok := store.PlatformStats(req.Platform); ok {
		ctx.platformAvgEngagement = stats.AvgEngagement
		ctx.platformAvgToxicity = stats.AvgToxicity
		ctx.platformTopDay = stats.TopDay
	}

	var advisories []string
	for _, r := range orderedRules {
		if msg, fired := r(ctx); fired {
			advisories = append(advisories, msg)
		}
	}
	return advisories
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func isNegativeLeaning(emotion string) bool {
	switch emotion {
	case "Negative", "Angry", "Sad", "Fear":
		return true
	}
	return false
}

// personaRule classifies the intent/effect of the forecasted post. Exactly
// one branch fires; priority is strict, so a high-risk post stays high-risk
// even when its shares or comments would satisfy a later branch.
func personaRule(ctx *ruleContext) (string, bool) {
	switch {
	case ctx.pred.Toxicity > highRiskToxicity && (ctx.emotion == "Angry" || ctx.emotion == "Negative"):
		return fmt.Sprintf(
			"Identified intent: provocative/high-risk content. Emotion '%s' with toxicity %s is very high. "+
				"This will trigger reactions, but likely negative ones. Use only if deliberate (heated debate, criticism); the bad-buzz risk is high.",
			ctx.emotion, pct(ctx.pred.Toxicity)), true

	case ctx.pred.EngagementRate > ctx.platformAvgEngagement && ctx.pred.Shares > ctx.global.AvgShares*1.2:
		return "Identified intent: virality and reach. Predicted shares and engagement are both high; " +
			"this content has strong potential to reach new audiences. Well suited to awareness campaigns.", true

	case ctx.pred.EngagementRate > ctx.platformAvgEngagement && ctx.pred.Comments > ctx.global.AvgComments*1.2:
		return "Identified intent: community building. A high predicted comment count means this content sparks discussion. " +
			"Well suited to building community and collecting direct feedback from a loyal audience.", true

	case ctx.pred.Impressions > ctx.global.AvgImpressions*1.5 && ctx.pred.EngagementRate < ctx.platformAvgEngagement:
		return "Identified intent: broad reach, low pull. Warning: this content is predicted to be seen by many " +
			"(high impressions) but to hold few (low engagement) - the classic scroll-by. Sharpen the visual hook or the call to action.", true

	default:
		return "Identified intent: standard performance. This content is predicted to perform around baseline - " +
			"a safe post for keeping the brand consistent.", true
	}
}

// engagementBandRule compares predicted engagement to the platform mean with
// relative +/-10% thresholds
func engagementBandRule(ctx *ruleContext) (string, bool) {
	avg := ctx.platformAvgEngagement
	switch {
	case ctx.pred.EngagementRate > avg*1.1:
		return fmt.Sprintf(
			"Excellent performance: predicted engagement (%s) is well above the %s average (%s). This combination looks very strong.",
			pct(ctx.pred.EngagementRate), ctx.req.Platform, pct(avg)), true
	case ctx.pred.EngagementRate < avg*0.9:
		return fmt.Sprintf(
			"Underperforming: predicted engagement (%s) is below the %s average (%s). The notes below show where it loses ground.",
			pct(ctx.pred.EngagementRate), ctx.req.Platform, pct(avg)), true
	default:
		return fmt.Sprintf(
			"Average performance: predicted engagement (%s) is in line with the %s average (%s). There is room to optimize.",
			pct(ctx.pred.EngagementRate), ctx.req.Platform, pct(avg)), true
	}
}

// weakestDayRule suggests moving to the platform's strongest day when the
// chosen day measurably trails it
func weakestDayRule(ctx *ruleContext) (string, bool) {
	chosenDayAvg := ctx.store.DayEngagement(ctx.req.Platform, ctx.req.DayOfWeek, 0)
	topDayAvg := ctx.store.DayEngagement(ctx.req.Platform, ctx.platformTopDay, 0)

	if chosenDayAvg > 0 && topDayAvg > 0 && chosenDayAvg < topDayAvg {
		return fmt.Sprintf(
			"Day opportunity: you chose %s, which averages %s engagement on %s. The strongest day on %s is %s (average %s). "+
				"If the topic is flexible, consider switching to %s.",
			ctx.req.DayOfWeek, pct(chosenDayAvg), ctx.req.Platform,
			ctx.req.Platform, ctx.platformTopDay, pct(topDayAvg),
			ctx.platformTopDay), true
	}
	return "", false
}

// keywordQualityRule rates the chosen keyword against the global mean. A
// keyword with no history (lookup default 0) emits nothing.
func keywordQualityRule(ctx *ruleContext) (string, bool) {
	keywordAvg := ctx.store.KeywordEngagement(ctx.req.Keyword, 0)

	switch {
	case keywordAvg > 0 && keywordAvg > ctx.global.AvgEngagement:
		return fmt.Sprintf(
			"Good keyword choice: '%s' is a strong pick - historically it averages %s engagement.",
			ctx.req.Keyword, pct(keywordAvg)), true
	case keywordAvg > 0:
		return fmt.Sprintf(
			"Keyword warning: '%s' historically averages %s engagement, below the global mean. The content needs to stand out to compensate.",
			ctx.req.Keyword, pct(keywordAvg)), true
	}
	return "", false
}

// emotionToxicityRule synthesizes the emotion and toxicity signals for posts
// not already flagged as high-risk by the persona rule
func emotionToxicityRule(ctx *ruleContext) (string, bool) {
	switch {
	case isNegativeLeaning(ctx.emotion) && ctx.pred.Toxicity < highRiskToxicity:
		return fmt.Sprintf(
			"Emotion analysis: the predicted emotion is %s. If that tone is intentional (a sad or serious piece) it is fine; "+
				"if not, the negative tone may be what drags engagement down. Consider softening the wording or keywords.",
			ctx.emotion), true
	case ctx.pred.Toxicity > ctx.platformAvgToxicity && ctx.pred.Toxicity < highRiskToxicity:
		return fmt.Sprintf(
			"Toxicity warning: the emotion reads %s, yet predicted toxicity (%s) is above the %s average (%s). "+
				"The keyword/hashtag pair ('%s', '%s') may be easy to misread - double-check it.",
			ctx.emotion, pct(ctx.pred.Toxicity), ctx.req.Platform, pct(ctx.platformAvgToxicity),
			ctx.req.Keyword, ctx.req.Hashtag), true
	}
	return "", false
}

// goldenComboRule appends the informational footnote when the benchmark store
// carries a golden combination
func goldenComboRule(ctx *ruleContext) (string, bool) {
	golden := ctx.store.Golden()
	if golden == nil {
		return "", false
	}
	return fmt.Sprintf(
		"For reference, the golden combination in your data (highest engagement) is %s + %s + %s, averaging %s engagement.",
		golden.Platform, golden.Day, golden.Language, pct(golden.AvgEngagement)), true
}
