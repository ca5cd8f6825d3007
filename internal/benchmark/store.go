package benchmark

// PlatformStats holds per-platform comparison baselines
type PlatformStats struct {
	Platform      string  `json:"platform"`
	AvgEngagement float64 `json:"avg_engagement"`
	AvgToxicity   float64 `json:"avg_toxicity"`
	TopDay        string  `json:"top_day"`
}

// PlatformDay is the composite key for per-(platform, day) engagement means
type PlatformDay struct {
	Platform string
	Day      string
}

// PlatformLanguage is the composite key for per-(platform, language) engagement means
type PlatformLanguage struct {
	Platform string
	Language string
}

// GoldenCombo is the single (platform, day, language) triple with the highest
// historical mean engagement rate
type GoldenCombo struct {
	Platform      string  `json:"platform"`
	Day           string  `json:"day"`
	Language      string  `json:"language"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// GlobalStats are dataset-wide fallbacks used when a platform-specific
// benchmark entry is absent
type GlobalStats struct {
	AvgEngagement  float64 `json:"avg_engagement"`
	AvgToxicity    float64 `json:"avg_toxicity"`
	AvgShares      float64 `json:"avg_shares"`
	AvgComments    float64 `json:"avg_comments"`
	AvgImpressions float64 `json:"avg_impressions"`
	TopDay         string  `json:"top_day"`
}

// Store is the read-only benchmark mapping computed once per dataset load.
// Absent combinations have no entry; lookups resolve through a caller-supplied
// default and never fail.
type Store struct {
	platforms map[string]PlatformStats
	days      map[PlatformDay]float64
	languages map[PlatformLanguage]float64
	keywords  map[string]float64
	golden    *GoldenCombo
}

// PlatformStats returns the per-platform baselines, if present
func (s *Store) PlatformStats(platform string) (PlatformStats, bool) {
	stats, ok := s.platforms[platform]
	return stats, ok
}

// AllPlatforms returns a copy of every per-platform benchmark row
func (s *Store) AllPlatforms() []PlatformStats {
	out := make([]PlatformStats, 0, len(s.platforms))
	for _, stats := range s.platforms {
		out = append(out, stats)
	}
	return out
}

// DayEngagement returns the mean engagement for (platform, day), or def when
// no posts exist for that combination
func (s *Store) DayEngagement(platform, day string, def float64) float64 {
	if v, ok := s.days[PlatformDay{Platform: platform, Day: day}]; ok {
		return v
	}
	return def
}

// LanguageEngagement returns the mean engagement for (platform, language),
// or def when absent
func (s *Store) LanguageEngagement(platform, language string, def float64) float64 {
	if v, ok := s.languages[PlatformLanguage{Platform: platform, Language: language}]; ok {
		return v
	}
	return def
}

// KeywordEngagement returns the historical mean engagement of a keyword
// token, or def when the keyword was never observed
func (s *Store) KeywordEngagement(keyword string, def float64) float64 {
	if v, ok := s.keywords[keyword]; ok {
		return v
	}
	return def
}

// Golden returns the golden combination, or nil when it could not be computed
func (s *Store) Golden() *GoldenCombo {
	return s.golden
}
