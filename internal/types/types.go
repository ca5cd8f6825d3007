package types

// Post represents one historical social-media post from the dataset
type Post struct {
	DayOfWeek      string  `json:"day_of_week"`
	Platform       string  `json:"platform"`
	Language       string  `json:"language"`
	TextContent    string  `json:"text_content"`
	Hashtags       string  `json:"hashtags"`
	Keywords       string  `json:"keywords"`
	CampaignName   string  `json:"campaign_name"`
	LikesCount     float64 `json:"likes_count"`
	SharesCount    float64 `json:"shares_count"`
	CommentsCount  float64 `json:"comments_count"`
	Impressions    float64 `json:"impressions"`
	ToxicityScore  float64 `json:"toxicity_score"`
	EngagementRate float64 `json:"engagement_rate"`
	EmotionType    string  `json:"emotion_type"`
}

// TagRow is one exploded hashtag/keyword token, inheriting its source post by reference
type TagRow struct {
	Token string
	Post  *Post
}

// MetricVector holds the six predicted numeric outcomes in their canonical order:
// likes, shares, comments, toxicity, impressions, engagement rate.
type MetricVector struct {
	Likes          float64 `json:"likes"`
	Shares         float64 `json:"shares"`
	Comments       float64 `json:"comments"`
	Toxicity       float64 `json:"toxicity"`
	Impressions    float64 `json:"impressions"`
	EngagementRate float64 `json:"engagement_rate"`
}

// ForecastRequest carries the six categorical predictors for a hypothetical post.
// Language is a raw 2-letter code; display-name translation happens at the boundary.
type ForecastRequest struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	Language  string `json:"language" binding:"required"`
	Platform  string `json:"platform" binding:"required"`
	Keyword   string `json:"keyword" binding:"required"`
	Hashtag   string `json:"hashtag" binding:"required"`
	Campaign  string `json:"campaign_name" binding:"required"`
}

// PlaceholderValue is the unselected sentinel a UI may submit; requests
// containing it are incomplete.
const PlaceholderValue = "-"

// IsComplete reports whether all six predictor fields carry a real value
func (r ForecastRequest) IsComplete() bool {
	for _, v := range []string{r.DayOfWeek, r.Language, r.Platform, r.Keyword, r.Hashtag, r.Campaign} {
		if v == "" || v == PlaceholderValue {
			return false
		}
	}
	return true
}

// ForecastResponse is the full forecast surface: metrics, emotion and the
// ordered advisory list, consumable by any rendering layer as-is.
type ForecastResponse struct {
	Metrics    MetricVector `json:"metrics"`
	Emotion    string       `json:"emotion"`
	Advisories []string     `json:"advisories"`
}
