package database

import (
	"fmt"
	"time"

	"github.com/hanifadr/engagemeter/internal/types"
)

// ForecastRecord is one stored forecast: the request, the predicted metrics
// and the advisory count, with its creation time
type ForecastRecord struct {
	ID            int64                 `json:"id"`
	CreatedAt     time.Time             `json:"created_at"`
	Request       types.ForecastRequest `json:"request"`
	Metrics       types.MetricVector    `json:"metrics"`
	Emotion       string                `json:"emotion"`
	AdvisoryCount int                   `json:"advisory_count"`
}

// Repository persists served forecasts
type Repository struct {
	db *DB
}

// NewRepository creates a new forecast history repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveForecast records one served forecast
func (r *Repository) SaveForecast(req types.ForecastRequest, metrics types.MetricVector, emotion string, advisoryCount int) error {
	_, err := r.db.Exec(`INSERT INTO forecasts (
		day_of_week, language, platform, keyword, hashtag, campaign_name,
		likes, shares, comments, toxicity, impressions, engagement_rate,
		emotion, advisory_count
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.DayOfWeek, req.Language, req.Platform, req.Keyword, req.Hashtag, req.Campaign,
		metrics.Likes, metrics.Shares, metrics.Comments, metrics.Toxicity,
		metrics.Impressions, metrics.EngagementRate,
		emotion, advisoryCount)
	if err != nil {
		return fmt.Errorf("failed to save forecast: %w", err)
	}
	return nil
}

// RecentForecasts returns the latest stored forecasts, newest first
func (r *Repository) RecentForecasts(limit int) ([]ForecastRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := r.db.Query(`SELECT
		id, created_at, day_of_week, language, platform, keyword, hashtag, campaign_name,
		likes, shares, comments, toxicity, impressions, engagement_rate,
		emotion, advisory_count
	FROM forecasts ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query forecasts: %w", err)
	}
	defer rows.Close()

	var records []ForecastRecord
	for rows.Next() {
		var rec ForecastRecord
		if err := rows.Scan(
			&rec.ID, &rec.CreatedAt,
			&rec.Request.DayOfWeek, &rec.Request.Language, &rec.Request.Platform,
			&rec.Request.Keyword, &rec.Request.Hashtag, &rec.Request.Campaign,
			&rec.Metrics.Likes, &rec.Metrics.Shares, &rec.Metrics.Comments,
			&rec.Metrics.Toxicity, &rec.Metrics.Impressions, &rec.Metrics.EngagementRate,
			&rec.Emotion, &rec.AdvisoryCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan forecast row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
