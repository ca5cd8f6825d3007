package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hanifadr/engagemeter/internal/advisor"
	"github.com/hanifadr/engagemeter/internal/benchmark"
	"github.com/hanifadr/engagemeter/internal/cache"
	"github.com/hanifadr/engagemeter/internal/database"
	"github.com/hanifadr/engagemeter/internal/dataset"
	"github.com/hanifadr/engagemeter/internal/errors"
	"github.com/hanifadr/engagemeter/internal/forecast"
	"github.com/hanifadr/engagemeter/internal/langmap"
	"github.com/hanifadr/engagemeter/internal/monitoring"
	"github.com/hanifadr/engagemeter/internal/rankings"
	"github.com/hanifadr/engagemeter/internal/ratelimit"
	"github.com/hanifadr/engagemeter/internal/types"
)

// application holds the immutable artifacts built once per dataset version
// and shared read-only across all requests
type application struct {
	norm       *dataset.Normalized
	benchmarks *benchmark.Store
	globals    benchmark.GlobalStats
	model      *forecast.Model
	boards     *rankings.Boards
	overview   rankings.Overview
	repo       *database.Repository
	metrics    *monitoring.Metrics
	logger     *monitoring.Logger
}

// newApplication loads the dataset and builds every derived artifact.
// Dataset-level failures are fatal: without data there is nothing to serve.
func newApplication(datasetPath string, cfg forecast.ForestConfig, repo *database.Repository) (*application, error) {
	posts, err := dataset.Load(datasetPath)
	if err != nil {
		return nil, err
	}

	norm := dataset.Normalize(posts)
	store := benchmark.Compute(norm.Posts, norm.KeywordRows)
	globals := benchmark.ComputeGlobals(norm.Posts)

	trainStart := time.Now()
	model, err := forecast.Train(norm.Posts, cfg)
	if err != nil {
		return nil, err
	}

	app := &application{
		norm:       norm,
		benchmarks: store,
		globals:    globals,
		model:      model,
		boards:     rankings.Build(norm),
		overview:   rankings.BuildOverview(norm.Posts),
		repo:       repo,
		metrics:    monitoring.NewMetrics(),
		logger:     monitoring.NewLogger(),
	}
	app.metrics.RecordTrainingDuration(time.Since(trainStart))
	app.logger.TrainingLogger(model.TrainingRows(), cfg.Trees, time.Since(trainStart))

	return app, nil
}

// routes builds the gin engine with all middleware and endpoints
func (app *application) routes(limiter *ratelimit.RateLimiter, responseCache *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(monitoring.MonitoringMiddleware(app.metrics, app.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())
	r.Use(cors.Default())
	r.Use(ratelimit.Middleware(limiter, app.metrics))
	r.Use(responseCache.Middleware(app.metrics))

	r.GET("/health", app.handleHealth)
	api := r.Group("/api")
	{
		api.POST("/forecast", app.handleForecast)
		api.GET("/vocabularies", app.handleVocabularies)
		api.GET("/rankings", app.handleRankings)
		api.GET("/overview", app.handleOverview)
		api.GET("/benchmarks/platforms", app.handlePlatformBenchmarks)
		api.GET("/languages", app.handleLanguages)
		api.GET("/history", app.handleHistory)
	}

	return r
}

func (app *application) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"timestamp":     time.Now().Format(time.RFC3339),
		"version":       "1.0.0",
		"dataset_rows":  len(app.norm.Posts),
		"training_rows": app.model.TrainingRows(),
		"metrics":       app.metrics.GetStats(),
	})
}

func (app *application) handleForecast(c *gin.Context) {
	start := time.Now()

	var req types.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := errors.NewValidationError("Invalid forecast request", err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	// A UI may submit the display form of the language; the model always
	// operates on the raw code.
	req.Language = langmap.Code(req.Language)

	if !req.IsComplete() {
		appErr := errors.NewValidationError("All six input fields must be selected")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	metrics, emotion := app.model.Predict(req)
	advisories := advisor.Advise(metrics, emotion, req, app.benchmarks, app.globals)

	app.metrics.IncrementForecast()
	app.logger.ForecastLogger(req.Platform, req.DayOfWeek, emotion,
		metrics.EngagementRate, len(advisories), time.Since(start), false)

	if app.repo != nil {
		if err := app.repo.SaveForecast(req, metrics, emotion, len(advisories)); err != nil {
			slog.Warn("Failed to record forecast history", "error", err)
		}
	}

	c.JSON(http.StatusOK, types.ForecastResponse{
		Metrics:    metrics,
		Emotion:    emotion,
		Advisories: advisories,
	})
}

func (app *application) handleVocabularies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vocabularies": app.model.Vocabularies()})
}

func (app *application) handleRankings(c *gin.Context) {
	c.JSON(http.StatusOK, app.boards)
}

func (app *application) handleOverview(c *gin.Context) {
	c.JSON(http.StatusOK, app.overview)
}

func (app *application) handlePlatformBenchmarks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"platforms": app.benchmarks.AllPlatforms(),
		"golden":    app.benchmarks.Golden(),
		"global":    app.globals,
	})
}

func (app *application) handleLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": langmap.All()})
}

func (app *application) handleHistory(c *gin.Context) {
	if app.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history store not configured"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	records, err := app.repo.RecentForecasts(limit)
	if err != nil {
		appErr := errors.NewInternalError("Failed to load forecast history", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecasts": records})
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	datasetPath := getEnvOrDefault("DATASET_PATH", "./data/social_media_engagement.csv")
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	port := getEnvOrDefault("PORT", "8080")
	redisURL := os.Getenv("REDIS_URL")

	forestCfg := forecast.DefaultForestConfig()
	forestCfg.Trees = getEnvIntOrDefault("FOREST_TREES", forestCfg.Trees)
	forestCfg.Seed = int64(getEnvIntOrDefault("FOREST_SEED", int(forestCfg.Seed)))

	cacheTTL := time.Duration(getEnvIntOrDefault("CACHE_TTL_MINUTES", 15)) * time.Minute

	db, err := database.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize history database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	repo := database.NewRepository(db)

	app, err := newApplication(datasetPath, forestCfg, repo)
	if err != nil {
		// DataUnavailable and InsufficientTrainingData both stop the whole
		// workflow: the system must not present a forecast capability.
		slog.Error("Failed to build forecast artifacts", "error", err)
		os.Exit(1)
	}

	limiter := ratelimit.NewRateLimiter(redisURL, ratelimit.DefaultConfig())
	responseCache := cache.NewCache(cacheTTL)

	r := app.routes(limiter, responseCache)

	slog.Info("Server starting", "port", port, "dataset", datasetPath)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}
