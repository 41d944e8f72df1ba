package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/beaconhq/beacon-backend/internal/alignment"
	"github.com/beaconhq/beacon-backend/internal/config"
	httpdelivery "github.com/beaconhq/beacon-backend/internal/delivery/http"
	"github.com/beaconhq/beacon-backend/internal/delivery/http/handler"
	"github.com/beaconhq/beacon-backend/internal/delivery/http/middleware"
	"github.com/beaconhq/beacon-backend/internal/infrastructure/database"
	"github.com/beaconhq/beacon-backend/internal/infrastructure/gemini"
	"github.com/beaconhq/beacon-backend/internal/infrastructure/server"
	"github.com/beaconhq/beacon-backend/internal/matching"
	"github.com/beaconhq/beacon-backend/internal/repository/postgres"
	"github.com/beaconhq/beacon-backend/internal/usecase/feed"
	"github.com/beaconhq/beacon-backend/internal/usecase/match"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Gemini *gemini.Client
	Server *server.Server

	MatchUseCase *match.UseCase
	FeedUseCase  *feed.UseCase
}

// NewContainer wires the application together.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// The feed works without a cache; a dead redis only costs recomputes.
	var redisClient *redis.Client
	var feedCache feed.Cache
	if cfg.Redis.Host != "" {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, feed caching disabled", zap.Error(err))
		} else {
			feedCache = feed.NewRedisCache(redisClient, cfg.Matching.FeedCacheTTL, logger)
		}
	}

	// Goal alignment degrades to the rule-based path without an API key.
	var geminiClient *gemini.Client
	var primary alignment.Scorer
	if cfg.Gemini.APIKey != "" {
		geminiClient, err = gemini.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Warn("failed to initialize gemini client, goal alignment will use fallback", zap.Error(err))
		} else {
			primary = geminiClient
		}
	}
	aligner := alignment.NewDegrading(primary, cfg.Gemini.CallTimeout, logger)

	profileRepo := postgres.NewProfileRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	convRepo := postgres.NewConversationRepository(db)

	scorer := matching.NewScorer(matching.NewStaticTierTable(), matching.DefaultGapBand())

	feedUseCase := feed.NewUseCase(
		profileRepo,
		matchRepo,
		scorer,
		aligner,
		feedCache,
		logger,
		feed.Options{
			Threshold:     cfg.Matching.FeedThreshold,
			Limit:         cfg.Matching.FeedLimit,
			PoolSize:      cfg.Matching.PoolSize,
			MaxConcurrent: cfg.Gemini.MaxConcurrent,
		},
	)

	matchUseCase := match.NewUseCase(
		matchRepo,
		convRepo,
		profileRepo,
		logger,
		time.Duration(cfg.Matching.ExpiryDays)*24*time.Hour,
	)
	matchUseCase.OnInitiated(feedUseCase.InvalidateMentorFeed)

	feedHandler := handler.NewFeedHandler(feedUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	router := httpdelivery.NewRouter(feedHandler, matchHandler, authMiddleware)
	srv := server.NewServer(&cfg.Server, router.Setup(), logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Redis:        redisClient,
		Gemini:       geminiClient,
		Server:       srv,
		MatchUseCase: matchUseCase,
		FeedUseCase:  feedUseCase,
	}, nil
}

// Close closes all connections.
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
