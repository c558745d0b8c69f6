package bootstrap

import (
	"context"
	"strings"
	"time"

	"tripscan/adapter/out/cache"
	"tripscan/adapter/out/mongodb"
	"tripscan/adapter/out/persistence"
	"tripscan/adapter/out/provider"
	"tripscan/config"
	"tripscan/core/port/in"
	"tripscan/core/port/out"
	"tripscan/core/service/extract"
	"tripscan/core/service/extract/vendors"
	"tripscan/core/service/poll"
	"tripscan/core/service/reconcile"
	"tripscan/infra/database"
	"tripscan/pkg/logger"
	"tripscan/pkg/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type Dependencies struct {
	Config  *config.Config
	DB      *pgxpool.Pool
	SQLDB   *sqlx.DB
	Redis   *redis.Client
	MongoDB *mongo.Client

	// Repositories
	TripRepo    out.TripRepository
	SeenRepo    out.SeenMessageRepository
	UserRepo    out.UserRepository
	OAuthRepo   out.OAuthRepository
	ActivityLog out.ActivityLogger

	// Advisory / best-effort collaborators
	SeenCache out.SeenMessageCache
	Archive   out.MessageArchive
	Artifacts out.ArtifactWriter

	// Providers
	GmailProvider *provider.GmailAdapter

	// Services
	Normalizer  *extract.Normalizer
	Matcher     *reconcile.Matcher
	PollService in.PollService
}

func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}
	var cleanups []func()

	// Database (pgxpool)
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	deps.DB = db
	cleanups = append(cleanups, func() { db.Close() })

	// Database (sqlx for adapters)
	// simple_protocol avoids prepared statement conflicts with PgBouncer
	sqlxURL := cfg.DatabaseURL
	if strings.Contains(sqlxURL, "?") {
		sqlxURL += "&default_query_exec_mode=simple_protocol"
	} else {
		sqlxURL += "?default_query_exec_mode=simple_protocol"
	}
	sqlDB, err := sqlx.Connect("pgx", sqlxURL)
	if err != nil {
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	deps.SQLDB = sqlDB
	cleanups = append(cleanups, func() { sqlDB.Close() })
	metrics.RegisterPool("postgres", sqlDB.DB)

	// Redis (advisory cache; pipeline works without it)
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis connection failed, running without seen cache: %v", err)
		} else {
			deps.Redis = redisClient
			deps.SeenCache = cache.NewSeenCacheAdapter(redisClient)
			cleanups = append(cleanups, func() { redisClient.Close() })
		}
	}

	// MongoDB (raw body archive; best effort)
	if cfg.MongoDBURL != "" {
		mongoClient, err := mongodb.NewClient(cfg.MongoDBURL)
		if err != nil {
			logger.Warn("MongoDB connection failed, running without message archive: %v", err)
		} else {
			deps.MongoDB = mongoClient
			cleanups = append(cleanups, func() {
				mongoClient.Disconnect(context.Background())
			})

			archive := mongodb.NewMessageArchiveAdapter(mongoClient.Database(cfg.MongoDBName), cfg.ArchiveTTLDays)
			if err := archive.EnsureIndexes(context.Background()); err != nil {
				logger.Warn("Failed to ensure archive indexes: %v", err)
			}
			deps.Archive = archive
		}
	}

	// Repositories
	deps.TripRepo = persistence.NewTripAdapter(sqlDB)
	deps.SeenRepo = persistence.NewSeenMessageAdapter(sqlDB)
	deps.UserRepo = persistence.NewUserAdapter(sqlDB)
	deps.OAuthRepo = persistence.NewOAuthAdapter(sqlDB)
	deps.ActivityLog = persistence.NewActivityAdapter(sqlDB)

	// Google providers
	oauthConfig := provider.NewOAuthConfig(&provider.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})
	deps.GmailProvider = provider.NewGmailAdapter(oauthConfig, deps.OAuthRepo)
	deps.Artifacts = provider.NewArtifactsAdapter(oauthConfig, deps.OAuthRepo, deps.UserRepo, deps.TripRepo, deps.ActivityLog)

	// Extraction pipeline
	deps.Normalizer = extract.NewNormalizer(vendors.NewDefaultRegistry(), extract.Options{
		PlaceholderWindow: cfg.PlaceholderWindow,
	})
	deps.Matcher = reconcile.NewMatcher(deps.TripRepo)

	// Poll orchestrator
	deps.PollService = poll.NewService(
		poll.Config{
			SearchQuery:        cfg.SearchQuery,
			MaxMessagesPerUser: int64(cfg.PollMaxMessages),
			UserConcurrency:    cfg.PollUserConcurrent,
		},
		deps.UserRepo,
		deps.OAuthRepo,
		deps.GmailProvider,
		deps.SeenRepo,
		deps.SeenCache,
		deps.Normalizer,
		deps.Matcher,
		deps.Archive,
		deps.Artifacts,
		deps.ActivityLog,
	)

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	return deps, cleanup, nil
}
