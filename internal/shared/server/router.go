package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"sentiment-backend/internal/gcloud"
	"sentiment-backend/internal/nlp/googlenl"
	"sentiment-backend/internal/results"
	"sentiment-backend/internal/services/health"
	"sentiment-backend/internal/shared/config"
	"sentiment-backend/internal/shared/server/middleware"
	"sentiment-backend/internal/shared/server/respond"
	"sentiment-backend/internal/shared/storage/db"
	"sentiment-backend/internal/shared/storage/object"
	localstore "sentiment-backend/internal/shared/storage/object/local"
	s3store "sentiment-backend/internal/shared/storage/object/s3"
	"sentiment-backend/internal/speech"
	"sentiment-backend/internal/speech/googlestt"
	"sentiment-backend/internal/tts"
	"sentiment-backend/internal/tts/googletts"
)

// NewRouter constructs the Gin engine with middleware, dependencies and
// routes registered. Adapters and repos are built here and injected into
// handlers; nothing is an ambient singleton.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	ctx := context.Background()

	rest, err := gcloud.NewClient(ctx, cfg.GoogleCredsFile, cfg.GoogleAPIKey)
	if err != nil {
		return nil, fmt.Errorf("init google transport: %w", err)
	}

	repo, err := buildRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	blobs, err := buildBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	resultsHandler := results.NewHandler(repo, googlenl.NewClient(rest))
	ttsHandler := tts.NewHandler(googletts.NewClient(rest))
	speechHandler := speech.NewHandler(googlestt.NewClient(rest), blobs)

	resultsHandler.RegisterRoutes(r)
	ttsHandler.RegisterRoutes(r)
	speechHandler.RegisterRoutes(r)

	healthSvc := health.NewService()
	r.GET("/healthz", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})

	r.StaticFile("/", "./web/index.html")

	return r, nil
}

// buildRepo selects the result store: file-per-record by default, Postgres
// when DATABASE_URL is configured and reachable.
func buildRepo(ctx context.Context, cfg config.Config) (results.Repo, error) {
	if cfg.DatabaseURL != "" {
		var sqlDB *sql.DB
		dbConn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to file store: %v", err)
		} else if err := db.RunMigrations(ctx, dbConn); err != nil {
			log.Printf("failed to run migrations, falling back to file store: %v", err)
			dbConn.Close()
		} else {
			sqlDB = dbConn
		}
		if sqlDB != nil {
			return &results.PGRepo{DB: sqlDB}, nil
		}
	}

	repo, err := results.NewFileRepo(cfg.ResultsDir)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// buildBlobStore selects the audio blob medium. The local store is rooted
// at the results dir so blobs co-locate with result files.
func buildBlobStore(ctx context.Context, cfg config.Config) (object.BlobStore, error) {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("init s3 store: %w", err)
		}
		return store, nil
	}
	return localstore.New(cfg.ResultsDir), nil
}
