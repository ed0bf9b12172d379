package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ats-backend/internal/account"
	googleauth "ats-backend/internal/auth"
	"ats-backend/internal/dashboard"
	"ats-backend/internal/jobs"
	"ats-backend/internal/resumes"
	"ats-backend/internal/scoring"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/server"
	"ats-backend/internal/shared/storage/db"
	"ats-backend/internal/shared/storage/object"
	localstore "ats-backend/internal/shared/storage/object/local"
	s3store "ats-backend/internal/shared/storage/object/s3"
	"ats-backend/internal/uploads"
	"ats-backend/internal/users"
)

// App holds the wired application. Tests build one per case and drive
// requests through Router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ResumeService    *resumes.Service
	JobService       *jobs.Service
	ScoreService     *scoring.Service
	UserService      *users.Service
	DashboardService *dashboard.Service
	AccountService   *account.Service
}

// Build wires repositories, services, handlers and the router from config.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, ticketer, err := buildStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		resumeRepo resumes.ResumesRepo
		jobRepo    jobs.JobsRepo
		userRepo   users.Repo
	)
	if sqlDB != nil {
		resumeRepo = &resumes.PGRepo{DB: sqlDB}
		jobRepo = &jobs.PGRepo{DB: sqlDB}
		userRepo = &users.PGRepo{DB: sqlDB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	resumeSvc := &resumes.Service{Repo: resumeRepo}
	jobSvc := &jobs.Service{Repo: jobRepo, Searcher: buildSearcher(cfg)}
	scoreSvc := &scoring.Service{
		Resumes: resumeRepo,
		Store:   store,
		Engine:  buildEngine(cfg),
	}
	userSvc := users.NewService(userRepo)
	dashboardSvc := &dashboard.Service{
		Resumes: resumeSvc,
		Jobs:    jobSvc,
		Users:   userSvc,
	}
	accountSvc := account.NewService(resumeRepo, jobRepo, store)
	googleAuthSvc := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
	)

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Store:            store,
		ResumeService:    resumeSvc,
		JobService:       jobSvc,
		ScoreService:     scoreSvc,
		UserService:      userSvc,
		DashboardService: dashboardSvc,
		AccountService:   accountSvc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		ResumeHandler:    resumes.NewHandler(resumeSvc),
		UploadHandler:    uploads.NewHandler(ticketer, store),
		ScoreHandler:     scoring.NewHandler(scoreSvc),
		JobHandler:       jobs.NewHandler(jobSvc),
		DashboardHandler: dashboard.NewHandler(dashboardSvc),
		UserHandler:      users.NewHandler(userSvc),
		AccountHandler:   account.NewHandler(accountSvc),
		GoogleAuth:       googleAuthSvc,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		return nil, nil
	}

	// The pool is process-wide; a second Build reuses it instead of opening
	// another one.
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.Env == "production" {
			return nil, err
		}
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil, nil
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if cfg.Env == "production" {
			return nil, err
		}
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		return nil, nil
	}
	return sqlDB, nil
}

// buildStorage returns the object store and the upload ticketer backed by it.
// In s3 mode both must agree on bucket and prefix, otherwise ticketed uploads
// land where the scorer cannot read them.
func buildStorage(ctx context.Context, cfg config.Config) (object.ObjectStore, uploads.Ticketer, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		bucket := firstNonEmpty(cfg.UploadsBucket, cfg.S3Bucket)
		prefix := firstNonEmpty(cfg.UploadsPrefix, cfg.S3Prefix)
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(bucket) == "" {
			return nil, nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and a bucket")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, bucket, prefix, cfg.S3KMSKeyID)
		if err != nil {
			return nil, nil, err
		}
		ticketer, err := uploads.NewS3Ticketer(ctx, cfg.AWSRegion, bucket, prefix)
		if err != nil {
			return nil, nil, err
		}
		return store, ticketer, nil
	default:
		store := localstore.New(cfg.LocalStoreDir)
		return store, &uploads.LocalTicketer{BaseURL: cfg.PublicBaseURL}, nil
	}
}

func buildEngine(cfg config.Config) scoring.Engine {
	if cfg.ScorerMode == "process" {
		return scoring.NewProcEngine(cfg.ScorerCommand)
	}
	return scoring.NewHTTPEngine(cfg.ScorerBaseURL)
}

func buildSearcher(cfg config.Config) jobs.Searcher {
	searcher := jobs.Searcher(jobs.NewAdzunaClient(
		cfg.AdzunaBaseURL,
		cfg.AdzunaCountry,
		cfg.AdzunaAppID,
		cfg.AdzunaAPIKey,
	))

	if strings.TrimSpace(cfg.RedisURL) != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("invalid REDIS_URL, search cache disabled: %v", err)
			return searcher
		}
		searcher = jobs.NewCachedSearcher(searcher, redis.NewClient(redisOpts))
	}
	return searcher
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
