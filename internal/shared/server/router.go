package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/account"
	googleauth "ats-backend/internal/auth"
	"ats-backend/internal/dashboard"
	"ats-backend/internal/jobs"
	"ats-backend/internal/resumes"
	"ats-backend/internal/scoring"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/uploads"
	"ats-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up. The bootstrap owns
// construction; the router only registers middleware and routes.
type RouterDeps struct {
	Config           config.Config
	ResumeHandler    *resumes.Handler
	UploadHandler    *uploads.Handler
	ScoreHandler     *scoring.Handler
	JobHandler       *jobs.Handler
	DashboardHandler *dashboard.Handler
	UserHandler      *users.Handler
	AccountHandler   *account.Handler
	GoogleAuth       *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		searchRateLimit(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.ScoreHandler != nil {
		deps.ScoreHandler.RegisterRoutes(api)
	}
	if deps.JobHandler != nil {
		deps.JobHandler.RegisterRoutes(api)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil && cfg.Env != "production" {
		deps.AccountHandler.RegisterRoutes(api)
	}

	return r
}

// searchRateLimit throttles job search per caller. The upstream job board
// meters by API key, so the search route gets its own bucket while everything
// else stays unlimited.
func searchRateLimit() gin.HandlerFunc {
	return middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/jobs/search" {
				return "SEARCH"
			}
			return "DEFAULT"
		},
		Limiter: middleware.NewRateLimiter(time.Now),
		Rules: map[string]middleware.RateLimitRule{
			"SEARCH": {Rate: 1, Burst: 30},
		},
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
