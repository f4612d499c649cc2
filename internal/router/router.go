package router

import (
	"strings"
	"time"

	"github.com/b0g1dan23/ai-contact-extractor/internal/config"
	"github.com/b0g1dan23/ai-contact-extractor/internal/handler"
	"github.com/b0g1dan23/ai-contact-extractor/internal/infra"
	"github.com/b0g1dan23/ai-contact-extractor/internal/middleware"
	"github.com/b0g1dan23/ai-contact-extractor/internal/repository"
	"github.com/b0g1dan23/ai-contact-extractor/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis, with
// the model client and its circuit breaker injected from the top.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, modelClient service.ModelClient, aiCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(strings.Split(cfg.CORSOrigins, ",")))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	contactRepo := repository.NewContactRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	contactSvc := service.NewContactService(contactRepo, rdb)
	extractSvc := service.NewExtractService(contactRepo, modelClient, aiCB, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	contactsH := handler.NewContactsHandler(contactSvc)
	extractH := handler.NewExtractHandler(extractSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, aiCB))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/contacts", contactsH.List)
		v1.POST("/contacts", contactsH.Create)
		v1.PUT("/contacts/:id", contactsH.Update)
		v1.DELETE("/contacts/:id", contactsH.Delete)

		// Extraction spends model tokens per call, so it is throttled separately
		v1.POST("/extract/text", middleware.ExtractRateLimiter(), extractH.ExtractFromText)
	}

	// Swagger UI, outside production only, behind the admin credentials
	if cfg.Env != "production" {
		docs := r.Group("/swagger", gin.BasicAuth(gin.Accounts{cfg.AdminUsername: cfg.AdminPassword}))
		docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
