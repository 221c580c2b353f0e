package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	releaseUC "reldesk/internal/application/release/usecases"
	ticketUC "reldesk/internal/application/ticket/usecases"
	"reldesk/internal/infrastructure/config"
	"reldesk/internal/infrastructure/ratelimit"
	"reldesk/internal/infrastructure/repository"
	releaseHandlers "reldesk/internal/interfaces/http/handlers/release"
	ticketHandlers "reldesk/internal/interfaces/http/handlers/ticket"
	"reldesk/internal/interfaces/http/middleware"
	"reldesk/internal/shared/db"
	"reldesk/internal/shared/logger"
	"reldesk/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	releaseHandler *releaseHandlers.ReleaseHandler
	ticketHandler  *ticketHandlers.TicketHandler
	cfg            *config.Config
	logger         logger.Interface
	rateLimiter    ratelimit.RateLimiter
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(gormDB *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	releaseRepo := repository.NewReleaseRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)

	reconciler := releaseUC.NewTicketReconciler(ticketRepo, log)

	createReleaseUC := releaseUC.NewCreateReleaseUseCase(releaseRepo, ticketRepo, reconciler, log)
	updateReleaseUC := releaseUC.NewUpdateReleaseUseCase(releaseRepo, ticketRepo, reconciler, log)
	deleteReleaseUC := releaseUC.NewDeleteReleaseUseCase(releaseRepo, log)
	getReleaseUC := releaseUC.NewGetReleaseUseCase(releaseRepo, ticketRepo, log)
	listReleasesUC := releaseUC.NewListReleasesUseCase(releaseRepo, ticketRepo, log)

	txMgr := db.NewTransactionManager(gormDB)

	ingestTicketsUC := ticketUC.NewIngestTicketsUseCase(ticketRepo, txMgr, log)
	getTicketUC := ticketUC.NewGetTicketUseCase(ticketRepo, log)
	listTicketsUC := ticketUC.NewListTicketsUseCase(ticketRepo, log)

	releaseHandler := releaseHandlers.NewReleaseHandler(
		createReleaseUC, updateReleaseUC, deleteReleaseUC, getReleaseUC, listReleasesUC,
	)
	ticketHandler := ticketHandlers.NewTicketHandler(ingestTicketsUC, getTicketUC, listTicketsUC)

	return &Router{
		engine:         engine,
		releaseHandler: releaseHandler,
		ticketHandler:  ticketHandler,
		cfg:            cfg,
		logger:         log,
		rateLimiter:    buildRateLimiter(cfg, log),
	}
}

func buildRateLimiter(cfg *config.Config, log logger.Interface) ratelimit.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	if cfg.RateLimit.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Infow("rate limiting enabled", "backend", "redis", "addr", cfg.Redis.GetAddr())
		return ratelimit.NewRedisRateLimiter(client)
	}

	log.Infow("rate limiting enabled", "backend", "memory")
	return ratelimit.NewMemoryRateLimiter()
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	if r.rateLimiter != nil {
		r.engine.Use(middleware.RateLimit(r.rateLimiter, r.cfg.RateLimit.RequestsPerMinute))
	}

	r.engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")
	{
		releases := v1.Group("/releases")
		{
			releases.POST("", r.releaseHandler.CreateRelease)
			releases.GET("", r.releaseHandler.ListReleases)
			releases.GET("/:version", r.releaseHandler.GetRelease)
			releases.PUT("/:version", r.releaseHandler.UpdateRelease)
			releases.DELETE("/:version", r.releaseHandler.DeleteRelease)
		}

		tickets := v1.Group("/tickets")
		{
			tickets.POST("/ingest", r.ticketHandler.IngestTickets)
			tickets.GET("", r.ticketHandler.ListTickets)
			tickets.GET("/:ticket_id", r.ticketHandler.GetTicket)
		}
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
