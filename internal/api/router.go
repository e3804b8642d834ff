package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/ayo6706/wallet-ledger/internal/api/handler"
	"github.com/ayo6706/wallet-ledger/internal/api/middleware"
	"github.com/ayo6706/wallet-ledger/internal/api/spec"
	"github.com/ayo6706/wallet-ledger/internal/config"
	"github.com/ayo6706/wallet-ledger/internal/idempotency"
	"github.com/ayo6706/wallet-ledger/internal/repository"
	"github.com/ayo6706/wallet-ledger/internal/service"
)

type Router struct {
	cfg         *config.Config
	logger      *zap.Logger
	db          *pgxpool.Pool
	repo        *repository.Repository
	idemStore   *idempotency.Store
	redisClient redis.Cmdable
	authSvc     *service.AuthService
	walletSvc   *service.WalletService
	transferSvc *service.TransferService
	noticeSvc   *service.NoticeService
	adminSvc    *service.AdminService
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *pgxpool.Pool,
	repo *repository.Repository,
	idemStore *idempotency.Store,
	redisClient redis.Cmdable,
	authSvc *service.AuthService,
	walletSvc *service.WalletService,
	transferSvc *service.TransferService,
	noticeSvc *service.NoticeService,
	adminSvc *service.AdminService,
) *Router {
	return &Router{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		repo:        repo,
		idemStore:   idemStore,
		redisClient: redisClient,
		authSvc:     authSvc,
		walletSvc:   walletSvc,
		transferSvc: transferSvc,
		noticeSvc:   noticeSvc,
		adminSvc:    adminSvc,
	}
}

func (api *Router) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Use(middleware.RecoverMiddleware(api.logger))
	r.Use(middleware.LoggingMiddleware(api.logger))
	r.Use(middleware.MetricsMiddleware)

	authHandler := handler.NewAuthHandler(api.authSvc)
	accountHandler := handler.NewAccountHandler(api.walletSvc)
	transferHandler := handler.NewTransferHandler(api.transferSvc)
	noticeHandler := handler.NewNoticeHandler(api.noticeSvc)
	adminHandler := handler.NewAdminHandler(api.adminSvc)
	healthHandler := handler.NewHealthHandler(api.db, api.redisClient)

	// Ops surface
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", spec.OpenAPIHandler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/openapi.yaml"),
	))

	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.PublicRateLimiter(api.cfg.PublicRateLimitRPS))
		r.Post("/v1/auth/register", authHandler.Register)
		r.Post("/v1/auth/login", authHandler.Login)
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)
		r.Use(middleware.AuthRateLimiter(api.cfg.AuthRateLimitRPS))

		r.Get("/v1/auth/verify", authHandler.Verify)
		r.Get("/v1/account", accountHandler.Account)
		r.Get("/v1/account/balance/{currency}", accountHandler.Balance)
		r.Get("/v1/notices", noticeHandler.List)
		r.Post("/v1/notices/{id}/read", noticeHandler.MarkRead)

		r.With(middleware.IdempotencyMiddleware(api.idemStore, api.logger)).
			Post("/v1/transfers", transferHandler.Create)

		// Admin panel
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(api.repo))
			r.Get("/v1/admin/users", adminHandler.ListUsers)
			r.Get("/v1/admin/transactions", adminHandler.ListTransactions)
			r.Patch("/v1/admin/transactions/{id}", adminHandler.ResolveTransaction)
			r.Get("/v1/admin/stats", adminHandler.Stats)
			r.Post("/v1/admin/credits", adminHandler.Credit)
		})
	})

	return r
}
