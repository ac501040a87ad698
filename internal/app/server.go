// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"loyalty-service/internal/config"
	"loyalty-service/internal/db"
	benefitHandler "loyalty-service/internal/handlers/benefits"
	entryHandler "loyalty-service/internal/handlers/entries"
	membershipHandler "loyalty-service/internal/handlers/memberships"
	paymentHandler "loyalty-service/internal/handlers/payments"
	planHandler "loyalty-service/internal/handlers/plans"
	"loyalty-service/internal/middleware"
	"loyalty-service/internal/repository/postgres"
	benefitsvc "loyalty-service/internal/service/benefits"
	entrysvc "loyalty-service/internal/service/entries"
	membershipsvc "loyalty-service/internal/service/memberships"
	paymentsvc "loyalty-service/internal/service/payments"
	plansvc "loyalty-service/internal/service/plans"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis (optional, rate limiting only) -----
	var redisClient *redis.Client
	if s.cfg.RedisAddr != "" {
		redisClient, err = db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       0,
			PoolSize: 10,
		})
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			redisClient = nil
		}
	}

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	planRepo := postgres.NewMembershipPlanRepository(pool)
	benefitRepo := postgres.NewMembershipBenefitRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	membershipRepo := postgres.NewCustomerMembershipRepository(pool)
	paymentRepo := postgres.NewMembershipPaymentRepository(pool)
	balanceRepo := postgres.NewEntryBalanceRepository(pool)
	usageRepo := postgres.NewEntryUsageRepository(dbWrapper)

	// ----- Services -----
	planService := plansvc.NewPlanService(planRepo, logger)
	benefitService := benefitsvc.NewBenefitService(benefitRepo, planRepo, logger)
	membershipService := membershipsvc.NewMembershipService(
		membershipRepo,
		planRepo,
		clienteRepo,
		balanceRepo,
		logger,
	)
	paymentService := paymentsvc.NewPaymentService(paymentRepo, membershipRepo, logger)
	entryService := entrysvc.NewEntryService(balanceRepo, usageRepo, membershipRepo, logger)

	// ----- Handlers -----
	planHandlerInst := planHandler.NewPlanHandler(planService)
	benefitHandlerInst := benefitHandler.NewBenefitHandler(benefitService)
	membershipHandlerInst := membershipHandler.NewMembershipHandler(membershipService)
	paymentHandlerInst := paymentHandler.NewPaymentHandler(paymentService)
	entryHandlerInst := entryHandler.NewEntryHandler(entryService)

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	// ----- Router -----
	handlers := &Handlers{
		PlanHandler:       planHandlerInst,
		BenefitHandler:    benefitHandlerInst,
		MembershipHandler: membershipHandlerInst,
		PaymentHandler:    paymentHandlerInst,
		EntryHandler:      entryHandlerInst,
	}
	SetupRouter(s.engine, s.cfg, redisClient, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("Server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
