// internal/app/router.go
package app

import (
	"loyalty-service/internal/config"
	benefitHandler "loyalty-service/internal/handlers/benefits"
	entryHandler "loyalty-service/internal/handlers/entries"
	membershipHandler "loyalty-service/internal/handlers/memberships"
	paymentHandler "loyalty-service/internal/handlers/payments"
	planHandler "loyalty-service/internal/handlers/plans"
	"loyalty-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handlers struct {
	PlanHandler       *planHandler.PlanHandler
	BenefitHandler    *benefitHandler.BenefitHandler
	MembershipHandler *membershipHandler.MembershipHandler
	PaymentHandler    *paymentHandler.PaymentHandler
	EntryHandler      *entryHandler.EntryHandler
}

func SetupRouter(r *gin.Engine, cfg config.AppConfig, redisClient *redis.Client, logger *zap.Logger, h *Handlers) {
	// ==================== Health Check ====================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(
		middleware.RateLimitMiddleware(redisClient, cfg.RateLimitRPM, logger),
		middleware.APIKeyMiddleware(cfg.APIKey),
	)

	// ==================== Membership Plans ====================
	plans := api.Group("/plans")
	{
		plans.GET("", h.PlanHandler.ListPlans)
		plans.POST("", h.PlanHandler.CreatePlan)
		plans.GET("/:id", h.PlanHandler.GetPlan)
		plans.PUT("/:id", h.PlanHandler.UpdatePlan)
		plans.DELETE("/:id", h.PlanHandler.DeletePlan)
	}

	// ==================== Plan Benefits ====================
	benefits := api.Group("/benefits")
	{
		benefits.GET("", h.BenefitHandler.ListBenefits)
		benefits.POST("", h.BenefitHandler.CreateBenefit)
		benefits.GET("/:id", h.BenefitHandler.GetBenefit)
		benefits.PUT("/:id", h.BenefitHandler.UpdateBenefit)
		benefits.DELETE("/:id", h.BenefitHandler.DeleteBenefit)
	}

	// ==================== Customer Memberships ====================
	memberships := api.Group("/memberships")
	{
		memberships.GET("", h.MembershipHandler.ListMemberships)
		memberships.POST("", h.MembershipHandler.CreateMembership)
		memberships.GET("/status/:codCliente", h.MembershipHandler.GetStatus)
		memberships.GET("/customer/:codCliente/status", h.MembershipHandler.GetStatus)
		memberships.GET("/:id", h.MembershipHandler.GetMembership)
		memberships.PUT("/:id", h.MembershipHandler.UpdateMembership)
		memberships.DELETE("/:id", h.MembershipHandler.DeactivateMembership)

		// Entry balances hang off their owning membership.
		memberships.GET("/:id/balances", h.EntryHandler.ListBalances)
		memberships.POST("/:id/balances", h.EntryHandler.CreateBalance)
	}

	// ==================== Membership Payments ====================
	payments := api.Group("/payments")
	{
		payments.GET("", h.PaymentHandler.ListPayments)
		payments.POST("", h.PaymentHandler.CreatePayment)
		payments.GET("/:id", h.PaymentHandler.GetPayment)
		payments.PUT("/:id", h.PaymentHandler.UpdatePayment)
		payments.DELETE("/:id", h.PaymentHandler.DeletePayment)
	}

	// ==================== Entry Balances & Usages ====================
	balances := api.Group("/balances")
	{
		balances.PUT("/:id", h.EntryHandler.UpdateBalance)
		balances.GET("/:id/usages", h.EntryHandler.ListUsages)
		balances.POST("/:id/usages", h.EntryHandler.RecordUsage)
	}
}
