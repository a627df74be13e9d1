package routes

import (
	"dgl-microfin/internal/adapters/http/handlers"
	"dgl-microfin/internal/adapters/http/middleware"
	"dgl-microfin/internal/adapters/persistence/repositories"
	"dgl-microfin/internal/config"
	"dgl-microfin/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.OverdueService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	partnerRepo := repositories.NewPartnerRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	auditRepo := repositories.NewAuditRepository(db)

	// Initialize services
	auditService := services.NewAuditService(auditRepo)
	capitalService := services.NewCapitalService(loanRepo, settingsRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, auditService, cfg)
	userService := services.NewUserService(userRepo)
	memberService := services.NewMemberService(memberRepo, loanRepo, auditService)
	partnerService := services.NewPartnerService(partnerRepo)
	loanService := services.NewLoanService(loanRepo, memberRepo, partnerRepo, settingsRepo, capitalService, auditService)
	paymentService := services.NewPaymentService(loanRepo, paymentRepo, auditService)
	settingsService := services.NewSettingsService(settingsRepo, auditService)
	dashboardService := services.NewDashboardService(memberRepo, loanRepo, auditRepo, capitalService)
	overdueService := services.NewOverdueService(loanRepo, auditService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	memberHandler := handlers.NewMemberHandler(memberService, loanService)
	partnerHandler := handlers.NewPartnerHandler(partnerService)
	loanHandler := handlers.NewLoanHandler(loanService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, capitalService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Everything below requires authentication
	authed := apiV1.Group("", middleware.AuthMiddleware(cfg))

	// Member registry (agents and admins)
	memberRoutes := authed.Group("/members", middleware.AgentOrAdmin())
	setupMemberRoutes(memberRoutes, memberHandler)

	// Funding partners (admin only)
	partnerRoutes := authed.Group("/partners", middleware.AdminOnly())
	setupPartnerRoutes(partnerRoutes, partnerHandler)

	// Loans (agents and admins; approval decisions are admin only)
	loanRoutes := authed.Group("/loans", middleware.AgentOrAdmin())
	setupLoanRoutes(loanRoutes, loanHandler, paymentHandler)

	// Payments (agents and admins)
	paymentRoutes := authed.Group("/payments", middleware.AgentOrAdmin())
	paymentRoutes.Post("/", paymentHandler.Create)
	paymentRoutes.Get("/", paymentHandler.List)

	// User administration (admin only)
	userRoutes := authed.Group("/users", middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Institution settings and capital pools
	settingsRoutes := authed.Group("/settings")
	settingsRoutes.Get("/", settingsHandler.Get)
	settingsRoutes.Put("/", middleware.AdminOnly(), settingsHandler.Update)
	settingsRoutes.Get("/capital", settingsHandler.Capital)

	// Dashboard
	authed.Get("/dashboard", dashboardHandler.Overview)

	// Audit trail (admin only)
	authed.Get("/audit", middleware.AdminOnly(), auditHandler.List)

	return overdueService
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupMemberRoutes configures member registry routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/search", handler.Search)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Get("/:id/loans", handler.Loans)
}

// setupPartnerRoutes configures funding partner routes
func setupPartnerRoutes(router fiber.Router, handler *handlers.PartnerHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, loanHandler *handlers.LoanHandler, paymentHandler *handlers.PaymentHandler) {
	router.Post("/", loanHandler.Create)
	router.Post("/preview", loanHandler.Preview)
	router.Get("/", loanHandler.List)
	router.Get("/:id", loanHandler.Get)
	router.Get("/:id/payments", paymentHandler.ListByLoan)

	// Status decisions (approve, reject, disburse) are admin only
	router.Put("/:id/status", middleware.AdminOnly(), loanHandler.UpdateStatus)
}

// setupUserRoutes configures user administration routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}
