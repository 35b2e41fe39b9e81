package routes

import (
	"time"

	"sacco-admin/internal/adapters/http/handlers"
	"sacco-admin/internal/adapters/http/middleware"
	"sacco-admin/internal/config"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// publicMaxAge is the shared-cache lifetime of public content responses
const publicMaxAge = 5 * time.Minute

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, m *metrics.Metrics, svc *services.Registry) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg.AppMode)
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg)
	userHandler := handlers.NewUserHandler(svc.Users)
	memberHandler := handlers.NewMemberHandler(svc.Members)
	accountHandler := handlers.NewAccountHandler(svc.Accounts)
	loanHandler := handlers.NewLoanHandler(svc.Loans)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions)
	shareHandler := handlers.NewShareHandler(svc.Shares)
	dividendHandler := handlers.NewDividendHandler(svc.Dividends)
	contentHandler := handlers.NewContentHandler(svc.Content, cfg.MediaRoot)
	feedbackHandler := handlers.NewFeedbackHandler(svc.Feedback)
	settingHandler := handlers.NewSettingHandler(svc.Settings)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded downloads and images
	app.Static("/media", cfg.MediaRoot)

	auth := middleware.AuthMiddleware(svc.Issuer)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, auth)
	setupPublicRoutes(apiV1.Group("/public"), contentHandler, feedbackHandler)

	// Everything below requires a valid access token
	private := apiV1.Group("", auth, middleware.NoCacheHeaders())

	setupUserRoutes(private.Group("/users"), userHandler)
	setupMemberRoutes(private.Group("/members", middleware.RequireCapability(domain.CapManageMembers)), memberHandler)

	ledger := middleware.RequireCapability(domain.CapManageLedger)
	setupAccountRoutes(private.Group("/savings-accounts", ledger), accountHandler)
	setupLoanRoutes(private.Group("/loans", ledger), loanHandler)
	setupTransactionRoutes(private.Group("/transactions", ledger), transactionHandler)
	setupShareRoutes(private.Group("/shares", ledger), shareHandler)
	setupDividendRoutes(private.Group("/dividends", ledger), private.Group("/dividend-payments", ledger), dividendHandler)

	setupContentRoutes(private, middleware.RequireCapability(domain.CapManageContent), contentHandler)
	setupFeedbackRoutes(private.Group("/feedback", middleware.RequireCapability(domain.CapManageFeedback)), feedbackHandler)
	setupSettingRoutes(private.Group("/settings", middleware.RequireCapability(domain.CapManageSettings)), settingHandler)

	private.Get("/dashboard/stats", middleware.RequireCapability(domain.CapViewDashboard), dashboardHandler.Stats)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth fiber.Handler) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", auth, handler.Me)
	router.Post("/logout-all", auth, handler.LogoutAll)
	router.Post("/change-password", auth, handler.ChangePassword)
}

// setupPublicRoutes exposes published content and feedback submission without a token
func setupPublicRoutes(router fiber.Router, content *handlers.ContentHandler, feedback *handlers.FeedbackHandler) {
	cache := middleware.PublicCache(publicMaxAge)

	router.Get("/news", cache, content.ListNews(true))
	router.Get("/news/:id", cache, content.GetNews(true))
	router.Get("/faqs", cache, content.ListFAQs(true))
	router.Get("/faqs/:id", cache, content.GetFAQ(true))
	router.Get("/downloads", cache, content.ListDownloads(true))
	router.Get("/downloads/:id", cache, content.GetDownload(true))
	router.Post("/downloads/:id/increment_download", content.IncrementDownload)
	router.Get("/gallery", cache, content.ListGallery(true))
	router.Get("/gallery/:id", cache, content.GetGallery(true))
	router.Get("/contact-info", cache, content.ListContacts(true))
	router.Get("/contact-info/:id", cache, content.GetContact(true))

	router.Post("/feedback", middleware.StrictRateLimiter(), feedback.Submit)
}

// setupUserRoutes configures user management routes; profile routes are open to every authenticated user
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/profile", handler.GetProfile)
	router.Put("/profile", handler.UpdateProfile)

	admin := middleware.RequireCapability(domain.CapManageUsers)
	router.Get("/", admin, handler.ListUsers)
	router.Get("/:id", admin, handler.GetUser)
	router.Put("/:id", admin, handler.UpdateUser)
	router.Delete("/:id", admin, handler.DeleteUser)
}

func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Get("/:id/accounts", handler.Accounts)
	router.Get("/:id/loans", handler.Loans)
	router.Get("/:id/transactions", handler.Transactions)
}

func setupAccountRoutes(router fiber.Router, handler *handlers.AccountHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Post("/:id/deposit", handler.Deposit)
	router.Post("/:id/withdraw", handler.Withdraw)
}

func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Post("/:id/approve", handler.Approve)
	router.Post("/:id/reject", handler.Reject)
	router.Post("/:id/disburse", handler.Disburse)
	router.Post("/:id/make_payment", handler.MakePayment)
}

// setupTransactionRoutes is read-only: ledger entries are written by postings only
func setupTransactionRoutes(router fiber.Router, handler *handlers.TransactionHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
}

func setupShareRoutes(router fiber.Router, handler *handlers.ShareHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

func setupDividendRoutes(dividends, payments fiber.Router, handler *handlers.DividendHandler) {
	dividends.Get("/", handler.List)
	dividends.Post("/", handler.Create)
	dividends.Get("/:id", handler.Get)
	dividends.Put("/:id", handler.Update)
	dividends.Delete("/:id", handler.Delete)
	dividends.Post("/:id/calculate_payments", handler.CalculatePayments)
	dividends.Post("/:id/mark_paid", handler.MarkPaid)

	payments.Get("/", handler.ListPayments)
	payments.Get("/:id", handler.GetPayment)
}

// setupContentRoutes registers the staff side of news, FAQs, downloads, gallery and contact info
func setupContentRoutes(router fiber.Router, guard fiber.Handler, handler *handlers.ContentHandler) {
	news := router.Group("/news", guard)
	news.Get("/", handler.ListNews(false))
	news.Post("/", handler.CreateNews)
	news.Get("/:id", handler.GetNews(false))
	news.Put("/:id", handler.UpdateNews)
	news.Delete("/:id", handler.DeleteNews)

	faqs := router.Group("/faqs", guard)
	faqs.Get("/", handler.ListFAQs(false))
	faqs.Post("/", handler.CreateFAQ)
	faqs.Get("/:id", handler.GetFAQ(false))
	faqs.Put("/:id", handler.UpdateFAQ)
	faqs.Delete("/:id", handler.DeleteFAQ)

	downloads := router.Group("/downloads", guard)
	downloads.Get("/", handler.ListDownloads(false))
	downloads.Post("/", handler.CreateDownload)
	downloads.Get("/:id", handler.GetDownload(false))
	downloads.Put("/:id", handler.UpdateDownload)
	downloads.Delete("/:id", handler.DeleteDownload)

	gallery := router.Group("/gallery", guard)
	gallery.Get("/", handler.ListGallery(false))
	gallery.Post("/", handler.CreateGallery)
	gallery.Get("/:id", handler.GetGallery(false))
	gallery.Put("/:id", handler.UpdateGallery)
	gallery.Delete("/:id", handler.DeleteGallery)

	contacts := router.Group("/contact-info", guard)
	contacts.Get("/", handler.ListContacts(false))
	contacts.Post("/", handler.CreateContact)
	contacts.Get("/:id", handler.GetContact(false))
	contacts.Put("/:id", handler.UpdateContact)
	contacts.Delete("/:id", handler.DeleteContact)
}

func setupFeedbackRoutes(router fiber.Router, handler *handlers.FeedbackHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Post("/:id/respond", handler.Respond)
}

func setupSettingRoutes(router fiber.Router, handler *handlers.SettingHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/key/:key", handler.GetByKey)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}
