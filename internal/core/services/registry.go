package services

import (
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/config"
	"sacco-admin/internal/pkg/jwt"
	"sacco-admin/internal/pkg/metrics"
)

// Registry holds every service wired against one store
type Registry struct {
	Issuer        *jwt.Issuer
	Notifications *NotificationService
	Auth          *AuthService
	Users         *UserService
	Members       *MemberService
	Accounts      *AccountService
	Loans         *LoanService
	Transactions  *TransactionService
	Shares        *ShareService
	Dividends     *DividendService
	Content       *ContentService
	Feedback      *FeedbackService
	Settings      *SettingService
	Dashboard     *DashboardService
}

// NewRegistry builds the services. A nil mailer turns notifications off.
func NewRegistry(store *repositories.Store, cfg *config.Config, m *metrics.Metrics, mailer Mailer) *Registry {
	issuer := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTokenMins, cfg.JWT.RefreshTokenDays)
	notifier := NewNotificationService(mailer, store.Users, cfg.Mail.AdminEmail)

	return &Registry{
		Issuer:        issuer,
		Notifications: notifier,
		Auth:          NewAuthService(store, issuer, notifier),
		Users:         NewUserService(store),
		Members:       NewMemberService(store),
		Accounts:      NewAccountService(store, m, cfg.Ledger.MaxRetries),
		Loans:         NewLoanService(store, m, cfg.Ledger.MaxRetries),
		Transactions:  NewTransactionService(store),
		Shares:        NewShareService(store),
		Dividends:     NewDividendService(store, m),
		Content:       NewContentService(store),
		Feedback:      NewFeedbackService(store, notifier),
		Settings:      NewSettingService(store),
		Dashboard:     NewDashboardService(store),
	}
}
