package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/config"
	"sacco-admin/internal/core/domain"

	"gopkg.in/gomail.v2"
)

// Mailer delivers a plain-text email
type Mailer interface {
	Send(to []string, subject, body string) error
}

// SMTPMailer sends mail through gomail's SMTP dialer
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer from MAIL_* settings
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// NotificationService sends best-effort emails; failures are logged, never returned
type NotificationService struct {
	mailer     Mailer
	users      repositories.UserRepository
	adminEmail string
}

// NewNotificationService creates a notification service. A nil mailer disables delivery.
func NewNotificationService(mailer Mailer, users repositories.UserRepository, adminEmail string) *NotificationService {
	return &NotificationService{mailer: mailer, users: users, adminEmail: adminEmail}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s != nil && s.mailer != nil
}

func (s *NotificationService) send(to []string, subject, body string) {
	if !s.IsEnabled() || len(to) == 0 {
		return
	}
	if err := s.mailer.Send(to, subject, body); err != nil {
		slog.Warn("Email delivery failed", "subject", subject, "to", strings.Join(to, ","), "error", err)
		return
	}
	slog.Debug("Email sent", "subject", subject, "recipients", len(to))
}

// adminRecipients prefers MAIL_ADMIN, otherwise every admin and manager on file
func (s *NotificationService) adminRecipients(ctx context.Context) []string {
	if s.adminEmail != "" {
		return []string{s.adminEmail}
	}
	emails, err := s.users.ListEmailsByRoles(ctx, string(domain.RoleAdmin), string(domain.RoleManager))
	if err != nil {
		slog.Warn("Failed to resolve admin recipients", "error", err)
		return nil
	}
	return emails
}

// NotifyAdminLogin tells administrators that a privileged account signed in
func (s *NotificationService) NotifyAdminLogin(ctx context.Context, user *models.User, ip string) {
	if !s.IsEnabled() {
		return
	}
	body := fmt.Sprintf("User %s (%s) with role %s signed in from %s.",
		user.Username, user.FullName(), user.Role, ip)
	s.send(s.adminRecipients(ctx), "Administrative login", body)
}

// NotifyFeedbackReceived alerts administrators and confirms receipt to the sender
func (s *NotificationService) NotifyFeedbackReceived(ctx context.Context, fb *models.CustomerFeedback) {
	if !s.IsEnabled() {
		return
	}
	s.send(s.adminRecipients(ctx), "New feedback: "+fb.Subject,
		fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s", fb.Name, fb.Email, deref(fb.Phone), fb.Message))

	s.send([]string{fb.Email}, "We received your feedback",
		fmt.Sprintf("Dear %s,\n\nThank you for contacting us about \"%s\". Our team will get back to you shortly.",
			fb.Name, fb.Subject))
}

// NotifyFeedbackResponse sends the staff response to the customer
func (s *NotificationService) NotifyFeedbackResponse(ctx context.Context, fb *models.CustomerFeedback) {
	if !s.IsEnabled() {
		return
	}
	s.send([]string{fb.Email}, "Re: "+fb.Subject,
		fmt.Sprintf("Dear %s,\n\n%s", fb.Name, deref(fb.AdminResponse)))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
