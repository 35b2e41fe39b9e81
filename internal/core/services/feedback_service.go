package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
)

// Feedback errors
var (
	ErrFeedbackNotFound = &domain.NotFoundError{Resource: "feedback"}
	ErrResponseRequired = errors.New("response text is required")
)

// FeedbackService handles messages from the public site and staff replies
type FeedbackService struct {
	store    *repositories.Store
	notifier *NotificationService
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(store *repositories.Store, notifier *NotificationService) *FeedbackService {
	return &FeedbackService{store: store, notifier: notifier}
}

// SubmitFeedbackInput represents a public feedback submission
type SubmitFeedbackInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

// UpdateFeedbackInput represents staff edits to feedback handling state
type UpdateFeedbackInput struct {
	Status *string `json:"status"`
}

// Submit records feedback as new and sends the notification emails
func (s *FeedbackService) Submit(ctx context.Context, input *SubmitFeedbackInput) (*models.CustomerFeedback, error) {
	for _, f := range [][2]string{
		{"name", input.Name}, {"email", input.Email}, {"subject", input.Subject}, {"message", input.Message},
	} {
		if err := required(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	if !strings.Contains(input.Email, "@") {
		return nil, domain.Invalid("email", "is not a valid address")
	}

	fb := &models.CustomerFeedback{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   input.Phone,
		Subject: strings.TrimSpace(input.Subject),
		Message: input.Message,
		Status:  string(domain.FeedbackStatusNew),
	}
	if err := s.store.Feedback.Create(ctx, fb); err != nil {
		return nil, err
	}

	slog.Info("Feedback received", "id", fb.ID, "subject", fb.Subject)
	s.notifier.NotifyFeedbackReceived(ctx, fb)
	return fb, nil
}

func (s *FeedbackService) Get(ctx context.Context, id uint) (*models.CustomerFeedback, error) {
	fb, err := s.store.Feedback.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrFeedbackNotFound)
	}
	return fb, nil
}

func (s *FeedbackService) List(ctx context.Context, status string, offset, limit int) ([]*models.CustomerFeedback, int64, error) {
	return s.store.Feedback.List(ctx, status, offset, limit)
}

// Update changes the handling status
func (s *FeedbackService) Update(ctx context.Context, id uint, input *UpdateFeedbackInput) (*models.CustomerFeedback, error) {
	fb, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Status != nil {
		if !domain.FeedbackStatus(*input.Status).IsValid() {
			return nil, domain.Invalid("status", "must be new, in_progress, resolved or closed")
		}
		fb.Status = *input.Status
	}
	if err := s.store.Feedback.Update(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) Delete(ctx context.Context, id uint) error {
	return notFound(s.store.Feedback.Delete(ctx, id), ErrFeedbackNotFound)
}

// Respond stores the staff reply, resolves the feedback and emails the customer
func (s *FeedbackService) Respond(ctx context.Context, id uint, responderID uint, response string) (*models.CustomerFeedback, error) {
	if strings.TrimSpace(response) == "" {
		return nil, ErrResponseRequired
	}

	fb, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	fb.AdminResponse = &response
	fb.RespondedByID = &responderID
	fb.ResponseDate = &now
	fb.Status = string(domain.FeedbackStatusResolved)
	if err := s.store.Feedback.Update(ctx, fb); err != nil {
		return nil, err
	}

	slog.Info("Feedback answered", "id", fb.ID, "by", responderID)
	s.notifier.NotifyFeedbackResponse(ctx, fb)
	return s.Get(ctx, id)
}
