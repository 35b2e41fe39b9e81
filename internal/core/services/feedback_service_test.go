package services_test

import (
	"context"
	"errors"
	"testing"

	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

// fakeMailer records messages instead of dialing SMTP
type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to []string, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return m.err
}

func newFeedbackService(t *testing.T, mailer services.Mailer, adminEmail string) (*services.FeedbackService, *repositories.Store) {
	t.Helper()
	store := testutil.NewStore(t)
	notifier := services.NewNotificationService(mailer, store.Users, adminEmail)
	return services.NewFeedbackService(store, notifier), store
}

func submission() *services.SubmitFeedbackInput {
	return &services.SubmitFeedbackInput{
		Name:    "Otieno",
		Email:   "otieno@example.com",
		Subject: "Loan statement",
		Message: "Please send my statement.",
	}
}

func TestSubmitFeedbackNotifiesAdminAndSender(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _ := newFeedbackService(t, mailer, "office@sacco.local")

	fb, err := svc.Submit(context.Background(), submission())
	require.NoError(t, err)
	assert.Equal(t, string(domain.FeedbackStatusNew), fb.Status)

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, []string{"office@sacco.local"}, mailer.sent[0].to)
	assert.Equal(t, "New feedback: Loan statement", mailer.sent[0].subject)
	assert.Equal(t, []string{"otieno@example.com"}, mailer.sent[1].to)
}

func TestSubmitFeedbackValidates(t *testing.T) {
	svc, _ := newFeedbackService(t, nil, "")

	input := submission()
	input.Message = "  "
	_, err := svc.Submit(context.Background(), input)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	input = submission()
	input.Email = "not-an-email"
	_, err = svc.Submit(context.Background(), input)
	assert.ErrorAs(t, err, &vErr)
}

func TestRespondResolvesAndEmailsCustomer(t *testing.T) {
	ctx := context.Background()
	mailer := &fakeMailer{}
	svc, store := newFeedbackService(t, mailer, "office@sacco.local")
	staff := testutil.CreateUser(t, store, domain.RoleManager)

	fb, err := svc.Submit(ctx, submission())
	require.NoError(t, err)
	mailer.sent = nil

	answered, err := svc.Respond(ctx, fb.ID, staff.ID, "Statement attached.")
	require.NoError(t, err)
	assert.Equal(t, string(domain.FeedbackStatusResolved), answered.Status)
	require.NotNil(t, answered.AdminResponse)
	assert.Equal(t, "Statement attached.", *answered.AdminResponse)
	require.NotNil(t, answered.RespondedByID)
	assert.Equal(t, staff.ID, *answered.RespondedByID)
	assert.NotNil(t, answered.ResponseDate)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Re: Loan statement", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].body, "Statement attached.")
}

func TestRespondRequiresText(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFeedbackService(t, nil, "")

	fb, err := svc.Submit(ctx, submission())
	require.NoError(t, err)

	_, err = svc.Respond(ctx, fb.ID, 1, "   ")
	assert.ErrorIs(t, err, services.ErrResponseRequired)

	stored, err := svc.Get(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.FeedbackStatusNew), stored.Status)
}

func TestMailFailureDoesNotFailSubmission(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("connection refused")}
	svc, _ := newFeedbackService(t, mailer, "office@sacco.local")

	_, err := svc.Submit(context.Background(), submission())
	assert.NoError(t, err)
	assert.Len(t, mailer.sent, 2)
}
