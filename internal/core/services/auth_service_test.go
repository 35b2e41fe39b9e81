package services_test

import (
	"context"
	"errors"
	"testing"

	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/jwt"
	"sacco-admin/internal/pkg/password"
	"sacco-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, mailer services.Mailer) (*services.AuthService, *repositories.Store) {
	t.Helper()
	store := testutil.NewStore(t)
	notifier := services.NewNotificationService(mailer, store.Users, "")
	issuer := jwt.NewIssuer("access-secret", "refresh-secret", 15, 7)
	return services.NewAuthService(store, issuer, notifier), store
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t, nil)

	resp, err := svc.Register(ctx, &services.RegisterInput{
		Username:        "wanjiku",
		Email:           "wanjiku@example.com",
		Password:        "longenough",
		PasswordConfirm: "longenough",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleMember), resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	_, err = svc.Register(ctx, &services.RegisterInput{
		Username:        "wanjiku",
		Email:           "other@example.com",
		Password:        "longenough",
		PasswordConfirm: "longenough",
	})
	assert.ErrorIs(t, err, services.ErrUserAlreadyExists)

	_, err = svc.Login(ctx, &services.LoginInput{Username: "wanjiku", Password: "wrong-password"}, "127.0.0.1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	login, err := svc.Login(ctx, &services.LoginInput{Username: "wanjiku", Password: "longenough"}, "127.0.0.1")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "wanjiku", claims.Username)
}

func TestRegisterValidatesPassword(t *testing.T) {
	svc, _ := newAuthService(t, nil)

	_, err := svc.Register(context.Background(), &services.RegisterInput{
		Username: "short", Email: "s@example.com", Password: "abc", PasswordConfirm: "abc",
	})
	assert.ErrorIs(t, err, services.ErrPasswordTooShort)

	_, err = svc.Register(context.Background(), &services.RegisterInput{
		Username: "typo", Email: "t@example.com", Password: "longenough", PasswordConfirm: "longenuogh",
	})
	assert.ErrorIs(t, err, services.ErrPasswordMismatch)
}

func TestRefreshRotatesAndDetectsReuse(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t, nil)
	user := testutil.CreateUser(t, store, domain.RoleManager)

	first, err := svc.Login(ctx, &services.LoginInput{Username: user.Username, Password: testutil.Password}, "10.0.0.2")
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// presenting the rotated token again revokes the whole family
	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)

	_, err = svc.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)
}

func TestRefreshReuseReportsRevocationFailure(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	store := repositories.NewStore(db)
	notifier := services.NewNotificationService(nil, store.Users, "")
	svc := services.NewAuthService(store, jwt.NewIssuer("access-secret", "refresh-secret", 15, 7), notifier)
	user := testutil.CreateUser(t, store, domain.RoleManager)

	first, err := svc.Login(ctx, &services.LoginInput{Username: user.Username, Password: testutil.Password}, "10.0.0.2")
	require.NoError(t, err)
	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)

	dbDown := errors.New("database is locked")
	testutil.FailOnUpdate(t, db, "refresh_tokens", dbDown)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)
	assert.ErrorIs(t, err, dbDown)

	live, err := store.RefreshTokens.GetByTokenHash(ctx, password.HashToken(second.RefreshToken))
	require.NoError(t, err)
	assert.False(t, live.IsRevoked())
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t, nil)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestLoginInactiveUser(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t, nil)
	user := testutil.CreateUser(t, store, domain.RoleMember)
	user.IsActive = false
	require.NoError(t, store.Users.Update(ctx, user))

	_, err := svc.Login(ctx, &services.LoginInput{Username: user.Username, Password: testutil.Password}, "")
	assert.ErrorIs(t, err, services.ErrUserInactive)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t, nil)
	user := testutil.CreateUser(t, store, domain.RoleMember)

	session, err := svc.Login(ctx, &services.LoginInput{Username: user.Username, Password: testutil.Password}, "")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, &services.ChangePasswordInput{
		OldPassword:        "not-the-password",
		NewPassword:        "brand-new-pass",
		NewPasswordConfirm: "brand-new-pass",
	})
	assert.ErrorIs(t, err, services.ErrOldPasswordWrong)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, &services.ChangePasswordInput{
		OldPassword:        testutil.Password,
		NewPassword:        "brand-new-pass",
		NewPasswordConfirm: "brand-new-pass",
	}))

	_, err = svc.Refresh(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)

	_, err = svc.Login(ctx, &services.LoginInput{Username: user.Username, Password: "brand-new-pass"}, "")
	assert.NoError(t, err)
}

func TestAdminLoginNotifiesAdministrators(t *testing.T) {
	mailer := &fakeMailer{}
	svc, store := newAuthService(t, mailer)
	admin := testutil.CreateUser(t, store, domain.RoleAdmin)

	_, err := svc.Login(context.Background(), &services.LoginInput{Username: admin.Username, Password: testutil.Password}, "192.168.1.9")
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Administrative login", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].to, admin.Email)
	assert.Contains(t, mailer.sent[0].body, "192.168.1.9")
}
