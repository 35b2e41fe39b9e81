package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"sacco-admin/internal/adapters/http/middleware"
	"sacco-admin/internal/adapters/http/routes"
	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/config"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/metrics"
	"sacco-admin/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	app   *fiber.App
	db    *gorm.DB
	store *repositories.Store
	svc   *services.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		AppMode:   "dev",
		MediaRoot: t.TempDir(),
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Ledger: config.LedgerConfig{MaxRetries: 3},
	}

	db := testutil.NewDB(t)
	store := repositories.NewStore(db)
	m := metrics.New()
	reg := services.NewRegistry(store, cfg, m, nil)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	middleware.Setup(app, cfg, m)
	routes.Setup(app, db, cfg, m, reg)

	return &testServer{app: app, db: db, store: store, svc: reg}
}

func (s *testServer) token(t *testing.T, role domain.Role) (string, *models.User) {
	t.Helper()
	user := testutil.CreateUser(t, s.store, role)
	token, err := s.svc.Issuer.AccessToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return token, user
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, body := srv.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestLedgerRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	status, body := srv.do(t, http.MethodGet, "/api/v1/savings-accounts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])

	status, _ = srv.do(t, http.MethodGet, "/api/v1/savings-accounts", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLedgerForbiddenForMembers(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.token(t, domain.RoleMember)

	status, body := srv.do(t, http.MethodGet, "/api/v1/loans", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You don't have permission to access this resource", body["error"])

	// members can still manage their own profile
	status, _ = srv.do(t, http.MethodGet, "/api/v1/users/profile", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestFinanceOfficerCannotManageContent(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.token(t, domain.RoleFinanceOfficer)

	status, _ := srv.do(t, http.MethodGet, "/api/v1/savings-accounts", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = srv.do(t, http.MethodGet, "/api/v1/news", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDepositAndWithdrawResponses(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.token(t, domain.RoleFinanceOfficer)
	account := testutil.CreateAccount(t, srv.store, testutil.CreateMember(t, srv.store), "1000.00")
	base := "/api/v1/savings-accounts/" + itoa(account.ID)

	status, body := srv.do(t, http.MethodPost, base+"/deposit", token, map[string]string{"amount": "500.00"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Deposit successful", body["message"])
	assert.Equal(t, "1500.00", body["new_balance"])

	txn, ok := body["transaction"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "deposit", txn["transaction_type"])
	assert.NotEmpty(t, txn["transaction_id"])

	status, body = srv.do(t, http.MethodPost, base+"/withdraw", token, map[string]string{"amount": "2000"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Insufficient funds", body["error"])

	status, body = srv.do(t, http.MethodPost, base+"/withdraw", token, map[string]string{"amount": "-5"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid amount", body["error"])

	stored, err := srv.store.Accounts.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "1500.00", stored.Balance.StringFixed(2))
}

func TestDepositRejectsFractionalCents(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.token(t, domain.RoleFinanceOfficer)
	account := testutil.CreateAccount(t, srv.store, testutil.CreateMember(t, srv.store), "1000.00")

	status, body := srv.do(t, http.MethodPost, "/api/v1/savings-accounts/"+itoa(account.ID)+"/deposit", token, map[string]string{"amount": "0.004"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid amount", body["error"])
}

func TestDepositConflictReturns409(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.token(t, domain.RoleFinanceOfficer)
	account := testutil.CreateAccount(t, srv.store, testutil.CreateMember(t, srv.store), "1000.00")

	// every configured attempt sees a concurrent writer
	testutil.ConflictOnUpdate(t, srv.db, "savings_accounts", 3)

	status, body := srv.do(t, http.MethodPost, "/api/v1/savings-accounts/"+itoa(account.ID)+"/deposit", token, map[string]string{"amount": "100.00"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, body["success"])

	stored, err := srv.store.Accounts.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", stored.Balance.StringFixed(2))
}

func TestLoanLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.token(t, domain.RoleManager)
	member := testutil.CreateMember(t, srv.store)

	status, body := srv.do(t, http.MethodPost, "/api/v1/loans", token, map[string]interface{}{
		"member":        member.ID,
		"loan_type":     "education",
		"amount":        "1200",
		"interest_rate": "0",
		"term_months":   12,
		"purpose":       "Tuition",
	})
	require.Equal(t, http.StatusCreated, status, body)
	loan := body["data"].(map[string]interface{})["loan"].(map[string]interface{})
	path := "/api/v1/loans/" + itoa(uint(loan["id"].(float64)))

	status, body = srv.do(t, http.MethodPost, path+"/disburse", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Loan is not approved", body["error"])

	status, _ = srv.do(t, http.MethodPost, path+"/approve", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = srv.do(t, http.MethodPost, path+"/disburse", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "1200.00", body["remaining_balance"])

	status, body = srv.do(t, http.MethodPost, path+"/make_payment", token, map[string]string{"amount": "1200"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Payment successful", body["message"])
	assert.Equal(t, "0.00", body["remaining_balance"])
	assert.Equal(t, "completed", body["loan_status"])
}

func TestPublicFeedbackAndStaffResponse(t *testing.T) {
	srv := newTestServer(t)

	status, body := srv.do(t, http.MethodPost, "/api/v1/public/feedback", "", map[string]string{
		"name":    "Achieng",
		"email":   "achieng@example.com",
		"subject": "Opening hours",
		"message": "Are you open on Saturday?",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Thank you for your feedback", body["message"])
	fb := body["data"].(map[string]interface{})["feedback"].(map[string]interface{})
	path := "/api/v1/feedback/" + itoa(uint(fb["id"].(float64)))

	token, _ := srv.token(t, domain.RoleAdmin)

	status, body = srv.do(t, http.MethodPost, path+"/respond", token, map[string]string{"response": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Response text is required", body["error"])

	status, body = srv.do(t, http.MethodPost, path+"/respond", token, map[string]string{"response": "Yes, 9am to 1pm."})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Response sent successfully", body["message"])
}

func TestPublicNewsHidesDrafts(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, srv.store, domain.RoleAdmin)

	now := time.Now()
	require.NoError(t, srv.store.News.Create(ctx, &models.News{
		Title: "AGM notice", Content: "The AGM is on Friday.", AuthorID: author.ID, IsPublished: true, PublishedDate: &now,
	}))
	draft := &models.News{Title: "Draft", Content: "Not yet.", AuthorID: author.ID}
	require.NoError(t, srv.store.News.Create(ctx, draft))

	status, body := srv.do(t, http.MethodGet, "/api/v1/public/news", "", nil)
	require.Equal(t, http.StatusOK, status, body)
	meta := body["data"].(map[string]interface{})["meta"].(map[string]interface{})
	assert.EqualValues(t, 1, meta["total"])

	status, _ = srv.do(t, http.MethodGet, "/api/v1/public/news/"+itoa(draft.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPublicDownloadCountSkipsInactive(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	uploader := testutil.CreateUser(t, srv.store, domain.RoleAdmin)

	active := &models.Download{Title: "Bylaws", File: "downloads/bylaws.pdf", FileType: "policy", IsActive: true, UploadedByID: uploader.ID}
	require.NoError(t, srv.store.Downloads.Create(ctx, active))
	hidden := &models.Download{Title: "Old form", File: "downloads/old.pdf", FileType: "form", UploadedByID: uploader.ID}
	require.NoError(t, srv.store.Downloads.Create(ctx, hidden))

	status, body := srv.do(t, http.MethodPost, "/api/v1/public/downloads/"+itoa(active.ID)+"/increment_download", "", nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, 1, body["data"].(map[string]interface{})["download_count"])

	status, _ = srv.do(t, http.MethodPost, "/api/v1/public/downloads/"+itoa(hidden.ID)+"/increment_download", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	stored, err := srv.store.Downloads.GetByID(ctx, hidden.ID, false)
	require.NoError(t, err)
	assert.Zero(t, stored.DownloadCount)
}

func (s *testServer) upload(t *testing.T, path, token, field, filename string) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("title", "Annual general meeting"))
	part, err := form.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("<html><script>alert(1)</script></html>"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestGalleryUploadAcceptsImagesOnly(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.token(t, domain.RoleAdmin)

	for _, name := range []string{"agm.html", "agm.svg", "agm"} {
		status, body := srv.upload(t, "/api/v1/gallery", token, "image", name)
		assert.Equal(t, http.StatusBadRequest, status, name)
		assert.Equal(t, "File type not allowed", body["error"], name)
	}

	status, body := srv.upload(t, "/api/v1/gallery", token, "image", "AGM.PNG")
	require.Equal(t, http.StatusCreated, status, body)
	item := body["data"].(map[string]interface{})["gallery"].(map[string]interface{})
	assert.Regexp(t, `^gallery/[0-9a-f-]{36}\.png$`, item["image"])
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
