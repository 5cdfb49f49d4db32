package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/infra"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/security"
)

type sentCode struct {
	To   string
	Name string
	Code string
}

// fakeMailer records what would have been sent so tests can read the codes
// back out.
type fakeMailer struct {
	mu            sync.Mutex
	verifications []sentCode
	resets        []sentCode
	admins        []string
	fail          bool
}

func (f *fakeMailer) SendVerificationCode(_ context.Context, to, name, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifications = append(f.verifications, sentCode{To: to, Name: name, Code: code})
	if f.fail {
		return assert.AnError
	}
	return nil
}

func (f *fakeMailer) SendResetCode(_ context.Context, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, sentCode{To: to, Code: code})
	if f.fail {
		return assert.AnError
	}
	return nil
}

func (f *fakeMailer) SendAdminCreated(_ context.Context, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.admins = append(f.admins, to)
	return nil
}

func (f *fakeMailer) lastVerification(t *testing.T) sentCode {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.verifications)
	return f.verifications[len(f.verifications)-1]
}

func (f *fakeMailer) lastReset(t *testing.T) sentCode {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.resets)
	return f.resets[len(f.resets)-1]
}

func newTestApp(t *testing.T) (*fiber.App, domain.AccountRepo, *fakeMailer) {
	t.Helper()
	repo := infra.NewMemAccountRepo()
	fm := &fakeMailer{}
	m := &Module{
		accounts:  repo,
		jwtSecret: []byte("test-secret"),
		accessTTL: time.Hour,
		mailer:    fm,
	}
	app := fiber.New()
	m.Register(app)
	return app, repo, fm
}

func post(t *testing.T, app *fiber.App, path string, body any, headers ...map[string]string) (int, map[string]any) {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func signup(t *testing.T, app *fiber.App, fm *fakeMailer, email, name, password string) {
	t.Helper()
	status, _ := post(t, app, "/auth/send-code", fiber.Map{
		"email": email, "name": name, "password": password,
	})
	require.Equal(t, http.StatusOK, status)
	status, _ = post(t, app, "/auth/verify-code", fiber.Map{
		"email": email, "code": fm.lastVerification(t).Code,
	})
	require.Equal(t, http.StatusOK, status)
}

func TestSignupVerifyLoginRoundTrip(t *testing.T) {
	app, _, fm := newTestApp(t)

	status, body := post(t, app, "/auth/send-code", fiber.Map{
		"email": "a@x.com", "name": "Ada", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Verification code sent to email", body["message"])

	sent := fm.lastVerification(t)
	assert.Equal(t, "a@x.com", sent.To)
	assert.Equal(t, "Ada", sent.Name)
	require.Len(t, sent.Code, 6)

	// wrong code is rejected and does not burn the real one
	status, body = post(t, app, "/auth/verify-code", fiber.Map{"email": "a@x.com", "code": "000000"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_CODE", body["error_code"])

	status, body = post(t, app, "/auth/verify-code", fiber.Map{"email": "a@x.com", "code": sent.Code})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "student", user["role"])
	assert.Equal(t, "Ada", user["name"])
	assert.Equal(t, "a@x.com", user["email"])

	status, body = post(t, app, "/auth/login", fiber.Map{"email": "a@x.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
	// login carries only token and user
	assert.NotContains(t, body, "message")
	user = body["user"].(map[string]any)
	assert.Equal(t, "Ada", user["name"])

	status, body = post(t, app, "/auth/login", fiber.Map{"email": "a@x.com", "password": "wrongpass"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_CREDENTIALS", body["error_code"])
}

func TestSendCodeValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	status, body := post(t, app, "/auth/send-code", fiber.Map{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])

	status, body = post(t, app, "/auth/send-code", fiber.Map{
		"email": "not-an-email", "name": "Ada", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])

	status, body = post(t, app, "/auth/send-code", fiber.Map{
		"email": "a@x.com", "name": "Ada", "password": "secret123", "role": "wizard",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
}

func TestVerifyGuardsInOrder(t *testing.T) {
	app, repo, fm := newTestApp(t)

	status, body := post(t, app, "/auth/verify-code", fiber.Map{"email": "ghost@x.com", "code": "123456"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["error_code"])

	signup(t, app, fm, "a@x.com", "Ada", "secret123")

	// already verified wins over everything else
	status, body = post(t, app, "/auth/verify-code", fiber.Map{"email": "a@x.com", "code": "000000"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ALREADY_VERIFIED", body["error_code"])

	// expired code: stage a signup whose code is already past its window
	_, err := repo.UpsertPendingSignup("b@x.com", domain.PendingSignup{
		Name: "Bob", Password: "pw", Role: domain.RoleStudent,
		Code: "654321", Expires: time.Now().Add(-time.Second),
	})
	require.NoError(t, err)
	status, body = post(t, app, "/auth/verify-code", fiber.Map{"email": "b@x.com", "code": "654321"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CODE_EXPIRED", body["error_code"])
}

func TestReissueInvalidatesPreviousCode(t *testing.T) {
	app, _, fm := newTestApp(t)

	status, _ := post(t, app, "/auth/send-code", fiber.Map{"email": "a@x.com", "name": "Ada", "password": "secret123"})
	require.Equal(t, http.StatusOK, status)
	first := fm.lastVerification(t).Code

	status, _ = post(t, app, "/auth/send-code", fiber.Map{"email": "a@x.com", "name": "Ada", "password": "secret123"})
	require.Equal(t, http.StatusOK, status)
	second := fm.lastVerification(t).Code

	if first == second {
		t.Skip("generated codes collided; nothing to assert")
	}

	status, body := post(t, app, "/auth/verify-code", fiber.Map{"email": "a@x.com", "code": first})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_CODE", body["error_code"])

	status, _ = post(t, app, "/auth/verify-code", fiber.Map{"email": "a@x.com", "code": second})
	assert.Equal(t, http.StatusOK, status)
}

func TestLoginRequiresVerification(t *testing.T) {
	app, _, _ := newTestApp(t)

	status, _ := post(t, app, "/auth/send-code", fiber.Map{"email": "a@x.com", "name": "Ada", "password": "secret123"})
	require.Equal(t, http.StatusOK, status)

	// correct password, still unverified
	status, body := post(t, app, "/auth/login", fiber.Map{"email": "a@x.com", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EMAIL_NOT_VERIFIED", body["error_code"])
}

func TestSendCodeSurvivesMailFailure(t *testing.T) {
	app, repo, fm := newTestApp(t)
	fm.fail = true

	status, body := post(t, app, "/auth/send-code", fiber.Map{"email": "a@x.com", "name": "Ada", "password": "secret123"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Verification code sent to email", body["message"])

	a, err := repo.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, a.VerificationCode, "mutation survives the failed send")
}

func TestForgotPasswordIsUniform(t *testing.T) {
	app, repo, fm := newTestApp(t)
	signup(t, app, fm, "a@x.com", "Ada", "secret123")

	status, known := post(t, app, "/auth/forgot-password", fiber.Map{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, status)
	status, unknown := post(t, app, "/auth/forgot-password", fiber.Map{"email": "ghost@x.com"})
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, known, unknown, "response must not reveal whether the account exists")

	exists, err := repo.ExistsByEmail("ghost@x.com")
	require.NoError(t, err)
	assert.False(t, exists, "unknown address causes no writes")
}

func TestPasswordResetFlow(t *testing.T) {
	app, _, fm := newTestApp(t)
	signup(t, app, fm, "a@x.com", "Ada", "secret123")

	status, _ := post(t, app, "/auth/forgot-password", fiber.Map{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, status)
	code := fm.lastReset(t).Code

	// the read-only check does not consume the code
	status, _ = post(t, app, "/auth/verify-reset-code", fiber.Map{"email": "a@x.com", "code": code})
	require.Equal(t, http.StatusOK, status)
	status, _ = post(t, app, "/auth/verify-reset-code", fiber.Map{"email": "a@x.com", "code": code})
	require.Equal(t, http.StatusOK, status)

	status, _ = post(t, app, "/auth/reset-password", fiber.Map{"email": "a@x.com", "code": code, "password": "newpass456"})
	require.Equal(t, http.StatusOK, status)

	status, body := post(t, app, "/auth/login", fiber.Map{"email": "a@x.com", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_CREDENTIALS", body["error_code"])

	status, _ = post(t, app, "/auth/login", fiber.Map{"email": "a@x.com", "password": "newpass456"})
	assert.Equal(t, http.StatusOK, status)

	// reset consumed the code
	status, body = post(t, app, "/auth/reset-password", fiber.Map{"email": "a@x.com", "code": code, "password": "thirdpass"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_CODE", body["error_code"])
}

func TestResetCodeExpired(t *testing.T) {
	app, repo, fm := newTestApp(t)
	signup(t, app, fm, "a@x.com", "Ada", "secret123")

	a, err := repo.GetByEmail("a@x.com")
	require.NoError(t, err)
	require.NoError(t, repo.SetResetCode(a.ID, "314159", time.Now().Add(-time.Minute)))

	status, body := post(t, app, "/auth/reset-password", fiber.Map{"email": "a@x.com", "code": "314159", "password": "newpass456"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CODE_EXPIRED", body["error_code"])

	status, body = post(t, app, "/auth/verify-reset-code", fiber.Map{"email": "a@x.com", "code": "314159"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CODE_EXPIRED", body["error_code"])
}

func TestCreateAdminRequiresAdminToken(t *testing.T) {
	app, repo, fm := newTestApp(t)

	req := fiber.Map{"name": "Root", "email": "root@x.com", "password": "rootpass1"}

	status, body := post(t, app, "/admin/create", req)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body["error_code"])

	signup(t, app, fm, "a@x.com", "Ada", "secret123")
	a, err := repo.GetByEmail("a@x.com")
	require.NoError(t, err)

	mgr := security.NewJWTManager("test-secret", time.Hour)
	studentToken, _, err := mgr.IssueAccess(a.ID, "student")
	require.NoError(t, err)

	status, body = post(t, app, "/admin/create", req, map[string]string{"Authorization": "Bearer " + studentToken})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["error_code"])

	boss, err := repo.CreateAdmin("boss@x.com", "Boss", "hashed")
	require.NoError(t, err)
	adminToken, _, err := mgr.IssueAccess(boss.ID, "admin")
	require.NoError(t, err)
	auth := map[string]string{"Authorization": "Bearer " + adminToken}

	status, body = post(t, app, "/admin/create", req, auth)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Admin created successfully", body["message"])

	// new admin can log in straight away, no code flow
	status, _ = post(t, app, "/auth/login", fiber.Map{"email": "root@x.com", "password": "rootpass1"})
	assert.Equal(t, http.StatusOK, status)

	// duplicate identity is a hard conflict on the admin path
	status, body = post(t, app, "/admin/create", req, auth)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_TAKEN", body["error_code"])
}
