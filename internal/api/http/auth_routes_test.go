package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/refcatalog-service/internal/api/http/handlers"
	"github.com/spec-kit/refcatalog-service/internal/auth"
	"github.com/spec-kit/refcatalog-service/internal/domain"
	"github.com/spec-kit/refcatalog-service/internal/observability"
	"github.com/spec-kit/refcatalog-service/internal/service"
)

type memoryTokenRepo struct {
	mu      sync.Mutex
	records map[string]*domain.AuthToken
}

func (m *memoryTokenRepo) Persist(_ context.Context, token *domain.AuthToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *token
	m.records[token.Token] = &copied
	return nil
}

func (m *memoryTokenRepo) IsLiveAndStored(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[token]
	return ok && rec.Live(time.Now()), nil
}

func (m *memoryTokenRepo) Touch(context.Context, string) error { return nil }

func (m *memoryTokenRepo) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, token)
	return nil
}

func (m *memoryTokenRepo) SweepExpired(context.Context) (int64, error) { return 0, nil }

type memoryUserRepo struct {
	users map[string]*domain.User
}

func (m *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = int64(len(m.users) + 1)
	copied := *user
	m.users[user.Email] = &copied
	return nil
}

func (m *memoryUserRepo) Update(context.Context, *domain.User) error { return nil }

func (m *memoryUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	userRepo := &memoryUserRepo{users: map[string]*domain.User{}}
	hash, err := auth.HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), &domain.User{
		Name:          "Alice",
		Email:         "alice@example.com",
		PasswordHash:  hash,
		EmailVerified: true,
		Status:        domain.UserStatusActive,
	}))

	tokenRepo := &memoryTokenRepo{records: map[string]*domain.AuthToken{}}
	tokenMgr := auth.NewTokenManager("route-test-secret", time.Hour, "refcatalog", "refcatalog-api")
	creds := service.NewCredentialService(userRepo, nil, true)
	sessions := service.NewSessionService(tokenMgr, tokenRepo, creds, nil, observability.NewMetrics(), zap.NewNop())
	accounts := service.NewAccountService(userRepo, nil, bcrypt.MinCost)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), "*", 0)

	authHandler := handlers.NewAuthHandler(accounts, sessions)
	app.Post("/auth/register", authHandler.Register)
	app.Post("/auth/login", authHandler.Login)
	app.Post("/auth/logout", authHandler.Logout)
	app.Get("/auth/session", authHandler.Session)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func loginToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestAuthRoutes_LoginSuccess(t *testing.T) {
	app := newTestApp(t)
	token := loginToken(t, app)

	resp, body := doJSON(t, app, http.MethodGet, "/auth/session", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, float64(1), data["user_id"])
}

func TestAuthRoutes_LoginBadPassword(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])
}

func TestAuthRoutes_LogoutRequiresToken(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
}

func TestAuthRoutes_LogoutRevokesSession(t *testing.T) {
	app := newTestApp(t)
	token := loginToken(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/auth/session", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["authenticated"])
}

func TestAuthRoutes_SessionWithoutHeader(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/auth/session", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["authenticated"])
}

func TestAuthRoutes_Register(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "hunter2",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "bob@example.com", user["email"])
}
