package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"foodbridge/internal/identity/models"
	"foodbridge/internal/identity/service"
	"foodbridge/internal/identity/store"
	"foodbridge/internal/identity/token"
	dErrors "foodbridge/pkg/domain-errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// AuthHandlerSuite wires the handler against real in-memory components.
type AuthHandlerSuite struct {
	suite.Suite
	router http.Handler
}

func (s *AuthHandlerSuite) SetupTest() {
	users := store.NewInMemoryUserStore()
	tokens := token.NewManager("test-signing-key", time.Hour)

	svc, err := service.New(users, tokens)
	s.Require().NoError(err)

	logger := testLogger()
	h := New(svc, tokens, logger)

	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) do(method, target, body, bearer string) (int, map[string]any) {
	s.T().Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

func (s *AuthHandlerSuite) registerAlice() string {
	body, _ := json.Marshal(models.RegisterRequest{
		Name: "Alice Donor", Email: "alice@example.com", Password: "hunter2", Role: "donor",
	})
	status, resp := s.do(http.MethodPost, "/auth/register", string(body), "")
	require.Equal(s.T(), http.StatusCreated, status)
	tok, _ := resp["token"].(string)
	require.NotEmpty(s.T(), tok)
	return tok
}

func (s *AuthHandlerSuite) TestRegisterLoginMeFlow() {
	s.registerAlice()

	status, resp := s.do(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"hunter2"}`, "")
	require.Equal(s.T(), http.StatusOK, status)
	tok, _ := resp["token"].(string)
	require.NotEmpty(s.T(), tok)

	status, me := s.do(http.MethodGet, "/auth/me", "", tok)
	assert.Equal(s.T(), http.StatusOK, status)
	user, ok := me["name"].(string)
	require.True(s.T(), ok)
	assert.Equal(s.T(), "Alice Donor", user)
	assert.Equal(s.T(), "donor", me["role"])
	assert.NotContains(s.T(), me, "password_hash")
}

func (s *AuthHandlerSuite) TestRegisterInvalidJSON() {
	status, body := s.do(http.MethodPost, "/auth/register", "not json", "")

	assert.Equal(s.T(), http.StatusBadRequest, status)
	assert.Equal(s.T(), string(dErrors.CodeBadRequest), body["error"])
}

func (s *AuthHandlerSuite) TestRegisterDuplicateEmail() {
	s.registerAlice()

	body, _ := json.Marshal(models.RegisterRequest{
		Name: "Other Alice", Email: "alice@example.com", Password: "hunter2", Role: "recipient",
	})
	status, resp := s.do(http.MethodPost, "/auth/register", string(body), "")

	assert.Equal(s.T(), http.StatusConflict, status)
	assert.Equal(s.T(), string(dErrors.CodeConflict), resp["error"])
}

func (s *AuthHandlerSuite) TestLoginBadCredentials() {
	s.registerAlice()

	status, resp := s.do(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`, "")

	assert.Equal(s.T(), http.StatusUnauthorized, status)
	assert.Equal(s.T(), string(dErrors.CodeUnauthorized), resp["error"])
}

func (s *AuthHandlerSuite) TestMeRequiresToken() {
	status, _ := s.do(http.MethodGet, "/auth/me", "", "")
	assert.Equal(s.T(), http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodGet, "/auth/me", "", "garbage-token")
	assert.Equal(s.T(), http.StatusUnauthorized, status)
}
