package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func loginRequest(t *testing.T, email, password string) *http.Request {
	body, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
}

func TestLoginService(t *testing.T) {
	hash, err := authn.HashPassword("correct-horse")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "ada@example.org", Role: models.RoleAdmin, PasswordHash: hash}

	mockDB := new(MockAssetDB)
	mockDB.On("GetUserByEmail", mock.Anything, "ada@example.org").Return(user, nil)
	mockDB.On("GetUserByEmail", mock.Anything, "nobody@example.org").Return(nil, nil)

	tokens := new(MockTokenIssuer)
	tokens.On("Issue", *user).Return("signed-token", nil)

	svc := newTestService(mockDB)
	svc.Tokens = tokens

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		svc.LoginService(w, loginRequest(t, "  ADA@example.org ", "correct-horse"))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp models.LoginResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotContains(t, w.Body.String(), hash)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := httptest.NewRecorder()
		svc.LoginService(w, loginRequest(t, "ada@example.org", "wrong-password"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp models.Response
		decodeBody(t, w, &resp)
		assert.Equal(t, "Invalid email or password", resp.ErrorDetails)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := httptest.NewRecorder()
		svc.LoginService(w, loginRequest(t, "nobody@example.org", "whatever-pass"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		svc.LoginService(w, loginRequest(t, "", ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	tokens.AssertNumberOfCalls(t, "Issue", 1)
}

func TestMeService(t *testing.T) {
	userID := uuid.New()
	mockDB := new(MockAssetDB)
	mockDB.On("GetUser", mock.Anything, userID).Return(&models.User{ID: userID, FirstName: "Ada"}, nil)

	svc := newTestService(mockDB)

	w := httptest.NewRecorder()
	r := withClaims(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), models.RoleUser, userID, nil)
	svc.MeService(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var user models.User
	decodeBody(t, w, &user)
	assert.Equal(t, "Ada", user.FirstName)

	// Without claims the caller is sent back to the login page
	w = httptest.NewRecorder()
	svc.MeService(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthService(t *testing.T) {
	mockDB := new(MockAssetDB)
	mockDB.On("Ping", mock.Anything).Return(nil).Once()
	mockDB.On("Ping", mock.Anything).Return(errors.New("down")).Once()

	svc := newTestService(mockDB)

	w := httptest.NewRecorder()
	svc.HealthService(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	svc.HealthService(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
