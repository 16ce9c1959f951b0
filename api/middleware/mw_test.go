package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newIssuer(t *testing.T) *authn.Issuer {
	issuer, err := authn.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return issuer
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.Response {
	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestTokenMiddleware_MissingToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/assets", nil)
	w := httptest.NewRecorder()
	TokenMiddleware(newIssuer(t), nil)(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token missing", decodeError(t, w).ErrorDetails)
}

func TestTokenMiddleware_InvalidToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached with an invalid token")
	})

	req := httptest.NewRequest(http.MethodGet, "/assets", nil)
	req.Header.Set("token", "invalid-token")
	w := httptest.NewRecorder()
	TokenMiddleware(newIssuer(t), nil)(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", decodeError(t, w).ErrorDetails)
}

func TestTokenMiddleware_ClaimsPopulated(t *testing.T) {
	issuer := newIssuer(t)
	user := models.User{ID: uuid.New(), Email: "ada@example.org", Role: models.RoleAdmin}
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	for name, setHeader := range map[string]func(r *http.Request){
		"token header":  func(r *http.Request) { r.Header.Set("token", token) },
		"bearer header": func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
	} {
		t.Run(name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims := r.Context().Value(ClaimsKey).(authn.Claims)
				assert.Equal(t, user.ID.String(), claims.Subject)
				assert.Equal(t, models.RoleAdmin, claims.Role)
				assert.Equal(t, token, r.Context().Value(TokenKey))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/assets", nil)
			setHeader(req)
			w := httptest.NewRecorder()
			TokenMiddleware(issuer, nil)(next).ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := RequireRole(models.RoleAdmin, models.RoleSuperuser)

	tests := []struct {
		role     models.Role
		expected int
	}{
		{models.RoleUser, http.StatusForbidden},
		{models.RoleAdmin, http.StatusOK},
		{models.RoleSuperuser, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			ctx := context.WithValue(context.Background(), ClaimsKey, authn.Claims{Role: tt.role})
			req := httptest.NewRequest(http.MethodPost, "/assets", nil).WithContext(ctx)
			w := httptest.NewRecorder()
			mw(next).ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestRequireRole_NoClaims(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached without claims")
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	RequireRole(models.RoleSuperuser)(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	var u *models.User
	if v := args.Get(0); v != nil {
		u = v.(*models.User)
	}
	return u, args.Error(1)
}

func TestTokenMiddleware_ClaimsFollowStoredUser(t *testing.T) {
	issuer := newIssuer(t)
	oldLocation, newLocation := uuid.New(), uuid.New()
	issued := models.User{ID: uuid.New(), Email: "ada@example.org", Role: models.RoleSuperuser, LocationID: &oldLocation}
	token, err := issuer.Issue(issued)
	require.NoError(t, err)

	demoted := issued
	demoted.Role = models.RoleUser
	demoted.LocationID = &newLocation

	tests := []struct {
		name     string
		stored   *models.User
		err      error
		expected int
	}{
		{"demoted user", &demoted, nil, http.StatusOK},
		{"deleted user", nil, nil, http.StatusUnauthorized},
		{"lookup failure", nil, assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUsers)
			users.On("GetUser", mock.Anything, issued.ID).Return(tt.stored, tt.err)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims := r.Context().Value(ClaimsKey).(authn.Claims)
				assert.Equal(t, models.RoleUser, claims.Role)
				assert.Equal(t, &newLocation, claims.LocationID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/assets", nil)
			req.Header.Set(TokenHeader, token)
			w := httptest.NewRecorder()
			TokenMiddleware(issuer, users)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
			users.AssertExpectations(t)
		})
	}
}

func TestTokenMiddleware_DemotedUserLosesRole(t *testing.T) {
	issuer := newIssuer(t)
	issued := models.User{ID: uuid.New(), Email: "ada@example.org", Role: models.RoleSuperuser}
	token, err := issuer.Issue(issued)
	require.NoError(t, err)

	demoted := issued
	demoted.Role = models.RoleUser
	users := new(mockUsers)
	users.On("GetUser", mock.Anything, issued.ID).Return(&demoted, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached after a demotion")
	})
	handler := TokenMiddleware(issuer, users)(RequireRole(models.RoleSuperuser)(next))

	req := httptest.NewRequest(http.MethodDelete, "/users/x", nil)
	req.Header.Set(TokenHeader, token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
