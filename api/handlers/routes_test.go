package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/middleware"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/services"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/appconfig"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *mux.Router
	db     *services.MockAssetDB
	issuer *authn.Issuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	issuer, err := authn.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	mockDB := new(services.MockAssetDB)
	svc := &services.Service{
		Config: &appconfig.Config{
			Pagination: appconfig.PaginationConfig{DefaultLimit: 20, MaxLimit: 100},
		},
		DB:     mockDB,
		Tokens: issuer,
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.WithLogger)
	RegisterRoutes(api, svc, issuer)

	return &testServer{router: r, db: mockDB, issuer: issuer}
}

func (s *testServer) do(t *testing.T, role models.Role, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if role != "" {
		locationID := uuid.New()
		caller := models.User{ID: uuid.New(), Email: "caller@example.org", Role: role, LocationID: &locationID}
		token, err := s.issuer.Issue(caller)
		require.NoError(t, err)
		req.Header.Set(middleware.TokenHeader, token)
		s.db.On("GetUser", mock.Anything, caller.ID).Return(&caller, nil).Maybe()
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestRoutes_PublicEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.db.On("Ping", mock.Anything).Return(nil)
	s.db.On("GetUserByEmail", mock.Anything, "nobody@example.org").Return(nil, nil)

	w := s.do(t, "", http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "", http.MethodPost, "/api/auth/login", `{"email":"nobody@example.org","password":"password123"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestRoutes_TokenRequired(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/api/dashboard", "/api/assets", "/api/auth/me", "/api/locations"} {
		w := s.do(t, "", http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
}

func TestRoutes_RoleGates(t *testing.T) {
	tests := []struct {
		role   models.Role
		method string
		target string
	}{
		{models.RoleUser, http.MethodPost, "/api/assets"},
		{models.RoleUser, http.MethodPost, "/api/assets/" + uuid.NewString() + "/assign"},
		{models.RoleUser, http.MethodGet, "/api/assets/" + uuid.NewString() + "/history"},
		{models.RoleUser, http.MethodGet, "/api/reports/depreciation"},
		{models.RoleUser, http.MethodGet, "/api/users"},
		{models.RoleUser, http.MethodPost, "/api/vendors"},
		{models.RoleAdmin, http.MethodPost, "/api/locations"},
		{models.RoleAdmin, http.MethodPut, "/api/categories/" + uuid.NewString()},
		{models.RoleAdmin, http.MethodDelete, "/api/programmes/" + uuid.NewString()},
		{models.RoleAdmin, http.MethodDelete, "/api/users/" + uuid.NewString()},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.method+" "+tt.target, func(t *testing.T) {
			s := newTestServer(t)
			w := s.do(t, tt.role, tt.method, tt.target, "{}")
			assert.Equal(t, http.StatusForbidden, w.Code)
			for _, call := range s.db.Calls {
				assert.Equal(t, "GetUser", call.Method, "only the caller lookup may reach the database")
			}
		})
	}
}

func TestRoutes_UserReadsCatalog(t *testing.T) {
	s := newTestServer(t)
	s.db.On("ListLocations", mock.Anything, "head", 20, 0).Return([]models.Location{{Name: "Head Office"}}, 1, nil)

	w := s.do(t, models.RoleUser, http.MethodGet, "/api/locations?q=head", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Head Office")
	s.db.AssertExpectations(t)
}

func TestRoutes_SuggestIsNotAnID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, models.RoleSuperuser, http.MethodGet, "/api/users/suggest?q=", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = s.do(t, models.RoleAdmin, http.MethodGet, "/api/assets/suggest?q=", "")
	assert.Equal(t, http.StatusOK, w.Code)
	s.db.AssertNotCalled(t, "GetAsset", mock.Anything, mock.Anything)
}

func TestRoutes_UnmatchedRequestsGetJSONNotFound(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodPatch, "/api/assets"},
		{http.MethodGet, "/api/warehouses"},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			w := s.do(t, models.RoleSuperuser, tc.method, tc.target, "")
			assert.Equal(t, http.StatusNotFound, w.Code)

			var resp models.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "not_found", resp.ErrorCode)
			assert.Equal(t, "no such endpoint", resp.ErrorDetails)
		})
	}
	s.db.AssertNotCalled(t, "ListAssets", mock.Anything, mock.Anything)
}
