package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/middleware"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/appconfig"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/depreciation"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/search"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(db *MockAssetDB) *Service {
	return &Service{
		Config: &appconfig.Config{
			Pagination: appconfig.PaginationConfig{DefaultLimit: 20, MaxLimit: 100},
		},
		DB:       db,
		Notifier: nil,
	}
}

// withClaims attaches the claims of an authenticated caller to the request.
func withClaims(r *http.Request, role models.Role, userID uuid.UUID, locationID *uuid.UUID) *http.Request {
	claims := authn.Claims{
		StandardClaims: jwt.StandardClaims{Subject: userID.String()},
		Email:          "caller@example.org",
		Role:           role,
		LocationID:     locationID,
	}
	return r.WithContext(context.WithValue(r.Context(), middleware.ClaimsKey, claims))
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "Response should be valid JSON")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", invalid("name is required"), http.StatusBadRequest},
		{"bad page", search.ErrInvalidPage, http.StatusBadRequest},
		{"bad sort", fmt.Errorf("wrapped: %w", search.ErrInvalidSort), http.StatusBadRequest},
		{"bad method", depreciation.ErrUnknownMethod, http.StatusBadRequest},
		{"forbidden", models.ErrForbidden, http.StatusForbidden},
		{"not found", models.ErrNotFound, http.StatusNotFound},
		{"already assigned", models.ErrAlreadyAssigned, http.StatusConflict},
		{"not assigned", models.ErrNotAssigned, http.StatusConflict},
		{"disposed", models.ErrDisposed, http.StatusConflict},
		{"unique", fmt.Errorf("error inserting: %w", &pq.Error{Code: "23505"}), http.StatusConflict},
		{"in use", &pq.Error{Code: "23503"}, http.StatusConflict},
		{"check", &pq.Error{Code: "23514"}, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.err))
		})
	}
}

func TestHandleErrResponse(t *testing.T) {
	w := httptest.NewRecorder()
	HandleErrResponse(w, http.StatusConflict, fmt.Errorf("error inserting user: %w", &pq.Error{Code: "23505", Message: "duplicate key"}))

	var resp models.Response
	decodeBody(t, w, &resp)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, resp.Success)
	assert.Equal(t, "unique_violation", resp.ErrorCode)
	assert.Equal(t, "A record with the same value already exists", resp.ErrorDetails)

	// Internal failures never leak their cause
	w = httptest.NewRecorder()
	HandleErrResponse(w, http.StatusInternalServerError, errors.New("dial tcp 10.0.0.1:5432: refused"))
	decodeBody(t, w, &resp)
	assert.Equal(t, genericError, resp.ErrorDetails)
	assert.Equal(t, "internal_server_error", resp.ErrorCode)
}

func TestWriteResponse_Location(t *testing.T) {
	w := httptest.NewRecorder()
	WriteResponse(w, http.StatusCreated, map[string]string{"id": "x"}, "/api/assets/x")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/assets/x", w.Header().Get("Location"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "max-age=0", w.Header().Get("Cache-Control"))
}

func TestLocationScope(t *testing.T) {
	loc := uuid.New()

	assert.Nil(t, locationScope(authn.Claims{Role: models.RoleSuperuser}))
	assert.Nil(t, locationScope(authn.Claims{Role: models.RoleUser, LocationID: &loc}))
	assert.Equal(t, &loc, locationScope(authn.Claims{Role: models.RoleAdmin, LocationID: &loc}))
	assert.Equal(t, uuid.Nil, *locationScope(authn.Claims{Role: models.RoleAdmin}))

	assert.True(t, inScope(authn.Claims{Role: models.RoleAdmin, LocationID: &loc}, loc))
	assert.False(t, inScope(authn.Claims{Role: models.RoleAdmin, LocationID: &loc}, uuid.New()))
}

func TestRequired(t *testing.T) {
	err := required(map[string]string{"name": " ", "email": "", "role": "User"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Contains(t, err.Error(), "email, name is required")
	assert.NoError(t, required(map[string]string{"name": "x"}))
}
