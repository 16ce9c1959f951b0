package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/rs/zerolog"
)

// LoginService checks the credentials and returns a signed token.
func (svc *Service) LoginService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err, "Invalid login payload")
		return
	}

	email := authn.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		HandleError(w, r, invalid("email and password are required"), "Incomplete login payload")
		return
	}

	user, err := svc.DB.GetUserByEmail(r.Context(), email)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve user for login")
		return
	}

	// Unknown users and wrong passwords get the same answer
	if user == nil {
		logger.Info().Str("email", email).Msg("Login for unknown email")
		HandleErrResponse(w, http.StatusUnauthorized, errors.New("Invalid email or password"))
		return
	}
	if err := authn.CheckPassword(user.PasswordHash, req.Password); err != nil {
		logger.Info().Str("user_id", user.ID.String()).Msg("Login with wrong password")
		HandleErrResponse(w, http.StatusUnauthorized, errors.New("Invalid email or password"))
		return
	}

	token, err := svc.Tokens.Issue(*user)
	if err != nil {
		HandleError(w, r, err, "Failed to issue token")
		return
	}

	logger.Info().Str("user_id", user.ID.String()).Str("role", string(user.Role)).Msg("User logged in")
	WriteResponse(w, http.StatusOK, models.LoginResponse{Token: token, User: *user})
}

// MeService returns the user the token belongs to.
func (svc *Service) MeService(w http.ResponseWriter, r *http.Request) {

	_, userID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	user, err := svc.DB.GetUser(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve current user")
		return
	}

	// The account was removed after the token was issued
	if user == nil {
		HandleErrResponse(w, http.StatusUnauthorized, errors.New("invalid token"))
		return
	}

	WriteResponse(w, http.StatusOK, *user)
}

// HealthService reports whether the database is reachable.
func (svc *Service) HealthService(w http.ResponseWriter, r *http.Request) {

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := svc.DB.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Health check failed")
		HandleErrResponse(w, http.StatusServiceUnavailable, errors.New("database unavailable"))
		return
	}

	WriteResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
