package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string
type tokenKey string

const ClaimsKey contextKey = "claims"
const TokenKey tokenKey = "token"

// TokenHeader is the header the web client sends its token in.
const TokenHeader = "token"

// ClaimsParser verifies a raw token and returns its claims.
type ClaimsParser interface {
	ParseClaims(token string) (authn.Claims, error)
}

// UserLoader returns the stored user, or nil when it no longer exists.
type UserLoader interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.Response{
		Success:      0,
		ErrorCode:    code,
		ErrorDetails: details,
	})
}

// tokenFromRequest reads the token header, falling back to a bearer
// Authorization header.
func tokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}
	return strings.TrimSpace(token)
}

// TokenMiddleware parses the JWT token and adds claims to the request context.
// When users is set, the role, location and email are taken from the stored
// user so that a demoted or deleted account loses access immediately.
func TokenMiddleware(parser ClaimsParser, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				logger := zerolog.Ctx(r.Context()).With().
					Str("handler", "TokenMiddleware").Logger()

				token := tokenFromRequest(r)
				if token == "" {
					logger.Debug().Msg("token missing")
					writeError(w, http.StatusUnauthorized, "unauthorized", "token missing")
					return
				}

				// Parse the token for JWT claims
				claims, err := parser.ParseClaims(token)
				if err != nil {
					logger.Warn().Err(err).Msg("invalid token")
					writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
					return
				}

				if users != nil {
					if claims, err = refreshClaims(r.Context(), users, claims); err != nil {
						if errors.Is(err, errUnknownUser) {
							logger.Warn().Str("subject", claims.Subject).Msg("token for unknown user")
							writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
							return
						}
						logger.Error().Err(err).Msg("failed to load token user")
						writeError(w, http.StatusInternalServerError, "internal_server_error", "Something went wrong, please try again later")
						return
					}
				}

				// Add the token and claims to the context
				ctx := context.WithValue(r.Context(), TokenKey, token)
				ctx = context.WithValue(ctx, ClaimsKey, claims)

				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

var errUnknownUser = errors.New("token user does not exist")

// refreshClaims overwrites the token's role, location and email with the
// stored values.
func refreshClaims(ctx context.Context, users UserLoader, claims authn.Claims) (authn.Claims, error) {
	id, err := claims.UserID()
	if err != nil {
		return claims, errUnknownUser
	}

	u, err := users.GetUser(ctx, id)
	if err != nil {
		return claims, fmt.Errorf("error loading user %s: %w", id, err)
	}
	if u == nil {
		return claims, errUnknownUser
	}

	claims.Role = u.Role
	claims.LocationID = u.LocationID
	claims.Email = u.Email
	return claims, nil
}

// RequireRole rejects requests whose claims carry none of the given roles.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				claims, ok := r.Context().Value(ClaimsKey).(authn.Claims)
				if !ok {
					writeError(w, http.StatusUnauthorized, "unauthorized", "token missing")
					return
				}

				if !claims.HasRole(roles...) {
					zerolog.Ctx(r.Context()).Warn().
						Str("role", string(claims.Role)).
						Str("path", r.URL.Path).
						Msg("role not permitted")
					writeError(w, http.StatusForbidden, "forbidden", "You do not have permission to perform this action")
					return
				}

				next.ServeHTTP(w, r)
			},
		)
	}
}

// WithLogger adds a logger to the context and logs request information.
func WithLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			logger := log.With().
				Str("host", r.Host).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Str("remote_addr", r.RemoteAddr).
				Time("timestamp", time.Now()).
				Logger()

			// Add the logger to the context
			ctx := logger.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}
