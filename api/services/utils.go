package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/middleware"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/depreciation"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/search"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// genericError is shown for failures the caller cannot act on.
const genericError = "Something went wrong, please try again later"

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most curent data
	w.Header().Set("Cache-Control", "max-age=0")

	// Conditionally set the Location header if provided
	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// HandleErrResponse writes err as an error body with the given status.
func HandleErrResponse(w http.ResponseWriter, statusCode int, err error) {
	var pqErr *pq.Error
	var response models.Response

	if errors.As(err, &pqErr) {
		response = models.Response{
			Success:      0,
			ErrorCode:    pqErr.Code.Name(),
			ErrorDetails: pqMessage(pqErr),
		}
	} else {
		details := err.Error()
		if statusCode >= http.StatusInternalServerError {
			details = genericError
		}
		response = models.Response{
			Success:      0,
			ErrorCode:    errorCode(statusCode),
			ErrorDetails: details,
		}
	}

	WriteResponse(w, statusCode, response)
}

// HandleError logs err and writes the response matching its kind.
func HandleError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := StatusFor(err)
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg(msg)
	} else {
		logger.Warn().Err(err).Msg(msg)
	}
	HandleErrResponse(w, status, err)
}

// StatusFor maps domain, storage and parsing errors to an HTTP status.
func StatusFor(err error) int {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation", "foreign_key_violation":
			return http.StatusConflict
		case "check_violation", "not_null_violation", "invalid_text_representation", "string_data_right_truncation":
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, search.ErrInvalidPage),
		errors.Is(err, search.ErrInvalidSort),
		errors.Is(err, depreciation.ErrUnknownMethod):
		return http.StatusBadRequest
	case errors.Is(err, authn.ErrBadPassword):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrAlreadyAssigned),
		errors.Is(err, models.ErrNotAssigned),
		errors.Is(err, models.ErrDisposed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func errorCode(status int) string {
	return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

func pqMessage(err *pq.Error) string {
	switch err.Code.Name() {
	case "unique_violation":
		return "A record with the same value already exists"
	case "foreign_key_violation":
		if strings.HasPrefix(strings.ToLower(err.Message), "update or delete") {
			return "This record is still in use and cannot be removed"
		}
		return "A referenced record does not exist"
	case "check_violation":
		return "One or more values are out of range"
	}
	return genericError
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", models.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func loggerFrom(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// claimsFrom returns the caller's claims and user id from the request context.
func claimsFrom(r *http.Request) (authn.Claims, uuid.UUID, bool) {
	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	if !ok {
		return authn.Claims{}, uuid.Nil, false
	}
	id, err := claims.UserID()
	if err != nil {
		return authn.Claims{}, uuid.Nil, false
	}
	return claims, id, true
}

// unauthorized answers requests that reached a service without claims.
func unauthorized(w http.ResponseWriter, r *http.Request) {
	zerolog.Ctx(r.Context()).Warn().Msg("Unauthorized request: missing claims")
	HandleErrResponse(w, http.StatusUnauthorized, errors.New("token missing"))
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return invalid("malformed request body")
	}
	return nil
}

// pathID parses a UUID route variable.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, invalid("%s must be a valid id", name)
	}
	return id, nil
}

// queryID parses an optional UUID query parameter.
func queryID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, invalid("%s must be a valid id", name)
	}
	return &id, nil
}

func (svc *Service) page(r *http.Request) (search.Page, error) {
	return search.ParsePage(r.URL.Query(), svc.Config.Pagination.DefaultLimit, svc.Config.Pagination.MaxLimit)
}

func listResponse(items interface{}, total int, p search.Page) models.ListResponse {
	return models.ListResponse{Items: items, Total: total, Page: p.Page, Limit: p.Limit}
}

// locationScope returns the location an Admin is confined to, or nil for
// callers who see every location. An Admin without a location is confined
// to the nil UUID and therefore sees nothing.
func locationScope(claims authn.Claims) *uuid.UUID {
	if claims.Role != models.RoleAdmin {
		return nil
	}
	if claims.LocationID == nil {
		nowhere := uuid.Nil
		return &nowhere
	}
	return claims.LocationID
}

// inScope reports whether an Admin may act on something at locationID.
func inScope(claims authn.Claims, locationID uuid.UUID) bool {
	scope := locationScope(claims)
	return scope == nil || *scope == locationID
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, invalid("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func required(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return invalid("%s is required", strings.Join(missing, ", "))
}
