package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/search"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// validateUser checks the add/edit user form. Passwords are only required
// when creating.
func (svc *Service) validateUser(ctx context.Context, req *models.UserRequest, creating bool) error {
	req.Email = authn.NormalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := required(map[string]string{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"role":       string(req.Role),
	}); err != nil {
		return err
	}
	if !validEmail(req.Email) {
		return invalid("email is not a valid address")
	}
	if !req.Role.Valid() {
		return invalid("role must be one of User, Admin or Superuser")
	}
	if creating && len(req.Password) < authn.MinPasswordLength {
		return invalid("password must be at least %d characters", authn.MinPasswordLength)
	}
	if !creating && req.Password != "" && len(req.Password) < authn.MinPasswordLength {
		return invalid("password must be at least %d characters", authn.MinPasswordLength)
	}

	if req.Role != models.RoleSuperuser && req.LocationID == nil {
		return invalid("location_id is required for %s accounts", req.Role)
	}
	if req.LocationID != nil {
		loc, err := svc.DB.GetLocation(ctx, *req.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return invalid("location does not exist")
		}
	}
	return nil
}

// adminMayManage reports whether an Admin may create or edit an account
// with the requested role and location. Superusers may manage anyone.
func adminMayManage(claims authn.Claims, role models.Role, locationID *uuid.UUID) bool {
	if claims.Role == models.RoleSuperuser {
		return true
	}
	return role == models.RoleUser && locationID != nil && inScope(claims, *locationID)
}

// CreateUserService adds a user account.
func (svc *Service) CreateUserService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, _, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	var req models.UserRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}

	// Admins add users to their own location
	if claims.Role == models.RoleAdmin && req.LocationID == nil {
		req.LocationID = claims.LocationID
	}

	if err := svc.validateUser(r.Context(), &req, true); err != nil {
		HandleError(w, r, err, "Invalid user")
		return
	}

	if !adminMayManage(claims, req.Role, req.LocationID) {
		HandleError(w, r, fmt.Errorf("%w: admins may only add users to their own location", models.ErrForbidden),
			"Access denied: user outside admin scope")
		return
	}

	hash, err := authn.HashPassword(req.Password)
	if err != nil {
		HandleError(w, r, err, "Failed to hash password")
		return
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Role:         req.Role,
		LocationID:   req.LocationID,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
	}
	if err := svc.DB.CreateUser(r.Context(), &user); err != nil {
		HandleError(w, r, err, "Failed to create user in database")
		return
	}

	logger.Info().Str("user_id", user.ID.String()).Str("role", string(user.Role)).Msg("User created successfully")

	var location = fmt.Sprintf("%s/%s", r.URL.Path, user.ID)
	WriteResponse(w, http.StatusCreated, user, location)
}

// GetUsersService lists users, confining Admins to their location.
func (svc *Service) GetUsersService(w http.ResponseWriter, r *http.Request) {

	claims, _, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	p, err := svc.page(r)
	if err != nil {
		HandleError(w, r, err, "Invalid pagination")
		return
	}

	q := r.URL.Query()
	filter := models.UserFilter{
		Search: q.Get("q"),
		Role:   models.Role(q.Get("role")),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	if filter.Role != "" && !filter.Role.Valid() {
		HandleError(w, r, invalid("unknown role %q", filter.Role), "Invalid role filter")
		return
	}
	if filter.LocationID, err = queryID(r, "location_id"); err != nil {
		HandleError(w, r, err, "Invalid location filter")
		return
	}
	if scope := locationScope(claims); scope != nil {
		filter.LocationID = scope
	}

	users, total, err := svc.DB.ListUsers(r.Context(), filter)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve users from database")
		return
	}

	zerolog.Ctx(r.Context()).Info().Int("user_count", len(users)).Msg("Successfully retrieved users")
	WriteResponse(w, http.StatusOK, listResponse(users, total, p))
}

// SuggestUsersService backs the user autocomplete box.
func (svc *Service) SuggestUsersService(w http.ResponseWriter, r *http.Request) {

	claims, _, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	q := r.URL.Query().Get("q")
	limit, err := search.ParseLimit(r.URL.Query().Get("limit"), search.DefaultSuggestLimit)
	if err != nil {
		HandleError(w, r, err, "Invalid suggestion limit")
		return
	}
	if search.Normalize(q) == "" {
		WriteResponse(w, http.StatusOK, []models.Suggestion{})
		return
	}

	candidates, err := svc.DB.SuggestUsers(r.Context(), q, models.DashboardScope{LocationID: locationScope(claims)}, limit)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve user suggestions")
		return
	}

	WriteResponse(w, http.StatusOK, search.RankSuggestions(q, candidates, limit))
}

// loadUser fetches the user named in the route and checks the caller may see it.
func (svc *Service) loadUser(r *http.Request, claims authn.Claims, callerID uuid.UUID) (*models.User, error) {
	id, err := pathID(r, "user-id")
	if err != nil {
		return nil, err
	}

	user, err := svc.DB.GetUser(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrNotFound
	}

	switch claims.Role {
	case models.RoleSuperuser:
		return user, nil
	case models.RoleAdmin:
		if user.ID == callerID || (user.LocationID != nil && inScope(claims, *user.LocationID)) {
			return user, nil
		}
	default:
		if user.ID == callerID {
			return user, nil
		}
	}
	return nil, models.ErrForbidden
}

// GetUserService returns one user.
func (svc *Service) GetUserService(w http.ResponseWriter, r *http.Request) {

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	user, err := svc.loadUser(r, claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve user")
		return
	}

	WriteResponse(w, http.StatusOK, *user)
}

// UpdateUserService edits a user. Admins cannot promote anyone.
func (svc *Service) UpdateUserService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	user, err := svc.loadUser(r, claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve user")
		return
	}

	var req models.UserRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	if err := svc.validateUser(r.Context(), &req, false); err != nil {
		HandleError(w, r, err, "Invalid user")
		return
	}

	if claims.Role == models.RoleAdmin {
		if !adminMayManage(claims, user.Role, user.LocationID) || !adminMayManage(claims, req.Role, req.LocationID) {
			HandleError(w, r, fmt.Errorf("%w: admins may only edit users in their own location", models.ErrForbidden),
				"Access denied: user outside admin scope")
			return
		}
	}

	hash := ""
	if req.Password != "" {
		if hash, err = authn.HashPassword(req.Password); err != nil {
			HandleError(w, r, err, "Failed to hash password")
			return
		}
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.Role = req.Role
	user.LocationID = req.LocationID
	user.Phone = strings.TrimSpace(req.Phone)
	user.PasswordHash = hash

	if err := svc.DB.UpdateUser(r.Context(), user); err != nil {
		HandleError(w, r, err, "Failed to update user in database")
		return
	}

	logger.Info().Str("user_id", user.ID.String()).Msg("User updated successfully")
	WriteResponse(w, http.StatusOK, *user)
}

// DeleteUserService removes a user account.
func (svc *Service) DeleteUserService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	_, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	id, err := pathID(r, "user-id")
	if err != nil {
		HandleError(w, r, err, "Invalid user id")
		return
	}
	if id == callerID {
		HandleError(w, r, fmt.Errorf("%w: you cannot delete your own account", models.ErrConflict), "Refused self deletion")
		return
	}

	if err := svc.DB.DeleteUser(r.Context(), id); err != nil {
		HandleError(w, r, err, "Failed to delete user")
		return
	}

	logger.Info().Str("user_id", id.String()).Msg("User deleted successfully")
	WriteResponse(w, http.StatusNoContent, nil)
}
