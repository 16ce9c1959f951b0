package handlers

import (
	"net/http"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/services"
)

// @Summary Add a user
// @Description Create a user account. Admins may only add users with the User role in their own location.
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserRequest true "User to create"
// @Success 201 {object} models.User
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 409 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /users [post]
func CreateUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreateUserService(w, r)
	}
}

// @Summary List users
// @Description List users. Admins only see users in their own location.
// @Tags users
// @Produce json
// @Param q query string false "Search name or email"
// @Param role query string false "Filter by role" Enums(User, Admin, Superuser)
// @Param location_id query string false "Filter by location"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Router /users [get]
func GetUsers(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetUsersService(w, r)
	}
}

// @Summary Suggest users
// @Description Autocomplete users by name or email.
// @Tags users
// @Produce json
// @Param q query string true "Search prefix"
// @Param limit query int false "Maximum suggestions"
// @Success 200 {array} models.Suggestion
// @Router /users/suggest [get]
func SuggestUsers(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.SuggestUsersService(w, r)
	}
}

// @Summary Get a user
// @Tags users
// @Produce json
// @Param user-id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /users/{user-id} [get]
func GetUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetUserService(w, r)
	}
}

// @Summary Edit a user
// @Description Update a user. An empty password keeps the current one. Admins cannot promote users.
// @Tags users
// @Accept json
// @Produce json
// @Param user-id path string true "User ID"
// @Param user body models.UserRequest true "Updated user"
// @Success 200 {object} models.User
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /users/{user-id} [put]
func UpdateUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.UpdateUserService(w, r)
	}
}

// @Summary Delete a user
// @Tags users
// @Param user-id path string true "User ID"
// @Success 204
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /users/{user-id} [delete]
func DeleteUser(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.DeleteUserService(w, r)
	}
}
