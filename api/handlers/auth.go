package handlers

import (
	"net/http"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/services"
)

// @Summary Log in
// @Description Exchange an email and password for a signed token. The token is sent back in the `token` header on later requests.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.Response
// @Failure 401 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /auth/login [post]
func Login(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.LoginService(w, r)
	}
}

// @Summary Current user
// @Description Get the profile of the token owner.
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /auth/me [get]
func Me(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.MeService(w, r)
	}
}

// @Summary Health check
// @Description Reports whether the service can reach its database.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} models.Response
// @Router /health [get]
func Health(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.HealthService(w, r)
	}
}
