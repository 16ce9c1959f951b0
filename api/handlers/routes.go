package handlers

import (
	"errors"
	"net/http"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/middleware"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/services"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/gorilla/mux"
)

var (
	managers   = []models.Role{models.RoleAdmin, models.RoleSuperuser}
	superusers = []models.Role{models.RoleSuperuser}
	everyone   = []models.Role{models.RoleUser, models.RoleAdmin, models.RoleSuperuser}
)

// catalogRoute describes a plain CRUD collection. Anyone signed in may read it.
type catalogRoute struct {
	path, idVar                       string
	create, list, get, update, remove func(*services.Service) http.HandlerFunc
	writers                           []models.Role
}

var catalogRoutes = []catalogRoute{
	{"/locations", "location-id", CreateLocation, GetLocations, GetLocation, UpdateLocation, DeleteLocation, superusers},
	{"/programmes", "programme-id", CreateProgramme, GetProgrammes, GetProgramme, UpdateProgramme, DeleteProgramme, superusers},
	{"/categories", "category-id", CreateCategory, GetCategories, GetCategory, UpdateCategory, DeleteCategory, superusers},
	{"/vendors", "vendor-id", CreateVendor, GetVendors, GetVendor, UpdateVendor, DeleteVendor, managers},
}

// allow wraps a handler so only the given roles reach it.
func allow(h http.HandlerFunc, roles ...models.Role) http.Handler {
	return middleware.RequireRole(roles...)(h)
}

// RegisterRoutes mounts the API on r. Login and the health check are public,
// every other route needs a valid token.
func RegisterRoutes(r *mux.Router, svc *services.Service, parser middleware.ClaimsParser) {

	// mux reports a method mismatch as not found once later routes have been
	// tried, so unmatched requests all get the JSON 404
	r.NotFoundHandler = http.HandlerFunc(notFound)

	r.HandleFunc("/auth/login", Login(svc)).Methods(http.MethodPost)
	r.HandleFunc("/health", Health(svc)).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(middleware.TokenMiddleware(parser, svc.DB))

	api.Handle("/auth/me", allow(Me(svc), everyone...)).Methods(http.MethodGet)

	// User routes
	api.Handle("/users", allow(CreateUser(svc), managers...)).Methods(http.MethodPost)
	api.Handle("/users", allow(GetUsers(svc), managers...)).Methods(http.MethodGet)
	api.Handle("/users/suggest", allow(SuggestUsers(svc), managers...)).Methods(http.MethodGet)
	api.Handle("/users/{user-id}", allow(GetUser(svc), everyone...)).Methods(http.MethodGet)
	api.Handle("/users/{user-id}", allow(UpdateUser(svc), managers...)).Methods(http.MethodPut)
	api.Handle("/users/{user-id}", allow(DeleteUser(svc), superusers...)).Methods(http.MethodDelete)

	// Catalog routes
	for _, c := range catalogRoutes {
		item := c.path + "/{" + c.idVar + "}"
		api.Handle(c.path, allow(c.create(svc), c.writers...)).Methods(http.MethodPost)
		api.Handle(c.path, allow(c.list(svc), everyone...)).Methods(http.MethodGet)
		api.Handle(item, allow(c.get(svc), everyone...)).Methods(http.MethodGet)
		api.Handle(item, allow(c.update(svc), c.writers...)).Methods(http.MethodPut)
		api.Handle(item, allow(c.remove(svc), c.writers...)).Methods(http.MethodDelete)
	}

	// Project routes
	api.Handle("/projects", allow(CreateProject(svc), managers...)).Methods(http.MethodPost)
	api.Handle("/projects", allow(GetProjects(svc), everyone...)).Methods(http.MethodGet)
	api.Handle("/projects/{project-id}", allow(GetProject(svc), everyone...)).Methods(http.MethodGet)
	api.Handle("/projects/{project-id}", allow(UpdateProject(svc), managers...)).Methods(http.MethodPut)
	api.Handle("/projects/{project-id}", allow(DeleteProject(svc), managers...)).Methods(http.MethodDelete)
	api.Handle("/projects/{project-id}/members/{user-id}", allow(AddProjectMember(svc), managers...)).Methods(http.MethodPut)
	api.Handle("/projects/{project-id}/members/{user-id}", allow(RemoveProjectMember(svc), managers...)).Methods(http.MethodDelete)

	// Asset routes
	api.Handle("/assets", allow(CreateAsset(svc), managers...)).Methods(http.MethodPost)
	api.Handle("/assets", allow(GetAssets(svc), everyone...)).Methods(http.MethodGet)
	api.Handle("/assets/suggest", allow(SuggestAssets(svc), everyone...)).Methods(http.MethodGet)
	api.Handle("/assets/{asset-id}", allow(GetAsset(svc), everyone...)).Methods(http.MethodGet)
	api.Handle("/assets/{asset-id}", allow(UpdateAsset(svc), managers...)).Methods(http.MethodPut)
	api.Handle("/assets/{asset-id}/assign", allow(AssignAsset(svc), managers...)).Methods(http.MethodPost)
	api.Handle("/assets/{asset-id}/unassign", allow(UnassignAsset(svc), managers...)).Methods(http.MethodPost)
	api.Handle("/assets/{asset-id}/dispose", allow(DisposeAsset(svc), managers...)).Methods(http.MethodPost)
	api.Handle("/assets/{asset-id}/history", allow(GetAssetHistory(svc), managers...)).Methods(http.MethodGet)
	api.Handle("/assets/{asset-id}/invoice", allow(GetAssetInvoice(svc), everyone...)).Methods(http.MethodGet)

	// Dashboard and reports
	api.Handle("/dashboard", allow(GetDashboard(svc), everyone...)).Methods(http.MethodGet)
	api.Handle("/reports/depreciation", allow(GetDepreciationReport(svc), managers...)).Methods(http.MethodGet)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	services.HandleErrResponse(w, http.StatusNotFound, errors.New("no such endpoint"))
}
