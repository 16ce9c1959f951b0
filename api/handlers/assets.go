package handlers

import (
	"net/http"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/services"
)

// @Summary Add an asset
// @Description Register an asset and allocate its sticker. Send JSON, or multipart/form-data with the asset JSON in a `data` part and an optional `invoice` file (pdf, png or jpeg, up to 10 MiB).
// @Tags assets
// @Accept json,mpfd
// @Produce json
// @Param asset body models.AssetRequest false "Asset to create"
// @Param data formData string false "Asset JSON when sent as multipart"
// @Param invoice formData file false "Purchase invoice"
// @Success 201 {object} models.Asset
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /assets [post]
func CreateAsset(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreateAssetService(w, r)
	}
}

// @Summary List assets
// @Description List the assets visible to the caller. Users only see assets held by them or their projects.
// @Tags assets
// @Produce json
// @Param q query string false "Search name, sticker or serial number"
// @Param status query string false "Filter by status" Enums(available, assigned, disposed)
// @Param category_id query string false "Filter by category"
// @Param location_id query string false "Filter by location"
// @Param programme_id query string false "Filter by programme"
// @Param assigned_user_id query string false "Filter by assigned user"
// @Param assigned_project_id query string false "Filter by assigned project"
// @Param sort query string false "Sort column, prefix with - for descending" example(-created_at)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.Response
// @Router /assets [get]
func GetAssets(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetAssetsService(w, r)
	}
}

// @Summary Suggest assets
// @Tags assets
// @Produce json
// @Param q query string true "Search prefix"
// @Param limit query int false "Maximum suggestions"
// @Success 200 {array} models.Suggestion
// @Router /assets/suggest [get]
func SuggestAssets(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.SuggestAssetsService(w, r)
	}
}

// @Summary Get an asset
// @Tags assets
// @Produce json
// @Param asset-id path string true "Asset ID"
// @Success 200 {object} models.Asset
// @Failure 404 {object} models.Response
// @Router /assets/{asset-id} [get]
func GetAsset(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetAssetService(w, r)
	}
}

// @Summary Edit an asset
// @Description Update an asset. The sticker never changes, even when the location does.
// @Tags assets
// @Accept json,mpfd
// @Produce json
// @Param asset-id path string true "Asset ID"
// @Param asset body models.AssetRequest false "Updated asset"
// @Param data formData string false "Asset JSON when sent as multipart"
// @Param invoice formData file false "Replacement invoice"
// @Success 200 {object} models.Asset
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /assets/{asset-id} [put]
func UpdateAsset(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.UpdateAssetService(w, r)
	}
}

// @Summary Assign an asset
// @Description Assign an available asset to exactly one user or project.
// @Tags assets
// @Accept json
// @Produce json
// @Param asset-id path string true "Asset ID"
// @Param assignment body models.AssignRequest true "Assignee"
// @Success 200 {object} models.Asset
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /assets/{asset-id}/assign [post]
func AssignAsset(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.AssignAssetService(w, r)
	}
}

// @Summary Unassign an asset
// @Tags assets
// @Produce json
// @Param asset-id path string true "Asset ID"
// @Success 200 {object} models.Asset
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /assets/{asset-id}/unassign [post]
func UnassignAsset(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.UnassignAssetService(w, r)
	}
}

// @Summary Dispose of an asset
// @Description Mark an unassigned asset as disposed. This cannot be undone.
// @Tags assets
// @Produce json
// @Param asset-id path string true "Asset ID"
// @Success 200 {object} models.Asset
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /assets/{asset-id}/dispose [post]
func DisposeAsset(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.DisposeAssetService(w, r)
	}
}

// @Summary Asset history
// @Tags assets
// @Produce json
// @Param asset-id path string true "Asset ID"
// @Success 200 {array} models.AssetHistory
// @Failure 404 {object} models.Response
// @Router /assets/{asset-id}/history [get]
func GetAssetHistory(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetAssetHistoryService(w, r)
	}
}

// @Summary Asset invoice link
// @Description Get a short-lived link to download the purchase invoice.
// @Tags assets
// @Produce json
// @Param asset-id path string true "Asset ID"
// @Success 200 {object} models.InvoiceResponse
// @Failure 404 {object} models.Response
// @Router /assets/{asset-id}/invoice [get]
func GetAssetInvoice(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetAssetInvoiceService(w, r)
	}
}
