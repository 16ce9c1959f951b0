package handlers

import (
	"net/http"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/services"
)

// @Summary Add a location
// @Description Sites assets are kept at. Short codes are upper-cased.
// @Tags locations
// @Accept json
// @Produce json
// @Param location body models.Location true "Location to create"
// @Success 201 {object} models.Location
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /locations [post]
func CreateLocation(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreateLocationService(w, r)
	}
}

// @Summary List locations
// @Tags locations
// @Produce json
// @Param q query string false "Search by name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.Response
// @Router /locations [get]
func GetLocations(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetLocationsService(w, r)
	}
}

// @Summary Get a location
// @Tags locations
// @Produce json
// @Param location-id path string true "Location ID"
// @Success 200 {object} models.Location
// @Failure 404 {object} models.Response
// @Router /locations/{location-id} [get]
func GetLocation(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetLocationService(w, r)
	}
}

// @Summary Edit a location
// @Tags locations
// @Accept json
// @Produce json
// @Param location-id path string true "Location ID"
// @Param location body models.Location true "Updated location"
// @Success 200 {object} models.Location
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /locations/{location-id} [put]
func UpdateLocation(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.UpdateLocationService(w, r)
	}
}

// @Summary Delete a location
// @Description Fails with 409 while anything still refers to the location.
// @Tags locations
// @Param location-id path string true "Location ID"
// @Success 204
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /locations/{location-id} [delete]
func DeleteLocation(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.DeleteLocationService(w, r)
	}
}

// @Summary Add a programme
// @Description Funding programmes projects belong to.
// @Tags programmes
// @Accept json
// @Produce json
// @Param programme body models.Programme true "Programme to create"
// @Success 201 {object} models.Programme
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /programmes [post]
func CreateProgramme(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreateProgrammeService(w, r)
	}
}

// @Summary List programmes
// @Tags programmes
// @Produce json
// @Param q query string false "Search by name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.Response
// @Router /programmes [get]
func GetProgrammes(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetProgrammesService(w, r)
	}
}

// @Summary Get a programme
// @Tags programmes
// @Produce json
// @Param programme-id path string true "Programme ID"
// @Success 200 {object} models.Programme
// @Failure 404 {object} models.Response
// @Router /programmes/{programme-id} [get]
func GetProgramme(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetProgrammeService(w, r)
	}
}

// @Summary Edit a programme
// @Tags programmes
// @Accept json
// @Produce json
// @Param programme-id path string true "Programme ID"
// @Param programme body models.Programme true "Updated programme"
// @Success 200 {object} models.Programme
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /programmes/{programme-id} [put]
func UpdateProgramme(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.UpdateProgrammeService(w, r)
	}
}

// @Summary Delete a programme
// @Description Fails with 409 while anything still refers to the programme.
// @Tags programmes
// @Param programme-id path string true "Programme ID"
// @Success 204
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /programmes/{programme-id} [delete]
func DeleteProgramme(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.DeleteProgrammeService(w, r)
	}
}

// @Summary Add a category
// @Description Asset categories and their depreciation parameters.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.Category true "Category to create"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /categories [post]
func CreateCategory(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreateCategoryService(w, r)
	}
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Param q query string false "Search by name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.Response
// @Router /categories [get]
func GetCategories(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetCategoriesService(w, r)
	}
}

// @Summary Get a category
// @Tags categories
// @Produce json
// @Param category-id path string true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} models.Response
// @Router /categories/{category-id} [get]
func GetCategory(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetCategoryService(w, r)
	}
}

// @Summary Edit a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category-id path string true "Category ID"
// @Param category body models.Category true "Updated category"
// @Success 200 {object} models.Category
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /categories/{category-id} [put]
func UpdateCategory(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.UpdateCategoryService(w, r)
	}
}

// @Summary Delete a category
// @Description Fails with 409 while anything still refers to the category.
// @Tags categories
// @Param category-id path string true "Category ID"
// @Success 204
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /categories/{category-id} [delete]
func DeleteCategory(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.DeleteCategoryService(w, r)
	}
}

// @Summary Add a vendor
// @Description Suppliers assets are bought from.
// @Tags vendors
// @Accept json
// @Produce json
// @Param vendor body models.Vendor true "Vendor to create"
// @Success 201 {object} models.Vendor
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /vendors [post]
func CreateVendor(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreateVendorService(w, r)
	}
}

// @Summary List vendors
// @Tags vendors
// @Produce json
// @Param q query string false "Search by name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.Response
// @Router /vendors [get]
func GetVendors(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetVendorsService(w, r)
	}
}

// @Summary Get a vendor
// @Tags vendors
// @Produce json
// @Param vendor-id path string true "Vendor ID"
// @Success 200 {object} models.Vendor
// @Failure 404 {object} models.Response
// @Router /vendors/{vendor-id} [get]
func GetVendor(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetVendorService(w, r)
	}
}

// @Summary Edit a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param vendor-id path string true "Vendor ID"
// @Param vendor body models.Vendor true "Updated vendor"
// @Success 200 {object} models.Vendor
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /vendors/{vendor-id} [put]
func UpdateVendor(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.UpdateVendorService(w, r)
	}
}

// @Summary Delete a vendor
// @Description Fails with 409 while anything still refers to the vendor.
// @Tags vendors
// @Param vendor-id path string true "Vendor ID"
// @Success 204
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /vendors/{vendor-id} [delete]
func DeleteVendor(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.DeleteVendorService(w, r)
	}
}
