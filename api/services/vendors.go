package services

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func validateVendor(v *models.Vendor) error {
	v.Name = strings.TrimSpace(v.Name)
	v.Email = strings.ToLower(strings.TrimSpace(v.Email))

	if err := required(map[string]string{"name": v.Name}); err != nil {
		return err
	}
	if v.Email != "" && !validEmail(v.Email) {
		return invalid("email is not a valid address")
	}
	return nil
}

func (svc *Service) CreateVendorService(w http.ResponseWriter, r *http.Request) {

	var v models.Vendor
	if err := decodeJSON(r, &v); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	v.ID = uuid.Nil

	if err := validateVendor(&v); err != nil {
		HandleError(w, r, err, "Invalid vendor")
		return
	}
	if err := svc.DB.CreateVendor(r.Context(), &v); err != nil {
		HandleError(w, r, err, "Failed to create vendor in database")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("vendor_id", v.ID.String()).Msg("Vendor created successfully")
	WriteResponse(w, http.StatusCreated, v, fmt.Sprintf("%s/%s", r.URL.Path, v.ID))
}

func (svc *Service) GetVendorsService(w http.ResponseWriter, r *http.Request) {

	q, p, err := svc.listQuery(r)
	if err != nil {
		HandleError(w, r, err, "Invalid pagination")
		return
	}

	vendors, total, err := svc.DB.ListVendors(r.Context(), q, p.Limit, p.Offset)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve vendors from database")
		return
	}

	WriteResponse(w, http.StatusOK, listResponse(vendors, total, p))
}

func (svc *Service) GetVendorService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "vendor-id")
	if err != nil {
		HandleError(w, r, err, "Invalid vendor id")
		return
	}

	v, err := svc.DB.GetVendor(r.Context(), id)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve vendor")
		return
	}
	if v == nil {
		HandleError(w, r, models.ErrNotFound, "Vendor not found")
		return
	}

	WriteResponse(w, http.StatusOK, *v)
}

func (svc *Service) UpdateVendorService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "vendor-id")
	if err != nil {
		HandleError(w, r, err, "Invalid vendor id")
		return
	}

	var v models.Vendor
	if err := decodeJSON(r, &v); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	v.ID = id

	if err := validateVendor(&v); err != nil {
		HandleError(w, r, err, "Invalid vendor")
		return
	}
	if err := svc.DB.UpdateVendor(r.Context(), &v); err != nil {
		HandleError(w, r, err, "Failed to update vendor")
		return
	}

	updated, err := svc.DB.GetVendor(r.Context(), id)
	if err != nil || updated == nil {
		HandleError(w, r, fmt.Errorf("error reloading vendor: %v", err), "Failed to reload vendor")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("vendor_id", id.String()).Msg("Vendor updated successfully")
	WriteResponse(w, http.StatusOK, *updated)
}

func (svc *Service) DeleteVendorService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "vendor-id")
	if err != nil {
		HandleError(w, r, err, "Invalid vendor id")
		return
	}

	if err := svc.DB.DeleteVendor(r.Context(), id); err != nil {
		HandleError(w, r, err, "Failed to delete vendor")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("vendor_id", id.String()).Msg("Vendor deleted successfully")
	WriteResponse(w, http.StatusNoContent, nil)
}
