package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/search"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/sticker"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func (svc *Service) validateLocation(ctx context.Context, l *models.Location) error {
	l.Name = strings.TrimSpace(l.Name)
	l.StickerShortCode = strings.ToUpper(strings.TrimSpace(l.StickerShortCode))

	if err := required(map[string]string{"name": l.Name, "sticker_short_code": l.StickerShortCode}); err != nil {
		return err
	}
	if !sticker.ValidShortCode(l.StickerShortCode) {
		return invalid("sticker_short_code must be 2 to 5 letters or digits")
	}
	if l.ParentID != nil {
		if *l.ParentID == l.ID {
			return invalid("a location cannot be its own parent")
		}
		parent, err := svc.DB.GetLocation(ctx, *l.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return invalid("parent location does not exist")
		}
	}
	return nil
}

// listQuery reads the search term and page shared by the simple listings.
func (svc *Service) listQuery(r *http.Request) (string, search.Page, error) {
	p, err := svc.page(r)
	if err != nil {
		return "", search.Page{}, err
	}
	return r.URL.Query().Get("q"), p, nil
}

func (svc *Service) CreateLocationService(w http.ResponseWriter, r *http.Request) {

	var l models.Location
	if err := decodeJSON(r, &l); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	l.ID = uuid.Nil

	if err := svc.validateLocation(r.Context(), &l); err != nil {
		HandleError(w, r, err, "Invalid location")
		return
	}
	if err := svc.DB.CreateLocation(r.Context(), &l); err != nil {
		HandleError(w, r, err, "Failed to create location in database")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("location_id", l.ID.String()).Msg("Location created successfully")
	WriteResponse(w, http.StatusCreated, l, fmt.Sprintf("%s/%s", r.URL.Path, l.ID))
}

func (svc *Service) GetLocationsService(w http.ResponseWriter, r *http.Request) {

	q, p, err := svc.listQuery(r)
	if err != nil {
		HandleError(w, r, err, "Invalid pagination")
		return
	}

	locations, total, err := svc.DB.ListLocations(r.Context(), q, p.Limit, p.Offset)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve locations from database")
		return
	}

	WriteResponse(w, http.StatusOK, listResponse(locations, total, p))
}

func (svc *Service) GetLocationService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "location-id")
	if err != nil {
		HandleError(w, r, err, "Invalid location id")
		return
	}

	l, err := svc.DB.GetLocation(r.Context(), id)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve location")
		return
	}
	if l == nil {
		HandleError(w, r, models.ErrNotFound, "Location not found")
		return
	}

	WriteResponse(w, http.StatusOK, *l)
}

func (svc *Service) UpdateLocationService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "location-id")
	if err != nil {
		HandleError(w, r, err, "Invalid location id")
		return
	}

	var l models.Location
	if err := decodeJSON(r, &l); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	l.ID = id

	if err := svc.validateLocation(r.Context(), &l); err != nil {
		HandleError(w, r, err, "Invalid location")
		return
	}
	if err := svc.DB.UpdateLocation(r.Context(), &l); err != nil {
		HandleError(w, r, err, "Failed to update location")
		return
	}

	updated, err := svc.DB.GetLocation(r.Context(), id)
	if err != nil || updated == nil {
		HandleError(w, r, fmt.Errorf("error reloading location: %v", err), "Failed to reload location")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("location_id", id.String()).Msg("Location updated successfully")
	WriteResponse(w, http.StatusOK, *updated)
}

func (svc *Service) DeleteLocationService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "location-id")
	if err != nil {
		HandleError(w, r, err, "Invalid location id")
		return
	}

	if err := svc.DB.DeleteLocation(r.Context(), id); err != nil {
		HandleError(w, r, err, "Failed to delete location")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("location_id", id.String()).Msg("Location deleted successfully")
	WriteResponse(w, http.StatusNoContent, nil)
}
