package services

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func (svc *Service) CreateProgrammeService(w http.ResponseWriter, r *http.Request) {

	var p models.Programme
	if err := decodeJSON(r, &p); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	p.ID = uuid.Nil
	p.Name = strings.TrimSpace(p.Name)

	if err := required(map[string]string{"name": p.Name}); err != nil {
		HandleError(w, r, err, "Invalid programme")
		return
	}
	if err := svc.DB.CreateProgramme(r.Context(), &p); err != nil {
		HandleError(w, r, err, "Failed to create programme in database")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("programme_id", p.ID.String()).Msg("Programme created successfully")
	WriteResponse(w, http.StatusCreated, p, fmt.Sprintf("%s/%s", r.URL.Path, p.ID))
}

func (svc *Service) GetProgrammesService(w http.ResponseWriter, r *http.Request) {

	q, p, err := svc.listQuery(r)
	if err != nil {
		HandleError(w, r, err, "Invalid pagination")
		return
	}

	programmes, total, err := svc.DB.ListProgrammes(r.Context(), q, p.Limit, p.Offset)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve programmes from database")
		return
	}

	WriteResponse(w, http.StatusOK, listResponse(programmes, total, p))
}

func (svc *Service) GetProgrammeService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "programme-id")
	if err != nil {
		HandleError(w, r, err, "Invalid programme id")
		return
	}

	p, err := svc.DB.GetProgramme(r.Context(), id)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve programme")
		return
	}
	if p == nil {
		HandleError(w, r, models.ErrNotFound, "Programme not found")
		return
	}

	WriteResponse(w, http.StatusOK, *p)
}

func (svc *Service) UpdateProgrammeService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "programme-id")
	if err != nil {
		HandleError(w, r, err, "Invalid programme id")
		return
	}

	var p models.Programme
	if err := decodeJSON(r, &p); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	p.ID = id
	p.Name = strings.TrimSpace(p.Name)

	if err := required(map[string]string{"name": p.Name}); err != nil {
		HandleError(w, r, err, "Invalid programme")
		return
	}
	if err := svc.DB.UpdateProgramme(r.Context(), &p); err != nil {
		HandleError(w, r, err, "Failed to update programme")
		return
	}

	updated, err := svc.DB.GetProgramme(r.Context(), id)
	if err != nil || updated == nil {
		HandleError(w, r, fmt.Errorf("error reloading programme: %v", err), "Failed to reload programme")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("programme_id", id.String()).Msg("Programme updated successfully")
	WriteResponse(w, http.StatusOK, *updated)
}

func (svc *Service) DeleteProgrammeService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "programme-id")
	if err != nil {
		HandleError(w, r, err, "Invalid programme id")
		return
	}

	if err := svc.DB.DeleteProgramme(r.Context(), id); err != nil {
		HandleError(w, r, err, "Failed to delete programme")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("programme_id", id.String()).Msg("Programme deleted successfully")
	WriteResponse(w, http.StatusNoContent, nil)
}
