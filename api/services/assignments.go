package services

import (
	"context"
	"net/http"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/events"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/rs/zerolog"
)

// checkAssignee confirms the requested user or project exists.
func (svc *Service) checkAssignee(ctx context.Context, req models.AssignRequest) error {
	if (req.UserID == nil) == (req.ProjectID == nil) {
		return invalid("exactly one of user_id or project_id is required")
	}

	if req.UserID != nil {
		u, err := svc.DB.GetUser(ctx, *req.UserID)
		if err != nil {
			return err
		}
		if u == nil {
			return invalid("user does not exist")
		}
		return nil
	}

	p, err := svc.DB.GetProject(ctx, *req.ProjectID)
	if err != nil {
		return err
	}
	if p == nil {
		return invalid("project does not exist")
	}
	return nil
}

// AssignAssetService hands an available asset to a user or a project.
func (svc *Service) AssignAssetService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	as, err := svc.loadAsset(r, claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve asset")
		return
	}

	var req models.AssignRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	if err := svc.checkAssignee(r.Context(), req); err != nil {
		HandleError(w, r, err, "Invalid assignee")
		return
	}

	assigned, err := svc.DB.AssignAsset(r.Context(), as.ID, req, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to assign asset")
		return
	}

	logger.Info().Str("asset_id", as.ID.String()).Msg("Asset assigned")

	event := events.NewAssetEvent(events.AssetAssigned, assigned.ID, assigned.StickerSeq, callerID)
	event.UserID = req.UserID
	event.ProjectID = req.ProjectID
	svc.notify(r.Context(), event)

	WriteResponse(w, http.StatusOK, *assigned)
}

// UnassignAssetService returns an assigned asset to the pool.
func (svc *Service) UnassignAssetService(w http.ResponseWriter, r *http.Request) {

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	as, err := svc.loadAsset(r, claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve asset")
		return
	}

	unassigned, err := svc.DB.UnassignAsset(r.Context(), as.ID, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to unassign asset")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("asset_id", as.ID.String()).Msg("Asset unassigned")

	event := events.NewAssetEvent(events.AssetUnassigned, unassigned.ID, unassigned.StickerSeq, callerID)
	event.UserID = as.AssignedUserID
	event.ProjectID = as.AssignedProjectID
	svc.notify(r.Context(), event)

	WriteResponse(w, http.StatusOK, *unassigned)
}

// DisposeAssetService retires an asset for good.
func (svc *Service) DisposeAssetService(w http.ResponseWriter, r *http.Request) {

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	as, err := svc.loadAsset(r, claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve asset")
		return
	}

	disposed, err := svc.DB.DisposeAsset(r.Context(), as.ID, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to dispose asset")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("asset_id", as.ID.String()).Msg("Asset disposed")
	svc.notify(r.Context(), events.NewAssetEvent(events.AssetDisposed, disposed.ID, disposed.StickerSeq, callerID))

	WriteResponse(w, http.StatusOK, *disposed)
}
