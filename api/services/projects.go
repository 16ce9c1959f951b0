package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// projectFromRequest validates the project form and converts it.
func (svc *Service) projectFromRequest(ctx context.Context, req models.ProjectRequest) (*models.Project, error) {
	p := &models.Project{
		Name:        strings.TrimSpace(req.Name),
		ProgrammeID: req.ProgrammeID,
		LocationID:  req.LocationID,
		Description: strings.TrimSpace(req.Description),
		Members:     req.Members,
	}

	if err := required(map[string]string{"name": p.Name}); err != nil {
		return nil, err
	}
	if p.ProgrammeID == uuid.Nil || p.LocationID == uuid.Nil {
		return nil, invalid("programme_id and location_id are required")
	}

	var err error
	if p.StartDate, err = parseOptionalDate("start_date", req.StartDate); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseOptionalDate("end_date", req.EndDate); err != nil {
		return nil, err
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return nil, invalid("end_date must not be before start_date")
	}

	programme, err := svc.DB.GetProgramme(ctx, p.ProgrammeID)
	if err != nil {
		return nil, err
	}
	if programme == nil {
		return nil, invalid("programme does not exist")
	}
	location, err := svc.DB.GetLocation(ctx, p.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, invalid("location does not exist")
	}

	return p, nil
}

func projectScopeError(claims authn.Claims, locationID uuid.UUID) error {
	if inScope(claims, locationID) {
		return nil
	}
	return fmt.Errorf("%w: admins may only manage projects in their own location", models.ErrForbidden)
}

func (svc *Service) CreateProjectService(w http.ResponseWriter, r *http.Request) {

	claims, _, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	var req models.ProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	if claims.Role == models.RoleAdmin && req.LocationID == uuid.Nil && claims.LocationID != nil {
		req.LocationID = *claims.LocationID
	}

	p, err := svc.projectFromRequest(r.Context(), req)
	if err != nil {
		HandleError(w, r, err, "Invalid project")
		return
	}
	if err := projectScopeError(claims, p.LocationID); err != nil {
		HandleError(w, r, err, "Access denied: project outside admin scope")
		return
	}

	if err := svc.DB.CreateProject(r.Context(), p); err != nil {
		HandleError(w, r, err, "Failed to create project in database")
		return
	}
	if p.Members == nil {
		p.Members = []uuid.UUID{}
	}

	zerolog.Ctx(r.Context()).Info().Str("project_id", p.ID.String()).Msg("Project created successfully")
	WriteResponse(w, http.StatusCreated, *p, fmt.Sprintf("%s/%s", r.URL.Path, p.ID))
}

func (svc *Service) GetProjectsService(w http.ResponseWriter, r *http.Request) {

	claims, _, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	q, p, err := svc.listQuery(r)
	if err != nil {
		HandleError(w, r, err, "Invalid pagination")
		return
	}

	locationID, err := queryID(r, "location_id")
	if err != nil {
		HandleError(w, r, err, "Invalid location filter")
		return
	}
	if scope := locationScope(claims); scope != nil {
		locationID = scope
	}

	projects, total, err := svc.DB.ListProjects(r.Context(), q, locationID, p.Limit, p.Offset)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve projects from database")
		return
	}

	WriteResponse(w, http.StatusOK, listResponse(projects, total, p))
}

// loadProject fetches the project named in the route.
func (svc *Service) loadProject(r *http.Request) (*models.Project, error) {
	id, err := pathID(r, "project-id")
	if err != nil {
		return nil, err
	}
	p, err := svc.DB.GetProject(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, models.ErrNotFound
	}
	return p, nil
}

func (svc *Service) GetProjectService(w http.ResponseWriter, r *http.Request) {

	claims, _, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	p, err := svc.loadProject(r)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve project")
		return
	}
	if err := projectScopeError(claims, p.LocationID); err != nil {
		HandleError(w, r, err, "Access denied: project outside admin scope")
		return
	}

	WriteResponse(w, http.StatusOK, *p)
}

func (svc *Service) UpdateProjectService(w http.ResponseWriter, r *http.Request) {

	claims, _, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	current, err := svc.loadProject(r)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve project")
		return
	}
	if err := projectScopeError(claims, current.LocationID); err != nil {
		HandleError(w, r, err, "Access denied: project outside admin scope")
		return
	}

	var req models.ProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}

	p, err := svc.projectFromRequest(r.Context(), req)
	if err != nil {
		HandleError(w, r, err, "Invalid project")
		return
	}
	if err := projectScopeError(claims, p.LocationID); err != nil {
		HandleError(w, r, err, "Access denied: project outside admin scope")
		return
	}
	p.ID = current.ID

	if err := svc.DB.UpdateProject(r.Context(), p); err != nil {
		HandleError(w, r, err, "Failed to update project")
		return
	}

	updated, err := svc.DB.GetProject(r.Context(), p.ID)
	if err != nil || updated == nil {
		HandleError(w, r, fmt.Errorf("error reloading project: %v", err), "Failed to reload project")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("project_id", p.ID.String()).Msg("Project updated successfully")
	WriteResponse(w, http.StatusOK, *updated)
}

func (svc *Service) DeleteProjectService(w http.ResponseWriter, r *http.Request) {

	claims, _, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	p, err := svc.loadProject(r)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve project")
		return
	}
	if err := projectScopeError(claims, p.LocationID); err != nil {
		HandleError(w, r, err, "Access denied: project outside admin scope")
		return
	}

	if err := svc.DB.DeleteProject(r.Context(), p.ID); err != nil {
		HandleError(w, r, err, "Failed to delete project")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("project_id", p.ID.String()).Msg("Project deleted successfully")
	WriteResponse(w, http.StatusNoContent, nil)
}

// membershipTarget resolves the project and user of a membership route.
func (svc *Service) membershipTarget(r *http.Request) (*models.Project, uuid.UUID, error) {
	claims, _, ok := claimsFrom(r)
	if !ok {
		return nil, uuid.Nil, fmt.Errorf("%w: missing claims", models.ErrForbidden)
	}

	p, err := svc.loadProject(r)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if err := projectScopeError(claims, p.LocationID); err != nil {
		return nil, uuid.Nil, err
	}

	userID, err := pathID(r, "user-id")
	if err != nil {
		return nil, uuid.Nil, err
	}
	return p, userID, nil
}

func (svc *Service) AddProjectMemberService(w http.ResponseWriter, r *http.Request) {

	p, userID, err := svc.membershipTarget(r)
	if err != nil {
		HandleError(w, r, err, "Failed to resolve project membership")
		return
	}

	user, err := svc.DB.GetUser(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve user")
		return
	}
	if user == nil {
		HandleError(w, r, models.ErrNotFound, "User not found")
		return
	}

	if err := svc.DB.AddProjectMember(r.Context(), p.ID, userID); err != nil {
		HandleError(w, r, err, "Failed to add project member")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("project_id", p.ID.String()).Str("user_id", userID.String()).
		Msg("Project member added")
	WriteResponse(w, http.StatusNoContent, nil)
}

func (svc *Service) RemoveProjectMemberService(w http.ResponseWriter, r *http.Request) {

	p, userID, err := svc.membershipTarget(r)
	if err != nil {
		HandleError(w, r, err, "Failed to resolve project membership")
		return
	}

	if err := svc.DB.RemoveProjectMember(r.Context(), p.ID, userID); err != nil {
		HandleError(w, r, err, "Failed to remove project member")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("project_id", p.ID.String()).Str("user_id", userID.String()).
		Msg("Project member removed")
	WriteResponse(w, http.StatusNoContent, nil)
}
