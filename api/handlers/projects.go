package handlers

import (
	"net/http"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/services"
)

// @Summary Add a project
// @Description Create a project under a programme. Admins default to and are restricted to their own location.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body models.ProjectRequest true "Project to create"
// @Success 201 {object} models.Project
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Router /projects [post]
func CreateProject(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.CreateProjectService(w, r)
	}
}

// @Summary List projects
// @Tags projects
// @Produce json
// @Param q query string false "Search by name"
// @Param location_id query string false "Filter by location"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size"
// @Success 200 {object} models.ListResponse
// @Router /projects [get]
func GetProjects(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetProjectsService(w, r)
	}
}

// @Summary Get a project
// @Tags projects
// @Produce json
// @Param project-id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} models.Response
// @Router /projects/{project-id} [get]
func GetProject(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetProjectService(w, r)
	}
}

// @Summary Edit a project
// @Description Update a project. Omitting members leaves the membership unchanged.
// @Tags projects
// @Accept json
// @Produce json
// @Param project-id path string true "Project ID"
// @Param project body models.ProjectRequest true "Updated project"
// @Success 200 {object} models.Project
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /projects/{project-id} [put]
func UpdateProject(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.UpdateProjectService(w, r)
	}
}

// @Summary Delete a project
// @Tags projects
// @Param project-id path string true "Project ID"
// @Success 204
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /projects/{project-id} [delete]
func DeleteProject(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.DeleteProjectService(w, r)
	}
}

// @Summary Add a project member
// @Tags projects
// @Param project-id path string true "Project ID"
// @Param user-id path string true "User ID"
// @Success 204
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /projects/{project-id}/members/{user-id} [put]
func AddProjectMember(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.AddProjectMemberService(w, r)
	}
}

// @Summary Remove a project member
// @Tags projects
// @Param project-id path string true "Project ID"
// @Param user-id path string true "User ID"
// @Success 204
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /projects/{project-id}/members/{user-id} [delete]
func RemoveProjectMember(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.RemoveProjectMemberService(w, r)
	}
}
