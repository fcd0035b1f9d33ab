package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"client-portal-backend/internal/identity"
	"client-portal-backend/internal/models"
	"client-portal-backend/internal/services"
)

type ProjectsHandler struct {
	resolver *identity.Resolver
	projects *services.ProjectService
}

func NewProjectsHandler(resolver *identity.Resolver, projects *services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{
		resolver: resolver,
		projects: projects,
	}
}

// CreateProject godoc
// @Summary     Create a project
// @Description Admin only. Invites the client email as a placeholder user when unknown and schedules the project-created webhook.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateProjectRequest true "Project"
// @Success     200 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	project, err := h.projects.Create(caller, req.Title, req.ClientEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projectResponse(project))
}

func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	var clientID *uuid.UUID
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid client id"})
			return
		}
		clientID = &id
	}

	projects, err := h.projects.List(caller, clientID)
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]models.ProjectResponse, len(projects))
	for i := range projects {
		summaries[i] = projectResponse(&projects[i])
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: summaries})
}

func (h *ProjectsHandler) GetProject(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	project, err := h.projects.Get(caller, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

	c.JSON(http.StatusOK, projectResponse(project))
}

// UpdateStatus godoc
// @Summary     Update project status
// @Description Admin only. Any of the five phases may be set; the sequence is not enforced.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.UpdateProjectStatusRequest true "New status"
// @Success     200 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/status [patch]
func (h *ProjectsHandler) UpdateStatus(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var req models.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	project, err := h.projects.UpdateStatus(caller, projectID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projectResponse(project))
}
