package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"client-portal-backend/internal/identity"
	"client-portal-backend/internal/models"
	"client-portal-backend/internal/services"
)

type ActivitiesHandler struct {
	resolver   *identity.Resolver
	activities *services.ActivityService
}

func NewActivitiesHandler(resolver *identity.Resolver, activities *services.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{
		resolver:   resolver,
		activities: activities,
	}
}

// ListRecent godoc
// @Summary     Recent project activity
// @Description Returns the newest activity entries for the project, enriched with the acting user's display fields.
// @Tags        activities
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.ActivitiesResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/activities [get]
func (h *ActivitiesHandler) ListRecent(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	activities, err := h.activities.Recent(caller, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ActivityResponse, len(activities))
	for i, a := range activities {
		responses[i] = models.ActivityResponse{
			ID:         a.ID.String(),
			ProjectID:  a.ProjectID.String(),
			Action:     a.Action,
			EntityID:   a.EntityID,
			EntityName: a.EntityName,
			UserName:   a.UserName,
			UserAvatar: a.UserAvatar.String,
			UserRole:   a.UserRole.String,
			CreatedAt:  a.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, models.ActivitiesResponse{Activities: responses})
}
