package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/identity"
	"client-portal-backend/internal/middleware"
	"client-portal-backend/internal/models"
)

// requireCaller resolves the authenticated requester or writes the error
// response and returns false. Distinguishes unauthenticated, unknown user,
// and everything downstream.
func requireCaller(c *gin.Context, resolver *identity.Resolver) (*models.User, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthenticated"})
		return nil, false
	}

	caller, err := resolver.Require(id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	return caller, true
}

func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, models.ErrorResponse{Error: "internal error"})
		return
	}

	kind := apperr.KindOf(err)
	c.JSON(status, models.ErrorResponse{
		Error:   string(kind),
		Message: err.Error(),
	})
}

func userResponse(user *models.User) models.UserResponse {
	return models.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		AvatarURL: user.AvatarURL.String,
	}
}

func projectResponse(p *models.Project) models.ProjectResponse {
	return models.ProjectResponse{
		ID:               p.ID.String(),
		ClientID:         p.ClientID.String(),
		Title:            p.Title,
		Status:           p.Status,
		IsPaymentPending: p.IsPaymentPending,
		CreatedAt:        p.CreatedAt,
	}
}

func taskResponse(t *models.Task) models.TaskResponse {
	resp := models.TaskResponse{
		ID:        t.ID.String(),
		ProjectID: t.ProjectID.String(),
		Title:     t.Title,
		Status:    t.Status,
		Tags:      []string(t.Tags),
		CreatedAt: t.CreatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if t.Description.Valid {
		resp.Description = t.Description.String
	}
	if t.DueDate.Valid {
		due := t.DueDate.Time
		resp.DueDate = &due
	}
	if t.SortOrder.Valid {
		order := t.SortOrder.Int64
		resp.SortOrder = &order
	}
	return resp
}

func invoiceResponse(inv *models.Invoice) models.InvoiceResponse {
	return models.InvoiceResponse{
		ID:          inv.ID.String(),
		ProjectID:   inv.ProjectID.String(),
		Amount:      inv.Amount,
		Currency:    inv.Currency,
		PaymentLink: inv.PaymentLink,
		Status:      inv.Status,
		IssuedAt:    inv.IssuedAt,
	}
}
