package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"client-portal-backend/internal/identity"
	"client-portal-backend/internal/models"
	"client-portal-backend/internal/services"
)

type InvoicesHandler struct {
	resolver *identity.Resolver
	invoices *services.InvoiceService
}

func NewInvoicesHandler(resolver *identity.Resolver, invoices *services.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{
		resolver: resolver,
		invoices: invoices,
	}
}

// CreateInvoice godoc
// @Summary     Create an invoice
// @Description Admin only. Records a pending invoice, flips the project's payment-pending flag, and schedules the invoice-requested webhook.
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.CreateInvoiceRequest true "Invoice"
// @Success     200 {object} models.InvoiceResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/invoices [post]
func (h *InvoicesHandler) CreateInvoice(c *gin.Context) {
	caller, ok := requireCaller(c, h.resolver)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	invoice, err := h.invoices.Create(caller, projectID, req.Amount, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoiceResponse(invoice))
}

// GetPendingInvoice returns the project's oldest pending invoice, or JSON
// null when nothing is awaiting payment.
func (h *InvoicesHandler) GetPendingInvoice(c *gin.Context) {
	if _, ok := requireCaller(c, h.resolver); !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	invoice, err := h.invoices.GetPending(projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if invoice == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, invoiceResponse(invoice))
}
