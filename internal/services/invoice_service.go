package services

import (
	"fmt"

	"github.com/google/uuid"

	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/authz"
	"client-portal-backend/internal/models"
	"client-portal-backend/internal/notify"
)

type InvoiceService struct {
	invoices InvoiceStore
	projects ProjectStore
	users    UserStore
	notifier Notifier
}

func NewInvoiceService(invoices InvoiceStore, projects ProjectStore, users UserStore, notifier Notifier) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		projects: projects,
		users:    users,
		notifier: notifier,
	}
}

// Create records a pending invoice and flips the project's payment-pending
// flag. No payment is executed here; the payment link stays a placeholder
// until the external automation flow fills it in.
func (s *InvoiceService) Create(caller *models.User, projectID uuid.UUID, amount int64, currency models.Currency) (*models.Invoice, error) {
	if err := authz.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, apperr.InvalidArgument("amount must be positive")
	}
	if currency == "" {
		currency = models.CurrencyJPY
	}
	if !models.ValidCurrency(currency) {
		return nil, apperr.InvalidArgument("invalid currency")
	}

	project, err := s.projects.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, apperr.NotFound("project not found")
	}

	if err := s.projects.SetProjectPaymentPending(projectID, true); err != nil {
		return nil, fmt.Errorf("failed to set payment pending: %w", err)
	}

	invoice, err := s.invoices.CreateInvoice(projectID, amount, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	clientEmail := ""
	if client, err := s.users.GetUserByID(project.ClientID); err == nil && client != nil {
		clientEmail = client.Email
	}

	s.notifier.EnqueueInvoiceRequested(notify.InvoiceRequestedEvent{
		ProjectID:   projectID.String(),
		Amount:      amount,
		ClientEmail: clientEmail,
	})

	return invoice, nil
}

// GetPending returns the project's first pending invoice, or nil. No role
// check beyond authentication in this core.
func (s *InvoiceService) GetPending(projectID uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.invoices.GetPendingInvoice(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending invoice: %w", err)
	}
	return invoice, nil
}
