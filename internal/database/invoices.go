package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"client-portal-backend/internal/models"
)

const invoiceColumns = "id, project_id, amount, currency, payment_link, status, issued_at"

func scanInvoice(row *sql.Row) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.ID, &inv.ProjectID, &inv.Amount, &inv.Currency,
		&inv.PaymentLink, &inv.Status, &inv.IssuedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}
	return &inv, nil
}

func (c *Client) CreateInvoice(projectID uuid.UUID, amount int64, currency models.Currency) (*models.Invoice, error) {
	return scanInvoice(c.db.QueryRow(`
		INSERT INTO invoices (id, project_id, amount, currency, payment_link, status)
		VALUES ($1, $2, $3, $4, '', 'pending')
		RETURNING `+invoiceColumns+`
	`, uuid.New(), projectID, amount, currency))
}

// GetPendingInvoice returns the oldest pending invoice for a project, or nil.
func (c *Client) GetPendingInvoice(projectID uuid.UUID) (*models.Invoice, error) {
	return scanInvoice(c.db.QueryRow(`
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE project_id = $1 AND status = 'pending'
		ORDER BY issued_at ASC
		LIMIT 1
	`, projectID))
}
