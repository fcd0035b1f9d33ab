package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/models"
)

func TestInvoiceCreate_FlipsPaymentPendingAndNotifies(t *testing.T) {
	e := newEnv()
	project := e.store.addProject(e.client.ID, "Redesign")

	invoice, err := e.invoices.Create(e.admin, project.ID, 350000, models.CurrencyJPY)

	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, int64(350000), invoice.Amount)
	assert.True(t, e.store.projects[project.ID].IsPaymentPending)

	pending, err := e.invoices.GetPending(project.ID)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, invoice.ID, pending.ID)

	require.Len(t, e.notifier.invoiceRequested, 1)
	event := e.notifier.invoiceRequested[0]
	assert.Equal(t, project.ID.String(), event.ProjectID)
	assert.Equal(t, int64(350000), event.Amount)
	assert.Equal(t, e.client.Email, event.ClientEmail)
}

func TestInvoiceCreate_AdminOnly(t *testing.T) {
	e := newEnv()
	project := e.store.addProject(e.client.ID, "Redesign")

	_, err := e.invoices.Create(e.client, project.ID, 1000, models.CurrencyJPY)

	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.False(t, e.store.projects[project.ID].IsPaymentPending)
}

func TestInvoiceCreate_RejectsNonPositiveAmount(t *testing.T) {
	e := newEnv()
	project := e.store.addProject(e.client.ID, "Redesign")

	_, err := e.invoices.Create(e.admin, project.ID, 0, models.CurrencyJPY)

	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestInvoiceCreate_DefaultsToJPY(t *testing.T) {
	e := newEnv()
	project := e.store.addProject(e.client.ID, "Redesign")

	invoice, err := e.invoices.Create(e.admin, project.ID, 500, "")

	require.NoError(t, err)
	assert.Equal(t, models.CurrencyJPY, invoice.Currency)
}

func TestInvoiceGetPending_NilWhenNothingPending(t *testing.T) {
	e := newEnv()
	project := e.store.addProject(e.client.ID, "Redesign")

	pending, err := e.invoices.GetPending(project.ID)

	require.NoError(t, err)
	assert.Nil(t, pending)
}
