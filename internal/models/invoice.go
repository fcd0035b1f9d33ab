package models

import (
	"time"

	"github.com/google/uuid"
)

type Currency string

const (
	CurrencyJPY Currency = "jpy"
	CurrencyUSD Currency = "usd"
)

func ValidCurrency(c Currency) bool {
	return c == CurrencyJPY || c == CurrencyUSD
}

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice is a payment placeholder. PaymentLink is filled in by the external
// automation flow; nothing in this service executes a payment.
type Invoice struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Amount      int64
	Currency    Currency
	PaymentLink string
	Status      InvoiceStatus
	IssuedAt    time.Time
}
