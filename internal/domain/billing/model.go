package billing

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusIssued Status = "issued"
	StatusPaid   Status = "paid"
	StatusVoid   Status = "void"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPaid, StatusVoid:
		return true
	}
	return false
}

// Invoice maps to the invoice table. Amounts are in centavos to keep the
// arithmetic exact.
type Invoice struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	Status        Status     `db:"status" json:"status"`
	TotalCents    int64      `db:"total_cents" json:"total_cents"`
	IssuedAt      *time.Time `db:"issued_at" json:"issued_at,omitempty"`
	PaidAt        *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	Items []LineItem `db:"-" json:"items"`
}

// LineItem maps to the invoice_item table.
type LineItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	InvoiceID      uuid.UUID `db:"invoice_id" json:"invoice_id"`
	Description    string    `db:"description" json:"description"`
	Quantity       int       `db:"quantity" json:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents" json:"unit_price_cents"`
}

func (i LineItem) AmountCents() int64 {
	return int64(i.Quantity) * i.UnitPriceCents
}

// Recalculate sets TotalCents from the line items.
func (inv *Invoice) Recalculate() {
	var total int64
	for _, item := range inv.Items {
		total += item.AmountCents()
	}
	inv.TotalCents = total
}

// PatientSummary aggregates a patient's billing position.
type PatientSummary struct {
	PatientID        uuid.UUID `json:"patient_id"`
	InvoiceCount     int       `json:"invoice_count"`
	TotalBilledCents int64     `json:"total_billed_cents"`
	TotalPaidCents   int64     `json:"total_paid_cents"`
	BalanceCents     int64     `json:"balance_cents"`
}
