package models

import "time"

const (
	InvoiceStatusUnpaid = "unpaid"
	InvoiceStatusPaid   = "paid"
)

type Invoice struct {
	ID          int       `json:"id"`
	StudentID   int       `json:"student_id"`
	AmountCents int       `json:"amount_cents"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateInvoiceRequest struct {
	StudentID   int    `json:"student_id" binding:"required"`
	AmountCents int    `json:"amount_cents" binding:"required,min=1"`
	Description string `json:"description" binding:"required"`
	DueDate     string `json:"due_date" binding:"required"` // YYYY-MM-DD
}
