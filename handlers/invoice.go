package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/middleware"
	"schoolhub_backend/models"
)

type InvoiceHandler struct {
	db            *sql.DB
	notifications Notifications
}

func NewInvoiceHandler(database *sql.DB, notifications Notifications) *InvoiceHandler {
	return &InvoiceHandler{db: database, notifications: notifications}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due_date, expected YYYY-MM-DD"})
		return
	}

	var invoice models.Invoice
	err = h.db.QueryRowContext(c.Request.Context(), `
        INSERT INTO invoices (student_id, amount_cents, description, due_date)
        VALUES ($1, $2, $3, $4::date)
        RETURNING id, student_id, amount_cents, description, due_date, status, created_at
    `, req.StudentID, req.AmountCents, req.Description, dueDate).Scan(
		&invoice.ID, &invoice.StudentID, &invoice.AmountCents,
		&invoice.Description, &invoice.DueDate, &invoice.Status, &invoice.CreatedAt,
	)
	if err != nil {
		log.Printf("Error creating invoice: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	link := fmt.Sprintf("/student/invoices/%d", invoice.ID)
	notify(c.Request.Context(), h.notifications, invoice.StudentID, "invoice",
		fmt.Sprintf("New invoice: %s", invoice.Description), &link)

	c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	var invoice models.Invoice
	err = h.db.QueryRowContext(c.Request.Context(), `
        UPDATE invoices SET status = 'paid'
        WHERE id = $1
        RETURNING id, student_id, amount_cents, description, due_date, status, created_at
    `, id).Scan(
		&invoice.ID, &invoice.StudentID, &invoice.AmountCents,
		&invoice.Description, &invoice.DueDate, &invoice.Status, &invoice.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	if err != nil {
		log.Printf("Error updating invoice: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetStudentInvoices lists the caller's own invoices.
func (h *InvoiceHandler) GetStudentInvoices(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	rows, err := h.db.QueryContext(c.Request.Context(), `
        SELECT id, student_id, amount_cents, description, due_date, status, created_at
        FROM invoices
        WHERE student_id = $1
        ORDER BY created_at DESC
    `, user.ID)
	if err != nil {
		log.Printf("Error fetching invoices for student %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		var invoice models.Invoice
		if err := rows.Scan(&invoice.ID, &invoice.StudentID, &invoice.AmountCents,
			&invoice.Description, &invoice.DueDate, &invoice.Status, &invoice.CreatedAt); err != nil {
			log.Printf("Error scanning invoice row: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan invoices"})
			return
		}
		invoices = append(invoices, invoice)
	}

	c.JSON(http.StatusOK, invoices)
}
