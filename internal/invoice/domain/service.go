package domain

import (
	"context"
	"errors"
	"time"

	"github.com/MathisL971/invoicegen/pkg/db/pagination"
)

// ItemInput carries one line of user input. The stored total is always
// recomputed from unit price and quantity.
type ItemInput struct {
	Description    string  `json:"description"`
	AdditionalInfo string  `json:"additional_info"`
	UnitPriceHT    float64 `json:"unit_price_ht"`
	Quantity       float64 `json:"quantity"`
}

type CreateInvoiceRequest struct {
	ClientID      string      `json:"client_id"`
	InvoiceDate   time.Time   `json:"invoice_date"`
	DueDate       time.Time   `json:"due_date"`
	PaymentMethod string      `json:"payment_method"`
	VATApplicable bool        `json:"vat_applicable"`
	VATArticle    string      `json:"vat_article"`
	Notes         string      `json:"notes"`
	Items         []ItemInput `json:"items"`
}

type UpdateInvoiceRequest struct {
	Reference     string      `json:"reference"`
	ClientID      string      `json:"client_id"`
	InvoiceDate   time.Time   `json:"invoice_date"`
	DueDate       time.Time   `json:"due_date"`
	PaymentMethod string      `json:"payment_method"`
	VATApplicable bool        `json:"vat_applicable"`
	VATArticle    string      `json:"vat_article"`
	Notes         string      `json:"notes"`
	Items         []ItemInput `json:"items"`
}

type ListInvoiceRequest struct {
	PageToken string
	PageSize  int
}

// InvoiceSummary is a list row: the stored record plus the derived
// display status (overdue overlay applied).
type InvoiceSummary struct {
	Invoice
	DisplayStatus InvoiceStatus `json:"display_status"`
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []InvoiceSummary `json:"invoices"`
}

// InvoiceDetail is the fully resolved read model.
type InvoiceDetail struct {
	Invoice       Invoice       `json:"invoice"`
	Items         []InvoiceItem `json:"items"`
	DisplayStatus InvoiceStatus `json:"display_status"`
	TotalHT       float64       `json:"total_ht"`
	TotalVAT      float64       `json:"total_vat"`
	TotalTTC      float64       `json:"total_ttc"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	// Get returns the detail and, when the invoice is found newly overdue,
	// fires a single fire-and-forget status write-back.
	Get(ctx context.Context, id string) (InvoiceDetail, error)
	Update(ctx context.Context, id string, req UpdateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, id string) error
	// Duplicate copies the invoice under a fresh reference: version 1.0,
	// status draft, invoice date today, due date +30 days, items copied
	// with order_index renumbered from 0.
	Duplicate(ctx context.Context, id string) (Invoice, error)
	// UpdateStatus resolves one of the actions draft, sent, paid, unpaid
	// and returns the newly stored status.
	UpdateStatus(ctx context.Context, id string, action string) (InvoiceStatus, error)
	// ReconcileOverdue persists the overdue overlay for one invoice. It is
	// the explicit form of the background write triggered by Get.
	ReconcileOverdue(ctx context.Context, id string) error
	// RenderPDF returns the document bytes and the download filename.
	RenderPDF(ctx context.Context, id string) ([]byte, string, error)
	// RenderHTML returns the on-screen preview of the same document tree.
	RenderHTML(ctx context.Context, id string) (string, error)
}

var (
	ErrInvalidAccount     = errors.New("invalid_account")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidClient      = errors.New("invalid_client")
	ErrInvalidItems       = errors.New("invalid_items")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrReferenceRequired  = errors.New("reference_required")
	ErrDuplicateReference = errors.New("duplicate_reference")
	ErrNotFound           = errors.New("not_found")
)
