// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// InvoiceStatus represents invoice lifecycle states. Overdue is a derived
// overlay: it is stored only as a best-effort cache and never prevents a
// transition back to paid, sent or draft.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Valid reports whether s is a storable status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	default:
		return false
	}
}

// Invoice is one billing document. Reference is unique per account;
// version starts at "1.0" and bumps by 0.1 on every content edit.
type Invoice struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	AccountID       snowflake.ID  `gorm:"not null;index;uniqueIndex:ux_invoices_account_reference" json:"account_id"`
	Reference       string        `gorm:"type:text;not null;uniqueIndex:ux_invoices_account_reference" json:"reference"`
	Version         string        `gorm:"type:text;not null;default:'1.0'" json:"version"`
	ClientID        snowflake.ID  `gorm:"not null;index" json:"client_id"`
	ClientReference string        `gorm:"type:text" json:"client_reference,omitempty"`
	InvoiceDate     time.Time     `gorm:"not null" json:"invoice_date"`
	DueDate         time.Time     `gorm:"not null" json:"due_date"`
	PaymentMethod   string        `gorm:"type:text" json:"payment_method"`
	Status          InvoiceStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	VATApplicable   bool          `gorm:"not null;default:true" json:"vat_applicable"`
	VATArticle      string        `gorm:"type:text" json:"vat_article,omitempty"`
	Notes           string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a line on an invoice. TotalHT is always recomputed
// server-side from unit price and quantity, never trusted from input.
// Items have no lifecycle of their own: they are replaced wholesale with
// their parent invoice.
type InvoiceItem struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID      snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Description    string       `gorm:"type:text;not null" json:"description"`
	AdditionalInfo string       `gorm:"type:text" json:"additional_info,omitempty"`
	UnitPriceHT    float64      `gorm:"type:decimal(12,2);not null" json:"unit_price_ht"`
	Quantity       float64      `gorm:"type:decimal(12,3);not null" json:"quantity"`
	TotalHT        float64      `gorm:"type:decimal(12,2);not null" json:"total_ht"`
	OrderIndex     int          `gorm:"not null;default:0" json:"order_index"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }
