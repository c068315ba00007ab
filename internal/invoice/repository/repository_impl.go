package repository

import (
	"context"

	"github.com/MathisL971/invoicegen/internal/invoice/domain"
	"github.com/MathisL971/invoicegen/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice, items []domain.InvoiceItem) error {
	if err := db.WithContext(ctx).Create(invoice).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT id, account_id, reference, version, client_id, client_reference,
		        invoice_date, due_date, payment_method, status,
		        vat_applicable, vat_article, notes, created_at, updated_at
		 FROM invoices WHERE account_id = ? AND id = ?`,
		accountID,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, accountID snowflake.ID, reference string, excludeID snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	stmt := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("account_id = ? AND reference = ?", accountID, reference)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}
	err := stmt.Limit(1).Find(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, page pagination.Pagination) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	stmt := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("account_id = ?", accountID)
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err == nil && cursor.ID != "" {
			stmt = stmt.Where("id > ?", cursor.ID)
		}
	}
	limit := page.PageSize
	if limit <= 0 {
		limit = 50
	}
	err := stmt.
		Order("id asc").
		Limit(limit + 1).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.InvoiceItem, error) {
	var items []domain.InvoiceItem
	err := db.WithContext(ctx).
		Model(&domain.InvoiceItem{}).
		Where("invoice_id = ?", invoiceID).
		Order("order_index asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("account_id = ? AND id = ?", invoice.AccountID, invoice.ID).
		Updates(map[string]interface{}{
			"reference":        invoice.Reference,
			"version":          invoice.Version,
			"client_id":        invoice.ClientID,
			"client_reference": invoice.ClientReference,
			"invoice_date":     invoice.InvoiceDate,
			"due_date":         invoice.DueDate,
			"payment_method":   invoice.PaymentMethod,
			"status":           invoice.Status,
			"vat_applicable":   invoice.VATApplicable,
			"vat_article":      invoice.VATArticle,
			"notes":            invoice.Notes,
			"updated_at":       invoice.UpdatedAt,
		}).Error
}

func (r *repo) ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, items []domain.InvoiceItem) error {
	err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Delete(&domain.InvoiceItem{}).Error
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID, status domain.InvoiceStatus) error {
	return db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("account_id = ? AND id = ?", accountID, id).
		Update("status", status).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	err := db.WithContext(ctx).
		Where("invoice_id = ?", id).
		Delete(&domain.InvoiceItem{}).Error
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		Delete(&domain.Invoice{}).Error
}

func (r *repo) DeleteByClient(ctx context.Context, db *gorm.DB, accountID, clientID snowflake.ID) error {
	err := db.WithContext(ctx).
		Where("invoice_id IN (?)",
			db.Model(&domain.Invoice{}).
				Select("id").
				Where("account_id = ? AND client_id = ?", accountID, clientID),
		).
		Delete(&domain.InvoiceItem{}).Error
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Where("account_id = ? AND client_id = ?", accountID, clientID).
		Delete(&domain.Invoice{}).Error
}
