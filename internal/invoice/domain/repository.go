package domain

import (
	"context"

	"github.com/MathisL971/invoicegen/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice, items []InvoiceItem) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Invoice, error)
	FindByReference(ctx context.Context, db *gorm.DB, accountID snowflake.ID, reference string, excludeID snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, page pagination.Pagination) ([]*Invoice, error)
	ListItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]InvoiceItem, error)
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	// ReplaceItems deletes the current lines and inserts the new set.
	ReplaceItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, items []InvoiceItem) error
	UpdateStatus(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID, status InvoiceStatus) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	// DeleteByClient removes all invoices (and their items) owned by a client.
	DeleteByClient(ctx context.Context, db *gorm.DB, accountID, clientID snowflake.ID) error
}
