package domain

import (
	"context"

	"github.com/MathisL971/invoicegen/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Client, error)
	FindByReference(ctx context.Context, db *gorm.DB, accountID snowflake.ID, reference string, excludeID snowflake.ID) (*Client, error)
	List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, page pagination.Pagination) ([]*Client, error)
	Update(ctx context.Context, db *gorm.DB, client *Client) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
}
