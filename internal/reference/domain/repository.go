package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// Next atomically increments the counter for (accountID, kind) and
	// returns the new sequence number. The first call returns 1.
	Next(ctx context.Context, db *gorm.DB, accountID snowflake.ID, kind string) (int64, error)
	// Advance moves the counter forward to at least seq. Used when a
	// manually entered reference outruns the generated sequence.
	Advance(ctx context.Context, db *gorm.DB, accountID snowflake.ID, kind string, seq int64) error
}
