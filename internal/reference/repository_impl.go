package reference

import (
	"context"

	"github.com/MathisL971/invoicegen/internal/reference/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() domain.Repository {
	return &repository{}
}

func (r *repository) Next(ctx context.Context, db *gorm.DB, accountID snowflake.ID, kind string) (int64, error) {
	var last int64
	err := db.WithContext(ctx).Raw(
		`INSERT INTO reference_counters (account_id, kind, last_number, updated_at)
		 VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT (account_id, kind)
		 DO UPDATE SET last_number = reference_counters.last_number + 1, updated_at = CURRENT_TIMESTAMP
		 RETURNING last_number`,
		accountID,
		kind,
	).Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last, nil
}

func (r *repository) Advance(ctx context.Context, db *gorm.DB, accountID snowflake.ID, kind string, seq int64) error {
	if seq <= 0 {
		return nil
	}
	err := db.WithContext(ctx).Exec(
		`INSERT INTO reference_counters (account_id, kind, last_number, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (account_id, kind)
		 DO UPDATE SET last_number = excluded.last_number, updated_at = CURRENT_TIMESTAMP
		 WHERE reference_counters.last_number < excluded.last_number`,
		accountID,
		kind,
		seq,
	).Error
	return err
}
