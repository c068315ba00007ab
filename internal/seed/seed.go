// Package seed bootstraps the rows a fresh deployment needs before the
// first request.
package seed

import (
	"context"
	"errors"
	"time"

	profiledomain "github.com/MathisL971/invoicegen/internal/profile/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDefaultAccount creates an empty sender profile for the
// configured account so the first PDF renders without a settings visit.
func EnsureDefaultAccount(db *gorm.DB, accountID int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing profiledomain.Profile
		err := tx.Where("account_id = ?", accountID).Limit(1).Find(&existing).Error
		if err != nil {
			return err
		}
		if existing.AccountID != 0 {
			return nil
		}

		now := time.Now().UTC()
		return tx.Create(&profiledomain.Profile{
			AccountID:   snowflake.ID(accountID),
			BankingInfo: datatypes.NewJSONType(profiledomain.BankingInfo{}),
			CreatedAt:   now,
			UpdatedAt:   now,
		}).Error
	})
}
