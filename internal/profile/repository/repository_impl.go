package repository

import (
	"context"
	"errors"

	"github.com/MathisL971/invoicegen/internal/profile/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByAccount(ctx context.Context, db *gorm.DB, accountID snowflake.ID) (*domain.Profile, error) {
	var profile domain.Profile
	err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("account_id = ?", profile.AccountID).
		Updates(map[string]interface{}{
			"company_name": profile.CompanyName,
			"address":      profile.Address,
			"phone":        profile.Phone,
			"email":        profile.Email,
			"banking_info": profile.BankingInfo,
			"updated_at":   profile.UpdatedAt,
		}).Error
}
