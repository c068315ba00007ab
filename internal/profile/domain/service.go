package domain

import (
	"context"
	"errors"
)

type UpdateProfileRequest struct {
	CompanyName string      `json:"company_name"`
	Address     string      `json:"address"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	BankingInfo BankingInfo `json:"banking_info"`
}

type Service interface {
	// Get returns the caller's profile, creating an empty one on first use.
	Get(ctx context.Context) (Profile, error)
	Update(ctx context.Context, req UpdateProfileRequest) (Profile, error)
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
)
