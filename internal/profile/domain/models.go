// Package domain contains the sender profile rendered on invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// BankingInfo is the optional bank block printed on invoices.
type BankingInfo struct {
	BankName string `json:"bank_name,omitempty"`
	RIB      string `json:"RIB,omitempty"`
	IBAN     string `json:"IBAN,omitempty"`
	BIC      string `json:"BIC,omitempty"`
}

// Profile is the sender identity, one row per account. It is created
// lazily on first read and never deleted.
type Profile struct {
	AccountID   snowflake.ID                    `gorm:"primaryKey;column:account_id" json:"account_id"`
	CompanyName string                          `gorm:"type:text" json:"company_name,omitempty"`
	Address     string                          `gorm:"type:text" json:"address,omitempty"`
	Phone       string                          `gorm:"type:text" json:"phone,omitempty"`
	Email       string                          `gorm:"type:text" json:"email,omitempty"`
	BankingInfo datatypes.JSONType[BankingInfo] `gorm:"column:banking_info" json:"banking_info"`
	CreatedAt   time.Time                       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
