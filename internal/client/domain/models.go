// Package domain contains the billed-client records.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is a billed party. Reference is unique per account, either
// user-supplied or generated from the account counter.
type Client struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	AccountID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_clients_account_reference" json:"account_id"`
	Reference string       `gorm:"type:text;not null;uniqueIndex:ux_clients_account_reference" json:"reference"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Address   string       `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
