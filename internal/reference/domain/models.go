package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Counter holds the last issued sequence per (account, kind). The next
// value is assigned atomically in the store so concurrent creations for
// the same account can never collide.
type Counter struct {
	AccountID  snowflake.ID `gorm:"primaryKey;column:account_id" json:"account_id"`
	Kind       string       `gorm:"type:text;primaryKey;column:kind" json:"kind"`
	LastNumber int64        `gorm:"not null;default:0" json:"last_number"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Counter) TableName() string { return "reference_counters" }
