package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table. A row exists per browser
// session; account and profile columns are null until the callback populates
// them. TokenCache holds the provider client's serialized cache verbatim.
type SessionModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountHomeID      *string   `gorm:"type:varchar(128)"`
	AccountUsername    *string   `gorm:"type:varchar(255)"`
	AccountAuthority   *string   `gorm:"type:varchar(255)"`
	TokenCache         []byte    `gorm:"type:bytea"`
	ProfileExternalID  *string   `gorm:"type:varchar(128)"`
	ProfileDisplayName *string   `gorm:"type:varchar(100)"`
	ProfilePrincipal   *string   `gorm:"type:varchar(255)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
