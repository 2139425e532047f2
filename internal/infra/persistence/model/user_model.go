// Package model contains the GORM persistence models mirroring the
// relational schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// The (external_id, email) pair carries a unique constraint so provisioning
// stays idempotent even when two first logins race.
type UserModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ExternalID string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_users_identity"`
	Name       string    `gorm:"type:varchar(100)"`
	Username   *string   `gorm:"type:varchar(100)"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_identity"`
	Admin      bool      `gorm:"not null;default:false"`
	Disabled   bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Responses []ResponseModel `gorm:"foreignKey:AuthorID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
