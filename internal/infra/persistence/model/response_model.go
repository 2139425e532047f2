package model

import (
	"time"

	"github.com/google/uuid"
)

// ResponseModel mirrors the 'responses' table. Threading is expressed via the
// self-referencing parent_response_id column.
type ResponseModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AuthorID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	DiscussionID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParentID     *uuid.UUID `gorm:"type:uuid;column:parent_response_id"`
	Content      string     `gorm:"type:text;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Replies []ResponseModel `gorm:"foreignKey:ParentID"`
}

// TableName explicitly sets the table name for GORM.
func (ResponseModel) TableName() string {
	return "responses"
}
