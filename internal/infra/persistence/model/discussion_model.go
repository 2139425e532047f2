package model

import (
	"time"

	"github.com/google/uuid"
)

// DiscussionModel mirrors the 'discussions' table. ActiveDate is a plain
// date; nil marks an unscheduled discussion.
type DiscussionModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title      string     `gorm:"type:varchar(255);not null"`
	Content    string     `gorm:"type:text;not null"`
	ActiveDate *time.Time `gorm:"type:date;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Responses []ResponseModel `gorm:"foreignKey:DiscussionID"`
}

// TableName explicitly sets the table name for GORM.
func (DiscussionModel) TableName() string {
	return "discussions"
}
