package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomField stores one ad-hoc label/value pair owned by a Contact.
// Fields have no independent lifecycle: they are created alongside
// their parent and removed by the FK cascade when the parent goes.
type CustomField struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Label     string    `gorm:"not null"`
	Value     string    `gorm:"not null"`
	ContactID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CustomField) TableName() string { return "custom_fields" }
