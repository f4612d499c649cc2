package model

import (
	"time"

	"github.com/google/uuid"
)

// Contact is one person record. Every descriptive field is optional,
// but a contact must carry at least a name or an email; the CHECK
// constraint below enforces that even for writers that bypass the
// application-level validation.
type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      *string   `gorm:"check:chk_contacts_identity,name IS NOT NULL OR email IS NOT NULL"`
	Email     *string
	Company   *string
	Location  *string
	Phone     *string
	JobTitle  *string `gorm:"column:job_title"`
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	CustomFields []CustomField `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
}

func (Contact) TableName() string { return "contacts" }
