package repository

import (
	"context"
	"errors"
	"time"

	"github.com/b0g1dan23/ai-contact-extractor/internal/model"
	"github.com/b0g1dan23/ai-contact-extractor/internal/schema"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrContactIdentity is returned when a write would produce a contact
// with neither name nor email. The same rule lives in the schema
// package and as a CHECK constraint; this is the middle layer of the
// defense, for callers that reach the store directly.
var ErrContactIdentity = errors.New("contact must have at least a name or an email")

// FlatContactRow is the typed contract between the store's left join
// and the read assembler. The custom-field side is nil-valued when the
// join matched nothing for that contact.
type FlatContactRow struct {
	ID        uuid.UUID
	Name      *string
	Email     *string
	Company   *string
	Location  *string
	Phone     *string
	JobTitle  *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	FieldID        *uuid.UUID
	FieldLabel     *string
	FieldValue     *string
	FieldContactID *uuid.UUID
	FieldCreatedAt *time.Time
	FieldUpdatedAt *time.Time
}

// HasField reports whether the row carries a real custom-field side
// rather than the join's absent placeholder.
func (r FlatContactRow) HasField() bool { return r.FieldID != nil }

type ContactRepository interface {
	// Create inserts the contact and its custom fields in one
	// transaction. Field rows are tagged with the new contact id.
	Create(ctx context.Context, contact *model.Contact, fields []model.CustomField) error
	// Update applies the given column map to one contact and refreshes
	// updated_at. Returns gorm.ErrRecordNotFound when no row matched.
	Update(ctx context.Context, id uuid.UUID, columns map[string]any) error
	// Delete removes the contact; custom fields go with it via the FK
	// cascade. Returns gorm.ErrRecordNotFound when no row matched.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListFlat returns the left join of contacts and custom fields.
	// A contact without fields yields exactly one row with a nil
	// field side. Row order is stable: contacts by creation, fields
	// by creation within their contact.
	ListFlat(ctx context.Context) ([]FlatContactRow, error)
}

type contactRepo struct{ db *gorm.DB }

func NewContactRepository(db *gorm.DB) ContactRepository { return &contactRepo{db: db} }

func (r *contactRepo) Create(ctx context.Context, contact *model.Contact, fields []model.CustomField) error {
	if !schema.HasIdentity(contact.Name, contact.Email) {
		return ErrContactIdentity
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contact).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		for i := range fields {
			fields[i].ContactID = contact.ID
		}
		return tx.Create(&fields).Error
	})
}

func (r *contactRepo) Update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Contact{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepo) ListFlat(ctx context.Context) ([]FlatContactRow, error) {
	var rows []FlatContactRow
	err := r.db.WithContext(ctx).
		Table("contacts").
		Select(`contacts.id, contacts.name, contacts.email, contacts.company, contacts.location,
			contacts.phone, contacts.job_title, contacts.notes, contacts.created_at, contacts.updated_at,
			custom_fields.id AS field_id, custom_fields.label AS field_label,
			custom_fields.value AS field_value, custom_fields.contact_id AS field_contact_id,
			custom_fields.created_at AS field_created_at, custom_fields.updated_at AS field_updated_at`).
		Joins("LEFT JOIN custom_fields ON custom_fields.contact_id = contacts.id").
		Order("contacts.created_at, contacts.id, custom_fields.created_at").
		Scan(&rows).Error
	return rows, err
}
