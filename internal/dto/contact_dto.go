package dto

import (
	"time"

	"github.com/google/uuid"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CustomFieldInput struct {
	Label string `json:"label" validate:"required,min=1"`
	Value string `json:"value" validate:"required,min=1"`
}

// CreateContactRequest carries a new contact. Every field is optional on
// its own, but at least one of Name/Email must be non-empty. That rule
// is cross-field and enforced by the schema package, not a tag.
type CreateContactRequest struct {
	Name         *string            `json:"name"`
	Email        *string            `json:"email" validate:"omitempty,email"`
	Company      *string            `json:"company"`
	Location     *string            `json:"location"`
	Phone        *string            `json:"phone" validate:"omitempty,phone_permissive"`
	JobTitle     *string            `json:"job_title"`
	Notes        *string            `json:"notes"`
	CustomFields []CustomFieldInput `json:"custom_fields" validate:"omitempty,dive"`
}

// UpdateContactRequest is a partial update: only non-nil fields are
// applied. Clearing a field is not supported over the wire.
type UpdateContactRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Company  *string `json:"company"`
	Location *string `json:"location"`
	Phone    *string `json:"phone" validate:"omitempty,phone_permissive"`
	JobTitle *string `json:"job_title"`
	Notes    *string `json:"notes"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CustomFieldResponse struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	ContactID uuid.UUID `json:"contact_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactResponse is the nested representation: the contact row plus all
// of its custom fields. CustomFields is always present, [] when empty.
type ContactResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         *string               `json:"name"`
	Email        *string               `json:"email"`
	Company      *string               `json:"company"`
	Location     *string               `json:"location"`
	Phone        *string               `json:"phone"`
	JobTitle     *string               `json:"job_title"`
	Notes        *string               `json:"notes"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	CustomFields []CustomFieldResponse `json:"custom_fields"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}
