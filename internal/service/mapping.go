package service

import (
	"strings"
	"time"

	"github.com/b0g1dan23/ai-contact-extractor/internal/dto"
	"github.com/b0g1dan23/ai-contact-extractor/internal/model"

	"github.com/google/uuid"
)

// mapContact converts a persisted model (with its fields loaded) into
// the nested response shape.
func mapContact(c model.Contact) dto.ContactResponse {
	fields := make([]dto.CustomFieldResponse, 0, len(c.CustomFields))
	for _, f := range c.CustomFields {
		fields = append(fields, dto.CustomFieldResponse{
			ID:        f.ID,
			Label:     f.Label,
			Value:     f.Value,
			ContactID: f.ContactID,
			CreatedAt: f.CreatedAt,
			UpdatedAt: f.UpdatedAt,
		})
	}
	return dto.ContactResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Company:      c.Company,
		Location:     c.Location,
		Phone:        c.Phone,
		JobTitle:     c.JobTitle,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		CustomFields: fields,
	}
}

// normalizeText maps empty / whitespace-only strings to nil so that the
// storage layer stores NULL instead of "" and the name-or-email CHECK
// constraint keeps its meaning.
func normalizeText(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefUUID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
