package service

import (
	"github.com/b0g1dan23/ai-contact-extractor/internal/dto"
	"github.com/b0g1dan23/ai-contact-extractor/internal/repository"

	"github.com/google/uuid"
)

// AssembleContacts groups the store's flat left-join rows into one
// nested object per contact. Contacts are keyed by first occurrence, so
// the output preserves the store's row order, no re-sorting here.
// CustomFields is always non-nil: a contact whose single row has an
// absent field side comes out with an empty slice.
func AssembleContacts(rows []repository.FlatContactRow) []dto.ContactResponse {
	byID := make(map[uuid.UUID]*dto.ContactResponse, len(rows))
	order := make([]uuid.UUID, 0, len(rows))

	for _, row := range rows {
		contact, seen := byID[row.ID]
		if !seen {
			contact = &dto.ContactResponse{
				ID:           row.ID,
				Name:         row.Name,
				Email:        row.Email,
				Company:      row.Company,
				Location:     row.Location,
				Phone:        row.Phone,
				JobTitle:     row.JobTitle,
				Notes:        row.Notes,
				CreatedAt:    row.CreatedAt,
				UpdatedAt:    row.UpdatedAt,
				CustomFields: []dto.CustomFieldResponse{},
			}
			byID[row.ID] = contact
			order = append(order, row.ID)
		}
		if row.HasField() {
			contact.CustomFields = append(contact.CustomFields, dto.CustomFieldResponse{
				ID:        *row.FieldID,
				Label:     derefString(row.FieldLabel),
				Value:     derefString(row.FieldValue),
				ContactID: derefUUID(row.FieldContactID),
				CreatedAt: derefTime(row.FieldCreatedAt),
				UpdatedAt: derefTime(row.FieldUpdatedAt),
			})
		}
	}

	result := make([]dto.ContactResponse, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}
	return result
}
