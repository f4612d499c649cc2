package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/b0g1dan23/ai-contact-extractor/internal/apierror"
	"github.com/b0g1dan23/ai-contact-extractor/internal/dto"
	"github.com/b0g1dan23/ai-contact-extractor/internal/model"
	"github.com/b0g1dan23/ai-contact-extractor/internal/repository"
	"github.com/b0g1dan23/ai-contact-extractor/internal/schema"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	listCacheKey = "contacts:all"
	listCacheTTL = 5 * time.Minute
)

// ContactService defines the CRUD operations over contacts.
type ContactService interface {
	Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error)
	List(ctx context.Context) ([]dto.ContactResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateContactRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactService struct {
	repo repository.ContactRepository
	rdb  *redis.Client // nil disables caching (tests)
}

func NewContactService(repo repository.ContactRepository, rdb *redis.Client) ContactService {
	return &contactService{repo: repo, rdb: rdb}
}

func (s *contactService) Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error) {
	if issues := schema.ValidateContactInput(&req); len(issues) > 0 {
		return dto.ContactResponse{}, &ValidationFailedError{Issues: issues}
	}

	contact := model.Contact{
		Name:     normalizeText(req.Name),
		Email:    normalizeText(req.Email),
		Company:  normalizeText(req.Company),
		Location: normalizeText(req.Location),
		Phone:    normalizeText(req.Phone),
		JobTitle: normalizeText(req.JobTitle),
		Notes:    normalizeText(req.Notes),
	}
	fields := make([]model.CustomField, 0, len(req.CustomFields))
	for _, f := range req.CustomFields {
		fields = append(fields, model.CustomField{Label: f.Label, Value: f.Value})
	}

	if err := s.repo.Create(ctx, &contact, fields); err != nil {
		return dto.ContactResponse{}, mapStoreError(err)
	}
	contact.CustomFields = fields

	s.invalidateListCache(ctx)
	return mapContact(contact), nil
}

func (s *contactService) List(ctx context.Context) ([]dto.ContactResponse, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}

	rows, err := s.repo.ListFlat(ctx)
	if err != nil {
		return nil, err
	}
	contacts := AssembleContacts(rows)

	s.storeListCache(ctx, contacts)
	return contacts, nil
}

func (s *contactService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateContactRequest) error {
	if issues := schema.ValidateContactUpdate(&req); len(issues) > 0 {
		return &ValidationFailedError{Issues: issues}
	}

	columns := updateColumns(req)
	if len(columns) == 0 {
		return &ValidationFailedError{Issues: []apierror.Issue{
			{Field: "body", Message: "no fields to update"},
		}}
	}

	if err := s.repo.Update(ctx, id, columns); err != nil {
		return mapStoreError(err)
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}
	s.invalidateListCache(ctx)
	return nil
}

// updateColumns builds the partial column map from non-nil fields.
// Blank strings become NULL so a contact cannot keep an empty-string
// identity that the CHECK constraint would not see.
func updateColumns(req dto.UpdateContactRequest) map[string]any {
	columns := make(map[string]any)
	set := func(name string, v *string) {
		if v != nil {
			if norm := normalizeText(v); norm != nil {
				columns[name] = *norm
			} else {
				columns[name] = nil
			}
		}
	}
	set("name", req.Name)
	set("email", req.Email)
	set("company", req.Company)
	set("location", req.Location)
	set("phone", req.Phone)
	set("job_title", req.JobTitle)
	set("notes", req.Notes)
	return columns
}

// mapStoreError converts repository-level failures into service error kinds.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrContactIdentity),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return ErrConstraintViolation
	default:
		return err
	}
}

// ── List cache ────────────────────────────────────────────────────────────────
// Best-effort response cache for GET /contacts: a nil or unreachable
// Redis degrades to the database, never to an error.

func (s *contactService) cachedList(ctx context.Context) ([]dto.ContactResponse, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var contacts []dto.ContactResponse
	if err := json.Unmarshal(raw, &contacts); err != nil {
		return nil, false
	}
	return contacts, true
}

func (s *contactService) storeListCache(ctx context.Context, contacts []dto.ContactResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(contacts)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, listCacheKey, raw, listCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to populate contacts cache")
	}
}

func (s *contactService) invalidateListCache(ctx context.Context) {
	invalidateContactsCache(ctx, s.rdb)
}

// invalidateContactsCache drops the cached list after any mutation,
// including the extraction pipeline's persists.
func invalidateContactsCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, listCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate contacts cache")
	}
}
