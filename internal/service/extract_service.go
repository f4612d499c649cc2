package service

import (
	"context"
	"fmt"

	"github.com/b0g1dan23/ai-contact-extractor/internal/dto"
	"github.com/b0g1dan23/ai-contact-extractor/internal/infra"
	"github.com/b0g1dan23/ai-contact-extractor/internal/model"
	"github.com/b0g1dan23/ai-contact-extractor/internal/repository"
	"github.com/b0g1dan23/ai-contact-extractor/internal/schema"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxExtractionTextLen caps the user text sent to the model.
const MaxExtractionTextLen = 10000

// ModelClient is the substitutable language-model interface. The
// production implementation lives in infra; tests plug in doubles.
// Complete returns the raw content of the completion. Parsing and
// validation are the pipeline's job, not the client's.
type ModelClient interface {
	Complete(ctx context.Context, text string) (string, error)
}

// ExtractService turns unstructured text into persisted, validated
// contacts.
type ExtractService interface {
	ExtractAndPersist(ctx context.Context, text string) ([]dto.ContactResponse, error)
}

type extractService struct {
	repo   repository.ContactRepository
	client ModelClient
	cb     *infra.CircuitBreaker // nil disables fast-fail (tests)
	rdb    *redis.Client         // nil disables cache invalidation (tests)
}

func NewExtractService(repo repository.ContactRepository, client ModelClient, cb *infra.CircuitBreaker, rdb *redis.Client) ExtractService {
	return &extractService{repo: repo, client: client, cb: cb, rdb: rdb}
}

// ExtractAndPersist runs the pipeline: gate the input, call the model,
// parse and validate its reply, then persist each contact in the
// model's order. Persistence is per-contact: a failure at entry N keeps
// entries 1..N-1 committed and aborts the rest. An empty contacts array
// is a valid, successful result.
func (s *extractService) ExtractAndPersist(ctx context.Context, text string) ([]dto.ContactResponse, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if len([]rune(text)) > MaxExtractionTextLen {
		return nil, fmt.Errorf("%w: text exceeds %d characters", ErrInvalidInput, MaxExtractionTextLen)
	}

	raw, err := s.complete(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("model call failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	contacts, err := schema.ValidateAIOutput([]byte(raw))
	if err != nil {
		// Content-contract failure: the model answered, but with
		// garbage. Never conflate with transport failure.
		log.Warn().Err(err).Msg("model output rejected")
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	results := make([]dto.ContactResponse, 0, len(contacts))
	for i, entry := range contacts {
		contact, fields := buildExtractedContact(entry)
		if err := s.repo.Create(ctx, &contact, fields); err != nil {
			// No cross-entry rollback. Earlier entries stay.
			log.Error().Err(err).Int("persisted", len(results)).Int("total", len(contacts)).
				Msg("extraction persistence aborted")
			s.invalidate(ctx, len(results) > 0)
			return nil, fmt.Errorf("%w: entry %d of %d: %v", ErrPersistenceFailure, i+1, len(contacts), err)
		}
		contact.CustomFields = fields
		results = append(results, mapContact(contact))
	}

	s.invalidate(ctx, len(results) > 0)
	return results, nil
}

// complete invokes the model through the circuit breaker when one is
// configured.
func (s *extractService) complete(ctx context.Context, text string) (string, error) {
	if s.cb == nil {
		return s.client.Complete(ctx, text)
	}
	var raw string
	err := s.cb.Execute(func() error {
		var callErr error
		raw, callErr = s.client.Complete(ctx, text)
		return callErr
	})
	return raw, err
}

func (s *extractService) invalidate(ctx context.Context, mutated bool) {
	if mutated {
		invalidateContactsCache(ctx, s.rdb)
	}
}

func buildExtractedContact(entry dto.ExtractedContact) (model.Contact, []model.CustomField) {
	contact := model.Contact{
		Name:     normalizeText(entry.Name),
		Email:    normalizeText(entry.Email),
		Company:  normalizeText(entry.Company),
		Location: normalizeText(entry.Location),
		Phone:    normalizeText(entry.Phone),
		JobTitle: normalizeText(entry.JobTitle),
		Notes:    normalizeText(entry.Notes),
	}
	fields := make([]model.CustomField, 0, len(entry.CustomFields))
	for _, f := range entry.CustomFields {
		fields = append(fields, model.CustomField{Label: f.Label, Value: f.Value})
	}
	return contact, fields
}
