package service

import (
	"errors"
	"fmt"

	"github.com/b0g1dan23/ai-contact-extractor/internal/apierror"
)

// Error kinds surfaced by the services. Handlers map these to HTTP
// statuses with errors.Is / errors.As; none of them triggers an
// automatic retry anywhere in the core.
var (
	// ErrInvalidInput is the caller's fault: empty or oversized text,
	// malformed contact payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable is a transport failure talking to the
	// language model: errored call, timeout, empty completion, or an
	// open circuit. Safe to retry the whole request later.
	ErrUpstreamUnavailable = errors.New("language model unavailable")

	// ErrMalformedResponse means the model replied but the content
	// failed the extraction contract. Deliberately distinct from
	// ErrUpstreamUnavailable: retrying the same text blindly may not
	// help, and logs/metrics must not conflate the two.
	ErrMalformedResponse = errors.New("language model returned malformed content")

	// ErrNotFound is an update/delete whose target does not exist.
	ErrNotFound = errors.New("contact not found")

	// ErrConstraintViolation is a store-level breach of the
	// name-or-email invariant.
	ErrConstraintViolation = errors.New("contact must have at least a name or an email")

	// ErrPersistenceFailure aborted the extraction loop mid-batch.
	// Contacts committed before the failing entry stay committed.
	ErrPersistenceFailure = errors.New("failed to persist extracted contacts")
)

// ValidationFailedError carries field-level issues for 422 responses.
type ValidationFailedError struct {
	Issues []apierror.Issue
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %d issue(s)", len(e.Issues))
}

// Is makes errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationFailedError) Is(target error) bool { return target == ErrInvalidInput }
