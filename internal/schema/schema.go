// Package schema defines the single canonical shape of "a contact with
// custom fields" and enforces it at the three boundaries where untyped
// data enters the system: API input, AI output, API output. Validation
// here is pure and never touches storage.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/b0g1dan23/ai-contact-extractor/internal/apierror"
	"github.com/b0g1dan23/ai-contact-extractor/internal/dto"

	"github.com/go-playground/validator/v10"
)

// PhonePattern is the permissive phone shape: optional leading +, then
// digits, spaces and hyphens.
var PhonePattern = regexp.MustCompile(`^\+?[0-9\s\-]+$`)

var validate = validator.New()

func init() {
	// Report json field names in issues instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("phone_permissive", func(fl validator.FieldLevel) bool {
		return PhonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// Struct runs the shared validator over any tagged struct and converts
// the result into field-level issues. Returns nil when valid.
func Struct(v any) []apierror.Issue {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apierror.Issue{{Field: "", Message: err.Error()}}
	}
	issues := make([]apierror.Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, apierror.Issue{Field: fe.Field(), Message: issueMessage(fe)})
	}
	return issues
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone_permissive":
		return "must be a valid phone number"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// present reports whether an optional text field carries a usable value.
// Empty and whitespace-only strings count as absent.
func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// HasIdentity is the name-or-email rule shared by input validation, AI
// output validation and the storage layer's defense-in-depth check.
func HasIdentity(name, email *string) bool {
	return present(name) || present(email)
}

// ValidateContactInput checks a manual-entry payload. Returns nil when
// the payload is acceptable.
func ValidateContactInput(req *dto.CreateContactRequest) []apierror.Issue {
	issues := Struct(req)
	if !HasIdentity(req.Name, req.Email) {
		issues = append(issues, apierror.Issue{
			Field:   "name",
			Message: "at least one of name or email must be provided",
		})
	}
	return issues
}

// ValidateContactUpdate checks a partial-update payload. The name-or-email
// rule is not re-checked here: an update only touches supplied fields and
// the storage constraint rejects any mutation that would strip the last
// identity field.
func ValidateContactUpdate(req *dto.UpdateContactRequest) []apierror.Issue {
	return Struct(req)
}

// ValidateAIOutput parses and validates the model's raw JSON reply.
// The reply must be an object with a "contacts" array; each entry must
// independently satisfy the name-or-email rule and carry well-formed
// custom fields. Any bad entry fails the whole batch; bad entries are
// never silently dropped.
func ValidateAIOutput(raw []byte) ([]dto.ExtractedContact, error) {
	var resp dto.ExtractionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if resp.Contacts == nil {
		return nil, fmt.Errorf("response is missing the contacts array")
	}
	for i, contact := range resp.Contacts {
		if !HasIdentity(contact.Name, contact.Email) {
			return nil, fmt.Errorf("contact %d has neither name nor email", i)
		}
		if issues := Struct(&contact); len(issues) > 0 {
			return nil, fmt.Errorf("contact %d: %s %s", i, issues[0].Field, issues[0].Message)
		}
	}
	return resp.Contacts, nil
}
