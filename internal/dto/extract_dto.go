package dto

// ExtractTextRequest is the body of POST /extract/text.
type ExtractTextRequest struct {
	Text string `json:"text" validate:"required,min=1,max=10000"`
}

// ExtractedContact is one entry of the model's JSON reply. The model is
// allowed to emit explicit nulls instead of omitting keys, hence every
// field is a pointer.
type ExtractedContact struct {
	Name         *string            `json:"name"`
	Email        *string            `json:"email" validate:"omitempty,email"`
	Company      *string            `json:"company"`
	Location     *string            `json:"location"`
	Phone        *string            `json:"phone"`
	JobTitle     *string            `json:"job_title"`
	Notes        *string            `json:"notes"`
	CustomFields []CustomFieldInput `json:"custom_fields" validate:"omitempty,dive"`
}

// ExtractionResponse is the top-level document the model must return.
type ExtractionResponse struct {
	Contacts []ExtractedContact `json:"contacts"`
}
