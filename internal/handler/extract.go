package handler

import (
	"errors"
	"net/http"

	"github.com/b0g1dan23/ai-contact-extractor/internal/apierror"
	"github.com/b0g1dan23/ai-contact-extractor/internal/dto"
	"github.com/b0g1dan23/ai-contact-extractor/internal/service"

	"github.com/gin-gonic/gin"
)

type ExtractHandler struct{ svc service.ExtractService }

func NewExtractHandler(svc service.ExtractService) *ExtractHandler {
	return &ExtractHandler{svc: svc}
}

// ExtractFromText POST /api/v1/extract/text
// An empty result is a successful extraction of text that simply names
// nobody: 200 with [], never an error.
func (h *ExtractHandler) ExtractFromText(c *gin.Context) {
	var req dto.ExtractTextRequest
	if !bindAndValidate(c, &req) {
		return
	}

	contacts, err := h.svc.ExtractAndPersist(c.Request.Context(), req.Text)
	if err != nil {
		writeExtractError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// writeExtractError keeps transport failures and content failures on
// the same client-facing status but distinct messages; callers retry on
// an unavailable upstream, not on garbage output.
func writeExtractError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Text must be between 1 and 10000 characters"))
	case errors.Is(err, service.ErrUpstreamUnavailable):
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Extraction from AI failed"))
	case errors.Is(err, service.ErrMalformedResponse):
		c.JSON(http.StatusUnprocessableEntity, apierror.New("AI returned an invalid response"))
	default:
		c.Error(err) //nolint:errcheck
	}
}
