package handler

import (
	"errors"
	"net/http"

	"github.com/b0g1dan23/ai-contact-extractor/internal/apierror"
	"github.com/b0g1dan23/ai-contact-extractor/internal/dto"
	"github.com/b0g1dan23/ai-contact-extractor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContactsHandler struct{ svc service.ContactService }

func NewContactsHandler(svc service.ContactService) *ContactsHandler {
	return &ContactsHandler{svc: svc}
}

// List GET /api/v1/contacts
func (h *ContactsHandler) List(c *gin.Context) {
	contacts, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.Error(err) //nolint:errcheck
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// Create POST /api/v1/contacts
func (h *ContactsHandler) Create(c *gin.Context) {
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON body: "+err.Error()))
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeContactError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update PUT /api/v1/contacts/:id
func (h *ContactsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation([]apierror.Issue{
			{Field: "id", Message: "must be a valid uuid"},
		}))
		return
	}
	var req dto.UpdateContactRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON body: "+bindErr.Error()))
		return
	}
	if svcErr := h.svc.Update(c.Request.Context(), id, req); svcErr != nil {
		writeContactError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "Contact updated successfully!"})
}

// Delete DELETE /api/v1/contacts/:id
func (h *ContactsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation([]apierror.Issue{
			{Field: "id", Message: "must be a valid uuid"},
		}))
		return
	}
	if svcErr := h.svc.Delete(c.Request.Context(), id); svcErr != nil {
		writeContactError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "Contact deleted successfully"})
}

// writeContactError maps service error kinds onto HTTP statuses.
// Not-found gets its own status on purpose. It is not an internal
// failure and must not look like one to clients.
func writeContactError(c *gin.Context, err error) {
	var vErr *service.ValidationFailedError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(vErr.Issues))
	case errors.Is(err, service.ErrConstraintViolation):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation([]apierror.Issue{
			{Field: "name", Message: "at least one of name or email must be provided"},
		}))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Contact not found"))
	default:
		c.Error(err) //nolint:errcheck
	}
}
