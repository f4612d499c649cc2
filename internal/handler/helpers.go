package handler

import (
	"net/http"

	"github.com/b0g1dan23/ai-contact-extractor/internal/apierror"
	"github.com/b0g1dan23/ai-contact-extractor/internal/schema"

	"github.com/gin-gonic/gin"
)

// bindAndValidate binds the JSON body and runs the shared schema
// validator over it. Returns false after writing the error response, so
// the caller must return immediately without writing another one.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON body: "+err.Error()))
		return false
	}
	if issues := schema.Struct(req); len(issues) > 0 {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(issues))
		return false
	}
	return true
}
