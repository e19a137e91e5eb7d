package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode"

	"relief-coordination-api/internal/api/middleware"
	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError writes the status and body matching err's class. The error is
// also attached to the context so the request logger records it.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *apperr.ValidationError
	var perr *apperr.PersistenceError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &perr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage temporarily unavailable, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// canActFor reports whether the caller may act on behalf of registrationNumber.
// Organization accounts are bound to their own registration number.
func canActFor(c *gin.Context, registrationNumber string) bool {
	if c.GetString(middleware.ContextUserRole) != models.RoleOrganization {
		return true
	}
	return c.GetString(middleware.ContextRegistrationNumber) == registrationNumber
}

func forbidOtherOrganization(c *gin.Context) {
	respondError(c, apperr.ErrForbidden)
}

// bindJSON decodes the body into obj. On failure it writes a 400 naming the
// offending field and returns false.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperr.Invalid(field, "must be "+jsonKind(typeErr.Type.Kind().String()))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.Invalid("body", "is not valid JSON")
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		fe := fieldErrs[0]
		return apperr.Invalid(lowerFirst(fe.Field()), "failed "+fe.Tag()+" check")
	default:
		return apperr.Invalid("body", err.Error())
	}
}

func jsonKind(kind string) string {
	switch {
	case strings.HasPrefix(kind, "int"), strings.HasPrefix(kind, "uint"), strings.HasPrefix(kind, "float"):
		return "a number"
	case kind == "bool":
		return "a boolean"
	case kind == "string":
		return "a string"
	case kind == "slice", kind == "array":
		return "an array"
	default:
		return "an object"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
