// response.go - Response values and error-to-status mapping

package handlers // Declares the package name

import ( // Import required packages
	"errors"   // errors.Is / errors.As
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Binding validation errors

	"go-catalog-backend/auth"    // Auth errors
	"go-catalog-backend/catalog" // Catalog errors
)

// Response - Status code plus JSON body produced by a handler function
// Handlers build these without touching gin so they can be tested directly
type Response struct {
	Status int
	Body   gin.H
	err    error // Internal cause, attached to the gin context for logging
}

func ok(status int, body gin.H) Response {
	return Response{Status: status, Body: body}
}

// write - Sends r on c
func (r Response) write(c *gin.Context) {
	if r.err != nil {
		_ = c.Error(r.err) // Picked up by the request logger
	}
	c.JSON(r.Status, r.Body)
}

// errorResponse - The only place errors become HTTP statuses
func errorResponse(err error) Response {
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &ve):
		return Response{Status: http.StatusBadRequest, Body: gin.H{"error": ve.Error(), "details": gin.H{ve.Field: ve.Message}}}
	case errors.Is(err, catalog.ErrNotFound):
		return Response{Status: http.StatusNotFound, Body: gin.H{"error": err.Error()}}
	case errors.Is(err, catalog.ErrConflict), errors.Is(err, auth.ErrEmailTaken):
		return Response{Status: http.StatusConflict, Body: gin.H{"error": err.Error()}}
	case errors.Is(err, auth.ErrInvalidInput):
		return Response{Status: http.StatusBadRequest, Body: gin.H{"error": err.Error()}}
	case errors.Is(err, auth.ErrAuthentication):
		return Response{Status: http.StatusUnauthorized, Body: gin.H{"error": "invalid credentials"}}
	default:
		return Response{Status: http.StatusInternalServerError, Body: gin.H{"error": "internal server error"}, err: err}
	}
}

// bindError - 400 for a body that could not be parsed or failed binding rules
func bindError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make(gin.H, len(ve))
		for _, fe := range ve {
			details[fe.Field()] = fe.Tag()
		}
		return Response{Status: http.StatusBadRequest, Body: gin.H{"error": "invalid request", "details": details}}
	}
	return Response{Status: http.StatusBadRequest, Body: gin.H{"error": "invalid request body", "details": err.Error()}}
}
