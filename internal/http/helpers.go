package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libris/internal/services"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// MessageResponse is the body of actions that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// Error codes
const (
	CodeUnauthenticated = "unauthenticated"
	CodeForbidden       = "forbidden"
	CodeNotFound        = "not_found"
	CodePaymentRequired = "payment_required"
	CodeInvalidInput    = "invalid_input"
	CodeConflict        = "conflict"
	CodeInvalidUser     = "invalid_user"
	CodeServerError     = "server_error"
)

// errorKinds maps service error kinds to their HTTP status and code.
var errorKinds = []struct {
	kind   error
	status int
	code   string
}{
	{services.ErrNotFound, http.StatusNotFound, CodeNotFound},
	{services.ErrForbidden, http.StatusForbidden, CodeForbidden},
	{services.ErrPaymentRequired, http.StatusPaymentRequired, CodePaymentRequired},
	{services.ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput},
	{services.ErrConflict, http.StatusConflict, CodeConflict},
	{services.ErrInvalidUser, http.StatusBadRequest, CodeInvalidUser},
}

// --- Error Response Helpers ---

// respondServiceError translates a service error into a response.
// Errors of no known kind are internal and are logged, not returned.
func respondServiceError(c *gin.Context, err error, context string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.kind) {
			message := k.kind.Error()
			var svcErr *services.Error
			if errors.As(err, &svcErr) {
				message = svcErr.Message
			}
			c.JSON(k.status, ErrorResponse{Error: message, Code: k.code})
			return
		}
	}
	respondInternalError(c, err, context)
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeInvalidInput})
}

// respondUnauthorized sends a 401 with a bearer challenge.
func respondUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: message, Code: CodeUnauthenticated})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeServerError})
}

// --- Success Response Helpers ---

// respondMessage sends a 200 OK response with a message.
func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the request body, responding with 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Code:    CodeInvalidInput,
			Details: err.Error(),
		})
		return false
	}
	return true
}
