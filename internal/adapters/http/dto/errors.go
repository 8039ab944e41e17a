// Package dto holds the request and response shapes of the dashboard API
// and the error envelope every failure is written in.
package dto

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/platform/logging"
)

// LoginPath is where a client is sent when the session is gone.
const LoginPath = "/login"

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`

	// Redirect is set on 401 responses.
	Redirect string `json:"redirect,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is machine readable, e.g. "NOT_FOUND".
	Code string `json:"code"`

	// Message is what the dashboard shows the user.
	Message string `json:"message"`

	// Details maps field names to their validation messages.
	Details map[string][]string `json:"details,omitempty"`
}

// Error codes.
const (
	ErrorCodeNotFound             = "NOT_FOUND"
	ErrorCodeValidation           = "VALIDATION_ERROR"
	ErrorCodeForbidden            = "FORBIDDEN"
	ErrorCodeUnauthorized         = "UNAUTHORIZED"
	ErrorCodeUnavailable          = "SERVICE_UNAVAILABLE"
	ErrorCodeBadGateway           = "BAD_GATEWAY"
	ErrorCodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	ErrorCodeInternal             = "INTERNAL_ERROR"
	ErrorCodeTimeout              = "TIMEOUT"
	ErrorCodeBadRequest           = "BAD_REQUEST"
	ErrorCodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
)

// NewErrorResponse creates an error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// NewErrorResponseWithDetails creates an error response with field details.
func NewErrorResponseWithDetails(code, message string, details map[string][]string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeBadGateway:
		return http.StatusBadGateway
	case ErrorCodeConfirmationRequired:
		return http.StatusPreconditionRequired
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrorCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps an error from a dashboard action to a status and
// envelope. action completes the "Failed to ..." message.
func MapDomainError(action string, err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	message := app.Describe(action, err)

	var ve *domain.ValidationError

	switch {
	case domain.IsUnauthorized(err):
		resp := NewErrorResponse(ErrorCodeUnauthorized, message)
		resp.Redirect = LoginPath

		return http.StatusUnauthorized, resp

	case errors.As(err, &ve):
		return http.StatusBadRequest, NewErrorResponseWithDetails(ErrorCodeValidation, message, validationDetails(ve))

	case domain.IsCanceled(err):
		return http.StatusPreconditionRequired, NewErrorResponse(ErrorCodeConfirmationRequired, message)

	case domain.IsNotFound(err), errors.Is(err, domain.ErrNoQuotes):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, message)

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, message)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, message)

	case domain.IsContract(err), errors.Is(err, domain.ErrRequest):
		return http.StatusBadGateway, NewErrorResponse(ErrorCodeBadGateway, message)

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, message)

	default:
		// Unknown errors get a generic message to avoid leaking internals.
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

func validationDetails(ve *domain.ValidationError) map[string][]string {
	if len(ve.Fields) > 0 {
		return ve.Fields
	}

	if ve.Field != "" {
		return map[string][]string{ve.Field: {ve.Message}}
	}

	return nil
}

// HandleError writes the envelope for err and logs internal failures.
func HandleError(c *gin.Context, action string, err error) {
	status, resp := MapDomainError(action, err)
	resp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "internal error",
			"action", action,
			"error", err.Error(),
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}

// Abort stops the chain with an error envelope for code.
func Abort(c *gin.Context, code, message string) {
	resp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	if code == ErrorCodeUnauthorized {
		resp.Redirect = LoginPath
	}

	c.AbortWithStatusJSON(HTTPStatusFromCode(code), resp)
}

// GetTraceID returns the OpenTelemetry trace id of the request, if any.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}
