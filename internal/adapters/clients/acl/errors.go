package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen/quotedash/internal/adapters/clients"
	"github.com/jsamuelsen/quotedash/internal/domain"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// ErrorResponse is the error body the quote API sends:
//
//	{"message": "The given data was invalid.", "errors": {"content": ["..."]}}
//
// Values in "errors" may be a string or a list of strings. Field order is
// preserved so joined messages read the way the server listed them.
type ErrorResponse struct {
	Message string
	Fields  []FieldErrors
}

// FieldErrors holds the messages reported for one field.
type FieldErrors struct {
	Field    string
	Messages []string
}

// Flatten returns every field message in server order.
func (e *ErrorResponse) Flatten() []string {
	var out []string
	for _, f := range e.Fields {
		out = append(out, f.Messages...)
	}

	return out
}

// FieldMap returns the messages keyed by field.
func (e *ErrorResponse) FieldMap() map[string][]string {
	if len(e.Fields) == 0 {
		return nil
	}

	m := make(map[string][]string, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Field] = f.Messages
	}

	return m
}

// UnmarshalJSON keeps the "errors" object in document order.
func (e *ErrorResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Message = raw.Message
	if e.Message == "" {
		e.Message = raw.Error
	}

	if e.Message == "" {
		// "errors" may be a bare string or list instead of a field map.
		e.Message = strings.Join(messagesOf(raw.Errors), " ")
	}

	fields, err := parseFieldErrors(raw.Errors)
	if err != nil {
		return err
	}

	e.Fields = fields

	return nil
}

func parseFieldErrors(raw json.RawMessage) ([]FieldErrors, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		// Absent, null or an unexpected shape: there are no field messages.
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var out []FieldErrors

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		field, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		out = append(out, FieldErrors{Field: field, Messages: messagesOf(value)})
	}

	return out, nil
}

func messagesOf(value json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(value, &list); err == nil {
		return list
	}

	var single string
	if err := json.Unmarshal(value, &single); err == nil && single != "" {
		return []string{single}
	}

	return nil
}

// ParseErrorResponse decodes an error body, returning nil when it carries
// nothing usable.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err != nil {
		return nil
	}

	if errResp.Message == "" && len(errResp.Fields) == 0 {
		return nil
	}

	return &errResp
}

// MapHTTPError maps a failed call to a domain error.
//
// Parameters:
//   - resp: the response, nil when clientErr is set
//   - clientErr: the transport error, if any
//   - serviceName: remote service name for error context
//   - operation: the operation being performed, e.g. "CreateQuote"
//   - entity, entityID: what a 404 refers to
//
// 401 and 403 map to domain.ErrUnauthorized for every operation.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entity, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	return mapStatusCode(resp.StatusCode, ParseErrorResponse(resp.Body), serviceName, operation, entity, entityID)
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Keep the context error visible so callers can drop the result quietly.
		return fmt.Errorf("%s: %w", operation, err)

	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation, entity, entityID string) error {
	message := ""
	if errResp != nil {
		message = errResp.Message
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &domain.UnauthorizedError{Operation: operation, Status: status, Message: message}

	case status == http.StatusNotFound:
		return domain.NewNotFoundError(entity, entityID)

	case status == http.StatusUnprocessableEntity:
		if errResp == nil {
			return domain.NewValidationErrors("", nil, nil)
		}

		return domain.NewValidationErrors(errResp.Message, errResp.Flatten(), errResp.FieldMap())

	case status == http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	case status >= http.StatusInternalServerError:
		if message == "" {
			message = http.StatusText(status)
		}

		return domain.NewUnavailableError(serviceName, message)

	default:
		if message == "" && errResp != nil {
			message = strings.Join(errResp.Flatten(), ", ")
		}

		if message == "" {
			message = http.StatusText(status)
		}

		return domain.NewRequestError(operation, status, message)
	}
}
