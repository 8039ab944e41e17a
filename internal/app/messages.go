package app

import (
	"context"
	"errors"

	"github.com/jsamuelsen/quotedash/internal/domain"
)

// Messages shown to the user.
const (
	MsgSessionExpired  = "Your session has expired. Please log in again."
	MsgCheckForm       = "Please check your form data and try again"
	MsgCanceled        = "Canceled."
	MsgRandomQuoteSoft = "Could not load a random quote"
	MsgUnavailable     = "The quote service is unavailable. Please try again later."
)

// Describe turns an error from a dashboard action into the message a user
// sees. action completes "Failed to ...", e.g. "create quote".
func Describe(action string, err error) string {
	var ve *domain.ValidationError

	switch {
	case err == nil:
		return ""
	case domain.IsUnauthorized(err):
		return MsgSessionExpired
	case errors.As(err, &ve):
		return describeValidation(ve)
	case domain.IsCanceled(err):
		return MsgCanceled
	case isSoft(err):
		return MsgRandomQuoteSoft
	case domain.IsNotFound(err), domain.IsForbidden(err):
		return capitalize(err.Error())
	case domain.IsUnavailable(err):
		return MsgUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Request timed out. Please try again."
	default:
		return "Failed to " + action + ". Please try again."
	}
}

func describeValidation(ve *domain.ValidationError) string {
	switch {
	case ve.Field != "":
		return ve.Message
	case len(ve.Messages) > 0:
		return "Validation error: " + ve.Summary()
	default:
		return MsgCheckForm
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}

	return string(s[0]-'a'+'A') + s[1:]
}
