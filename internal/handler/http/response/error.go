package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/document"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/interview"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/inventory"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/settings"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

// HandleError maps domain and upstream errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Session errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, apiclient.Message(err, "Invalid email or password"))
		return
	case errors.Is(err, session.ErrSessionExpired):
		Unauthorized(w, "Session expired")
		return
	case errors.Is(err, auth.ErrNotAuthenticated),
		errors.Is(err, session.ErrNoSession),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, jwt.ErrInvalidSession):
		Unauthorized(w, "Not authenticated")
		return

	// Request errors
	case errors.Is(err, attendance.ErrInvalidView),
		errors.Is(err, document.ErrEmptyFile),
		errors.Is(err, document.ErrFileTooLarge),
		errors.Is(err, document.ErrUnsupportedType),
		errors.Is(err, settings.ErrUnknownField),
		errors.Is(err, settings.ErrRowOutOfRange),
		errors.Is(err, interview.ErrMissingIssuer),
		errors.Is(err, interview.ErrNoEmails),
		errors.Is(err, inventory.ErrMissingDeviceID):
		BadRequest(w, err.Error(), nil)
		return
	case errors.Is(err, employee.ErrUnknownEmployee),
		errors.Is(err, employee.ErrEmployeeNotLoaded):
		NotFound(w, err.Error())
		return
	case errors.Is(err, interview.ErrJobNotFound),
		errors.Is(err, leave.ErrRequestNotFound),
		errors.Is(err, inventory.ErrDeviceNotFound):
		NotFound(w, apiclient.Message(err, "Resource not found"))
		return

	// Backend answered with an error envelope
	case errors.Is(err, dashboard.ErrSummaryUnavailable),
		errors.Is(err, leave.ErrBalancesUnavailable),
		errors.Is(err, inventory.ErrSummaryUnavailable):
		BadGateway(w, err.Error())
		return
	}

	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		handleUpstream(w, apiErr)
		return
	}

	slog.Error("Unhandled error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}

func handleUpstream(w http.ResponseWriter, err *apiclient.Error) {
	switch {
	case err.Kind == apiclient.KindTransport:
		BadGateway(w, "Backend unavailable")
	case err.StatusCode == http.StatusUnauthorized:
		Unauthorized(w, apiclient.Message(err, "Not authenticated"))
	case err.StatusCode >= 400 && err.StatusCode < 500:
		var details map[string]string
		if len(err.Fields) > 0 {
			details = make(map[string]string, len(err.Fields))
			for field, msgs := range err.Fields {
				details[field] = strings.Join(msgs, ", ")
			}
		}
		Upstream(w, err.StatusCode, apiclient.Message(err, http.StatusText(err.StatusCode)), details)
	default:
		slog.Warn("Upstream server error", "status", err.StatusCode, "url", err.URL)
		BadGateway(w, apiclient.Message(err, "Backend error"))
	}
}
