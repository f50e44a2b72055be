package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smartsellhq/smartsell/internal/auth/domain"
	currencydomain "github.com/smartsellhq/smartsell/internal/currency/domain"
	customerdomain "github.com/smartsellhq/smartsell/internal/customer/domain"
	orderdomain "github.com/smartsellhq/smartsell/internal/order/domain"
	pixeldomain "github.com/smartsellhq/smartsell/internal/pixel/domain"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
	uploaddomain "github.com/smartsellhq/smartsell/internal/upload/domain"
	workspacedomain "github.com/smartsellhq/smartsell/internal/workspace/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: validationErrorMessage(err),
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(err),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrSessionExpired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, workspacedomain.ErrForbidden),
		errors.Is(err, storedomain.ErrInvalidWorkspace),
		errors.Is(err, currencydomain.ErrInvalidWorkspace),
		errors.Is(err, customerdomain.ErrInvalidWorkspace),
		errors.Is(err, orderdomain.ErrInvalidWorkspace),
		errors.Is(err, pixeldomain.ErrInvalidWorkspace),
		errors.Is(err, uploaddomain.ErrInvalidWorkspace):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, storedomain.ErrQuotaExceeded):
		// Quota errors carry the exact plan limit in their message.
		return http.StatusForbidden, errorPayload{
			Type:    "quota_exceeded",
			Message: err.Error(),
		}
	case errors.Is(err, authdomain.ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: err.Error(),
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, storedomain.ErrInvalidName),
		errors.Is(err, storedomain.ErrInvalidStatus),
		errors.Is(err, storedomain.ErrInvalidID),
		errors.Is(err, currencydomain.ErrInvalidCode),
		errors.Is(err, currencydomain.ErrInvalidName),
		errors.Is(err, currencydomain.ErrInvalidID),
		errors.Is(err, currencydomain.ErrInvalidCurrencyCode),
		errors.Is(err, customerdomain.ErrInvalidStore),
		errors.Is(err, orderdomain.ErrInvalidStore),
		errors.Is(err, pixeldomain.ErrInvalidStore),
		errors.Is(err, uploaddomain.ErrInvalidStore),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidEmail),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, orderdomain.ErrInvalidItems),
		errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, orderdomain.ErrInvalidTransition),
		errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, pixeldomain.ErrInvalidProvider),
		errors.Is(err, pixeldomain.ErrInvalidPixelID),
		errors.Is(err, pixeldomain.ErrInvalidID),
		errors.Is(err, uploaddomain.ErrInvalidFile),
		errors.Is(err, uploaddomain.ErrTooLarge),
		errors.Is(err, uploaddomain.ErrUnsupportedType),
		errors.Is(err, uploaddomain.ErrInvalidID),
		errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrInvalidName),
		errors.Is(err, authdomain.ErrWeakPassword),
		errors.Is(err, workspacedomain.ErrInvalidName),
		errors.Is(err, workspacedomain.ErrInvalidPlan):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, storedomain.ErrSlugTaken),
		errors.Is(err, storedomain.ErrSlugExhausted),
		errors.Is(err, orderdomain.ErrNumberTaken),
		errors.Is(err, currencydomain.ErrDuplicateCurrency),
		errors.Is(err, customerdomain.ErrDuplicateEmail),
		errors.Is(err, pixeldomain.ErrDuplicateProvider),
		errors.Is(err, authdomain.ErrEmailTaken):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, storedomain.ErrNotFound),
		errors.Is(err, currencydomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, pixeldomain.ErrNotFound),
		errors.Is(err, uploaddomain.ErrNotFound),
		errors.Is(err, workspacedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	code := err.Error()
	// Wrapped sentinels read "sentinel_code: detail"; keep the code part.
	if i := strings.Index(code, ":"); i > 0 {
		code = code[:i]
	}
	return code
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid request"
	}
	// The wrapped message names the offending value, e.g. the rejected
	// currency code.
	return err.Error()
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error", payload.Type
	case status == http.StatusNotFound:
		return "not_found", payload.Type
	default:
		return "client_error", payload.Type
	}
}
