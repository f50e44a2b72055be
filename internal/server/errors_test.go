package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	authdomain "github.com/smartsellhq/smartsell/internal/auth/domain"
	currencydomain "github.com/smartsellhq/smartsell/internal/currency/domain"
	orderdomain "github.com/smartsellhq/smartsell/internal/order/domain"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{"unauthorized", authdomain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"bad credentials", authdomain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"expired session", authdomain.ErrSessionExpired, http.StatusUnauthorized, "unauthorized"},
		{"foreign workspace", storedomain.ErrInvalidWorkspace, http.StatusForbidden, "forbidden"},
		{"slug taken", storedomain.ErrSlugTaken, http.StatusConflict, "conflict"},
		{"slug exhausted", storedomain.ErrSlugExhausted, http.StatusConflict, "conflict"},
		{"order number contested", orderdomain.ErrNumberTaken, http.StatusConflict, "conflict"},
		{"missing plan", storedomain.ErrPlanMissing, http.StatusInternalServerError, "internal_error"},
		{"duplicate currency", currencydomain.ErrDuplicateCurrency, http.StatusConflict, "conflict"},
		{"email taken", authdomain.ErrEmailTaken, http.StatusConflict, "conflict"},
		{"missing row", storedomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"gorm missing row", gorm.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"bad transition", orderdomain.ErrInvalidTransition, http.StatusBadRequest, "validation_error"},
		{"plain failure", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			require.Equal(t, tc.status, status)
			require.Equal(t, tc.typ, payload.Type)
		})
	}
}

func TestMapErrorQuotaCarriesLimit(t *testing.T) {
	err := fmt.Errorf("%w: plan allows at most 3 stores", storedomain.ErrQuotaExceeded)

	status, payload := mapError(err)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "quota_exceeded", payload.Type)
	require.Contains(t, payload.Message, "3 stores")
}

func TestMapErrorRateLimited(t *testing.T) {
	err := fmt.Errorf("%w: retry after 6s", authdomain.ErrRateLimited)

	status, payload := mapError(err)
	require.Equal(t, http.StatusTooManyRequests, status)
	require.Equal(t, "rate_limited", payload.Type)
	require.Contains(t, payload.Message, "6s")
}

func TestMapErrorInvalidCurrencyCodeNamesOffender(t *testing.T) {
	err := fmt.Errorf("%w: XXX", currencydomain.ErrInvalidCurrencyCode)

	status, payload := mapError(err)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "validation_error", payload.Type)
	require.Contains(t, payload.Message, "XXX")
	require.Len(t, payload.Errors, 1)
	require.Equal(t, "invalid_currency_code", payload.Errors[0].Code)
}

func TestMapErrorInternalNeverLeaksDetails(t *testing.T) {
	_, payload := mapError(errors.New("pq: password authentication failed"))
	require.Equal(t, "internal server error", payload.Message)
	require.NotContains(t, payload.Message, "password")
}

func TestMapErrorStructuredValidation(t *testing.T) {
	status, payload := mapError(invalidRequestError())
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "validation_error", payload.Type)
	require.Len(t, payload.Errors, 1)
	require.Equal(t, "request", payload.Errors[0].Field)
}
