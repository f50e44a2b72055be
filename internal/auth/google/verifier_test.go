package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartsellhq/smartsell/internal/auth/domain"
	"github.com/smartsellhq/smartsell/internal/config"
	"github.com/stretchr/testify/require"
)

func newTokenInfoServer(t *testing.T, tokens map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := tokens[r.URL.Query().Get("id_token")]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_token"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifyAcceptsMatchingAudience(t *testing.T) {
	srv := newTokenInfoServer(t, map[string]string{
		"good": `{"aud":"client-1","sub":"sub-1","email":"Amal@Example.COM","email_verified":"true","name":"Amal"}`,
	})
	v := NewVerifier(config.Config{GoogleClientID: "client-1", GoogleTokenInfoURL: srv.URL})

	profile, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	require.Equal(t, "sub-1", profile.Sub)
	require.Equal(t, "amal@example.com", profile.Email)
	require.True(t, profile.EmailVerified)
}

func TestVerifyRejectsForeignAudience(t *testing.T) {
	srv := newTokenInfoServer(t, map[string]string{
		"other-app": `{"aud":"client-2","sub":"sub-1","email":"a@b.test","email_verified":"true"}`,
	})
	v := NewVerifier(config.Config{GoogleClientID: "client-1", GoogleTokenInfoURL: srv.URL})

	_, err := v.Verify(context.Background(), "other-app")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyRejectsProviderError(t *testing.T) {
	srv := newTokenInfoServer(t, nil)
	v := NewVerifier(config.Config{GoogleClientID: "client-1", GoogleTokenInfoURL: srv.URL})

	_, err := v.Verify(context.Background(), "expired-or-garbage")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyParsesUnverifiedEmail(t *testing.T) {
	srv := newTokenInfoServer(t, map[string]string{
		"unverified": `{"aud":"client-1","sub":"sub-9","email":"u@b.test","email_verified":"false"}`,
	})
	v := NewVerifier(config.Config{GoogleClientID: "client-1", GoogleTokenInfoURL: srv.URL})

	profile, err := v.Verify(context.Background(), "unverified")
	require.NoError(t, err)
	require.False(t, profile.EmailVerified)
}

func TestVerifyRequiresConfiguredClientID(t *testing.T) {
	v := NewVerifier(config.Config{GoogleTokenInfoURL: "http://127.0.0.1:0"})

	_, err := v.Verify(context.Background(), "anything")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
