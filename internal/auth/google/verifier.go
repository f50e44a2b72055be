// Package google validates Google Sign-In credentials against the
// provider before any account is linked or provisioned.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smartsellhq/smartsell/internal/auth/domain"
	"github.com/smartsellhq/smartsell/internal/config"
)

// Verifier resolves a raw ID token into a verified profile. The token is
// checked server-side; client-supplied profile fields are never trusted.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*domain.GoogleProfile, error)
}

type httpVerifier struct {
	client       *http.Client
	tokenInfoURL string
	clientID     string
}

// NewVerifier builds the tokeninfo-backed verifier.
func NewVerifier(cfg config.Config) Verifier {
	return &httpVerifier{
		client:       &http.Client{Timeout: 5 * time.Second},
		tokenInfoURL: cfg.GoogleTokenInfoURL,
		clientID:     cfg.GoogleClientID,
	}
}

// tokenInfo is the subset of the tokeninfo response we consume. The
// endpoint encodes booleans as strings.
type tokenInfo struct {
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (v *httpVerifier) Verify(ctx context.Context, idToken string) (*domain.GoogleProfile, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" || v.clientID == "" || v.tokenInfoURL == "" {
		return nil, domain.ErrInvalidCredentials
	}

	endpoint := fmt.Sprintf("%s?%s", v.tokenInfoURL, url.Values{"id_token": {idToken}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrInvalidCredentials
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// A token minted for another application is not ours to accept.
	if info.Aud != v.clientID || info.Sub == "" {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.GoogleProfile{
		Sub:           info.Sub,
		Email:         strings.ToLower(strings.TrimSpace(info.Email)),
		EmailVerified: info.EmailVerified == "true",
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}
