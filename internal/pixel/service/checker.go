package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/smartsellhq/smartsell/internal/config"
	"github.com/smartsellhq/smartsell/internal/pixel/domain"
)

// Checker probes a provider endpoint to confirm a pixel id resolves.
type Checker interface {
	Probe(ctx context.Context, provider domain.Provider, pixelID string) error
}

type httpChecker struct {
	client   *http.Client
	baseURLs map[domain.Provider]string
}

// NewChecker builds the outbound prober. Providers without a configured
// endpoint pass the probe unconditionally; format validation already ran
// at write time.
func NewChecker(cfg config.Config) Checker {
	return &httpChecker{
		client: &http.Client{Timeout: 5 * time.Second},
		baseURLs: map[domain.Provider]string{
			domain.ProviderFacebook: cfg.FacebookGraphURL,
			domain.ProviderTiktok:   cfg.TiktokBusinessURL,
		},
	}
}

func (c *httpChecker) Probe(ctx context.Context, provider domain.Provider, pixelID string) error {
	base := c.baseURLs[provider]
	if base == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", base, pixelID), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Provider endpoints answer 4xx for unknown ids without auth; only a
	// transport failure or server error counts as unreachable.
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	return nil
}
