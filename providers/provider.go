package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/regedner/Research-Group-Portfolio/models"
)

// Provider fetches an author profile and the author's works from one remote
// bibliographic source. Providers never touch storage; normalizing and
// persisting the results is the ingest service's job.
type Provider interface {
	GetMemberDetails(ctx context.Context, sourceID string) (*models.Member, error)
	GetPublications(ctx context.Context, sourceID string, member *models.Member) ([]models.Publication, error)
}

var ErrUnknownProvider = errors.New("unsupported provider type")

// ForType maps a provider tag to an adapter. Recognized tags are "openalex"
// and "serpapi", case-insensitive.
func ForType(providerType string, client *http.Client) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(providerType)) {
	case "openalex":
		return NewOpenAlexProvider(client), nil
	case "serpapi":
		return NewSerpAPIProvider(client), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerType)
}

// APIError is a non-2xx response from a remote API, kept so callers can
// inspect the upstream status code.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote api error: status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// IsRateLimited reports whether err carries an upstream 429.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
