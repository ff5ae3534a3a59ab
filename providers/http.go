package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"
)

const defaultRequestTimeout = 30 * time.Second

func defaultClient(client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	return client
}

// fetchJSON issues one GET and decodes the body into target. Non-200
// responses come back as *APIError so callers can see the upstream status.
func fetchJSON(ctx context.Context, client *http.Client, limiter *rate.Limiter, rawURL string, target interface{}) error {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, URL: req.URL.Path, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}

const maxAuthorsLen = 255

// joinAuthors comma-joins author display names and truncates the result to
// the column limit, marking the cut with "... and others".
func joinAuthors(names []string) string {
	if len(names) == 0 {
		return "Unknown Author"
	}
	joined := strings.Join(names, ", ")
	if len(joined) > maxAuthorsLen {
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := 240
		for cut > 0 && !utf8.RuneStart(joined[cut]) {
			cut--
		}
		joined = joined[:cut] + "... and others"
	}
	return joined
}
