package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/regedner/Research-Group-Portfolio/models"
)

const defaultOpenAlexBaseURL = "https://api.openalex.org"

// OpenAlexService answers the aggregate queries that go straight to the
// OpenAlex group-by endpoints: the work-type catalog and an author's
// works-per-year histogram.
type OpenAlexService struct {
	client  *http.Client
	baseURL string
}

func NewOpenAlexService(client *http.Client) *OpenAlexService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	baseURL := os.Getenv("OPENALEX_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenAlexBaseURL
	}
	return &OpenAlexService{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

type openAlexGroupBy struct {
	GroupBy []struct {
		Key   string `json:"key"`
		Count int    `json:"count"`
	} `json:"group_by"`
}

func (s *OpenAlexService) getGroups(ctx context.Context, url string) (*openAlexGroupBy, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("openalex error: status %d body %s", resp.StatusCode, string(body))
	}

	var payload openAlexGroupBy
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode openalex response: %w", err)
	}
	return &payload, nil
}

// WorkTypes returns the alphabetized list of work types OpenAlex knows
// about. On upstream failure it falls back to a minimal static list so the
// filter UI still renders.
func (s *OpenAlexService) WorkTypes(ctx context.Context) []string {
	payload, err := s.getGroups(ctx, s.baseURL+"/works?group_by=type")
	if err != nil {
		log.Printf("failed to fetch work types from openalex: %v", err)
		return []string{"article", "book", "other"}
	}

	seen := make(map[string]bool)
	var types []string
	for _, group := range payload.GroupBy {
		// Keys are type URLs like https://openalex.org/types/book; keep the
		// last path segment.
		key := strings.TrimRight(group.Key, "/")
		if idx := strings.LastIndex(key, "/"); idx >= 0 {
			key = key[idx+1:]
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		types = append(types, key)
	}
	if len(types) == 0 {
		return []string{"article", "book", "other"}
	}
	sort.Strings(types)
	return types
}

// WorksCountByYear returns the author's works-per-year groups. Failures are
// logged and yield an empty series; the chart simply stays blank.
func (s *OpenAlexService) WorksCountByYear(ctx context.Context, sourceID string) []models.YearCount {
	fullID := sourceID
	if !strings.HasPrefix(fullID, "https://") {
		fullID = "https://openalex.org/" + fullID
	}

	url := fmt.Sprintf("%s/works?filter=author.id:%s&group_by=publication_year", s.baseURL, fullID)
	payload, err := s.getGroups(ctx, url)
	if err != nil {
		log.Printf("failed to fetch works count by year from openalex: %v", err)
		return []models.YearCount{}
	}

	counts := make([]models.YearCount, 0, len(payload.GroupBy))
	for _, group := range payload.GroupBy {
		if group.Key == "Unknown" || group.Key == "" {
			continue
		}
		counts = append(counts, models.YearCount{Year: group.Key, Count: group.Count})
	}
	return counts
}
