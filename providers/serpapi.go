package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/regedner/Research-Group-Portfolio/models"

	"golang.org/x/time/rate"
)

const (
	defaultSerpAPIBaseURL = "https://serpapi.com"
	serpAPIMaxPages       = 6
	serpAPIPerPage        = 20
)

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// SerpAPIProvider reads Google Scholar author profiles and search results
// through the SerpAPI search-results API.
type SerpAPIProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

func NewSerpAPIProvider(client *http.Client) *SerpAPIProvider {
	baseURL := os.Getenv("SERPAPI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultSerpAPIBaseURL
	}
	return &SerpAPIProvider{
		client:  defaultClient(client),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  os.Getenv("SERPAPI_API_KEY"),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

type serpCitedByRow struct {
	Year      *int `json:"year"`
	Citations struct {
		All int `json:"all"`
	} `json:"citations"`
}

type serpAuthorResponse struct {
	Error  string `json:"error"`
	Author struct {
		Name    string `json:"name"`
		CitedBy struct {
			Table []serpCitedByRow `json:"table"`
		} `json:"cited_by"`
	} `json:"author"`
}

func (p *SerpAPIProvider) authorProfileURL(sourceID string) string {
	params := url.Values{}
	params.Set("engine", "google_scholar_author")
	params.Set("author_id", sourceID)
	params.Set("api_key", p.apiKey)
	params.Set("hl", "en")
	return fmt.Sprintf("%s/search.json?%s", p.baseURL, params.Encode())
}

func (p *SerpAPIProvider) GetMemberDetails(ctx context.Context, sourceID string) (*models.Member, error) {
	sourceID = strings.TrimSpace(sourceID)

	var resp serpAuthorResponse
	if err := fetchJSON(ctx, p.client, p.limiter, p.authorProfileURL(sourceID), &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("serpapi error for author %s: %s", sourceID, resp.Error)
	}

	name := resp.Author.Name
	if strings.TrimSpace(name) == "" {
		name = "Unknown Author"
	}

	total := 0
	for _, row := range resp.Author.CitedBy.Table {
		total += row.Citations.All
	}

	id := sourceID
	return &models.Member{
		Name:         name,
		SourceID:     &id,
		CitedByCount: total,
	}, nil
}

// GetMemberCountsByYear returns the author's per-year citation histogram.
// Note the count here is citations, not works; the member service computes
// works per year from persisted rows instead of calling this.
func (p *SerpAPIProvider) GetMemberCountsByYear(ctx context.Context, sourceID string) ([]models.YearCount, error) {
	sourceID = strings.TrimSpace(sourceID)

	var resp serpAuthorResponse
	if err := fetchJSON(ctx, p.client, p.limiter, p.authorProfileURL(sourceID), &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("serpapi error for author %s: %s", sourceID, resp.Error)
	}

	counts := make([]models.YearCount, 0, len(resp.Author.CitedBy.Table))
	for _, row := range resp.Author.CitedBy.Table {
		if row.Year == nil {
			continue
		}
		counts = append(counts, models.YearCount{
			Year:  strconv.Itoa(*row.Year),
			Count: row.Citations.All,
		})
	}
	return counts, nil
}

type serpResult struct {
	Title           string `json:"title"`
	Link            string `json:"link"`
	PublicationInfo struct {
		Summary string `json:"summary"`
		Year    *int   `json:"year"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
	} `json:"publication_info"`
	InlineLinks struct {
		CitedBy struct {
			Total int `json:"total"`
		} `json:"cited_by"`
	} `json:"inline_links"`
}

type serpSearchResponse struct {
	Error          string        `json:"error"`
	OrganicResults *[]serpResult `json:"organic_results"`
}

func (p *SerpAPIProvider) GetPublications(ctx context.Context, sourceID string, member *models.Member) ([]models.Publication, error) {
	var publications []models.Publication
	seenTitles := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for page := 0; page < serpAPIMaxPages; page++ {
		params := url.Values{}
		params.Set("engine", "google_scholar")
		params.Set("q", fmt.Sprintf("author:%q", member.Name))
		params.Set("api_key", p.apiKey)
		params.Set("hl", "en")
		params.Set("start", strconv.Itoa(page*serpAPIPerPage))
		params.Set("num", strconv.Itoa(serpAPIPerPage))
		searchURL := fmt.Sprintf("%s/search.json?%s", p.baseURL, params.Encode())

		var resp serpSearchResponse
		if err := fetchJSON(ctx, p.client, p.limiter, searchURL, &resp); err != nil {
			return nil, err
		}
		if resp.Error != "" || resp.OrganicResults == nil || len(*resp.OrganicResults) == 0 {
			break
		}

		for _, result := range *resp.OrganicResults {
			title := strings.TrimSpace(result.Title)
			if title == "" {
				title = "Untitled"
			}
			if seenTitles[strings.ToLower(title)] {
				continue
			}
			seenTitles[strings.ToLower(title)] = true

			link := result.Link
			if link == "" || seenURLs[strings.ToLower(link)] {
				continue
			}
			seenURLs[strings.ToLower(link)] = true

			typ := "article"
			if strings.HasPrefix(title, "[BOOK]") {
				typ = "book"
				title = strings.TrimSpace(title[len("[BOOK]"):])
			} else if strings.HasPrefix(title, "[CITATION]") {
				typ = "paratext"
				title = strings.TrimSpace(title[len("[CITATION]"):])
			}

			names := make([]string, 0, len(result.PublicationInfo.Authors))
			for _, author := range result.PublicationInfo.Authors {
				name := author.Name
				if name == "" {
					name = "Unknown Author"
				}
				names = append(names, name)
			}
			authors := joinAuthors(names)

			summary := result.PublicationInfo.Summary

			var year *int
			if result.PublicationInfo.Year != nil {
				if y := *result.PublicationInfo.Year; y > 0 {
					year = &y
				}
			} else {
				year = extractYearFromSummary(summary)
			}

			pub := models.Publication{
				Title:           title,
				IdentifierURL:   &link,
				CitedByCount:    result.InlineLinks.CitedBy.Total,
				Authors:         authors,
				PublicationYear: year,
				Type:            &typ,
				MemberID:        member.ID,
				Tags:            []models.PublicationTag{},
			}
			if source := sourceNameFromSummary(summary, authors, year); source != "" {
				pub.SourceName = &source
			}

			publications = append(publications, pub)
		}
	}

	return publications, nil
}

// extractYearFromSummary picks the first four-digit run that parses to a
// plausible publication year.
func extractYearFromSummary(summary string) *int {
	if summary == "" {
		return nil
	}
	for _, match := range yearPattern.FindAllString(summary, -1) {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if year >= 1900 && year <= 2030 {
			return &year
		}
	}
	return nil
}

// sourceNameFromSummary recovers the venue from a scholar result summary by
// stripping the authors prefix, the year, ellipses, and trailing commas.
// Summaries look like "J Doe, A Roe - Nature, 2019 - nature.com".
func sourceNameFromSummary(summary, authors string, year *int) string {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return ""
	}

	if len(authors) < 100 && strings.HasPrefix(summary, authors) {
		summary = strings.TrimSpace(summary[len(authors):])
		if strings.HasPrefix(summary, "-") {
			summary = strings.TrimSpace(summary[1:])
		}
	}
	if year != nil {
		summary = strings.ReplaceAll(summary, strconv.Itoa(*year), "")
	}
	summary = strings.TrimSpace(strings.ReplaceAll(summary, "...", ""))
	summary = strings.TrimSuffix(summary, ",")
	return strings.TrimSpace(summary)
}
