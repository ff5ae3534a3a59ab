package providers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/regedner/Research-Group-Portfolio/models"

	"golang.org/x/time/rate"
)

const (
	defaultOpenAlexBaseURL = "https://api.openalex.org"
	openAlexPerPage        = 200
	openAlexAuthorPrefix   = "https://openalex.org/"
)

// OpenAlexProvider reads author profiles and works from the OpenAlex API.
type OpenAlexProvider struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

func NewOpenAlexProvider(client *http.Client) *OpenAlexProvider {
	baseURL := os.Getenv("OPENALEX_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenAlexBaseURL
	}
	return &OpenAlexProvider{
		client:  defaultClient(client),
		baseURL: strings.TrimRight(baseURL, "/"),
		// OpenAlex asks polite clients to stay under 10 req/s.
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

type openAlexPerson struct {
	DisplayName  string `json:"display_name"`
	WorksCount   int    `json:"works_count"`
	CitedByCount int    `json:"cited_by_count"`
}

func (p *OpenAlexProvider) GetMemberDetails(ctx context.Context, sourceID string) (*models.Member, error) {
	sourceID = strings.TrimSpace(sourceID)

	var person openAlexPerson
	url := fmt.Sprintf("%s/people/%s", p.baseURL, sourceID)
	if err := fetchJSON(ctx, p.client, p.limiter, url, &person); err != nil {
		return nil, err
	}

	name := person.DisplayName
	if strings.TrimSpace(name) == "" {
		name = "Unknown"
	}

	id := sourceID
	return &models.Member{
		Name:         name,
		SourceID:     &id,
		WorksCount:   person.WorksCount,
		CitedByCount: person.CitedByCount,
	}, nil
}

type openAlexWork struct {
	Title           string `json:"title"`
	DOI             string `json:"doi"`
	CitedByCount    int    `json:"cited_by_count"`
	PublicationYear int    `json:"publication_year"`
	Type            string `json:"type"`
	PrimaryLocation struct {
		LandingPageURL string `json:"landing_page_url"`
		Source         struct {
			DisplayName string `json:"display_name"`
		} `json:"source"`
	} `json:"primary_location"`
	Authorships []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
	Concepts []struct {
		DisplayName string `json:"display_name"`
		Level       *int   `json:"level"`
	} `json:"concepts"`
}

type openAlexWorksPage struct {
	Results []openAlexWork `json:"results"`
}

func (p *OpenAlexProvider) GetPublications(ctx context.Context, sourceID string, member *models.Member) ([]models.Publication, error) {
	sourceID = strings.TrimSpace(sourceID)
	var publications []models.Publication

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/works?filter=author.id:%s%s&per-page=%d&page=%d",
			p.baseURL, openAlexAuthorPrefix, sourceID, openAlexPerPage, page)

		var payload openAlexWorksPage
		if err := fetchJSON(ctx, p.client, p.limiter, url, &payload); err != nil {
			return nil, err
		}
		if len(payload.Results) == 0 {
			break
		}

		for _, work := range payload.Results {
			// DOI wins; fall back to the landing page. Works with neither
			// have no uniqueness key and are dropped.
			identifierURL := work.DOI
			if identifierURL == "" {
				identifierURL = work.PrimaryLocation.LandingPageURL
			}
			if identifierURL == "" {
				continue
			}

			names := make([]string, 0, len(work.Authorships))
			for _, authorship := range work.Authorships {
				name := authorship.Author.DisplayName
				if name == "" {
					name = "Unknown Author"
				}
				names = append(names, name)
			}

			title := work.Title
			if title == "" {
				title = "Untitled"
			}

			pub := models.Publication{
				Title:         title,
				IdentifierURL: &identifierURL,
				CitedByCount:  work.CitedByCount,
				Authors:       joinAuthors(names),
				MemberID:      member.ID,
			}
			if work.PublicationYear > 0 {
				year := work.PublicationYear
				pub.PublicationYear = &year
			}
			if work.Type != "" {
				typ := work.Type
				pub.Type = &typ
			}
			if name := work.PrimaryLocation.Source.DisplayName; name != "" {
				pub.SourceName = &name
			}
			pub.SetTags(conceptTags(work))

			publications = append(publications, pub)
		}
	}

	return publications, nil
}

// conceptTags keeps top-level concepts only (levels 0-2), deduplicated.
func conceptTags(work openAlexWork) []string {
	var tags []string
	for _, concept := range work.Concepts {
		if concept.Level == nil || *concept.Level > 2 {
			continue
		}
		if concept.DisplayName == "" {
			continue
		}
		tags = append(tags, concept.DisplayName)
	}
	return tags
}
