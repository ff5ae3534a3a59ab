package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/regedner/Research-Group-Portfolio/config"
	"github.com/regedner/Research-Group-Portfolio/models"
	"github.com/regedner/Research-Group-Portfolio/providers"

	"gorm.io/gorm"
)

const (
	ingestMaxAttempts = 3
	// Courtesy pause between the profile call and the works crawl.
	ingestPace = 600 * time.Millisecond
	// Back-off unit after a 429; multiplied by the attempt number.
	ingestBackoffStep = 2 * time.Second
)

// IngestService runs the fetch/normalize/persist cycle for one external
// author profile.
type IngestService struct {
	db       *gorm.DB
	client   *http.Client
	selector func(providerType string, client *http.Client) (providers.Provider, error)

	pace        time.Duration
	backoffStep time.Duration
	maxAttempts int
}

func NewIngestService(db *gorm.DB, client *http.Client) *IngestService {
	if db == nil {
		db = config.DB
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &IngestService{
		db:          db,
		client:      client,
		selector:    providers.ForType,
		pace:        ingestPace,
		backoffStep: ingestBackoffStep,
		maxAttempts: ingestMaxAttempts,
	}
}

// FetchAndSave ingests the author identified by sourceID from the given
// provider. If a member with that source id already exists it is returned
// unchanged and no remote call is made. Per-publication insert failures are
// logged and skipped; member-level remote failures abort the ingestion.
func (s *IngestService) FetchAndSave(ctx context.Context, sourceID, providerType string) (*models.Member, error) {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		return nil, errors.New("source id is required")
	}

	var existing models.Member
	err := s.db.WithContext(ctx).Where("source_id = ?", sourceID).First(&existing).Error
	if err == nil {
		log.Printf("member with source id %s already exists, returning existing member", sourceID)
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	provider, err := s.selector(providerType, s.client)
	if err != nil {
		return nil, err
	}

	member, publications, err := s.fetchWithRetry(ctx, provider, sourceID)
	if err != nil {
		return nil, err
	}

	normalizedType := strings.ToLower(strings.TrimSpace(providerType))
	member.ProviderType = &normalizedType
	member.SourceID = &sourceID
	member.Publications = nil
	member.WorksCount = 0
	member.CitedByCount = 0

	var saved models.Member
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		inserted := make([]models.Publication, 0, len(publications))
		totalCitations := 0
		duplicates := 0

		for i := range publications {
			pub := &publications[i]

			identifierURL := ""
			if pub.IdentifierURL != nil {
				identifierURL = strings.TrimSpace(*pub.IdentifierURL)
			}
			if identifierURL == "" {
				continue
			}

			var existingPub models.Publication
			lookupErr := tx.Where("identifier_url = ?", identifierURL).First(&existingPub).Error
			if lookupErr == nil {
				duplicates++
				continue
			}
			if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return lookupErr
			}

			pub.MemberID = member.ID
			if err := tx.Create(pub).Error; err != nil {
				log.Printf("failed to save publication %q: %v", pub.Title, err)
				continue
			}
			inserted = append(inserted, *pub)
			totalCitations += pub.CitedByCount
		}

		updates := map[string]interface{}{
			"works_count":    len(inserted),
			"cited_by_count": totalCitations,
		}
		if err := tx.Model(&models.Member{}).Where("id = ?", member.ID).Updates(updates).Error; err != nil {
			return err
		}

		saved = *member
		saved.WorksCount = len(inserted)
		saved.CitedByCount = totalCitations
		saved.Publications = inserted

		if duplicates > 0 {
			log.Printf("filtered out %d duplicate publications for member %s", duplicates, saved.Name)
		}
		log.Printf("saved member %s with %d publications (%d citations)", saved.Name, len(inserted), totalCitations)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (s *IngestService) fetchWithRetry(ctx context.Context, provider providers.Provider, sourceID string) (*models.Member, []models.Publication, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		member, publications, err := s.fetchOnce(ctx, provider, sourceID)
		if err == nil {
			return member, publications, nil
		}
		lastErr = err

		if providers.IsRateLimited(err) {
			log.Printf("rate limited fetching %s, attempt %d of %d", sourceID, attempt, s.maxAttempts)
			if err := sleepContext(ctx, time.Duration(attempt)*s.backoffStep); err != nil {
				return nil, nil, err
			}
			continue
		}
		return nil, nil, fmt.Errorf("provider error: %w", err)
	}

	if providers.IsRateLimited(lastErr) {
		return nil, nil, fmt.Errorf("%w: %v", ErrUpstreamRateLimited, lastErr)
	}
	return nil, nil, fmt.Errorf("%w: %v", ErrUpstreamExhausted, lastErr)
}

func (s *IngestService) fetchOnce(ctx context.Context, provider providers.Provider, sourceID string) (*models.Member, []models.Publication, error) {
	member, err := provider.GetMemberDetails(ctx, sourceID)
	if err != nil {
		return nil, nil, err
	}
	if err := sleepContext(ctx, s.pace); err != nil {
		return nil, nil, err
	}
	publications, err := provider.GetPublications(ctx, sourceID, member)
	if err != nil {
		return nil, nil, err
	}
	return member, publications, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
