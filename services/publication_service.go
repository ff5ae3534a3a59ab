package services

import (
	"errors"
	"strings"

	"github.com/regedner/Research-Group-Portfolio/config"
	"github.com/regedner/Research-Group-Portfolio/models"

	"gorm.io/gorm"
)

// PublicationService is the query engine for a member's publications:
// paginated filtered listings, facet metadata, and the tag/type mutations.
type PublicationService struct {
	db *gorm.DB
}

func NewPublicationService(db *gorm.DB) *PublicationService {
	if db == nil {
		db = config.DB
	}
	return &PublicationService{db: db}
}

func publicationOrder(sort string) string {
	switch sort {
	case "publicationYear", "publicationYearDesc":
		return "publication_year DESC"
	case "publicationYearAsc":
		return "publication_year ASC"
	case "citedByCount", "citedByCountDesc":
		return "cited_by_count DESC"
	case "citedByCountAsc":
		return "cited_by_count ASC"
	default:
		return "id ASC"
	}
}

// ListByMember returns one page of the member's publications. Type and tag
// filters compose with AND; the tag filter joins publication_tags and
// deduplicates so a publication carrying several matching tags appears once.
func (s *PublicationService) ListByMember(memberID uint, page, size int, sort string, types, tags []string) ([]models.Publication, int64, error) {
	exists, err := NewMemberService(s.db).Exists(memberID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrMemberNotFound
	}

	query := func() *gorm.DB {
		q := s.db.Model(&models.Publication{}).Where("publication.member_id = ?", memberID)
		if len(types) > 0 {
			q = q.Where("publication.type IN ?", types)
		}
		if len(tags) > 0 {
			q = q.Joins("JOIN publication_tags ON publication_tags.publication_id = publication.id").
				Where("publication_tags.tag IN ?", tags)
		}
		return q
	}

	var total int64
	if err := query().Distinct("publication.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var publications []models.Publication
	err = query().
		Distinct("publication.*").
		Order(publicationOrder(sort)).
		Limit(size).
		Offset(page * size).
		Preload("Tags").
		Find(&publications).Error
	if err != nil {
		return nil, 0, err
	}
	return publications, total, nil
}

// Metadata returns the facet catalogs (distinct tags and types, sorted) the
// UI uses to build its filter controls.
func (s *PublicationService) Metadata(memberID uint) (tags []string, types []string, err error) {
	exists, err := NewMemberService(s.db).Exists(memberID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, ErrMemberNotFound
	}

	tags = []string{}
	err = s.db.Table("publication_tags").
		Joins("JOIN publication ON publication.id = publication_tags.publication_id").
		Where("publication.member_id = ?", memberID).
		Distinct().
		Order("publication_tags.tag ASC").
		Pluck("publication_tags.tag", &tags).Error
	if err != nil {
		return nil, nil, err
	}

	types = []string{}
	err = s.db.Model(&models.Publication{}).
		Where("member_id = ? AND type IS NOT NULL", memberID).
		Distinct().
		Order("type ASC").
		Pluck("type", &types).Error
	if err != nil {
		return nil, nil, err
	}

	return tags, types, nil
}

func (s *PublicationService) GetByID(id uint) (*models.Publication, error) {
	var publication models.Publication
	err := s.db.Preload("Tags").First(&publication, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicationNotFound
		}
		return nil, err
	}
	return &publication, nil
}

// Add inserts a manually entered publication under the member. Unlike the
// ingest path, a taken identifier URL is an error here, not a silent skip.
func (s *PublicationService) Add(memberID uint, publication *models.Publication) (*models.Publication, error) {
	exists, err := NewMemberService(s.db).Exists(memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMemberNotFound
	}

	if publication.IdentifierURL != nil && strings.TrimSpace(*publication.IdentifierURL) != "" {
		var count int64
		err := s.db.Model(&models.Publication{}).
			Where("identifier_url = ?", strings.TrimSpace(*publication.IdentifierURL)).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateIdentifierURL
		}
	}

	publication.ID = 0
	publication.MemberID = memberID
	if err := s.db.Create(publication).Error; err != nil {
		return nil, err
	}
	return publication, nil
}

// UpdateTags replaces the publication's tag set atomically.
func (s *PublicationService) UpdateTags(id uint, tags []string) (*models.Publication, error) {
	var publication models.Publication

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&publication, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPublicationNotFound
			}
			return err
		}

		if err := tx.Where("publication_id = ?", id).Delete(&models.PublicationTag{}).Error; err != nil {
			return err
		}

		publication.SetTags(tags)
		if len(publication.Tags) > 0 {
			if err := tx.Create(&publication.Tags).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &publication, nil
}

// UpdateType replaces the publication's type.
func (s *PublicationService) UpdateType(id uint, publicationType string) (*models.Publication, error) {
	var publication models.Publication

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Tags").First(&publication, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPublicationNotFound
			}
			return err
		}

		publication.Type = &publicationType
		return tx.Model(&publication).Update("type", publicationType).Error
	})
	if err != nil {
		return nil, err
	}
	return &publication, nil
}
