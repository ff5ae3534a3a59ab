package services

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/regedner/Research-Group-Portfolio/config"
	"github.com/regedner/Research-Group-Portfolio/models"

	"gorm.io/gorm"
)

// MemberService owns member CRUD and the per-year work counts that back the
// frontend chart.
type MemberService struct {
	db       *gorm.DB
	openAlex *OpenAlexService
}

func NewMemberService(db *gorm.DB) *MemberService {
	if db == nil {
		db = config.DB
	}
	return &MemberService{
		db:       db,
		openAlex: NewOpenAlexService(&http.Client{Timeout: 30 * time.Second}),
	}
}

var memberSortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"worksCount":   "works_count",
	"citedByCount": "cited_by_count",
}

func (s *MemberService) List(page, size int, sort string) ([]models.Member, int64, error) {
	column, ok := memberSortColumns[sort]
	if !ok {
		column = "id"
	}

	var total int64
	if err := s.db.Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.Member
	err := s.db.
		Order(column + " ASC").
		Limit(size).
		Offset(page * size).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (s *MemberService) GetByID(id uint) (*models.Member, error) {
	var member models.Member
	err := s.db.
		Preload("Publications.Tags").
		Preload("Conferences").
		First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) Exists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Member{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MemberService) Save(member *models.Member) error {
	return s.db.Create(member).Error
}

// Update applies only the description. The wire contract accepts a full
// member body but has always ignored everything else; kept as is.
func (s *MemberService) Update(id uint, input *models.Member) (*models.Member, error) {
	var existing models.Member
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if input.Description != nil {
		existing.Description = input.Description
	}
	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *MemberService) UpdatePhoto(id uint, fileName string) (*models.Member, error) {
	var existing models.Member
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	existing.PhotoPath = &fileName
	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete removes the member; publications, their tags, and conferences go
// with it through the ON DELETE CASCADE constraints.
func (s *MemberService) Delete(id uint) error {
	return s.db.Delete(&models.Member{}, id).Error
}

// CountsByYear returns the member's works-per-year histogram. OpenAlex
// members are answered from the OpenAlex group-by endpoint; SerpAPI members
// from persisted rows, because the remote only exposes per-year citations.
func (s *MemberService) CountsByYear(ctx context.Context, id uint) ([]models.YearCount, error) {
	var member models.Member
	if err := s.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if member.SourceID == nil || strings.TrimSpace(*member.SourceID) == "" {
		log.Printf("member %d has no source id, cannot fetch counts by year", id)
		return []models.YearCount{}, nil
	}

	if member.ProviderType != nil && strings.EqualFold(*member.ProviderType, "serpapi") {
		return s.countsByYearFromRows(id)
	}
	return s.openAlex.WorksCountByYear(ctx, *member.SourceID), nil
}

func (s *MemberService) countsByYearFromRows(memberID uint) ([]models.YearCount, error) {
	type row struct {
		Year  int
		Count int
	}

	var rows []row
	err := s.db.Model(&models.Publication{}).
		Select("publication_year AS year, COUNT(*) AS count").
		Where("member_id = ? AND publication_year IS NOT NULL", memberID).
		Group("publication_year").
		Order("publication_year ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]models.YearCount, 0, len(rows))
	for _, r := range rows {
		counts = append(counts, models.YearCount{Year: strconv.Itoa(r.Year), Count: r.Count})
	}
	return counts, nil
}
