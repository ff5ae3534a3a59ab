package services

import (
	"errors"
	"strings"

	"github.com/regedner/Research-Group-Portfolio/config"
	"github.com/regedner/Research-Group-Portfolio/models"

	"gorm.io/gorm"
)

type ConferenceService struct {
	db *gorm.DB
}

func NewConferenceService(db *gorm.DB) *ConferenceService {
	if db == nil {
		db = config.DB
	}
	return &ConferenceService{db: db}
}

func (s *ConferenceService) Add(memberID uint, conference *models.Conference) (*models.Conference, error) {
	exists, err := NewMemberService(s.db).Exists(memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMemberNotFound
	}

	conference.ID = 0
	conference.MemberID = memberID
	if err := s.db.Create(conference).Error; err != nil {
		return nil, err
	}
	return conference, nil
}

// Update applies only the fields the caller actually filled in.
func (s *ConferenceService) Update(id uint, input *models.Conference) (*models.Conference, error) {
	var existing models.Conference
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConferenceNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(input.Name) != "" {
		existing.Name = input.Name
	}
	if input.Year > 0 {
		existing.Year = input.Year
	}
	if strings.TrimSpace(input.Location) != "" {
		existing.Location = input.Location
	}
	if strings.TrimSpace(input.Description) != "" {
		existing.Description = input.Description
	}

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *ConferenceService) Delete(id uint) error {
	var existing models.Conference
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConferenceNotFound
		}
		return err
	}
	return s.db.Delete(&existing).Error
}

func (s *ConferenceService) GetByID(id uint) (*models.Conference, error) {
	var conference models.Conference
	if err := s.db.First(&conference, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConferenceNotFound
		}
		return nil, err
	}
	return &conference, nil
}

func (s *ConferenceService) ListByMember(memberID uint) ([]models.Conference, error) {
	exists, err := NewMemberService(s.db).Exists(memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMemberNotFound
	}

	conferences := []models.Conference{}
	if err := s.db.Where("member_id = ?", memberID).Find(&conferences).Error; err != nil {
		return nil, err
	}
	return conferences, nil
}

func (s *ConferenceService) ListAll(year *int) ([]models.Conference, error) {
	conferences := []models.Conference{}
	q := s.db
	if year != nil {
		q = q.Where("conference_year = ?", *year)
	}
	if err := q.Find(&conferences).Error; err != nil {
		return nil, err
	}
	return conferences, nil
}
