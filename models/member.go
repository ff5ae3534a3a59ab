package models

import (
	"strings"

	"gorm.io/gorm"
)

// Member is a research group member. A member is either created manually or
// ingested from an external provider, in which case SourceID holds the
// provider-scoped author identifier and ProviderType records where it came
// from.
type Member struct {
	ID           uint    `json:"id"                     gorm:"primaryKey;autoIncrement"`
	Name         string  `json:"name"                   gorm:"type:varchar(255);not null"`
	Description  *string `json:"description,omitempty"  gorm:"type:text"`
	PhotoPath    *string `json:"photoPath,omitempty"    gorm:"column:photo_path;type:varchar(512)"`
	SourceID     *string `json:"sourceId,omitempty"     gorm:"column:source_id;type:varchar(255);uniqueIndex:uniq_member_source_id"`
	ProviderType *string `json:"providerType,omitempty" gorm:"type:varchar(32)"`
	WorksCount   int     `json:"worksCount"             gorm:"not null;default:0"`
	CitedByCount int     `json:"citedByCount"           gorm:"not null;default:0"`

	Publications []Publication `json:"publications,omitempty" gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
	Conferences  []Conference  `json:"conferences,omitempty"  gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
}

func (Member) TableName() string { return "member" }

func (m *Member) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(m.Name) == "" {
		m.Name = "Unknown"
	}
	if m.SourceID != nil && strings.TrimSpace(*m.SourceID) == "" {
		m.SourceID = nil
	}
	return nil
}
