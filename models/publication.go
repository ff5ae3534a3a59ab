package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// Publication is a single scholarly work owned by a member. IdentifierURL
// (DOI or landing page) is the global uniqueness key; manual entries may
// leave it empty.
type Publication struct {
	ID              uint    `json:"id"                        gorm:"primaryKey;autoIncrement"`
	MemberID        uint    `json:"-"                         gorm:"column:member_id;index"`
	Title           string  `json:"title"                     gorm:"type:varchar(500);not null"`
	IdentifierURL   *string `json:"identifierUrl,omitempty"   gorm:"column:identifier_url;type:varchar(512);uniqueIndex:uniq_identifier_url"`
	CitedByCount    int     `json:"citedByCount"              gorm:"not null;default:0"`
	Authors         string  `json:"authors"                   gorm:"type:text"`
	SourceName      *string `json:"sourceName,omitempty"      gorm:"type:text"`
	PublicationYear *int    `json:"publicationYear,omitempty"`
	Type            *string `json:"type,omitempty"            gorm:"type:varchar(64)"`

	Tags []PublicationTag `json:"tags" gorm:"foreignKey:PublicationID;constraint:OnDelete:CASCADE"`
}

func (Publication) TableName() string { return "publication" }

func (p *Publication) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(p.Title) == "" {
		p.Title = "Untitled"
	}
	if strings.TrimSpace(p.Authors) == "" {
		p.Authors = "Unknown Author"
	}
	if p.IdentifierURL != nil && strings.TrimSpace(*p.IdentifierURL) == "" {
		p.IdentifierURL = nil
	}
	if p.PublicationYear != nil && *p.PublicationYear <= 0 {
		p.PublicationYear = nil
	}
	return nil
}

// SetTags replaces the tag set, dropping blanks and duplicates while keeping
// first-seen order.
func (p *Publication) SetTags(tags []string) {
	seen := make(map[string]bool, len(tags))
	p.Tags = make([]PublicationTag, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		p.Tags = append(p.Tags, PublicationTag{PublicationID: p.ID, Tag: tag})
	}
}

// TagList returns the tags as plain strings.
func (p *Publication) TagList() []string {
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Tag)
	}
	return tags
}

// PublicationTag is one row of the publication_tags child table. On the wire
// it is just the tag string, so a publication's tags marshal as ["A","B"].
type PublicationTag struct {
	PublicationID uint   `gorm:"primaryKey;column:publication_id"`
	Tag           string `gorm:"primaryKey;column:tag;type:varchar(255)"`
}

func (PublicationTag) TableName() string { return "publication_tags" }

func (t PublicationTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Tag)
}

func (t *PublicationTag) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &t.Tag)
}
