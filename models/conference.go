package models

// Conference records a member's attendance at a conference.
type Conference struct {
	ID          uint   `json:"id"          gorm:"primaryKey;autoIncrement"`
	MemberID    uint   `json:"-"           gorm:"column:member_id;index"`
	Name        string `json:"name"        gorm:"type:varchar(255)"`
	Year        int    `json:"year"        gorm:"column:conference_year"`
	Location    string `json:"location"    gorm:"type:varchar(255)"`
	Description string `json:"description" gorm:"type:text"`
}

func (Conference) TableName() string { return "conference" }
