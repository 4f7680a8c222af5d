package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resume belongs to exactly one freelancer. Sub-records are ordered by
// Position when loaded.
type Resume struct {
	ID             uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	FreelancerID   uuid.UUID             `gorm:"type:uuid;uniqueIndex" json:"freelancer_id"`
	Headline       string                `gorm:"type:varchar(255)" json:"headline"`
	Summary        string                `gorm:"type:text" json:"summary"`
	Location       string                `gorm:"type:varchar(255)" json:"location"`
	Phone          string                `gorm:"type:varchar(50)" json:"phone"`
	Website        string                `gorm:"type:varchar(255)" json:"website"`
	Experiences    []ResumeExperience    `gorm:"constraint:OnDelete:CASCADE" json:"experiences"`
	Education      []ResumeEducation     `gorm:"constraint:OnDelete:CASCADE" json:"education"`
	Certifications []ResumeCertification `gorm:"constraint:OnDelete:CASCADE" json:"certifications"`
	Links          []ResumeLink          `gorm:"constraint:OnDelete:CASCADE" json:"links"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type ResumeExperience struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ResumeID    uuid.UUID  `gorm:"type:uuid;index" json:"resume_id"`
	Position    int        `json:"position"`
	Title       string     `gorm:"type:varchar(255)" json:"title"`
	Company     string     `gorm:"type:varchar(255)" json:"company"`
	Location    string     `gorm:"type:varchar(255)" json:"location"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsCurrent   bool       `json:"is_current"`
	Description string     `gorm:"type:text" json:"description"`
}

type ResumeEducation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResumeID     uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	Position     int       `json:"position"`
	School       string    `gorm:"type:varchar(255)" json:"school"`
	Degree       string    `gorm:"type:varchar(255)" json:"degree"`
	FieldOfStudy string    `gorm:"type:varchar(255)" json:"field_of_study"`
	StartYear    *int      `json:"start_year,omitempty"`
	EndYear      *int      `json:"end_year,omitempty"`
	Grade        string    `gorm:"type:varchar(50)" json:"grade"`
	Description  string    `gorm:"type:text" json:"description"`
}

func (ResumeEducation) TableName() string {
	return "resume_education"
}

type ResumeCertification struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResumeID      uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	Position      int       `json:"position"`
	Name          string    `gorm:"type:varchar(255)" json:"name"`
	Issuer        string    `gorm:"type:varchar(255)" json:"issuer"`
	IssueYear     *int      `json:"issue_year,omitempty"`
	CredentialURL string    `gorm:"type:varchar(500)" json:"credential_url"`
}

type ResumeLink struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResumeID uuid.UUID `gorm:"type:uuid;index" json:"resume_id"`
	Position int       `json:"position"`
	Platform string    `gorm:"type:varchar(100)" json:"platform"`
	URL      string    `gorm:"type:varchar(500)" json:"url"`
	Username string    `gorm:"type:varchar(255)" json:"username"`
}

func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (e *ResumeExperience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *ResumeEducation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (c *ResumeCertification) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (l *ResumeLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
