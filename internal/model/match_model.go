package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Match is the latest computed ranking for one (project, freelancer) pair.
type Match struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID     uuid.UUID                   `gorm:"type:uuid;uniqueIndex:idx_match_pair;not null" json:"project_id"`
	FreelancerID  uuid.UUID                   `gorm:"type:uuid;uniqueIndex:idx_match_pair;index;not null" json:"freelancer_id"`
	MatchScore    float64                     `gorm:"type:float" json:"match_score"`
	MatchedSkills datatypes.JSONSlice[string] `json:"matched_skills"`
	CalculatedAt  time.Time                   `json:"calculated_at"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (m *Match) TableName() string {
	return "matches"
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
