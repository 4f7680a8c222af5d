package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ProjectStatusOpen   = "open"
	ProjectStatusClosed = "closed"
)

type Project struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID       *uuid.UUID                  `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Title          string                      `gorm:"type:varchar(255)" json:"title"`
	Description    string                      `gorm:"type:text" json:"description"`
	RequiredSkills datatypes.JSONSlice[string] `json:"required_skills"`
	BudgetMin      float64                     `gorm:"type:decimal(10,2)" json:"budget_min"`
	BudgetMax      float64                     `gorm:"type:decimal(10,2)" json:"budget_max"`
	Deadline       *time.Time                  `json:"deadline,omitempty"`
	Category       string                      `gorm:"type:varchar(255)" json:"category"`
	Status         string                      `gorm:"type:varchar(10);default:open;index" json:"status"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

func (p *Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
