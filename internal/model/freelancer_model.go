package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ExperienceJunior = "Junior"
	ExperienceMid    = "Mid"
	ExperienceSenior = "Senior"
)

type Freelancer struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          *uuid.UUID                  `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	Name            string                      `gorm:"type:varchar(255)" json:"name"`
	Skills          datatypes.JSONSlice[string] `json:"skills"`
	ExperienceLevel string                      `gorm:"type:varchar(20);default:Mid" json:"experience_level"`
	HourlyRate      float64                     `gorm:"type:decimal(10,2)" json:"hourly_rate"`
	Bio             string                      `gorm:"type:text" json:"bio"`
	PortfolioLinks  datatypes.JSONSlice[string] `json:"portfolio_links"`
	Rating          *float64                    `json:"rating"`
	Resume          *Resume                     `gorm:"constraint:OnDelete:CASCADE" json:"resume,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

func (f *Freelancer) TableName() string {
	return "freelancers"
}

func (f *Freelancer) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
