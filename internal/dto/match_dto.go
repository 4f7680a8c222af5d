package dto

import (
	"time"

	"github.com/google/uuid"
)

type FreelancerSummaryDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ExperienceLevel string    `json:"experience_level"`
	HourlyRate      float64   `json:"hourly_rate"`
	Rating          *float64  `json:"rating"`
	Skills          []string  `json:"skills"`
}

type ProjectSummaryDTO struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	BudgetMin      float64   `json:"budget_min"`
	BudgetMax      float64   `json:"budget_max"`
	Category       string    `json:"category"`
	RequiredSkills []string  `json:"required_skills"`
}

// MatchEntryDTO is one ranked entry. Exactly one of Freelancer or Project is
// set, depending on which side was ranked.
type MatchEntryDTO struct {
	FreelancerID  *uuid.UUID            `json:"freelancer_id,omitempty"`
	ProjectID     *uuid.UUID            `json:"project_id,omitempty"`
	Score         float64               `json:"score"`
	SkillMatch    float64               `json:"skill_match"`
	MatchedSkills []string              `json:"matched_skills"`
	Freelancer    *FreelancerSummaryDTO `json:"freelancer,omitempty"`
	Project       *ProjectSummaryDTO    `json:"project,omitempty"`
}

type ProjectMatchResponse struct {
	ProjectID uuid.UUID       `json:"project_id"`
	Matches   []MatchEntryDTO `json:"matches"`
	Persisted bool            `json:"persisted"`
}

type FreelancerMatchResponse struct {
	FreelancerID uuid.UUID       `json:"freelancer_id"`
	Matches      []MatchEntryDTO `json:"matches"`
	Persisted    bool            `json:"persisted"`
}

// MatchRecordDTO is a stored match. Listing by project fills Freelancer,
// listing by freelancer fills Project.
type MatchRecordDTO struct {
	ID            uuid.UUID             `json:"id"`
	ProjectID     uuid.UUID             `json:"project_id"`
	FreelancerID  uuid.UUID             `json:"freelancer_id"`
	MatchScore    float64               `json:"match_score"`
	MatchedSkills []string              `json:"matched_skills"`
	CalculatedAt  time.Time             `json:"calculated_at"`
	Freelancer    *FreelancerSummaryDTO `json:"freelancer,omitempty"`
	Project       *ProjectSummaryDTO    `json:"project,omitempty"`
}
