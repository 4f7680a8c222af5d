package usecase

import (
	"github.com/fadilmartias/skillmatch/internal/dto"
	"github.com/fadilmartias/skillmatch/internal/matching"
	"github.com/fadilmartias/skillmatch/internal/model"
)

func toRequest(p model.Project) matching.Request {
	return matching.Request{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Skills:      p.RequiredSkills,
		Category:    p.Category,
	}
}

func toCandidate(f model.Freelancer) matching.Candidate {
	return matching.Candidate{
		ID:              f.ID.String(),
		Skills:          f.Skills,
		Bio:             f.Bio,
		ExperienceLevel: f.ExperienceLevel,
		Rating:          f.Rating,
		Resume:          toResume(f.Resume),
	}
}

func toResume(r *model.Resume) *matching.Resume {
	if r == nil {
		return nil
	}
	out := &matching.Resume{
		Headline: r.Headline,
		Summary:  r.Summary,
		Location: r.Location,
		Website:  r.Website,
		Phone:    r.Phone,
	}
	for _, e := range r.Experiences {
		out.Experiences = append(out.Experiences, matching.Experience{
			Title: e.Title, Company: e.Company, Location: e.Location, Description: e.Description,
		})
	}
	for _, e := range r.Education {
		out.Education = append(out.Education, matching.Education{
			School: e.School, Degree: e.Degree, Field: e.FieldOfStudy, Grade: e.Grade, Description: e.Description,
		})
	}
	for _, c := range r.Certifications {
		out.Certifications = append(out.Certifications, matching.Certification{Name: c.Name, Issuer: c.Issuer})
	}
	for _, l := range r.Links {
		out.Links = append(out.Links, matching.Link{Platform: l.Platform, URL: l.URL, Username: l.Username})
	}
	return out
}

func freelancerSummary(f model.Freelancer) *dto.FreelancerSummaryDTO {
	return &dto.FreelancerSummaryDTO{
		ID:              f.ID,
		Name:            f.Name,
		ExperienceLevel: f.ExperienceLevel,
		HourlyRate:      f.HourlyRate,
		Rating:          f.Rating,
		Skills:          orEmpty(f.Skills),
	}
}

func projectSummary(p model.Project) *dto.ProjectSummaryDTO {
	return &dto.ProjectSummaryDTO{
		ID:             p.ID,
		Title:          p.Title,
		BudgetMin:      p.BudgetMin,
		BudgetMax:      p.BudgetMax,
		Category:       p.Category,
		RequiredSkills: orEmpty(p.RequiredSkills),
	}
}

func matchRecord(m model.Match) dto.MatchRecordDTO {
	return dto.MatchRecordDTO{
		ID:            m.ID,
		ProjectID:     m.ProjectID,
		FreelancerID:  m.FreelancerID,
		MatchScore:    m.MatchScore,
		MatchedSkills: orEmpty(m.MatchedSkills),
		CalculatedAt:  m.CalculatedAt,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
