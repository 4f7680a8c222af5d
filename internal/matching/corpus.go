package matching

import (
	"strings"
)

// RequestText builds the corpus document for a project.
func RequestText(r Request) string {
	return joinDocument(
		r.Title,
		r.Description,
		strings.Join(NormalizeSkills(r.Skills), " "),
		r.Category,
	)
}

// CandidateText builds the corpus document for a freelancer, including every
// textual field of the resume when one is attached.
func CandidateText(c Candidate) string {
	parts := []string{
		strings.Join(NormalizeSkills(c.Skills), " "),
		c.Bio,
		c.ExperienceLevel,
	}
	parts = append(parts, resumeParts(c.Resume)...)
	return joinDocument(parts...)
}

func resumeParts(r *Resume) []string {
	if r == nil {
		return nil
	}
	parts := []string{r.Headline, r.Summary, r.Location, r.Website, r.Phone}
	for _, e := range r.Experiences {
		parts = append(parts, e.Title, e.Company, e.Location, e.Description)
	}
	for _, e := range r.Education {
		parts = append(parts, e.School, e.Degree, e.Field, e.Description, e.Grade)
	}
	for _, c := range r.Certifications {
		parts = append(parts, c.Name, c.Issuer)
	}
	for _, l := range r.Links {
		parts = append(parts, l.Platform, l.URL, l.Username)
	}
	return parts
}

// joinDocument drops empty parts, collapses whitespace and lowercases.
func joinDocument(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		for _, field := range strings.Fields(p) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(field)
		}
	}
	return strings.ToLower(b.String())
}
