package matching

// Request is a project looking for a freelancer.
type Request struct {
	ID          string
	Title       string
	Description string
	Skills      []string
	Category    string
}

// Candidate is a freelancer profile with its optional resume.
type Candidate struct {
	ID              string
	Skills          []string
	Bio             string
	ExperienceLevel string
	Rating          *float64
	Resume          *Resume
}

type Resume struct {
	Headline       string
	Summary        string
	Location       string
	Website        string
	Phone          string
	Experiences    []Experience
	Education      []Education
	Certifications []Certification
	Links          []Link
}

type Experience struct {
	Title       string
	Company     string
	Location    string
	Description string
}

type Education struct {
	School      string
	Degree      string
	Field       string
	Grade       string
	Description string
}

type Certification struct {
	Name   string
	Issuer string
}

type Link struct {
	Platform string
	URL      string
	Username string
}

// Result is one ranked comparison entity. Score and Similarity are on a
// 0-100 scale rounded to two decimals.
type Result struct {
	ID            string   `json:"id"`
	Score         float64  `json:"score"`
	Similarity    float64  `json:"skill_match"`
	MatchedSkills []string `json:"matched_skills"`
}
