package model

// All lists every table owned by this service, in dependency order.
func All() []any {
	return []any{
		&Project{},
		&Freelancer{},
		&Resume{},
		&ResumeExperience{},
		&ResumeEducation{},
		&ResumeCertification{},
		&ResumeLink{},
		&Match{},
	}
}
