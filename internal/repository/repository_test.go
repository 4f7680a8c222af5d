package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/skillmatch/internal/database/dbtest"
	"github.com/fadilmartias/skillmatch/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProjectRepository_FindOpenProjects(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(dbtest.New(t))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []model.Project{
		{Title: "first", Status: model.ProjectStatusOpen, RequiredSkills: []string{"go"}},
		{Title: "closed", Status: model.ProjectStatusClosed},
		{Title: "second", Status: model.ProjectStatusOpen},
	} {
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.CreateProject(ctx, &p))
	}

	open, err := repo.FindOpenProjects(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "first", open[0].Title)
	assert.Equal(t, []string{"go"}, []string(open[0].RequiredSkills))
	assert.Equal(t, "second", open[1].Title)
}

func TestProjectRepository_NotFound(t *testing.T) {
	repo := NewProjectRepository(dbtest.New(t))
	_, err := repo.FindProjectByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestFreelancerRepository_PreloadsResumeInOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewFreelancerRepository(dbtest.New(t))

	f := &model.Freelancer{
		Name:            "Ada",
		Skills:          []string{"python", "nlp"},
		ExperienceLevel: model.ExperienceSenior,
		Resume: &model.Resume{
			Headline: "NLP engineer",
			Experiences: []model.ResumeExperience{
				{Position: 2, Title: "second"},
				{Position: 1, Title: "first"},
			},
			Education:      []model.ResumeEducation{{School: "MIT"}},
			Certifications: []model.ResumeCertification{{Name: "TF"}},
			Links:          []model.ResumeLink{{Platform: "GitHub", URL: "https://github.com/ada"}},
		},
	}
	require.NoError(t, repo.CreateFreelancer(ctx, f))
	require.NoError(t, repo.CreateFreelancer(ctx, &model.Freelancer{Name: "NoResume"}))

	got, err := repo.FindFreelancerWithResume(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Resume)
	require.Len(t, got.Resume.Experiences, 2)
	assert.Equal(t, "first", got.Resume.Experiences[0].Title)
	assert.Equal(t, "second", got.Resume.Experiences[1].Title)
	assert.Len(t, got.Resume.Education, 1)
	assert.Len(t, got.Resume.Certifications, 1)
	assert.Len(t, got.Resume.Links, 1)

	all, err := repo.FindAllWithResume(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	var sawNoResume bool
	for _, fl := range all {
		if fl.Name == "NoResume" {
			sawNoResume = true
			assert.Nil(t, fl.Resume)
		}
	}
	assert.True(t, sawNoResume)
}

func TestMatchRepository_UpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := NewMatchRepository(db)

	projectID, freelancerID := uuid.New(), uuid.New()
	first := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpsertMatches(ctx, []model.Match{{
		ProjectID: projectID, FreelancerID: freelancerID,
		MatchScore: 40, MatchedSkills: []string{"go"}, CalculatedAt: first,
	}}))
	require.NoError(t, repo.UpsertMatches(ctx, []model.Match{{
		ProjectID: projectID, FreelancerID: freelancerID,
		MatchScore: 72.5, MatchedSkills: []string{"go", "sql"}, CalculatedAt: first.Add(time.Hour),
	}}))

	var count int64
	require.NoError(t, db.Model(&model.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.FindMatch(ctx, projectID, freelancerID)
	require.NoError(t, err)
	assert.Equal(t, 72.5, got.MatchScore)
	assert.Equal(t, []string{"go", "sql"}, []string(got.MatchedSkills))
	assert.True(t, got.CalculatedAt.Equal(first.Add(time.Hour)))
}

func TestMatchRepository_UpsertEmpty(t *testing.T) {
	repo := NewMatchRepository(dbtest.New(t))
	assert.NoError(t, repo.UpsertMatches(context.Background(), nil))
}

func TestMatchRepository_Pagination(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(dbtest.New(t))

	projectID := uuid.New()
	other := uuid.New()
	var rows []model.Match
	for _, score := range []float64{10, 90, 50} {
		rows = append(rows, model.Match{ProjectID: projectID, FreelancerID: uuid.New(), MatchScore: score, CalculatedAt: time.Now()})
	}
	rows = append(rows, model.Match{ProjectID: other, FreelancerID: rows[0].FreelancerID, MatchScore: 99, CalculatedAt: time.Now()})
	require.NoError(t, repo.UpsertMatches(ctx, rows))

	page1, total, err := repo.FindMatchesByProject(ctx, projectID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page1, 2)
	assert.Equal(t, 90.0, page1[0].MatchScore)
	assert.Equal(t, 50.0, page1[1].MatchScore)

	page2, _, err := repo.FindMatchesByProject(ctx, projectID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, 10.0, page2[0].MatchScore)

	byFreelancer, total, err := repo.FindMatchesByFreelancer(ctx, rows[0].FreelancerID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 99.0, byFreelancer[0].MatchScore)
}
