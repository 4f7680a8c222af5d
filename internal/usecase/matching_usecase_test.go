package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fadilmartias/skillmatch/internal/database/dbtest"
	"github.com/fadilmartias/skillmatch/internal/matching"
	"github.com/fadilmartias/skillmatch/internal/model"
	"github.com/fadilmartias/skillmatch/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	uc          *MatchingUsecase
	projects    *repository.ProjectRepository
	freelancers *repository.FreelancerRepository
	matches     *repository.MatchRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	f := &fixture{
		projects:    repository.NewProjectRepository(db),
		freelancers: repository.NewFreelancerRepository(db),
		matches:     repository.NewMatchRepository(db),
	}
	f.uc = NewMatchingUsecase(f.projects, f.freelancers, f.matches, matching.NewEngine(nil, matching.Config{}), zap.NewNop())
	return f
}

func rating(v float64) *float64 { return &v }

func (f *fixture) seed(t *testing.T) (model.Project, map[string]model.Freelancer) {
	t.Helper()
	ctx := context.Background()

	project := model.Project{
		Title:          "AI chatbot",
		Description:    "AI chatbot",
		RequiredSkills: []string{"Python", "NLP", "API"},
		Category:       "AI",
		Status:         model.ProjectStatusOpen,
	}
	require.NoError(t, f.projects.CreateProject(ctx, &project))

	byName := map[string]model.Freelancer{}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, fl := range []model.Freelancer{
		{Name: "web", Skills: []string{"reactjs", "node"}, ExperienceLevel: model.ExperienceMid, Rating: rating(4)},
		{
			Name:            "nlp",
			Skills:          []string{"py", "nlp", "tensorflow"},
			ExperienceLevel: model.ExperienceMid,
			Rating:          rating(4),
			Resume: &model.Resume{
				Headline: "NLP engineer",
				Experiences: []model.ResumeExperience{
					{Position: 0, Title: "Chatbot developer", Description: "Built AI chatbot API in python"},
				},
			},
		},
		{Name: "design", Skills: []string{"figma", "ux"}, ExperienceLevel: model.ExperienceMid, Rating: rating(4)},
	} {
		fl.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, f.freelancers.CreateFreelancer(ctx, &fl))
		byName[fl.Name] = fl
	}
	return project, byName
}

func TestMatchProject_RanksAndPersists(t *testing.T) {
	f := newFixture(t)
	project, freelancers := f.seed(t)
	ctx := context.Background()

	res, err := f.uc.MatchProject(ctx, project.ID, MatchParams{})
	require.NoError(t, err)
	require.Len(t, res.Matches, 3)
	assert.True(t, res.Persisted)

	top := res.Matches[0]
	require.NotNil(t, top.Freelancer)
	assert.Equal(t, "nlp", top.Freelancer.Name)
	assert.Equal(t, freelancers["nlp"].ID, *top.FreelancerID)
	assert.Equal(t, []string{"nlp", "python"}, top.MatchedSkills)
	assert.Greater(t, top.SkillMatch, 0.0)
	assert.Nil(t, top.Project)
	for _, m := range res.Matches[1:] {
		assert.Empty(t, m.MatchedSkills)
	}

	stored, err := f.matches.FindMatch(ctx, project.ID, freelancers["nlp"].ID)
	require.NoError(t, err)
	assert.Equal(t, top.Score, stored.MatchScore)
	assert.Equal(t, []string{"nlp", "python"}, []string(stored.MatchedSkills))
}

func TestMatchProject_Idempotent(t *testing.T) {
	f := newFixture(t)
	project, freelancers := f.seed(t)
	ctx := context.Background()

	first, err := f.uc.MatchProject(ctx, project.ID, MatchParams{})
	require.NoError(t, err)
	before, err := f.matches.FindMatch(ctx, project.ID, freelancers["web"].ID)
	require.NoError(t, err)

	later := time.Now().Add(time.Hour)
	f.uc.now = func() time.Time { return later }
	second, err := f.uc.MatchProject(ctx, project.ID, MatchParams{})
	require.NoError(t, err)
	assert.Equal(t, first.Matches, second.Matches)

	records, total, err := f.matches.FindMatchesByProject(ctx, project.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, records, 3)

	after, err := f.matches.FindMatch(ctx, project.ID, freelancers["web"].ID)
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.WithinDuration(t, later, after.CalculatedAt, time.Second)
}

func TestMatchProject_DryRunSkipsPersistence(t *testing.T) {
	f := newFixture(t)
	project, _ := f.seed(t)
	ctx := context.Background()

	res, err := f.uc.MatchProject(ctx, project.ID, MatchParams{DryRun: true, Options: matching.Options{TopN: 1}})
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Len(t, res.Matches, 1)

	_, total, err := f.matches.FindMatchesByProject(ctx, project.ID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMatchProject_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.MatchProject(ctx, uuid.New(), MatchParams{})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	empty := model.Project{Title: "  ", RequiredSkills: []string{"!!"}, Status: model.ProjectStatusOpen}
	require.NoError(t, f.projects.CreateProject(ctx, &empty))
	_, err = f.uc.MatchProject(ctx, empty.ID, MatchParams{})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestMatchProject_NoFreelancers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := model.Project{Title: "Go API", Status: model.ProjectStatusOpen}
	require.NoError(t, f.projects.CreateProject(ctx, &project))

	res, err := f.uc.MatchProject(ctx, project.ID, MatchParams{})
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
}

func TestMatchFreelancer_RanksOpenProjects(t *testing.T) {
	f := newFixture(t)
	chatbot, freelancers := f.seed(t)
	ctx := context.Background()

	landing := model.Project{Title: "Landing page", Description: "Marketing site", RequiredSkills: []string{"figma", "react"}, Status: model.ProjectStatusOpen}
	closed := model.Project{Title: "AI chatbot v2", Description: "AI chatbot", RequiredSkills: []string{"python", "nlp"}, Status: model.ProjectStatusClosed}
	require.NoError(t, f.projects.CreateProject(ctx, &landing))
	require.NoError(t, f.projects.CreateProject(ctx, &closed))

	res, err := f.uc.MatchFreelancer(ctx, freelancers["nlp"].ID, MatchParams{})
	require.NoError(t, err)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, chatbot.ID, *res.Matches[0].ProjectID)
	require.NotNil(t, res.Matches[0].Project)
	assert.Equal(t, "AI chatbot", res.Matches[0].Project.Title)
	assert.Equal(t, []string{"nlp", "python"}, res.Matches[0].MatchedSkills)

	_, err = f.matches.FindMatch(ctx, closed.ID, freelancers["nlp"].ID)
	assert.Error(t, err)
}

func TestMatchFreelancer_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.MatchFreelancer(ctx, uuid.New(), MatchParams{})
	assert.ErrorIs(t, err, ErrFreelancerNotFound)

	blank := model.Freelancer{Name: "blank", ExperienceLevel: model.ExperienceJunior}
	require.NoError(t, f.freelancers.CreateFreelancer(ctx, &blank))
	_, err = f.uc.MatchFreelancer(ctx, blank.ID, MatchParams{})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestListMatches_Paginates(t *testing.T) {
	f := newFixture(t)
	project, freelancers := f.seed(t)
	ctx := context.Background()

	_, err := f.uc.MatchProject(ctx, project.ID, MatchParams{})
	require.NoError(t, err)

	records, page, err := f.uc.ListProjectMatches(ctx, project.ID, 1, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, freelancers["nlp"].ID, records[0].FreelancerID)
	assert.GreaterOrEqual(t, records[0].MatchScore, records[1].MatchScore)
	for _, r := range records {
		require.NotNil(t, r.Freelancer)
		assert.Equal(t, r.FreelancerID, r.Freelancer.ID)
		assert.Nil(t, r.Project)
	}
	assert.Equal(t, "nlp", records[0].Freelancer.Name)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.True(t, page.HasMore)

	records, page, err = f.uc.ListFreelancerMatches(ctx, freelancers["web"].ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, project.ID, records[0].ProjectID)
	require.NotNil(t, records[0].Project)
	assert.Equal(t, "AI chatbot", records[0].Project.Title)
	assert.Nil(t, records[0].Freelancer)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, defaultPageSize, page.PageSize)
}
