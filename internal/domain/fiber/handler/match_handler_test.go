package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/skillmatch/internal/database/dbtest"
	"github.com/fadilmartias/skillmatch/internal/matching"
	"github.com/fadilmartias/skillmatch/internal/model"
	"github.com/fadilmartias/skillmatch/internal/repository"
	"github.com/fadilmartias/skillmatch/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		TotalItems int64 `json:"total_items"`
	} `json:"pagination"`
	Details map[string]any `json:"details"`
}

type testServer struct {
	app        *fiber.App
	project    model.Project
	freelancer model.Freelancer
	projects   *repository.ProjectRepository
	matches    *repository.MatchRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	db := dbtest.New(t)

	projects := repository.NewProjectRepository(db)
	freelancers := repository.NewFreelancerRepository(db)
	matches := repository.NewMatchRepository(db)

	s := &testServer{projects: projects, matches: matches}
	s.project = model.Project{
		Title:          "Go backend",
		Description:    "REST API in go with postgres",
		RequiredSkills: []string{"golang", "postgres"},
		Status:         model.ProjectStatusOpen,
	}
	require.NoError(t, projects.CreateProject(ctx, &s.project))

	rating := 4.5
	s.freelancer = model.Freelancer{Name: "gopher", Skills: []string{"go", "postgres"}, ExperienceLevel: model.ExperienceSenior, Rating: &rating}
	require.NoError(t, freelancers.CreateFreelancer(ctx, &s.freelancer))
	other := model.Freelancer{Name: "designer", Skills: []string{"figma"}, Bio: "product design"}
	require.NoError(t, freelancers.CreateFreelancer(ctx, &other))

	uc := usecase.NewMatchingUsecase(projects, freelancers, matches, matching.NewEngine(nil, matching.Config{}), zap.NewNop())
	s.app = fiber.New()
	NewMatchHandler(uc, 5*time.Second).RegisterRoutes(s.app)
	return s
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestMatchProjectRoute(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, fiber.MethodPost, "/match/project/"+s.project.ID.String(), `{"weights":{"skill":1,"experience":0,"rating":0},"top_n":"1"}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.True(t, env.Success)

	var data struct {
		Matches []struct {
			FreelancerID  uuid.UUID `json:"freelancer_id"`
			Score         float64   `json:"score"`
			SkillMatch    float64   `json:"skill_match"`
			MatchedSkills []string  `json:"matched_skills"`
		} `json:"matches"`
		Persisted bool `json:"persisted"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Matches, 1)
	assert.True(t, data.Persisted)
	assert.Equal(t, s.freelancer.ID, data.Matches[0].FreelancerID)
	assert.Equal(t, []string{"go", "postgres"}, data.Matches[0].MatchedSkills)
	// similarity is the only weighted component
	assert.Equal(t, data.Matches[0].SkillMatch, data.Matches[0].Score)

	_, err := s.matches.FindMatch(context.Background(), s.project.ID, s.freelancer.ID)
	assert.NoError(t, err)
}

func TestMatchProjectRoute_DryRun(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, fiber.MethodPost, "/match/project/"+s.project.ID.String()+"?dry_run=true", "")
	require.Equal(t, fiber.StatusOK, code)

	code, env := s.do(t, fiber.MethodGet, "/matches/project/"+s.project.ID.String(), "")
	require.Equal(t, fiber.StatusOK, code)
	require.NotNil(t, env.Pagination)
	assert.Zero(t, env.Pagination.TotalItems)
}

func TestMatchFreelancerRoute_ThenList(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, fiber.MethodPost, "/match/freelancer/"+s.freelancer.ID.String(), `{"weights":"garbage"}`)
	require.Equal(t, fiber.StatusOK, code)

	code, env := s.do(t, fiber.MethodGet, "/matches/freelancer/"+s.freelancer.ID.String()+"?page=1&page_size=5", "")
	require.Equal(t, fiber.StatusOK, code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(1), env.Pagination.TotalItems)
}

func TestMatchRoutes_Errors(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, fiber.MethodPost, "/match/project/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.False(t, env.Success)

	code, _ = s.do(t, fiber.MethodPost, "/match/freelancer/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusNotFound, code)

	code, env = s.do(t, fiber.MethodPost, "/match/project/not-a-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, env.Details, "id")
}

func TestMatchProjectRoute_InvalidQuery(t *testing.T) {
	s := newTestServer(t)
	empty := model.Project{Status: model.ProjectStatusOpen}
	require.NoError(t, s.projects.CreateProject(context.Background(), &empty))

	code, env := s.do(t, fiber.MethodPost, "/match/project/"+empty.ID.String(), "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, usecase.ErrInvalidQuery.Error(), env.Message)
}
