package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/skillmatch/internal/dto"
	"github.com/fadilmartias/skillmatch/internal/matching"
	"github.com/fadilmartias/skillmatch/internal/model"
	"github.com/fadilmartias/skillmatch/internal/repository"
	"github.com/fadilmartias/skillmatch/internal/response"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrFreelancerNotFound = errors.New("freelancer not found")
	// ErrInvalidQuery means the entity being matched has no text or skills
	// to match on.
	ErrInvalidQuery = errors.New("nothing to match on")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// MatchParams tunes a single matching call.
type MatchParams struct {
	Options matching.Options
	// DryRun ranks without writing match records.
	DryRun bool
}

type MatchingUsecase struct {
	projectRepo    *repository.ProjectRepository
	freelancerRepo *repository.FreelancerRepository
	matchRepo      *repository.MatchRepository
	engine         *matching.Engine
	logger         *zap.Logger
	now            func() time.Time
}

func NewMatchingUsecase(projectRepo *repository.ProjectRepository, freelancerRepo *repository.FreelancerRepository, matchRepo *repository.MatchRepository, engine *matching.Engine, logger *zap.Logger) *MatchingUsecase {
	return &MatchingUsecase{
		projectRepo:    projectRepo,
		freelancerRepo: freelancerRepo,
		matchRepo:      matchRepo,
		engine:         engine,
		logger:         logger,
		now:            time.Now,
	}
}

// MatchProject ranks every freelancer against the project using the data
// as it is right now, then stores the results.
func (uc *MatchingUsecase) MatchProject(ctx context.Context, projectID uuid.UUID, params MatchParams) (*dto.ProjectMatchResponse, error) {
	project, err := uc.projectRepo.FindProjectByID(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if isBlank(project.Title, project.Description) && len(matching.NormalizeSkills(project.RequiredSkills)) == 0 {
		return nil, ErrInvalidQuery
	}

	freelancers, err := uc.freelancerRepo.FindAllWithResume(ctx)
	if err != nil {
		return nil, fmt.Errorf("load freelancers: %w", err)
	}

	candidates := make([]matching.Candidate, len(freelancers))
	byID := make(map[string]model.Freelancer, len(freelancers))
	for i, f := range freelancers {
		candidates[i] = toCandidate(f)
		byID[candidates[i].ID] = f
	}

	results, err := uc.engine.RankCandidates(ctx, toRequest(*project), candidates, params.Options)
	if err != nil {
		return nil, fmt.Errorf("rank freelancers: %w", err)
	}

	calculatedAt := uc.now()
	entries := make([]dto.MatchEntryDTO, 0, len(results))
	records := make([]model.Match, 0, len(results))
	for _, r := range results {
		f := byID[r.ID]
		id := f.ID
		entries = append(entries, dto.MatchEntryDTO{
			FreelancerID:  &id,
			Score:         r.Score,
			SkillMatch:    r.Similarity,
			MatchedSkills: r.MatchedSkills,
			Freelancer:    freelancerSummary(f),
		})
		records = append(records, newRecord(project.ID, f.ID, r, calculatedAt))
	}

	if err := uc.persist(ctx, records, params); err != nil {
		return nil, err
	}

	uc.logger.Info("project matched",
		zap.String("project_id", project.ID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(entries)),
		zap.Bool("persisted", !params.DryRun),
	)
	return &dto.ProjectMatchResponse{ProjectID: project.ID, Matches: entries, Persisted: !params.DryRun}, nil
}

// MatchFreelancer ranks every open project against the freelancer.
func (uc *MatchingUsecase) MatchFreelancer(ctx context.Context, freelancerID uuid.UUID, params MatchParams) (*dto.FreelancerMatchResponse, error) {
	freelancer, err := uc.freelancerRepo.FindFreelancerWithResume(ctx, freelancerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFreelancerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load freelancer: %w", err)
	}
	candidate := toCandidate(*freelancer)
	if len(matching.NormalizeSkills(candidate.Skills)) == 0 && isBlank(candidate.Bio) && candidate.Resume == nil {
		return nil, ErrInvalidQuery
	}

	projects, err := uc.projectRepo.FindOpenProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	requests := make([]matching.Request, len(projects))
	byID := make(map[string]model.Project, len(projects))
	for i, p := range projects {
		requests[i] = toRequest(p)
		byID[requests[i].ID] = p
	}

	results, err := uc.engine.RankRequests(ctx, candidate, requests, params.Options)
	if err != nil {
		return nil, fmt.Errorf("rank projects: %w", err)
	}

	calculatedAt := uc.now()
	entries := make([]dto.MatchEntryDTO, 0, len(results))
	records := make([]model.Match, 0, len(results))
	for _, r := range results {
		p := byID[r.ID]
		id := p.ID
		entries = append(entries, dto.MatchEntryDTO{
			ProjectID:     &id,
			Score:         r.Score,
			SkillMatch:    r.Similarity,
			MatchedSkills: r.MatchedSkills,
			Project:       projectSummary(p),
		})
		records = append(records, newRecord(p.ID, freelancer.ID, r, calculatedAt))
	}

	if err := uc.persist(ctx, records, params); err != nil {
		return nil, err
	}

	uc.logger.Info("freelancer matched",
		zap.String("freelancer_id", freelancer.ID.String()),
		zap.Int("projects", len(requests)),
		zap.Int("returned", len(entries)),
		zap.Bool("persisted", !params.DryRun),
	)
	return &dto.FreelancerMatchResponse{FreelancerID: freelancer.ID, Matches: entries, Persisted: !params.DryRun}, nil
}

// ListProjectMatches returns stored match records for a project, each with a
// summary of the matched freelancer.
func (uc *MatchingUsecase) ListProjectMatches(ctx context.Context, projectID uuid.UUID, page, pageSize int) ([]dto.MatchRecordDTO, *response.Pagination, error) {
	page, pageSize = normalizePage(page, pageSize)
	matches, total, err := uc.matchRepo.FindMatchesByProject(ctx, projectID, page, pageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("list project matches: %w", err)
	}

	ids := make([]uuid.UUID, len(matches))
	for i, m := range matches {
		ids[i] = m.FreelancerID
	}
	freelancers, err := uc.freelancerRepo.FindFreelancersByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("load matched freelancers: %w", err)
	}
	byID := make(map[uuid.UUID]model.Freelancer, len(freelancers))
	for _, f := range freelancers {
		byID[f.ID] = f
	}

	records := toRecords(matches)
	for i := range records {
		if f, ok := byID[records[i].FreelancerID]; ok {
			records[i].Freelancer = freelancerSummary(f)
		}
	}
	return records, response.NewPagination(page, pageSize, total, len(matches)), nil
}

// ListFreelancerMatches returns stored match records for a freelancer, each
// with a summary of the matched project.
func (uc *MatchingUsecase) ListFreelancerMatches(ctx context.Context, freelancerID uuid.UUID, page, pageSize int) ([]dto.MatchRecordDTO, *response.Pagination, error) {
	page, pageSize = normalizePage(page, pageSize)
	matches, total, err := uc.matchRepo.FindMatchesByFreelancer(ctx, freelancerID, page, pageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("list freelancer matches: %w", err)
	}

	ids := make([]uuid.UUID, len(matches))
	for i, m := range matches {
		ids[i] = m.ProjectID
	}
	projects, err := uc.projectRepo.FindProjectsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("load matched projects: %w", err)
	}
	byID := make(map[uuid.UUID]model.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	records := toRecords(matches)
	for i := range records {
		if p, ok := byID[records[i].ProjectID]; ok {
			records[i].Project = projectSummary(p)
		}
	}
	return records, response.NewPagination(page, pageSize, total, len(matches)), nil
}

func (uc *MatchingUsecase) persist(ctx context.Context, records []model.Match, params MatchParams) error {
	if params.DryRun {
		return nil
	}
	if err := uc.matchRepo.UpsertMatches(ctx, records); err != nil {
		return fmt.Errorf("save matches: %w", err)
	}
	return nil
}

func newRecord(projectID, freelancerID uuid.UUID, r matching.Result, at time.Time) model.Match {
	return model.Match{
		ProjectID:     projectID,
		FreelancerID:  freelancerID,
		MatchScore:    r.Score,
		MatchedSkills: r.MatchedSkills,
		CalculatedAt:  at,
	}
}

func toRecords(matches []model.Match) []dto.MatchRecordDTO {
	out := make([]dto.MatchRecordDTO, len(matches))
	for i, m := range matches {
		out[i] = matchRecord(m)
	}
	return out
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
