package repository

import (
	"context"

	"github.com/fadilmartias/skillmatch/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db}
}

func (r *ProjectRepository) CreateProject(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) FindProjectByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindOpenProjects returns every project still accepting freelancers,
// oldest first so that repeated rankings see a stable input order.
func (r *ProjectRepository) FindOpenProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("status = ?", model.ProjectStatusOpen).
		Order("created_at ASC, id ASC").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) FindProjectsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	if len(ids) == 0 {
		return projects, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&projects).Error
	return projects, err
}
