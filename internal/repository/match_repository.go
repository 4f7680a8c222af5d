package repository

import (
	"context"

	"github.com/fadilmartias/skillmatch/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db}
}

// UpsertMatches writes one row per (project, freelancer) pair. An existing
// row for the pair keeps its id and creation time; score, skills and
// timestamps are overwritten. Concurrent writers resolve as last write wins.
func (r *MatchRepository) UpsertMatches(ctx context.Context, matches []model.Match) error {
	if len(matches) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}, {Name: "freelancer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"match_score",
				"matched_skills",
				"calculated_at",
				"updated_at",
			}),
		}).
		Create(&matches).Error
}

func (r *MatchRepository) FindMatch(ctx context.Context, projectID, freelancerID uuid.UUID) (*model.Match, error) {
	var m model.Match
	err := r.db.WithContext(ctx).
		First(&m, "project_id = ? AND freelancer_id = ?", projectID, freelancerID).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMatchesByProject returns one page of a project's matches, best first,
// plus the total row count.
func (r *MatchRepository) FindMatchesByProject(ctx context.Context, projectID uuid.UUID, page, pageSize int) ([]model.Match, int64, error) {
	return r.page(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("project_id = ?", projectID)
	}, page, pageSize)
}

func (r *MatchRepository) FindMatchesByFreelancer(ctx context.Context, freelancerID uuid.UUID, page, pageSize int) ([]model.Match, int64, error) {
	return r.page(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("freelancer_id = ?", freelancerID)
	}, page, pageSize)
}

func (r *MatchRepository) page(ctx context.Context, scope func(*gorm.DB) *gorm.DB, page, pageSize int) ([]model.Match, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Match{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var matches []model.Match
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("match_score DESC, calculated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&matches).Error
	return matches, total, err
}
