package repository

import (
	"context"

	"github.com/fadilmartias/skillmatch/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FreelancerRepository struct {
	db *gorm.DB
}

func NewFreelancerRepository(db *gorm.DB) *FreelancerRepository {
	return &FreelancerRepository{db}
}

// CreateFreelancer inserts the freelancer together with any resume and
// resume sub-records attached to it.
func (r *FreelancerRepository) CreateFreelancer(ctx context.Context, f *model.Freelancer) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FreelancerRepository) FindFreelancerWithResume(ctx context.Context, id uuid.UUID) (*model.Freelancer, error) {
	var f model.Freelancer
	err := withResume(r.db.WithContext(ctx)).First(&f, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindAllWithResume loads every freelancer with the full resume tree. Each
// collection is fetched with a single batched query.
func (r *FreelancerRepository) FindAllWithResume(ctx context.Context) ([]model.Freelancer, error) {
	var freelancers []model.Freelancer
	err := withResume(r.db.WithContext(ctx)).
		Order("created_at ASC, id ASC").
		Find(&freelancers).Error
	return freelancers, err
}

func (r *FreelancerRepository) FindFreelancersByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Freelancer, error) {
	var freelancers []model.Freelancer
	if len(ids) == 0 {
		return freelancers, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&freelancers).Error
	return freelancers, err
}

func withResume(db *gorm.DB) *gorm.DB {
	byPosition := func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}
	return db.
		Preload("Resume").
		Preload("Resume.Experiences", byPosition).
		Preload("Resume.Education", byPosition).
		Preload("Resume.Certifications", byPosition).
		Preload("Resume.Links", byPosition)
}
