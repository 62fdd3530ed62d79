package repository

import (
	"context"

	"anoa.com/fittrack/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DietTargetRepository interface {
	// CreateIfAbsent inserts the target unless the user already has an
	// active one. Returns false when an existing row won the race.
	CreateIfAbsent(ctx context.Context, target *entity.DietTarget) (bool, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DietTarget, error)
	Update(ctx context.Context, target *entity.DietTarget) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type dietTargetRepository struct {
	db *gorm.DB
}

func NewDietTargetRepository(db *gorm.DB) DietTargetRepository {
	return &dietTargetRepository{db: db}
}

func (r *dietTargetRepository) CreateIfAbsent(ctx context.Context, target *entity.DietTarget) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(target)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *dietTargetRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DietTarget, error) {
	var target entity.DietTarget
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&target).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *dietTargetRepository) Update(ctx context.Context, target *entity.DietTarget) error {
	return r.db.WithContext(ctx).Save(target).Error
}

func (r *dietTargetRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.DietTarget{}, "user_id = ?", userID).Error
}
