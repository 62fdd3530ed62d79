package repository

import (
	"context"

	"anoa.com/fittrack/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressRepository interface {
	Create(ctx context.Context, log *entity.ProgressLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProgressLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.ProgressLog, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, log *entity.ProgressLog) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(ctx context.Context, log *entity.ProgressLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *progressRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProgressLog, error) {
	var log entity.ProgressLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *progressRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.ProgressLog, error) {
	var logs []*entity.ProgressLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *progressRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ProgressLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) Update(ctx context.Context, log *entity.ProgressLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *progressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ProgressLog{}, "id = ?", id).Error
}
