package repository

import (
	"context"
	"errors"

	"anoa.com/fittrack/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockRepository interface {
	CreateIfAbsent(ctx context.Context, block *entity.UserBlock) (bool, error)
	Delete(ctx context.Context, blockerID, blockedID uuid.UUID) error
	IsBlocked(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error)
	ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*entity.UserBlock, error)
	ListAll(ctx context.Context) ([]*entity.UserBlock, error)
}

type blockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) CreateIfAbsent(ctx context.Context, block *entity.UserBlock) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blocker_id"}, {Name: "blocked_id"}},
			DoNothing: true,
		}).
		Create(block)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *blockRepository) Delete(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&entity.UserBlock{}).Error
}

func (r *blockRepository) IsBlocked(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	var block entity.UserBlock
	err := r.db.WithContext(ctx).
		Select("id").
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		First(&block).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *blockRepository) ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*entity.UserBlock, error) {
	var blocks []*entity.UserBlock
	if err := r.db.WithContext(ctx).
		Where("blocker_id = ?", blockerID).
		Order("created_at DESC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *blockRepository) ListAll(ctx context.Context) ([]*entity.UserBlock, error) {
	var blocks []*entity.UserBlock
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}
