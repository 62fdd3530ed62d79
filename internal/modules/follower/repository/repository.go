package repository

import (
	"context"
	"errors"

	"anoa.com/fittrack/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowerRepository interface {
	// CreateIfAbsent inserts the edge unless one already exists for the
	// ordered pair. Returns false when the insert lost to an existing edge.
	CreateIfAbsent(ctx context.Context, edge *entity.Follower) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Follower, error)
	FindEdge(ctx context.Context, userID, followerID uuid.UUID) (*entity.Follower, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteBetween removes edges between the two users in both directions.
	DeleteBetween(ctx context.Context, a, b uuid.UUID) error
	IsApproved(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]*entity.Follower, error)
	ListFollowing(ctx context.Context, followerID uuid.UUID) ([]*entity.Follower, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]*entity.Follower, error)
	PendingCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type followerRepository struct {
	db *gorm.DB
}

func NewFollowerRepository(db *gorm.DB) FollowerRepository {
	return &followerRepository{db: db}
}

func (r *followerRepository) CreateIfAbsent(ctx context.Context, edge *entity.Follower) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "follower_id"}},
			DoNothing: true,
		}).
		Create(edge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Follower, error) {
	var edge entity.Follower
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("FollowerUser").
		Where("id = ?", id).
		First(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *followerRepository) FindEdge(ctx context.Context, userID, followerID uuid.UUID) (*entity.Follower, error) {
	var edge entity.Follower
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		First(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *followerRepository) Approve(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Follower{}).
		Where("id = ? AND status = ?", id, entity.FollowerPending).
		Update("status", entity.FollowerApproved).Error
}

func (r *followerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Follower{}, "id = ?", id).Error
}

func (r *followerRepository) DeleteBetween(ctx context.Context, a, b uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("(user_id = ? AND follower_id = ?) OR (user_id = ? AND follower_id = ?)", a, b, b, a).
		Delete(&entity.Follower{}).Error
}

// IsApproved is the policy engine's hot path; it hits the unique
// (user_id, follower_id) index.
func (r *followerRepository) IsApproved(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var edge entity.Follower
	err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ? AND follower_id = ? AND status = ?", followeeID, followerID, entity.FollowerApproved).
		First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *followerRepository) ListFollowers(ctx context.Context, userID uuid.UUID) ([]*entity.Follower, error) {
	var edges []*entity.Follower
	if err := r.db.WithContext(ctx).
		Preload("FollowerUser").
		Where("user_id = ? AND status = ?", userID, entity.FollowerApproved).
		Order("created_at DESC").
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *followerRepository) ListFollowing(ctx context.Context, followerID uuid.UUID) ([]*entity.Follower, error) {
	var edges []*entity.Follower
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("follower_id = ? AND status = ?", followerID, entity.FollowerApproved).
		Order("created_at DESC").
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *followerRepository) ListPending(ctx context.Context, userID uuid.UUID) ([]*entity.Follower, error) {
	var edges []*entity.Follower
	if err := r.db.WithContext(ctx).
		Preload("FollowerUser").
		Where("user_id = ? AND status = ?", userID, entity.FollowerPending).
		Order("created_at ASC").
		Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *followerRepository) PendingCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Follower{}).
		Where("user_id = ? AND status = ?", userID, entity.FollowerPending).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
