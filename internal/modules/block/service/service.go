package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/fittrack/internal/entity"
	"anoa.com/fittrack/internal/modules/block/repository"
	followerRepo "anoa.com/fittrack/internal/modules/follower/repository"
	userRepo "anoa.com/fittrack/internal/modules/user/repository"
	"anoa.com/fittrack/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlockService interface {
	Block(ctx context.Context, actorID uuid.UUID, username string) (*entity.UserBlock, error)
	Unblock(ctx context.Context, actorID uuid.UUID, username string) error
	Blocked(ctx context.Context, actorID uuid.UUID) ([]*entity.UserBlock, error)
	IsBlocked(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error)
	ListAll(ctx context.Context) ([]*entity.UserBlock, error)
}

type blockService struct {
	repo      repository.BlockRepository
	followers followerRepo.FollowerRepository
	users     userRepo.UserRepository
}

func NewBlockService(repo repository.BlockRepository, followers followerRepo.FollowerRepository, users userRepo.UserRepository) BlockService {
	return &blockService{repo: repo, followers: followers, users: users}
}

// Block hides the actor's resources from the named user. Any follow edges
// between the two are severed in the same step, an approved edge must not
// outlive the block.
func (s *blockService) Block(ctx context.Context, actorID uuid.UUID, username string) (*entity.UserBlock, error) {
	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if target.ID == actorID {
		return nil, fmt.Errorf("cannot block yourself: %w", apperror.ErrBadRequest)
	}

	block := &entity.UserBlock{
		BlockerID: actorID,
		BlockedID: target.ID,
	}

	inserted, err := s.repo.CreateIfAbsent(ctx, block)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("user already blocked: %w", apperror.ErrAlreadyExists)
	}

	if err := s.followers.DeleteBetween(ctx, actorID, target.ID); err != nil {
		return nil, err
	}

	return block, nil
}

func (s *blockService) Unblock(ctx context.Context, actorID uuid.UUID, username string) error {
	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, actorID, target.ID)
}

func (s *blockService) Blocked(ctx context.Context, actorID uuid.UUID) ([]*entity.UserBlock, error) {
	return s.repo.ListByBlocker(ctx, actorID)
}

func (s *blockService) IsBlocked(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	return s.repo.IsBlocked(ctx, blockerID, blockedID)
}

func (s *blockService) ListAll(ctx context.Context) ([]*entity.UserBlock, error) {
	return s.repo.ListAll(ctx)
}
