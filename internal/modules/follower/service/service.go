package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/fittrack/internal/entity"
	"anoa.com/fittrack/internal/modules/follower/repository"
	userRepo "anoa.com/fittrack/internal/modules/user/repository"
	"anoa.com/fittrack/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowerService interface {
	Request(ctx context.Context, actorID uuid.UUID, username string) (*entity.Follower, error)
	Accept(ctx context.Context, actorID, requestID uuid.UUID) error
	Decline(ctx context.Context, actorID, requestID uuid.UUID) error
	Unfollow(ctx context.Context, actorID uuid.UUID, username string) error
	Followers(ctx context.Context, actorID uuid.UUID) ([]*entity.Follower, error)
	Following(ctx context.Context, actorID uuid.UUID) ([]*entity.Follower, error)
	PendingRequests(ctx context.Context, actorID uuid.UUID) ([]*entity.Follower, error)
	PendingCount(ctx context.Context, actorID uuid.UUID) (int64, error)
	IsApproved(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	StatusFor(ctx context.Context, actorID, otherID uuid.UUID) (string, error)
}

const (
	StatusSelf     = "self"
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusNone     = "none"
)

type followerService struct {
	repo  repository.FollowerRepository
	users userRepo.UserRepository
}

func NewFollowerService(repo repository.FollowerRepository, users userRepo.UserRepository) FollowerService {
	return &followerService{repo: repo, users: users}
}

// Request creates a follow edge toward the named user. A public followee
// needs no approval gate, so the edge lands Approved immediately; anything
// else starts Pending. The conditional insert carries the at-most-one-edge
// rule, so two racing requests produce exactly one edge.
func (s *followerService) Request(ctx context.Context, actorID uuid.UUID, username string) (*entity.Follower, error) {
	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if target.ID == actorID {
		return nil, apperror.ErrSelfFollow
	}

	status := entity.FollowerPending
	if target.Profile != nil && target.Profile.PrivacyLevel == entity.PrivacyPublic {
		status = entity.FollowerApproved
	}

	edge := &entity.Follower{
		UserID:     target.ID,
		FollowerID: actorID,
		Status:     status,
	}

	inserted, err := s.repo.CreateIfAbsent(ctx, edge)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("follow request already exists: %w", apperror.ErrAlreadyExists)
	}

	return edge, nil
}

// Accept transitions a pending request to approved. Only the followee of the
// request may accept it.
func (s *followerService) Accept(ctx context.Context, actorID, requestID uuid.UUID) error {
	edge, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if edge.UserID != actorID {
		return apperror.ErrForbidden
	}

	return s.repo.Approve(ctx, edge.ID)
}

// Decline removes a pending request. Only the followee may decline.
func (s *followerService) Decline(ctx context.Context, actorID, requestID uuid.UUID) error {
	edge, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if edge.UserID != actorID {
		return apperror.ErrForbidden
	}

	if edge.Status != entity.FollowerPending {
		return fmt.Errorf("request is not pending: %w", apperror.ErrBadRequest)
	}

	return s.repo.Delete(ctx, edge.ID)
}

// Unfollow removes any edge between the actor and the named user, in either
// direction. Idempotent: unfollowing someone you do not follow succeeds.
func (s *followerService) Unfollow(ctx context.Context, actorID uuid.UUID, username string) error {
	other, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.repo.DeleteBetween(ctx, actorID, other.ID)
}

func (s *followerService) Followers(ctx context.Context, actorID uuid.UUID) ([]*entity.Follower, error) {
	return s.repo.ListFollowers(ctx, actorID)
}

func (s *followerService) Following(ctx context.Context, actorID uuid.UUID) ([]*entity.Follower, error) {
	return s.repo.ListFollowing(ctx, actorID)
}

func (s *followerService) PendingRequests(ctx context.Context, actorID uuid.UUID) ([]*entity.Follower, error) {
	return s.repo.ListPending(ctx, actorID)
}

func (s *followerService) PendingCount(ctx context.Context, actorID uuid.UUID) (int64, error) {
	return s.repo.PendingCount(ctx, actorID)
}

func (s *followerService) IsApproved(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return s.repo.IsApproved(ctx, followerID, followeeID)
}

// StatusFor labels the actor's follow relationship toward the other user, as
// shown next to search results.
func (s *followerService) StatusFor(ctx context.Context, actorID, otherID uuid.UUID) (string, error) {
	if actorID == otherID {
		return StatusSelf, nil
	}

	edge, err := s.repo.FindEdge(ctx, otherID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusNone, nil
		}
		return "", err
	}

	if edge.Status == entity.FollowerApproved {
		return StatusApproved, nil
	}
	return StatusPending, nil
}
