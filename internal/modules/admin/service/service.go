package service

import (
	"context"
	"errors"
	"log"

	"anoa.com/fittrack/internal/entity"
	adminDto "anoa.com/fittrack/internal/modules/admin/dto"
	blockService "anoa.com/fittrack/internal/modules/block/service"
	searchService "anoa.com/fittrack/internal/modules/search/service"
	userRepo "anoa.com/fittrack/internal/modules/user/repository"
	"anoa.com/fittrack/pkg/apperror"
	"gorm.io/gorm"
)

// AdminService backs the moderation surface. Route-level admin gating happens
// in middleware; these methods assume the caller is already an admin.
type AdminService interface {
	ListUsers(ctx context.Context) (*adminDto.UserListResponse, error)
	GetUser(ctx context.Context, username string) (*adminDto.UserDetailResponse, error)
	UpdateRole(ctx context.Context, username string, roleName string) error
	SetActive(ctx context.Context, username string, active bool) error
	ListBlocks(ctx context.Context) ([]*entity.UserBlock, error)
	BlockOnBehalf(ctx context.Context, username, target string) (*entity.UserBlock, error)
	UnblockOnBehalf(ctx context.Context, username, target string) error
}

type adminService struct {
	users  userRepo.UserRepository
	blocks blockService.BlockService
	search searchService.UserSearchService
}

func NewAdminService(users userRepo.UserRepository, blocks blockService.BlockService, search searchService.UserSearchService) AdminService {
	return &adminService{users: users, blocks: blocks, search: search}
}

func (s *adminService) ListUsers(ctx context.Context) (*adminDto.UserListResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]adminDto.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, summarize(u))
	}

	return &adminDto.UserListResponse{Users: summaries, Total: total}, nil
}

func (s *adminService) GetUser(ctx context.Context, username string) (*adminDto.UserDetailResponse, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	return &adminDto.UserDetailResponse{
		User:    summarize(user),
		Profile: user.Profile,
	}, nil
}

func (s *adminService) UpdateRole(ctx context.Context, username string, roleName string) error {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}

	role, err := s.users.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrBadRequest
		}
		return err
	}

	user.RoleID = &role.ID
	user.Role = *role
	return s.users.Update(ctx, user)
}

// SetActive flips the moderation switch. A deactivated user keeps their data
// but fails login until reactivated, and drops out of the discovery index.
// Admin accounts must be demoted before deactivation.
func (s *adminService) SetActive(ctx context.Context, username string, active bool) error {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}

	if user.IsAdmin() && !active {
		return apperror.ErrForbidden
	}

	if err := s.users.SetActive(ctx, user.ID.String(), active); err != nil {
		return err
	}

	if s.search != nil {
		if active {
			if err := s.search.IndexUser(user); err != nil {
				log.Printf("Failed to index user %s: %v", user.Username, err)
			}
		} else if err := s.search.RemoveUser(user.ID.String()); err != nil {
			log.Printf("Failed to remove user %s from index: %v", user.Username, err)
		}
	}

	return nil
}

func (s *adminService) ListBlocks(ctx context.Context) ([]*entity.UserBlock, error) {
	return s.blocks.ListAll(ctx)
}

// BlockOnBehalf creates a block edge for the named user, as if they had
// blocked the target themselves. Follow edges are severed the same way.
func (s *adminService) BlockOnBehalf(ctx context.Context, username, target string) (*entity.UserBlock, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.blocks.Block(ctx, user.ID, target)
}

func (s *adminService) UnblockOnBehalf(ctx context.Context, username, target string) error {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}
	return s.blocks.Unblock(ctx, user.ID, target)
}

func (s *adminService) findUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func summarize(u *entity.User) adminDto.UserSummary {
	return adminDto.UserSummary{
		ID:        u.ID.String(),
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.Name,
		Active:    u.Active,
		LastLogin: u.LastLogin,
	}
}
