package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/fittrack/internal/entity"
	dietDto "anoa.com/fittrack/internal/modules/diettarget/dto"
	"anoa.com/fittrack/internal/modules/diettarget/repository"
	userRepo "anoa.com/fittrack/internal/modules/user/repository"
	"anoa.com/fittrack/internal/policy"
	"anoa.com/fittrack/pkg/apperror"
	"gorm.io/gorm"
)

const (
	minWeightKg = 20
	maxWeightKg = 500
	minPerKg    = 0
	maxPerKg    = 10
)

type DietTargetService interface {
	Create(ctx context.Context, actor *policy.Actor, username string, input dietDto.CreateDietTargetInput) (*entity.DietTarget, error)
	GetByUsername(ctx context.Context, actor *policy.Actor, username string) (*dietDto.DietTargetResponse, error)
	Update(ctx context.Context, actor *policy.Actor, username string, input dietDto.UpdateDietTargetInput) (*entity.DietTarget, error)
	Delete(ctx context.Context, actor *policy.Actor, username string) error
}

type dietTargetService struct {
	repo   repository.DietTargetRepository
	users  userRepo.UserRepository
	engine *policy.Engine
}

func NewDietTargetService(repo repository.DietTargetRepository, users userRepo.UserRepository, engine *policy.Engine) DietTargetService {
	return &dietTargetService{repo: repo, users: users, engine: engine}
}

func (s *dietTargetService) Create(ctx context.Context, actor *policy.Actor, username string, input dietDto.CreateDietTargetInput) (*entity.DietTarget, error) {
	owner, err := s.resolveOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	decision, err := s.engine.Authorize(ctx, actor, policy.OwnerContextOf(owner), policy.ActionWrite)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, apperror.ErrForbidden
	}

	if err := validateTarget(input.WeightKg, input.ProteinPerKg, input.CarbohydratePerKg, input.FatPerKg); err != nil {
		return nil, err
	}

	target := &entity.DietTarget{
		UserID:            owner.ID,
		WeightKg:          input.WeightKg,
		ProteinPerKg:      input.ProteinPerKg,
		CarbohydratePerKg: input.CarbohydratePerKg,
		FatPerKg:          input.FatPerKg,
	}

	inserted, err := s.repo.CreateIfAbsent(ctx, target)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("diet target already exists: %w", apperror.ErrAlreadyExists)
	}

	return target, nil
}

// GetByUsername inherits visibility from the owner's profile privacy; the
// target itself has no setting of its own. A denied read answers like a
// missing record.
func (s *dietTargetService) GetByUsername(ctx context.Context, actor *policy.Actor, username string) (*dietDto.DietTargetResponse, error) {
	owner, err := s.resolveOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	decision, err := s.engine.Authorize(ctx, actor, policy.OwnerContextOf(owner), policy.ActionRead)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, apperror.ErrNotFound
	}

	target, err := s.repo.FindByUserID(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return &dietDto.DietTargetResponse{
		Username:          owner.Username,
		Target:            target,
		ProteinGrams:      target.ProteinGrams(),
		CarbohydrateGrams: target.CarbohydrateGrams(),
		FatGrams:          target.FatGrams(),
		EnergyKcal:        target.EnergyKcal(),
	}, nil
}

func (s *dietTargetService) Update(ctx context.Context, actor *policy.Actor, username string, input dietDto.UpdateDietTargetInput) (*entity.DietTarget, error) {
	owner, err := s.resolveOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	decision, err := s.engine.Authorize(ctx, actor, policy.OwnerContextOf(owner), policy.ActionWrite)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, apperror.ErrForbidden
	}

	target, err := s.repo.FindByUserID(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.WeightKg != nil {
		target.WeightKg = *input.WeightKg
	}
	if input.ProteinPerKg != nil {
		target.ProteinPerKg = *input.ProteinPerKg
	}
	if input.CarbohydratePerKg != nil {
		target.CarbohydratePerKg = *input.CarbohydratePerKg
	}
	if input.FatPerKg != nil {
		target.FatPerKg = *input.FatPerKg
	}

	if err := validateTarget(target.WeightKg, target.ProteinPerKg, target.CarbohydratePerKg, target.FatPerKg); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, target); err != nil {
		return nil, err
	}

	return target, nil
}

func (s *dietTargetService) Delete(ctx context.Context, actor *policy.Actor, username string) error {
	owner, err := s.resolveOwner(ctx, username)
	if err != nil {
		return err
	}

	decision, err := s.engine.Authorize(ctx, actor, policy.OwnerContextOf(owner), policy.ActionDelete)
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return apperror.ErrForbidden
	}

	return s.repo.Delete(ctx, owner.ID)
}

func (s *dietTargetService) resolveOwner(ctx context.Context, username string) (*entity.User, error) {
	owner, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return owner, nil
}

func validateTarget(weight, protein, carbohydrate, fat float64) error {
	if weight < minWeightKg || weight > maxWeightKg {
		return apperror.NewValidation("weight_kg", fmt.Sprintf("must be between %d and %d", minWeightKg, maxWeightKg))
	}
	if protein < minPerKg || protein > maxPerKg {
		return apperror.NewValidation("protein_per_kg", fmt.Sprintf("must be between %d and %d", minPerKg, maxPerKg))
	}
	if carbohydrate < minPerKg || carbohydrate > maxPerKg {
		return apperror.NewValidation("carbohydrate_per_kg", fmt.Sprintf("must be between %d and %d", minPerKg, maxPerKg))
	}
	if fat < minPerKg || fat > maxPerKg {
		return apperror.NewValidation("fat_per_kg", fmt.Sprintf("must be between %d and %d", minPerKg, maxPerKg))
	}
	return nil
}
