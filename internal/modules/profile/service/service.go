package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"anoa.com/fittrack/internal/entity"
	profileDto "anoa.com/fittrack/internal/modules/profile/dto"
	"anoa.com/fittrack/internal/modules/profile/repository"
	userRepo "anoa.com/fittrack/internal/modules/user/repository"
	"anoa.com/fittrack/internal/policy"
	"anoa.com/fittrack/pkg/apperror"
	"anoa.com/fittrack/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minHeightCm = 50
	maxHeightCm = 250
	minWeightKg = 20
	maxWeightKg = 500
	maxAgeYears = 120
)

type ProfileService interface {
	Create(ctx context.Context, actor *policy.Actor, targetUserID uuid.UUID, input profileDto.CreateProfileInput) (*entity.Profile, error)
	GetByUsername(ctx context.Context, actor *policy.Actor, username string) (*profileDto.ProfileResponse, error)
	Update(ctx context.Context, actor *policy.Actor, username string, input profileDto.UpdateProfileInput) (*entity.Profile, error)
	Delete(ctx context.Context, actor *policy.Actor, username string) error
	UploadImage(ctx context.Context, actor *policy.Actor, username string, r io.Reader, fileName string) (string, error)
}

type profileService struct {
	repo         repository.ProfileRepository
	users        userRepo.UserRepository
	engine       *policy.Engine
	imageStorage storage.ImageStorage
	now          func() time.Time
}

func NewProfileService(repo repository.ProfileRepository, users userRepo.UserRepository, engine *policy.Engine, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		repo:         repo,
		users:        users,
		engine:       engine,
		imageStorage: imageStorage,
		now:          time.Now,
	}
}

// Create makes the target user's profile. Authorization is checked before
// validation and validation before the insert; the conditional insert carries
// the one-profile-per-user rule.
func (s *profileService) Create(ctx context.Context, actor *policy.Actor, targetUserID uuid.UUID, input profileDto.CreateProfileInput) (*entity.Profile, error) {
	privacy := entity.PrivacyLevel(input.PrivacyLevel)
	if !privacy.Valid() {
		return nil, apperror.NewValidation("privacy_level", "must be 1 (public) or 2 (private)")
	}

	decision, err := s.engine.Authorize(ctx, actor, policy.OwnerContext{OwnerID: targetUserID, Privacy: privacy}, policy.ActionWrite)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, apperror.ErrForbidden
	}

	dob, err := s.validateDateOfBirth(input.DateOfBirth)
	if err != nil {
		return nil, err
	}
	if err := validateHeight(input.HeightCm); err != nil {
		return nil, err
	}
	if err := validateWeight(input.WeightKg); err != nil {
		return nil, err
	}

	profile := &entity.Profile{
		UserID:        targetUserID,
		Sex:           entity.Sex(input.Sex),
		ActivityLevel: entity.ActivityLevel(input.ActivityLevel),
		FitnessGoal:   entity.FitnessGoal(input.FitnessGoal),
		HeightCm:      input.HeightCm,
		WeightKg:      input.WeightKg,
		DateOfBirth:   dob,
		PrivacyLevel:  privacy,
	}

	inserted, err := s.repo.CreateIfAbsent(ctx, profile)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("profile already exists: %w", apperror.ErrAlreadyExists)
	}

	return profile, nil
}

// GetByUsername returns the named user's profile if the policy allows the
// read. A denied read answers exactly like a missing user.
func (s *profileService) GetByUsername(ctx context.Context, actor *policy.Actor, username string) (*profileDto.ProfileResponse, error) {
	owner, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	decision, err := s.engine.Authorize(ctx, actor, policy.OwnerContextOf(owner), policy.ActionRead)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, apperror.ErrNotFound
	}

	if owner.Profile == nil {
		return nil, apperror.ErrNotFound
	}

	return &profileDto.ProfileResponse{
		Username: owner.Username,
		Profile:  owner.Profile,
		Energy:   energySummary(owner.Profile, s.now()),
	}, nil
}

func (s *profileService) Update(ctx context.Context, actor *policy.Actor, username string, input profileDto.UpdateProfileInput) (*entity.Profile, error) {
	profile, err := s.resolveForWrite(ctx, actor, username)
	if err != nil {
		return nil, err
	}

	if input.Sex != nil {
		profile.Sex = entity.Sex(*input.Sex)
	}
	if input.ActivityLevel != nil {
		profile.ActivityLevel = entity.ActivityLevel(*input.ActivityLevel)
	}
	if input.FitnessGoal != nil {
		profile.FitnessGoal = entity.FitnessGoal(*input.FitnessGoal)
	}
	if input.HeightCm != nil {
		if err := validateHeight(*input.HeightCm); err != nil {
			return nil, err
		}
		profile.HeightCm = *input.HeightCm
	}
	if input.WeightKg != nil {
		if err := validateWeight(*input.WeightKg); err != nil {
			return nil, err
		}
		profile.WeightKg = *input.WeightKg
	}
	if input.DateOfBirth != nil {
		dob, err := s.validateDateOfBirth(*input.DateOfBirth)
		if err != nil {
			return nil, err
		}
		profile.DateOfBirth = dob
	}
	if input.PrivacyLevel != nil {
		privacy := entity.PrivacyLevel(*input.PrivacyLevel)
		if !privacy.Valid() {
			return nil, apperror.NewValidation("privacy_level", "must be 1 (public) or 2 (private)")
		}
		profile.PrivacyLevel = privacy
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *profileService) Delete(ctx context.Context, actor *policy.Actor, username string) error {
	profile, err := s.resolveForWrite(ctx, actor, username)
	if err != nil {
		return err
	}

	if profile.ImageURL != nil && s.imageStorage != nil {
		if err := s.imageStorage.DeleteImage(ctx, *profile.ImageURL); err != nil {
			log.Printf("Failed to delete profile image for %s: %v", username, err)
		}
	}

	return s.repo.Delete(ctx, profile.UserID)
}

func (s *profileService) UploadImage(ctx context.Context, actor *policy.Actor, username string, r io.Reader, fileName string) (string, error) {
	profile, err := s.resolveForWrite(ctx, actor, username)
	if err != nil {
		return "", err
	}

	if s.imageStorage == nil {
		return "", apperror.ErrInternal
	}

	url, err := s.imageStorage.UploadImage(ctx, r, "profiles", fileName)
	if err != nil {
		return "", err
	}

	if profile.ImageURL != nil {
		if err := s.imageStorage.DeleteImage(ctx, *profile.ImageURL); err != nil {
			log.Printf("Failed to delete previous profile image for %s: %v", username, err)
		}
	}

	profile.ImageURL = &url
	if err := s.repo.Update(ctx, profile); err != nil {
		return "", err
	}

	return url, nil
}

// resolveForWrite loads owner and profile and authorizes a mutation in one
// step shared by update, delete and image upload.
func (s *profileService) resolveForWrite(ctx context.Context, actor *policy.Actor, username string) (*entity.Profile, error) {
	owner, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	decision, err := s.engine.Authorize(ctx, actor, policy.OwnerContextOf(owner), policy.ActionWrite)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, apperror.ErrForbidden
	}

	if owner.Profile == nil {
		return nil, apperror.ErrNotFound
	}

	return owner.Profile, nil
}

func (s *profileService) validateDateOfBirth(value string) (time.Time, error) {
	dob, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperror.NewValidation("date_of_birth", "must be a valid date (YYYY-MM-DD)")
	}

	now := s.now()
	if dob.After(now) {
		return time.Time{}, apperror.NewValidation("date_of_birth", "must be in the past")
	}
	if dob.Before(now.AddDate(-maxAgeYears, 0, 0)) {
		return time.Time{}, apperror.NewValidation("date_of_birth", "is too far in the past")
	}

	return dob, nil
}

func validateHeight(height float64) error {
	if height < minHeightCm || height > maxHeightCm {
		return apperror.NewValidation("height_cm", fmt.Sprintf("must be between %d and %d", minHeightCm, maxHeightCm))
	}
	return nil
}

func validateWeight(weight float64) error {
	if weight < minWeightKg || weight > maxWeightKg {
		return apperror.NewValidation("weight_kg", fmt.Sprintf("must be between %d and %d", minWeightKg, maxWeightKg))
	}
	return nil
}
