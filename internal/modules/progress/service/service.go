package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/fittrack/internal/entity"
	progressDto "anoa.com/fittrack/internal/modules/progress/dto"
	"anoa.com/fittrack/internal/modules/progress/repository"
	userRepo "anoa.com/fittrack/internal/modules/user/repository"
	"anoa.com/fittrack/internal/policy"
	"anoa.com/fittrack/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minLogWeightKg = 20
	maxLogWeightKg = 500
	minEnergyKcal  = 0
	maxEnergyKcal  = 10000
	maxNotesLen    = 10000

	// A check-in may be backdated up to a year and predated a few days,
	// anything beyond that is a client bug or a typo'd year.
	maxBackdateDays = 365
	maxPredateDays  = 10
)

type ProgressService interface {
	Create(ctx context.Context, actor *policy.Actor, username string, input progressDto.CreateProgressInput) (*entity.ProgressLog, error)
	ListByUsername(ctx context.Context, actor *policy.Actor, username string, page, perPage int) (*progressDto.ProgressListResponse, error)
	Get(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*entity.ProgressLog, error)
	Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, input progressDto.UpdateProgressInput) (*entity.ProgressLog, error)
	Delete(ctx context.Context, actor *policy.Actor, id uuid.UUID) error
}

type progressService struct {
	repo   repository.ProgressRepository
	users  userRepo.UserRepository
	engine *policy.Engine
	now    func() time.Time
}

func NewProgressService(repo repository.ProgressRepository, users userRepo.UserRepository, engine *policy.Engine) ProgressService {
	return &progressService{repo: repo, users: users, engine: engine, now: time.Now}
}

func (s *progressService) Create(ctx context.Context, actor *policy.Actor, username string, input progressDto.CreateProgressInput) (*entity.ProgressLog, error) {
	owner, err := s.resolveByUsername(ctx, username)
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

	loggedAt, ok, err := progressDto.ParseLoggedAt(input.LoggedAt)
	if err != nil {
		return nil, apperror.NewValidation("logged_at", "must be a YYYY-MM-DD date")
	}
	if !ok {
		loggedAt = truncateToDate(s.now())
	}

	log := &entity.ProgressLog{
		UserID:          owner.ID,
		WeightKg:        input.WeightKg,
		EnergyBurntKcal: input.EnergyBurntKcal,
		Notes:           input.Notes,
		LoggedAt:        loggedAt,
	}

	if err := s.validateLog(log); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *progressService) ListByUsername(ctx context.Context, actor *policy.Actor, username string, page, perPage int) (*progressDto.ProgressListResponse, error) {
	owner, err := s.resolveByUsername(ctx, username)
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

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	logs, err := s.repo.ListByUser(ctx, owner.ID, (page-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountByUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	return &progressDto.ProgressListResponse{
		Username: owner.Username,
		Logs:     logs,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}, nil
}

func (s *progressService) Get(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*entity.ProgressLog, error) {
	log, owner, err := s.resolveLog(ctx, id)
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
	return log, nil
}

func (s *progressService) Update(ctx context.Context, actor *policy.Actor, id uuid.UUID, input progressDto.UpdateProgressInput) (*entity.ProgressLog, error) {
	log, owner, err := s.resolveLog(ctx, id)
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

	if input.WeightKg != nil {
		log.WeightKg = input.WeightKg
	}
	if input.EnergyBurntKcal != nil {
		log.EnergyBurntKcal = input.EnergyBurntKcal
	}
	if input.Notes != nil {
		log.Notes = input.Notes
	}
	if loggedAt, ok, err := progressDto.ParseLoggedAt(input.LoggedAt); err != nil {
		return nil, apperror.NewValidation("logged_at", "must be a YYYY-MM-DD date")
	} else if ok {
		log.LoggedAt = loggedAt
	}

	if err := s.validateLog(log); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *progressService) Delete(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	_, owner, err := s.resolveLog(ctx, id)
	if err != nil {
		return err
	}

	decision, err := s.engine.Authorize(ctx, actor, policy.OwnerContextOf(owner), policy.ActionDelete)
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		// Hide the log's existence from actors who may not read it.
		readable, rErr := s.engine.Authorize(ctx, actor, policy.OwnerContextOf(owner), policy.ActionRead)
		if rErr == nil && !readable.Allowed() {
			return apperror.ErrNotFound
		}
		return apperror.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

func (s *progressService) resolveByUsername(ctx context.Context, username string) (*entity.User, error) {
	owner, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return owner, nil
}

func (s *progressService) resolveLog(ctx context.Context, id uuid.UUID) (*entity.ProgressLog, *entity.User, error) {
	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.ErrNotFound
		}
		return nil, nil, err
	}

	owner, err := s.users.FindByID(ctx, log.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.ErrNotFound
		}
		return nil, nil, err
	}
	return log, owner, nil
}

func (s *progressService) validateLog(log *entity.ProgressLog) error {
	if log.WeightKg != nil && (*log.WeightKg < minLogWeightKg || *log.WeightKg > maxLogWeightKg) {
		return apperror.NewValidation("weight_kg", fmt.Sprintf("must be between %d and %d", minLogWeightKg, maxLogWeightKg))
	}
	if log.EnergyBurntKcal != nil && (*log.EnergyBurntKcal < minEnergyKcal || *log.EnergyBurntKcal > maxEnergyKcal) {
		return apperror.NewValidation("energy_burnt_kcal", fmt.Sprintf("must be between %d and %d", minEnergyKcal, maxEnergyKcal))
	}
	if log.Notes != nil && len(*log.Notes) > maxNotesLen {
		return apperror.NewValidation("notes", fmt.Sprintf("must be at most %d characters", maxNotesLen))
	}

	today := truncateToDate(s.now())
	earliest := today.AddDate(0, 0, -maxBackdateDays)
	latest := today.AddDate(0, 0, maxPredateDays)
	if log.LoggedAt.Before(earliest) || log.LoggedAt.After(latest) {
		return apperror.NewValidation("logged_at", "date is out of the accepted range")
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
