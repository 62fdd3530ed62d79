package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"anoa.com/fittrack/internal/entity"
	searchService "anoa.com/fittrack/internal/modules/search/service"
	"anoa.com/fittrack/internal/modules/user/dto"
	"anoa.com/fittrack/internal/modules/user/repository"
	"anoa.com/fittrack/internal/session"
	"anoa.com/fittrack/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Signup(ctx context.Context, input dto.SignupInput) (*entity.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	repo     repository.UserRepository
	sessions session.Store
	search   searchService.UserSearchService
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, sessions session.Store, search searchService.UserSearchService) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	return &authService{
		repo:     repo,
		sessions: sessions,
		search:   search,
		secret:   secret,
		tokenTTL: ttl,
	}
}

func (s *authService) Signup(ctx context.Context, input dto.SignupInput) (*entity.User, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperror.ErrAlreadyExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	username := strings.ReplaceAll(input.Username, " ", "_")
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", apperror.ErrAlreadyExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, entity.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("default role not found: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleID := role.ID
	user := &entity.User{
		Username:     username,
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hashedPassword),
		Active:       true,
		RoleID:       &roleID,
		Role:         *role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.search != nil {
		if err := s.search.IndexUser(user); err != nil {
			log.Printf("Failed to index user %s: %v", user.Username, err)
		}
	}

	user.PasswordHash = ""
	return user, nil
}

// Login resolves the actor for a credential pair. A missing account, a wrong
// password and a deactivated account all fail the same way so that the
// response reveals nothing about account existence or activation state.
func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Create(ctx, &session.Session{
		ID:     sessionID,
		UserID: user.ID,
		Role:   user.Role.Name,
	}, s.tokenTTL); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, expiresAt, err := s.generateToken(user, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.repo.Update(ctx, user); err != nil {
		log.Printf("Failed to update last login for %s: %v", user.Username, err)
	}

	user.PasswordHash = ""
	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *authService) generateToken(user *entity.User, sessionID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}
