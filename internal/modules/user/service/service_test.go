package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"anoa.com/fittrack/internal/entity"
	"anoa.com/fittrack/internal/modules/user/dto"
	"anoa.com/fittrack/internal/session"
	"anoa.com/fittrack/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[string]*entity.User // keyed by lowercase email
	roles map[string]*entity.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: map[string]*entity.User{},
		roles: map[string]*entity.Role{
			entity.RoleUser:  {ID: 1, Name: entity.RoleUser},
			entity.RoleAdmin: {ID: 2, Name: entity.RoleAdmin},
		},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[strings.ToLower(user.Email)] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := f.users[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindRoleByName(_ context.Context, name string) (*entity.Role, error) {
	if r, ok := f.roles[name]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[strings.ToLower(user.Email)] = user
	return nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	for _, u := range f.users {
		if u.ID.String() == id {
			u.Active = active
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		ID:           uuid.New(),
		Username:     strings.Split(email, "@")[0],
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Active:       active,
		Role:         entity.Role{ID: 1, Name: entity.RoleUser},
	}
	repo.users[strings.ToLower(email)] = user
	return user
}

func newTestAuthService(repo *fakeUserRepo) (AuthService, session.Store) {
	sessions := session.NewMemoryStore()
	return NewAuthService(repo, sessions, nil), sessions
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "alice@example.com", "correct-horse", true)
	svc, sessions := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), dtoLogin("alice@example.com", "correct-horse"))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Empty(t, resp.User.PasswordHash)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Minute)

	// the token's jti must resolve to a live session bound to the account
	claims := parseClaims(t, resp.Token)
	sess, err := sessions.Get(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, entity.RoleUser, sess.Role)
}

func TestLoginCaseInsensitiveEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice@example.com", "correct-horse", true)
	svc, _ := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), dtoLogin("ALICE@Example.COM", "correct-horse"))
	require.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "active@example.com", "right-password", true)
	seedUser(t, repo, "inactive@example.com", "right-password", false)
	svc, _ := newTestAuthService(repo)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown account", "nobody@example.com", "whatever"},
		{"wrong password", "active@example.com", "wrong-password"},
		{"inactive account with correct password", "inactive@example.com", "right-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), dtoLogin(tt.email, tt.password))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
			assert.Equal(t, apperror.ErrInvalidCredentials.Error(), err.Error())
		})
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice@example.com", "correct-horse", true)
	svc, sessions := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), dtoLogin("alice@example.com", "correct-horse"))
	require.NoError(t, err)

	claims := parseClaims(t, resp.Token)
	require.NoError(t, svc.Logout(context.Background(), claims.ID))

	_, err = sessions.Get(context.Background(), claims.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice@example.com", "whatever", true)
	svc, _ := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), dtoSignup("alice2", "Alice@Example.com"))
	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

func TestSignupAssignsDefaultRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestAuthService(repo)

	user, err := svc.Signup(context.Background(), dtoSignup("bob", "bob@example.com"))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role.Name)
	assert.True(t, user.Active)
	assert.Empty(t, user.PasswordHash)
}

func dtoLogin(email, password string) dto.LoginInput {
	return dto.LoginInput{Email: email, Password: password}
}

func dtoSignup(username, email string) dto.SignupInput {
	return dto.SignupInput{
		Username: username,
		Name:     username,
		Email:    email,
		Password: "password-123",
	}
}

func parseClaims(t *testing.T, token string) *jwt.RegisteredClaims {
	t.Helper()
	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	return claims
}
