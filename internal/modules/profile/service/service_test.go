package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"anoa.com/fittrack/internal/entity"
	profileDto "anoa.com/fittrack/internal/modules/profile/dto"
	"anoa.com/fittrack/internal/policy"
	"anoa.com/fittrack/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProfileRepo struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUser: map[uuid.UUID]*entity.Profile{}}
}

func (f *fakeProfileRepo) CreateIfAbsent(_ context.Context, profile *entity.Profile) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byUser[profile.UserID]; ok {
		return false, nil
	}
	copied := *profile
	f.byUser[profile.UserID] = &copied
	return true, nil
}

func (f *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	if p, ok := f.byUser[userID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *entity.Profile) error {
	copied := *profile
	f.byUser[profile.UserID] = &copied
	return nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, userID uuid.UUID) error {
	delete(f.byUser, userID)
	return nil
}

type fakeUsers struct {
	byUsername map[string]*entity.User
	profiles   *fakeProfileRepo
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Mirror the preload the real repository does.
	copied := *u
	if p, ok := f.profiles.byUser[u.ID]; ok {
		pc := *p
		copied.Profile = &pc
	} else {
		copied.Profile = nil
	}
	return &copied, nil
}

func (f *fakeUsers) FindByID(_ context.Context, _ string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUsers) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUsers) FindRoleByName(_ context.Context, _ string) (*entity.Role, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUsers) Create(_ context.Context, _ *entity.User) error      { return nil }
func (f *fakeUsers) Update(_ context.Context, _ *entity.User) error      { return nil }
func (f *fakeUsers) SetActive(_ context.Context, _ string, _ bool) error { return nil }
func (f *fakeUsers) FindAll(_ context.Context) ([]*entity.User, error)   { return nil, nil }
func (f *fakeUsers) Count(_ context.Context) (int64, error)              { return 0, nil }

type fakeFollows struct {
	approved map[[2]uuid.UUID]bool
}

func (f *fakeFollows) IsApproved(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return f.approved[[2]uuid.UUID{followerID, followeeID}], nil
}

type fakeBlocks struct {
	blocked map[[2]uuid.UUID]bool
}

func (f *fakeBlocks) IsBlocked(_ context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	return f.blocked[[2]uuid.UUID{blockerID, blockedID}], nil
}

type fakeImageStorage struct {
	uploads int
	deleted []string
}

func (f *fakeImageStorage) UploadImage(_ context.Context, _ io.Reader, folder, fileName string) (string, error) {
	f.uploads++
	return "https://img.example/" + folder + "/" + fileName, nil
}

func (f *fakeImageStorage) DeleteImage(_ context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

type env struct {
	svc     *profileService
	repo    *fakeProfileRepo
	users   *fakeUsers
	follows *fakeFollows
	blocks  *fakeBlocks
	images  *fakeImageStorage
}

func newEnv() *env {
	repo := newFakeProfileRepo()
	users := &fakeUsers{byUsername: map[string]*entity.User{}, profiles: repo}
	follows := &fakeFollows{approved: map[[2]uuid.UUID]bool{}}
	blocks := &fakeBlocks{blocked: map[[2]uuid.UUID]bool{}}
	images := &fakeImageStorage{}
	svc := NewProfileService(repo, users, policy.NewEngine(follows, blocks), images).(*profileService)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return &env{svc: svc, repo: repo, users: users, follows: follows, blocks: blocks, images: images}
}

func (e *env) addUser(username string) *entity.User {
	u := &entity.User{
		ID:       uuid.New(),
		Username: username,
		Role:     entity.Role{Name: entity.RoleUser},
	}
	e.users.byUsername[username] = u
	return u
}

func actorFor(u *entity.User) *policy.Actor {
	return &policy.Actor{AccountID: u.ID, Role: u.Role.Name}
}

func validInput(privacy entity.PrivacyLevel) profileDto.CreateProfileInput {
	return profileDto.CreateProfileInput{
		Sex:           "M",
		ActivityLevel: "MA",
		FitnessGoal:   "LW",
		HeightCm:      180,
		WeightKg:      80,
		DateOfBirth:   "1990-06-15",
		PrivacyLevel:  int(privacy),
	}
}

func TestCreateAndEnergyMath(t *testing.T) {
	e := newEnv()
	u := e.addUser("alice")

	_, err := e.svc.Create(context.Background(), actorFor(u), u.ID, validInput(entity.PrivacyPublic))
	require.NoError(t, err)

	res, err := e.svc.GetByUsername(context.Background(), actorFor(u), "alice")
	require.NoError(t, err)
	require.NotNil(t, res.Energy)

	// Mifflin-St Jeor, male, 80 kg, 180 cm, age 35:
	// 10*80 + 6.25*180 - 5*35 + 5 = 1755
	assert.InDelta(t, 1755, res.Energy.BMRKcal, 0.01)
	assert.InDelta(t, 1755*1.55, res.Energy.TDEEKcal, 0.01)
	assert.InDelta(t, 1755*1.55-500, res.Energy.TargetKcal, 0.01)
}

func TestCreateIsSingleton(t *testing.T) {
	e := newEnv()
	u := e.addUser("alice")

	_, err := e.svc.Create(context.Background(), actorFor(u), u.ID, validInput(entity.PrivacyPublic))
	require.NoError(t, err)

	_, err = e.svc.Create(context.Background(), actorFor(u), u.ID, validInput(entity.PrivacyPublic))
	assert.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

func TestCreateConcurrentOnlyOneWins(t *testing.T) {
	e := newEnv()
	u := e.addUser("alice")

	const racers = 8
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.svc.Create(context.Background(), actorFor(u), u.ID, validInput(entity.PrivacyPublic))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperror.ErrAlreadyExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, racers-1, conflicts)
}

func TestCreateValidation(t *testing.T) {
	e := newEnv()
	u := e.addUser("alice")
	actor := actorFor(u)

	cases := []struct {
		name   string
		mutate func(*profileDto.CreateProfileInput)
		field  string
	}{
		{"invalid privacy", func(i *profileDto.CreateProfileInput) { i.PrivacyLevel = 9 }, "privacy_level"},
		{"height too low", func(i *profileDto.CreateProfileInput) { i.HeightCm = 10 }, "height_cm"},
		{"weight too high", func(i *profileDto.CreateProfileInput) { i.WeightKg = 900 }, "weight_kg"},
		{"future birth date", func(i *profileDto.CreateProfileInput) { i.DateOfBirth = "2030-01-01" }, "date_of_birth"},
		{"malformed birth date", func(i *profileDto.CreateProfileInput) { i.DateOfBirth = "15.06.1990" }, "date_of_birth"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput(entity.PrivacyPublic)
			tc.mutate(&input)
			_, err := e.svc.Create(context.Background(), actor, u.ID, input)
			var vErr *apperror.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestPrivacyTransitionChangesVisibility(t *testing.T) {
	e := newEnv()
	u := e.addUser("u")
	v := e.addUser("v")

	_, err := e.svc.Create(context.Background(), actorFor(u), u.ID, validInput(entity.PrivacyPublic))
	require.NoError(t, err)

	_, err = e.svc.GetByUsername(context.Background(), actorFor(v), "u")
	require.NoError(t, err)

	private := int(entity.PrivacyPrivate)
	_, err = e.svc.Update(context.Background(), actorFor(u), "u", profileDto.UpdateProfileInput{PrivacyLevel: &private})
	require.NoError(t, err)

	_, err = e.svc.GetByUsername(context.Background(), actorFor(v), "u")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	e.follows.approved[[2]uuid.UUID{v.ID, u.ID}] = true
	_, err = e.svc.GetByUsername(context.Background(), actorFor(v), "u")
	assert.NoError(t, err)
}

func TestBlockedActorSeesNothingEvenWhenPublic(t *testing.T) {
	e := newEnv()
	u := e.addUser("u")
	v := e.addUser("v")

	_, err := e.svc.Create(context.Background(), actorFor(u), u.ID, validInput(entity.PrivacyPublic))
	require.NoError(t, err)

	e.blocks.blocked[[2]uuid.UUID{u.ID, v.ID}] = true

	_, err = e.svc.GetByUsername(context.Background(), actorFor(v), "u")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUploadImageReplacesPrevious(t *testing.T) {
	e := newEnv()
	u := e.addUser("alice")

	_, err := e.svc.Create(context.Background(), actorFor(u), u.ID, validInput(entity.PrivacyPublic))
	require.NoError(t, err)

	first, err := e.svc.UploadImage(context.Background(), actorFor(u), "alice", strings.NewReader("img1"), "a.png")
	require.NoError(t, err)

	second, err := e.svc.UploadImage(context.Background(), actorFor(u), "alice", strings.NewReader("img2"), "b.png")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, []string{first}, e.images.deleted)

	stored := e.repo.byUser[u.ID]
	require.NotNil(t, stored.ImageURL)
	assert.Equal(t, second, *stored.ImageURL)
}

func TestDeleteRemovesImage(t *testing.T) {
	e := newEnv()
	u := e.addUser("alice")

	_, err := e.svc.Create(context.Background(), actorFor(u), u.ID, validInput(entity.PrivacyPublic))
	require.NoError(t, err)

	url, err := e.svc.UploadImage(context.Background(), actorFor(u), "alice", strings.NewReader("img"), "a.png")
	require.NoError(t, err)

	require.NoError(t, e.svc.Delete(context.Background(), actorFor(u), "alice"))
	assert.Contains(t, e.images.deleted, url)
	assert.Empty(t, e.repo.byUser)
}
