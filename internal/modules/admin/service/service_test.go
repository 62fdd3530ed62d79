package service

import (
	"context"
	"testing"

	"anoa.com/fittrack/internal/entity"
	searchService "anoa.com/fittrack/internal/modules/search/service"
	"anoa.com/fittrack/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byUsername map[string]*entity.User
	roles      map[string]*entity.Role
	active     map[string]bool
	updated    []*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*entity.User{},
		roles: map[string]*entity.Role{
			entity.RoleAdmin: {ID: 1, Name: entity.RoleAdmin},
			entity.RoleUser:  {ID: 2, Name: entity.RoleUser},
		},
		active: map[string]bool{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.byUsername {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
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
	f.updated = append(f.updated, user)
	return nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	f.active[id] = active
	return nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byUsername {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.byUsername)), nil
}

type blockCall struct {
	blocker uuid.UUID
	target  string
}

type fakeBlockService struct {
	blocked   []blockCall
	unblocked []blockCall
}

func (f *fakeBlockService) Block(_ context.Context, actorID uuid.UUID, username string) (*entity.UserBlock, error) {
	f.blocked = append(f.blocked, blockCall{blocker: actorID, target: username})
	return &entity.UserBlock{BlockerID: actorID}, nil
}

func (f *fakeBlockService) Unblock(_ context.Context, actorID uuid.UUID, username string) error {
	f.unblocked = append(f.unblocked, blockCall{blocker: actorID, target: username})
	return nil
}

func (f *fakeBlockService) Blocked(_ context.Context, _ uuid.UUID) ([]*entity.UserBlock, error) {
	return nil, nil
}

func (f *fakeBlockService) IsBlocked(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeBlockService) ListAll(_ context.Context) ([]*entity.UserBlock, error) {
	return nil, nil
}

type fakeSearchIndex struct {
	indexed []string
	removed []string
}

func (f *fakeSearchIndex) IndexUser(user *entity.User) error {
	f.indexed = append(f.indexed, user.ID.String())
	return nil
}

func (f *fakeSearchIndex) RemoveUser(id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeSearchIndex) Search(_ string, _ int64) ([]searchService.UserDocument, error) {
	return nil, nil
}

type env struct {
	svc    AdminService
	users  *fakeUserRepo
	blocks *fakeBlockService
	search *fakeSearchIndex
}

func newEnv() *env {
	users := newFakeUserRepo()
	blocks := &fakeBlockService{}
	search := &fakeSearchIndex{}
	return &env{
		svc:    NewAdminService(users, blocks, search),
		users:  users,
		blocks: blocks,
		search: search,
	}
}

func (e *env) addUser(username, roleName string) *entity.User {
	u := &entity.User{
		ID:       uuid.New(),
		Username: username,
		Role:     entity.Role{Name: roleName},
		Active:   true,
	}
	e.users.byUsername[username] = u
	return u
}

func TestUpdateRole(t *testing.T) {
	e := newEnv()
	e.addUser("alice", entity.RoleUser)

	require.NoError(t, e.svc.UpdateRole(context.Background(), "alice", entity.RoleAdmin))

	require.Len(t, e.users.updated, 1)
	assert.Equal(t, entity.RoleAdmin, e.users.updated[0].Role.Name)
}

func TestUpdateRoleUnknownRole(t *testing.T) {
	e := newEnv()
	e.addUser("alice", entity.RoleUser)

	err := e.svc.UpdateRole(context.Background(), "alice", "superuser")
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.Empty(t, e.users.updated)
}

func TestSetActiveUnknownUser(t *testing.T) {
	e := newEnv()

	err := e.svc.SetActive(context.Background(), "nobody", false)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeactivationRemovesUserFromSearchIndex(t *testing.T) {
	e := newEnv()
	u := e.addUser("alice", entity.RoleUser)

	require.NoError(t, e.svc.SetActive(context.Background(), "alice", false))

	assert.Equal(t, false, e.users.active[u.ID.String()])
	assert.Equal(t, []string{u.ID.String()}, e.search.removed)
	assert.Empty(t, e.search.indexed)
}

func TestReactivationReindexesUser(t *testing.T) {
	e := newEnv()
	u := e.addUser("alice", entity.RoleUser)

	require.NoError(t, e.svc.SetActive(context.Background(), "alice", true))

	assert.Equal(t, true, e.users.active[u.ID.String()])
	assert.Equal(t, []string{u.ID.String()}, e.search.indexed)
	assert.Empty(t, e.search.removed)
}

func TestCannotDeactivateAdmin(t *testing.T) {
	e := newEnv()
	u := e.addUser("root", entity.RoleAdmin)

	err := e.svc.SetActive(context.Background(), "root", false)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	_, touched := e.users.active[u.ID.String()]
	assert.False(t, touched)
}

func TestBlockOnBehalf(t *testing.T) {
	e := newEnv()
	u := e.addUser("alice", entity.RoleUser)
	e.addUser("bob", entity.RoleUser)

	_, err := e.svc.BlockOnBehalf(context.Background(), "alice", "bob")
	require.NoError(t, err)

	require.Len(t, e.blocks.blocked, 1)
	assert.Equal(t, u.ID, e.blocks.blocked[0].blocker)
	assert.Equal(t, "bob", e.blocks.blocked[0].target)
}

func TestUnblockOnBehalf(t *testing.T) {
	e := newEnv()
	u := e.addUser("alice", entity.RoleUser)

	require.NoError(t, e.svc.UnblockOnBehalf(context.Background(), "alice", "bob"))

	require.Len(t, e.blocks.unblocked, 1)
	assert.Equal(t, u.ID, e.blocks.unblocked[0].blocker)
}

func TestBlockOnBehalfUnknownUser(t *testing.T) {
	e := newEnv()

	_, err := e.svc.BlockOnBehalf(context.Background(), "ghost", "bob")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, e.blocks.blocked)
}
