package policy

import (
	"context"
	"errors"
	"testing"

	"anoa.com/fittrack/internal/entity"
	"anoa.com/fittrack/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFollows struct {
	approved map[[2]uuid.UUID]bool
	err      error
}

func (f *fakeFollows) IsApproved(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.approved[[2]uuid.UUID{followerID, followeeID}], nil
}

type fakeBlocks struct {
	blocked map[[2]uuid.UUID]bool
}

func (f *fakeBlocks) IsBlocked(_ context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	return f.blocked[[2]uuid.UUID{blockerID, blockedID}], nil
}

func newTestEngine() (*Engine, *fakeFollows, *fakeBlocks) {
	follows := &fakeFollows{approved: map[[2]uuid.UUID]bool{}}
	blocks := &fakeBlocks{blocked: map[[2]uuid.UUID]bool{}}
	return NewEngine(follows, blocks), follows, blocks
}

func TestAuthorizeDecisionTable(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	follower := uuid.New()
	admin := uuid.New()

	engine, follows, _ := newTestEngine()
	follows.approved[[2]uuid.UUID{follower, owner}] = true

	tests := []struct {
		name    string
		actor   *Actor
		privacy entity.PrivacyLevel
		action  Action
		want    Decision
	}{
		{"anonymous read public", nil, entity.PrivacyPublic, ActionRead, Deny},
		{"owner reads own private", &Actor{AccountID: owner, Role: entity.RoleUser}, entity.PrivacyPrivate, ActionRead, Allow},
		{"owner writes own", &Actor{AccountID: owner, Role: entity.RoleUser}, entity.PrivacyPrivate, ActionWrite, Allow},
		{"owner deletes own", &Actor{AccountID: owner, Role: entity.RoleUser}, entity.PrivacyPublic, ActionDelete, Allow},
		{"admin reads private", &Actor{AccountID: admin, Role: entity.RoleAdmin}, entity.PrivacyPrivate, ActionRead, Allow},
		{"admin writes", &Actor{AccountID: admin, Role: entity.RoleAdmin}, entity.PrivacyPrivate, ActionWrite, Allow},
		{"stranger reads public", &Actor{AccountID: stranger, Role: entity.RoleUser}, entity.PrivacyPublic, ActionRead, Allow},
		{"stranger reads private", &Actor{AccountID: stranger, Role: entity.RoleUser}, entity.PrivacyPrivate, ActionRead, Deny},
		{"stranger writes public", &Actor{AccountID: stranger, Role: entity.RoleUser}, entity.PrivacyPublic, ActionWrite, Deny},
		{"stranger deletes public", &Actor{AccountID: stranger, Role: entity.RoleUser}, entity.PrivacyPublic, ActionDelete, Deny},
		{"approved follower reads private", &Actor{AccountID: follower, Role: entity.RoleUser}, entity.PrivacyPrivate, ActionRead, Allow},
		{"approved follower writes", &Actor{AccountID: follower, Role: entity.RoleUser}, entity.PrivacyPrivate, ActionWrite, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Authorize(context.Background(), tt.actor, OwnerContext{OwnerID: owner, Privacy: tt.privacy}, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorizeBlockedActor(t *testing.T) {
	owner := uuid.New()
	blockedUser := uuid.New()

	engine, follows, blocks := newTestEngine()
	// blocked even though the edge would otherwise allow the read
	follows.approved[[2]uuid.UUID{blockedUser, owner}] = true
	blocks.blocked[[2]uuid.UUID{owner, blockedUser}] = true

	for _, privacy := range []entity.PrivacyLevel{entity.PrivacyPublic, entity.PrivacyPrivate} {
		got, err := engine.Authorize(context.Background(), &Actor{AccountID: blockedUser, Role: entity.RoleUser},
			OwnerContext{OwnerID: owner, Privacy: privacy}, ActionRead)
		require.NoError(t, err)
		assert.Equal(t, Deny, got, "privacy %v", privacy)
	}

	// blocking does not affect the owner themselves
	got, err := engine.Authorize(context.Background(), &Actor{AccountID: owner, Role: entity.RoleUser},
		OwnerContext{OwnerID: owner, Privacy: entity.PrivacyPrivate}, ActionRead)
	require.NoError(t, err)
	assert.Equal(t, Allow, got)
}

func TestAuthorizeInvalidInput(t *testing.T) {
	engine, _, _ := newTestEngine()
	actor := &Actor{AccountID: uuid.New(), Role: entity.RoleUser}

	_, err := engine.Authorize(context.Background(), actor, OwnerContext{}, ActionRead)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = engine.Authorize(context.Background(), actor, OwnerContext{OwnerID: uuid.New(), Privacy: entity.PrivacyPublic}, Action(99))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestAuthorizeFollowLookupError(t *testing.T) {
	owner := uuid.New()
	engine, follows, _ := newTestEngine()
	follows.err = errors.New("connection refused")

	got, err := engine.Authorize(context.Background(), &Actor{AccountID: uuid.New(), Role: entity.RoleUser},
		OwnerContext{OwnerID: owner, Privacy: entity.PrivacyPrivate}, ActionRead)
	require.Error(t, err)
	assert.Equal(t, Deny, got)
}
