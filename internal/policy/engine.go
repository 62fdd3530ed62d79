// Package policy is the access decision core. Every read and write against a
// user-owned resource (profile, diet target, progress log) goes through
// Engine.Authorize before any storage access. Deny is a normal outcome, not
// an error; callers map it to a not-found or forbidden response without
// revealing which rule fired.
package policy

import (
	"context"

	"anoa.com/fittrack/internal/entity"
	"anoa.com/fittrack/pkg/apperror"
	"github.com/google/uuid"
)

type Action int

const (
	ActionRead Action = iota + 1
	ActionWrite
	ActionDelete
)

func (a Action) valid() bool {
	return a == ActionRead || a == ActionWrite || a == ActionDelete
}

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool { return d == Allow }

// Actor is the authenticated identity attempting an action. A nil *Actor
// means anonymous.
type Actor struct {
	AccountID uuid.UUID
	Role      string
}

func (a *Actor) isAdmin() bool {
	return a != nil && a.Role == entity.RoleAdmin
}

// OwnerContext is resolved once per request by the calling service: the
// account a resource belongs to and that account's privacy level. Diet
// targets and progress logs carry no privacy of their own, they inherit the
// owner's profile setting through this value.
type OwnerContext struct {
	OwnerID uuid.UUID
	Privacy entity.PrivacyLevel
}

// FollowChecker answers whether follower has an approved edge to followee.
// It is the engine's only external lookup on the private-read path.
type FollowChecker interface {
	IsApproved(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
}

// BlockChecker answers whether blocker has blocked blocked.
type BlockChecker interface {
	IsBlocked(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error)
}

type Engine struct {
	follows FollowChecker
	blocks  BlockChecker
}

func NewEngine(follows FollowChecker, blocks BlockChecker) *Engine {
	return &Engine{follows: follows, blocks: blocks}
}

// Authorize evaluates the decision table in order, first match wins:
//
//  1. anonymous actor: Deny (every evidenced flow requires login)
//  2. admin: Allow (data level only; the admin HTTP surface has its own
//     route guard, independent of this rule)
//  3. owner: Allow
//  4. owner blocked the actor: Deny
//  5. write or delete by anyone else: Deny
//  6. read of a public owner: Allow
//  7. read of a private owner: Allow only with an approved follow edge
//  8. Deny
//
// A zero owner id or an unknown action is a bug in the caller and returns
// apperror.ErrInvalidInput rather than a decision.
func (e *Engine) Authorize(ctx context.Context, actor *Actor, owner OwnerContext, action Action) (Decision, error) {
	if owner.OwnerID == uuid.Nil || !action.valid() {
		return Deny, apperror.ErrInvalidInput
	}

	if actor == nil || actor.AccountID == uuid.Nil {
		return Deny, nil
	}
	if actor.isAdmin() {
		return Allow, nil
	}
	if actor.AccountID == owner.OwnerID {
		return Allow, nil
	}

	if e.blocks != nil {
		blocked, err := e.blocks.IsBlocked(ctx, owner.OwnerID, actor.AccountID)
		if err != nil {
			return Deny, err
		}
		if blocked {
			return Deny, nil
		}
	}

	if action == ActionWrite || action == ActionDelete {
		return Deny, nil
	}

	switch owner.Privacy {
	case entity.PrivacyPublic:
		return Allow, nil
	case entity.PrivacyPrivate:
		approved, err := e.follows.IsApproved(ctx, actor.AccountID, owner.OwnerID)
		if err != nil {
			return Deny, err
		}
		if approved {
			return Allow, nil
		}
	}

	return Deny, nil
}
