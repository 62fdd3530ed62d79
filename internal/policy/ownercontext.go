package policy

import (
	"anoa.com/fittrack/internal/entity"
)

// OwnerContextOf builds the per-request owner context from a loaded user
// record. An owner without a profile has not chosen a privacy level yet and
// is treated as private.
func OwnerContextOf(user *entity.User) OwnerContext {
	privacy := entity.PrivacyPrivate
	if user.Profile != nil && user.Profile.PrivacyLevel.Valid() {
		privacy = user.Profile.PrivacyLevel
	}
	return OwnerContext{OwnerID: user.ID, Privacy: privacy}
}

// ActorOf converts an authenticated user into a policy actor.
func ActorOf(user *entity.User) *Actor {
	if user == nil {
		return nil
	}
	return &Actor{AccountID: user.ID, Role: user.Role.Name}
}
