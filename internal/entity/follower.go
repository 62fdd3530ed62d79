package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowerStatus int

const (
	FollowerPending  FollowerStatus = 0
	FollowerApproved FollowerStatus = 1
)

func (s FollowerStatus) String() string {
	switch s {
	case FollowerPending:
		return "Pending"
	case FollowerApproved:
		return "Approved"
	}
	return "Unknown"
}

// Follower is a directed follow edge: FollowerID follows UserID. The unique
// index keeps at most one edge per ordered pair; self edges are rejected in
// the service layer before any insert.
type Follower struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_follower_pair" json:"user_id"`
	FollowerID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_follower_pair" json:"follower_id"`
	Status     FollowerStatus `gorm:"not null;default:0" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	User         *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	FollowerUser *User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
}

func (f *Follower) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// UserBlock is a directed block edge: BlockerID no longer lets BlockedID see
// any of their resources, whatever the privacy level or follow state says.
type UserBlock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_block_pair" json:"blocker_id"`
	BlockedID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_block_pair" json:"blocked_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (b *UserBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
