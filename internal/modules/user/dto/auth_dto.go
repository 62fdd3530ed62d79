package dto

import (
	"time"

	"anoa.com/fittrack/internal/entity"
)

type SignupInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *entity.User `json:"user"`
}

type UserSearchResult struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	FollowStatus string `json:"follow_status"`
}
