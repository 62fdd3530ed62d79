package dto

import (
	"time"

	"anoa.com/fittrack/internal/entity"
)

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

type SetActiveInput struct {
	Active *bool `json:"active" binding:"required"`
}

type UserSummary struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Total int64         `json:"total"`
}

type UserDetailResponse struct {
	User    UserSummary     `json:"user"`
	Profile *entity.Profile `json:"profile,omitempty"`
}
