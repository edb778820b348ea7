package models

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "Admin"
	RoleSupervisor UserRole = "Maintenance Supervisor"
)

type User struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Role          UserRole   `json:"role"`
	CreatedAt     time.Time  `json:"created_at"`
	TrialStart    *time.Time `json:"trial_start,omitempty"`
	IsTrialActive bool       `json:"is_trial_active"`
}

// IsAdmin reports whether the user may manage departments and machines.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
