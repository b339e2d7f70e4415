package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListUsersFilter struct {
	Role   string
	Search string
}

type UserListItem struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	RollNumber *string   `json:"roll_number,omitempty"`
	Department *string   `json:"department,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// UserStatsResponse is the student dashboard counter block.
type UserStatsResponse struct {
	EventsRegistered   int `json:"events_registered"`
	EventsAttended     int `json:"events_attended"`
	UpcomingEvents     int `json:"upcoming_events"`
	CertificatesEarned int `json:"certificates_earned"`
}
