package entity

import (
	"time"

	"campus-events-api/core/entity"

	"github.com/google/uuid"
)

// RegistrationStatus represents the lifecycle status of a registration.
type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "registered"
	StatusAttended   RegistrationStatus = "attended"
	StatusCancelled  RegistrationStatus = "cancelled"
)

// Registration is a (user, event) participation record. For any
// (user, event) pair at most one registration may be in a non-cancelled
// state; a cancelled one is reactivated in place when the user registers
// again.
type Registration struct {
	UserID          uuid.UUID          `db:"user_id" json:"user_id"`
	EventID         uuid.UUID          `db:"event_id" json:"event_id"`
	Status          RegistrationStatus `db:"status" json:"status"`
	QRCode          string             `db:"qr_code" json:"qr_code"`
	CheckedInAt     *time.Time         `db:"checked_in_at" json:"checked_in_at,omitempty"`
	FeedbackRating  *int               `db:"feedback_rating" json:"feedback_rating,omitempty"`
	FeedbackComment *string            `db:"feedback_comment" json:"feedback_comment,omitempty"`
	RegisteredAt    time.Time          `db:"registered_at" json:"registered_at"`
	entity.BaseEntity
}

// IsActive reports whether the registration counts against event capacity.
func (r *Registration) IsActive() bool {
	return r.Status != StatusCancelled
}

// DisplayStatus is what attendee listings show: attended once checked in,
// registered otherwise.
func (r *Registration) DisplayStatus() RegistrationStatus {
	if r.Status == StatusAttended || r.CheckedInAt != nil {
		return StatusAttended
	}
	return StatusRegistered
}

// RegistrationWithEvent is a registration joined with its event summary.
type RegistrationWithEvent struct {
	Registration
	EventTitle  string    `db:"event_title"`
	EventDate   time.Time `db:"event_date"`
	EventTime   string    `db:"event_time"`
	EventVenue  string    `db:"event_venue"`
	EventStatus string    `db:"event_status"`
	EventImage  *string   `db:"event_image"`
}

// AttendeeRow is a registration joined with the attendee's contact fields.
type AttendeeRow struct {
	Registration
	UserName       string  `db:"user_name"`
	UserEmail      string  `db:"user_email"`
	UserRollNumber *string `db:"user_roll_number"`
	UserDepartment *string `db:"user_department"`
	UserPhone      *string `db:"user_phone"`
}
