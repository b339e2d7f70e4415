package entity

import (
	"time"

	"campus-events-api/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EventCategory is the closed set of event categories.
type EventCategory string

const (
	CategoryTechnical EventCategory = "technical"
	CategoryCultural  EventCategory = "cultural"
	CategoryWorkshop  EventCategory = "workshop"
	CategorySports    EventCategory = "sports"
)

// EventStatus represents the lifecycle status of an event.
type EventStatus string

const (
	EventStatusOpen      EventStatus = "open"
	EventStatusClosed    EventStatus = "closed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is a schedulable campus activity with a capacity-limited
// registration list. CurrentRegistrations is a derived counter kept in
// step with active registrations by the registration workflow only; it
// must stay within [0, MaxParticipants].
type Event struct {
	Title                string         `db:"title" json:"title"`
	Slug                 string         `db:"slug" json:"slug"`
	Description          string         `db:"description" json:"description"`
	Category             EventCategory  `db:"category" json:"category"`
	Date                 time.Time      `db:"date" json:"date"`
	Time                 string         `db:"time" json:"time"`
	Venue                string         `db:"venue" json:"venue"`
	Organizer            string         `db:"organizer" json:"organizer"`
	Department           *string        `db:"department" json:"department,omitempty"`
	Duration             *string        `db:"duration" json:"duration,omitempty"`
	Prerequisites        string         `db:"prerequisites" json:"prerequisites"`
	Tags                 pq.StringArray `db:"tags" json:"tags"`
	Image                *string        `db:"image" json:"image,omitempty"`
	MaxParticipants      int            `db:"max_participants" json:"max_participants"`
	CurrentRegistrations int            `db:"current_registrations" json:"current_registrations"`
	Status               EventStatus    `db:"status" json:"status"`
	CreatedBy            uuid.UUID      `db:"created_by" json:"created_by"`
	entity.BaseEntity
}

// SeatsLeft returns the remaining capacity.
func (e *Event) SeatsLeft() int {
	return e.MaxParticipants - e.CurrentRegistrations
}

// IsFull reports whether the event has no remaining capacity.
func (e *Event) IsFull() bool {
	return e.CurrentRegistrations >= e.MaxParticipants
}
