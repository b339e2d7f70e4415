package dto

import (
	"time"

	"campus-events-api/modules/event/entity"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title           string   `json:"title" validate:"required,min=3,max=200"`
	Description     string   `json:"description" validate:"required"`
	Category        string   `json:"category" validate:"required,oneof=technical cultural workshop sports"`
	Date            string   `json:"date" validate:"required"` // YYYY-MM-DD
	Time            string   `json:"time" validate:"required"`
	Venue           string   `json:"venue" validate:"required,max=200"`
	Organizer       string   `json:"organizer" validate:"required,max=200"`
	Department      string   `json:"department" validate:"omitempty,max=100"`
	Duration        string   `json:"duration" validate:"omitempty,max=50"`
	Prerequisites   string   `json:"prerequisites" validate:"omitempty,max=500"`
	Tags            []string `json:"tags" validate:"omitempty,dive,max=50"`
	MaxParticipants int      `json:"max_participants" validate:"required,min=1"`
}

type UpdateEventRequest struct {
	Title         *string   `json:"title" validate:"omitempty,min=3,max=200"`
	Description   *string   `json:"description"`
	Category      *string   `json:"category" validate:"omitempty,oneof=technical cultural workshop sports"`
	Date          *string   `json:"date"`
	Time          *string   `json:"time"`
	Venue         *string   `json:"venue" validate:"omitempty,max=200"`
	Organizer     *string   `json:"organizer" validate:"omitempty,max=200"`
	Department    *string   `json:"department" validate:"omitempty,max=100"`
	Duration      *string   `json:"duration" validate:"omitempty,max=50"`
	Prerequisites *string   `json:"prerequisites" validate:"omitempty,max=500"`
	Tags          *[]string `json:"tags" validate:"omitempty,dive,max=50"`
	// MaxParticipants can only grow; it never drops below the current
	// registration count.
	MaxParticipants *int `json:"max_participants" validate:"omitempty,min=1"`
}

// ListEventsFilter carries the browse-page query parameters.
type ListEventsFilter struct {
	Category string
	Status   string
	Search   string
	SortBy   string
}

type EventResponse struct {
	ID                   uuid.UUID `json:"id"`
	Title                string    `json:"title"`
	Slug                 string    `json:"slug"`
	Description          string    `json:"description"`
	Category             string    `json:"category"`
	Date                 time.Time `json:"date"`
	Time                 string    `json:"time"`
	Venue                string    `json:"venue"`
	Organizer            string    `json:"organizer"`
	Department           *string   `json:"department,omitempty"`
	Duration             *string   `json:"duration,omitempty"`
	Prerequisites        string    `json:"prerequisites"`
	Tags                 []string  `json:"tags"`
	Image                *string   `json:"image,omitempty"`
	MaxParticipants      int       `json:"max_participants"`
	CurrentRegistrations int       `json:"current_registrations"`
	SeatsLeft            int       `json:"seats_left"`
	Status               string    `json:"status"`
	CreatedBy            uuid.UUID `json:"created_by"`
	IsRegistered         bool      `json:"is_registered"`
	CreatedAt            time.Time `json:"created_at"`
}

func ToEventResponse(e *entity.Event, isRegistered bool) EventResponse {
	return EventResponse{
		ID:                   e.ID,
		Title:                e.Title,
		Slug:                 e.Slug,
		Description:          e.Description,
		Category:             string(e.Category),
		Date:                 e.Date,
		Time:                 e.Time,
		Venue:                e.Venue,
		Organizer:            e.Organizer,
		Department:           e.Department,
		Duration:             e.Duration,
		Prerequisites:        e.Prerequisites,
		Tags:                 []string(e.Tags),
		Image:                e.Image,
		MaxParticipants:      e.MaxParticipants,
		CurrentRegistrations: e.CurrentRegistrations,
		SeatsLeft:            e.SeatsLeft(),
		Status:               string(e.Status),
		CreatedBy:            e.CreatedBy,
		IsRegistered:         isRegistered,
		CreatedAt:            e.CreatedAt,
	}
}
