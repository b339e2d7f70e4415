package dto

import (
	"time"

	"campus-events-api/modules/registration/entity"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	EventID uuid.UUID `json:"event_id" validate:"required"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

type EventSummary struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Date   time.Time `json:"date"`
	Time   string    `json:"time"`
	Venue  string    `json:"venue"`
	Status string    `json:"status"`
	Image  *string   `json:"image,omitempty"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type RegistrationResponse struct {
	ID           uuid.UUID     `json:"id"`
	Status       string        `json:"status"`
	QRCode       string        `json:"qr_code"`
	RegisteredAt time.Time     `json:"registered_at"`
	Event        *EventSummary `json:"event,omitempty"`
	User         *UserSummary  `json:"user,omitempty"`
}

type MyRegistrationResponse struct {
	ID           uuid.UUID    `json:"id"`
	Status       string       `json:"status"`
	QRCode       string       `json:"qr_code"`
	RegisteredAt time.Time    `json:"registered_at"`
	Event        EventSummary `json:"event"`
}

// AttendeeResponse is one row of the manager's attendee listing.
type AttendeeResponse struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	RollNumber     string    `json:"roll_number"`
	Department     string    `json:"department"`
	Phone          string    `json:"phone"`
	EventName      string    `json:"event_name"`
	RegisteredAt   time.Time `json:"registered_at"`
	Status         string    `json:"status"`
	QRCode         string    `json:"qr_code"`
}

// AttendeeExport is a rendered attendee list ready to stream as a file
// download.
type AttendeeExport struct {
	FileName    string
	ContentType string
	Content     []byte
}

func ToMyRegistrationResponse(r *entity.RegistrationWithEvent) MyRegistrationResponse {
	return MyRegistrationResponse{
		ID:           r.ID,
		Status:       string(r.Status),
		QRCode:       r.QRCode,
		RegisteredAt: r.RegisteredAt,
		Event: EventSummary{
			ID:     r.EventID,
			Title:  r.EventTitle,
			Date:   r.EventDate,
			Time:   r.EventTime,
			Venue:  r.EventVenue,
			Status: r.EventStatus,
			Image:  r.EventImage,
		},
	}
}

func ToAttendeeResponse(row *entity.AttendeeRow, eventTitle string) AttendeeResponse {
	return AttendeeResponse{
		RegistrationID: row.ID,
		Name:           row.UserName,
		Email:          row.UserEmail,
		RollNumber:     orNA(row.UserRollNumber),
		Department:     orNA(row.UserDepartment),
		Phone:          orNA(row.UserPhone),
		EventName:      eventTitle,
		RegisteredAt:   row.RegisteredAt,
		Status:         string(row.DisplayStatus()),
		QRCode:         row.QRCode,
	}
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
