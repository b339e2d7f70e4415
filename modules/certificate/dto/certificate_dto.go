package dto

import (
	"time"

	"campus-events-api/modules/certificate/entity"

	"github.com/google/uuid"
)

type CertificateResponse struct {
	ID         uuid.UUID `json:"id"`
	Serial     string    `json:"serial"`
	EventID    uuid.UUID `json:"event_id"`
	EventTitle string    `json:"event_title,omitempty"`
	EventDate  time.Time `json:"event_date,omitempty"`
	IssuedAt   time.Time `json:"issued_at"`
}

// VerificationResponse is the public proof returned for a serial lookup.
type VerificationResponse struct {
	Valid      bool      `json:"valid"`
	Serial     string    `json:"serial"`
	HolderName string    `json:"holder_name,omitempty"`
	EventTitle string    `json:"event_title,omitempty"`
	EventDate  time.Time `json:"event_date,omitempty"`
	IssuedAt   time.Time `json:"issued_at,omitempty"`
}

func ToCertificateResponse(c *entity.CertificateWithEvent) CertificateResponse {
	return CertificateResponse{
		ID:         c.ID,
		Serial:     c.Serial,
		EventID:    c.EventID,
		EventTitle: c.EventTitle,
		EventDate:  c.EventDate,
		IssuedAt:   c.IssuedAt,
	}
}
