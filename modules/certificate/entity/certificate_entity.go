package entity

import (
	"time"

	"campus-events-api/core/entity"

	"github.com/google/uuid"
)

// Certificate proves attendance of an event. The serial is the public
// handle used for verification.
type Certificate struct {
	UserID   uuid.UUID `db:"user_id" json:"user_id"`
	EventID  uuid.UUID `db:"event_id" json:"event_id"`
	Serial   string    `db:"serial" json:"serial"`
	IssuedAt time.Time `db:"issued_at" json:"issued_at"`
	entity.BaseEntity
}

// CertificateWithEvent is a certificate joined with display fields.
type CertificateWithEvent struct {
	Certificate
	EventTitle string    `db:"event_title"`
	EventDate  time.Time `db:"event_date"`
	UserName   string    `db:"user_name"`
}
