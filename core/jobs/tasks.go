package jobs

import (
	"encoding/json"
	"time"

	"campus-events-api/core/constants"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// RegistrationConfirmedPayload is the payload of the confirmation email task.
type RegistrationConfirmedPayload struct {
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	EventTitle   string    `json:"event_title"`
	EventVenue   string    `json:"event_venue"`
	EventDate    time.Time `json:"event_date"`
	EventTime    string    `json:"event_time"`
	EventID      uuid.UUID `json:"event_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewRegistrationConfirmedTask builds the asynq task for a confirmation
// email.
func NewRegistrationConfirmedTask(payload RegistrationConfirmedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskEmailRegistrationConfirmed, data,
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(3),
	), nil
}

// NewCloseExpiredEventsTask builds the periodic sweep task. It carries no
// payload.
func NewCloseExpiredEventsTask() *asynq.Task {
	return asynq.NewTask(constants.TaskEventsCloseExpired, nil,
		asynq.Queue(constants.QueueDefault),
	)
}
