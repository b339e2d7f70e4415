package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"campus-events-api/core/database"
	"campus-events-api/core/logger"
	"campus-events-api/modules/event/dto"
	"campus-events-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepository handles event database operations.
type EventRepository struct {
	DB database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract.
type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	ListEvents(ctx context.Context, filter dto.ListEventsFilter) ([]entity.Event, error)
	ListEventsByCreator(ctx context.Context, createdBy uuid.UUID) ([]entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EventStatus) error
	UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error
	DeleteEventCascade(ctx context.Context, id uuid.UUID) error
	ListActiveEventIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CloseExpired(ctx context.Context) (int, error)
}

const eventColumns = `id, title, slug, description, category, date, time, venue, organizer,
	department, duration, prerequisites, tags, image, max_participants,
	current_registrations, status, created_by, created_at, updated_at`

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (title, slug, description, category, date, time, venue, organizer,
		                    department, duration, prerequisites, tags, image,
		                    max_participants, current_registrations, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.Title, event.Slug, event.Description, event.Category, event.Date, event.Time,
		event.Venue, event.Organizer, event.Department, event.Duration, event.Prerequisites,
		event.Tags, event.Image, event.MaxParticipants, event.CurrentRegistrations,
		event.Status, event.CreatedBy)
	if err != nil {
		logger.Error("EventRepository:CreateEvent", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", err)
		return nil, err
	}

	return &event, nil
}

// ListEvents applies the browse filters. Search matches title, organizer
// and tags, case-insensitively.
func (r *EventRepository) ListEvents(ctx context.Context, filter dto.ListEventsFilter) ([]entity.Event, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Category != "" && filter.Category != "all" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR organizer ILIKE $%d OR array_to_string(tags, ' ') ILIKE $%d)", n, n, n))
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch filter.SortBy {
	case "date":
		query += " ORDER BY date ASC"
	case "popularity":
		query += " ORDER BY current_registrations DESC"
	case "availability":
		query += " ORDER BY current_registrations ASC"
	default:
		query += " ORDER BY created_at DESC"
	}

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, args...); err != nil {
		logger.Error("EventRepository:ListEvents", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) ListEventsByCreator(ctx context.Context, createdBy uuid.UUID) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE created_by = $1 ORDER BY created_at DESC`

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, createdBy); err != nil {
		logger.Error("EventRepository:ListEventsByCreator", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, slug = $3, description = $4, category = $5, date = $6, time = $7,
		    venue = $8, organizer = $9, department = $10, duration = $11, prerequisites = $12,
		    tags = $13, max_participants = $14, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		event.ID, event.Title, event.Slug, event.Description, event.Category, event.Date,
		event.Time, event.Venue, event.Organizer, event.Department, event.Duration,
		event.Prerequisites, event.Tags, event.MaxParticipants)
	if err != nil {
		logger.Error("EventRepository:UpdateEvent", err)
		return err
	}

	return nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EventStatus) error {
	query := `UPDATE events SET status = $2, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id, status); err != nil {
		logger.Error("EventRepository:UpdateStatus", err)
		return err
	}
	return nil
}

func (r *EventRepository) UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	query := `UPDATE events SET image = $2, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id, imageURL); err != nil {
		logger.Error("EventRepository:UpdateImage", err)
		return err
	}
	return nil
}

// DeleteEventCascade removes the event and all of its registrations in one
// transaction.
func (r *EventRepository) DeleteEventCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("EventRepository:DeleteEventCascade:Begin", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = $1`, id); err != nil {
		logger.Error("EventRepository:DeleteEventCascade:DeleteRegistrations", err)
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		logger.Error("EventRepository:DeleteEventCascade:DeleteEvent", err)
		return err
	}

	return tx.Commit()
}

// ListActiveEventIDsForUser returns the ids of events the user holds a
// non-cancelled registration for. Used to mark isRegistered on listings.
func (r *EventRepository) ListActiveEventIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT event_id FROM registrations WHERE user_id = $1 AND status <> 'cancelled'`

	var ids []uuid.UUID
	if err := r.DB.SelectContext(ctx, &ids, query, userID); err != nil {
		logger.Error("EventRepository:ListActiveEventIDsForUser", err)
		return nil, err
	}

	return ids, nil
}

// CloseExpired closes open events whose date has already passed. Returns
// the number of events closed.
func (r *EventRepository) CloseExpired(ctx context.Context) (int, error) {
	query := `
		WITH closed AS (
			UPDATE events SET status = 'closed', updated_at = NOW()
			WHERE status = 'open' AND date < CURRENT_DATE
			RETURNING 1
		)
		SELECT COUNT(*) FROM closed
	`

	var count int
	if err := r.DB.GetContext(ctx, &count, query); err != nil {
		logger.Error("EventRepository:CloseExpired", err)
		return 0, err
	}

	return count, nil
}
