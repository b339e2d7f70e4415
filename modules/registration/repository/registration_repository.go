package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campus-events-api/core/database"
	"campus-events-api/core/logger"
	eventEntity "campus-events-api/modules/event/entity"
	"campus-events-api/modules/registration/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrCapacityConflict is returned when the conditional counter increment
// finds the event already full. With the row lock held this should not
// happen; it is the last line of defence for the capacity invariant.
var ErrCapacityConflict = errors.New("event capacity exceeded")

// WorkflowStore is the transactional view the registration workflow runs
// against. Every method executes inside the surrounding transaction.
type WorkflowStore interface {
	GetEventForUpdate(ctx context.Context, eventID uuid.UUID) (*eventEntity.Event, error)
	GetRegistrationByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error)
	GetRegistrationByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*entity.Registration, error)
	GetRegistrationForUpdate(ctx context.Context, id uuid.UUID) (*entity.Registration, error)
	InsertRegistration(ctx context.Context, reg *entity.Registration) (*entity.Registration, error)
	ReactivateRegistration(ctx context.Context, id uuid.UUID, registeredAt time.Time, qrCode string) error
	CancelRegistration(ctx context.Context, id uuid.UUID) error
	MarkAttended(ctx context.Context, id uuid.UUID, at time.Time) error
	IncrementEventCounter(ctx context.Context, eventID uuid.UUID) error
	DecrementEventCounter(ctx context.Context, eventID uuid.UUID) error
}

// RegistrationRepositoryInterface defines the repository contract.
type RegistrationRepositoryInterface interface {
	// InTx runs fn inside a single transaction; the registration
	// workflow's check-then-write sequences must not span transactions.
	InTx(ctx context.Context, fn func(store WorkflowStore) error) error

	GetByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]entity.RegistrationWithEvent, error)
	ListActiveByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.AttendeeRow, error)
	SaveFeedback(ctx context.Context, id uuid.UUID, rating int, comment string) error
}

// RegistrationRepository handles registration database operations.
type RegistrationRepository struct {
	DB database.Database
}

func NewRegistrationRepository(db database.Database) *RegistrationRepository {
	return &RegistrationRepository{DB: db}
}

const registrationColumns = `id, user_id, event_id, status, qr_code, checked_in_at,
	feedback_rating, feedback_comment, registered_at, created_at, updated_at`

func (r *RegistrationRepository) InTx(ctx context.Context, fn func(store WorkflowStore) error) error {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("RegistrationRepository:InTx:Begin", err)
		return err
	}
	defer tx.Rollback()

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("RegistrationRepository:InTx:Commit", err)
		return err
	}
	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`

	var reg entity.Registration
	err := r.DB.GetContext(ctx, &reg, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RegistrationRepository:GetByID", err)
		return nil, err
	}

	return &reg, nil
}

func (r *RegistrationRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]entity.RegistrationWithEvent, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.status, r.qr_code, r.checked_in_at,
		       r.feedback_rating, r.feedback_comment, r.registered_at, r.created_at, r.updated_at,
		       e.title AS event_title, e.date AS event_date, e.time AS event_time,
		       e.venue AS event_venue, e.status AS event_status, e.image AS event_image
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1 AND r.status <> 'cancelled'
		ORDER BY r.registered_at DESC
	`

	var rows []entity.RegistrationWithEvent
	if err := r.DB.SelectContext(ctx, &rows, query, userID); err != nil {
		logger.Error("RegistrationRepository:ListActiveByUser", err)
		return nil, err
	}

	return rows, nil
}

func (r *RegistrationRepository) ListActiveByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.AttendeeRow, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.status, r.qr_code, r.checked_in_at,
		       r.feedback_rating, r.feedback_comment, r.registered_at, r.created_at, r.updated_at,
		       u.name AS user_name, u.email AS user_email, u.roll_number AS user_roll_number,
		       u.department AS user_department, u.phone AS user_phone
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1 AND r.status <> 'cancelled'
		ORDER BY r.registered_at DESC
	`

	var rows []entity.AttendeeRow
	if err := r.DB.SelectContext(ctx, &rows, query, eventID); err != nil {
		logger.Error("RegistrationRepository:ListActiveByEvent", err)
		return nil, err
	}

	return rows, nil
}

func (r *RegistrationRepository) SaveFeedback(ctx context.Context, id uuid.UUID, rating int, comment string) error {
	query := `
		UPDATE registrations
		SET feedback_rating = $2, feedback_comment = $3, updated_at = NOW()
		WHERE id = $1
	`
	if err := r.DB.ExecContext(ctx, query, id, rating, comment); err != nil {
		logger.Error("RegistrationRepository:SaveFeedback", err)
		return err
	}
	return nil
}

// txStore implements WorkflowStore against an open transaction.
type txStore struct {
	tx *sqlx.Tx
}

// GetEventForUpdate locks the event row for the life of the transaction.
// Concurrent registrations for the same event serialize here, which is
// what keeps current_registrations within [0, max_participants].
func (s *txStore) GetEventForUpdate(ctx context.Context, eventID uuid.UUID) (*eventEntity.Event, error) {
	query := `
		SELECT id, title, slug, description, category, date, time, venue, organizer,
		       department, duration, prerequisites, tags, image, max_participants,
		       current_registrations, status, created_by, created_at, updated_at
		FROM events
		WHERE id = $1
		FOR UPDATE
	`

	var event eventEntity.Event
	err := s.tx.GetContext(ctx, &event, query, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RegistrationRepository:GetEventForUpdate", err)
		return nil, err
	}

	return &event, nil
}

// GetRegistrationByID reads a registration without locking it. Used to
// resolve the event before any row locks are taken: the workflow always
// locks the event row first, then the registration row.
func (s *txStore) GetRegistrationByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`

	var reg entity.Registration
	err := s.tx.GetContext(ctx, &reg, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RegistrationRepository:GetRegistrationByID", err)
		return nil, err
	}

	return &reg, nil
}

func (s *txStore) GetRegistrationByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 AND event_id = $2`

	var reg entity.Registration
	err := s.tx.GetContext(ctx, &reg, query, userID, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RegistrationRepository:GetRegistrationByUserAndEvent", err)
		return nil, err
	}

	return &reg, nil
}

func (s *txStore) GetRegistrationForUpdate(ctx context.Context, id uuid.UUID) (*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1 FOR UPDATE`

	var reg entity.Registration
	err := s.tx.GetContext(ctx, &reg, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RegistrationRepository:GetRegistrationForUpdate", err)
		return nil, err
	}

	return &reg, nil
}

func (s *txStore) InsertRegistration(ctx context.Context, reg *entity.Registration) (*entity.Registration, error) {
	query := `
		INSERT INTO registrations (user_id, event_id, status, qr_code, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + registrationColumns

	var created entity.Registration
	err := s.tx.GetContext(ctx, &created, query,
		reg.UserID, reg.EventID, reg.Status, reg.QRCode, reg.RegisteredAt)
	if err != nil {
		logger.Error("RegistrationRepository:InsertRegistration", err)
		return nil, err
	}

	return &created, nil
}

// ReactivateRegistration flips a cancelled registration back to registered
// in place: same row, fresh timestamp and QR artifact.
func (s *txStore) ReactivateRegistration(ctx context.Context, id uuid.UUID, registeredAt time.Time, qrCode string) error {
	query := `
		UPDATE registrations
		SET status = 'registered', registered_at = $2, qr_code = $3,
		    checked_in_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'cancelled'
	`

	res, err := s.tx.ExecContext(ctx, query, id, registeredAt, qrCode)
	if err != nil {
		logger.Error("RegistrationRepository:ReactivateRegistration", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CancelRegistration moves a non-cancelled registration to cancelled. The
// status guard pairs the decrement 1:1 with a prior increment.
func (s *txStore) CancelRegistration(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE registrations
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
	`

	res, err := s.tx.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("RegistrationRepository:CancelRegistration", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *txStore) MarkAttended(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE registrations
		SET status = 'attended', checked_in_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'registered'
	`

	res, err := s.tx.ExecContext(ctx, query, id, at)
	if err != nil {
		logger.Error("RegistrationRepository:MarkAttended", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncrementEventCounter bumps the seat counter with the capacity ceiling
// baked into the statement itself.
func (s *txStore) IncrementEventCounter(ctx context.Context, eventID uuid.UUID) error {
	query := `
		UPDATE events
		SET current_registrations = current_registrations + 1, updated_at = NOW()
		WHERE id = $1 AND current_registrations < max_participants
	`

	res, err := s.tx.ExecContext(ctx, query, eventID)
	if err != nil {
		logger.Error("RegistrationRepository:IncrementEventCounter", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCapacityConflict
	}
	return nil
}

// DecrementEventCounter releases a seat, floored at zero.
func (s *txStore) DecrementEventCounter(ctx context.Context, eventID uuid.UUID) error {
	query := `
		UPDATE events
		SET current_registrations = GREATEST(current_registrations - 1, 0), updated_at = NOW()
		WHERE id = $1
	`

	if _, err := s.tx.ExecContext(ctx, query, eventID); err != nil {
		logger.Error("RegistrationRepository:DecrementEventCounter", err)
		return err
	}
	return nil
}
