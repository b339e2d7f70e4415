package repository

import (
	"context"
	"database/sql"

	"campus-events-api/core/database"
	"campus-events-api/core/logger"
	"campus-events-api/modules/certificate/entity"

	"github.com/google/uuid"
)

type CertificateRepositoryInterface interface {
	Insert(ctx context.Context, cert *entity.Certificate) (*entity.Certificate, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*entity.Certificate, error)
	GetBySerial(ctx context.Context, serial string) (*entity.CertificateWithEvent, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.CertificateWithEvent, error)
}

type CertificateRepository struct {
	db database.Database
}

func NewCertificateRepository(db database.Database) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Insert(ctx context.Context, cert *entity.Certificate) (*entity.Certificate, error) {
	query := `
		INSERT INTO certificates (user_id, event_id, serial, issued_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, event_id, serial, issued_at, created_at, updated_at
	`

	var created entity.Certificate
	err := r.db.GetContext(ctx, &created, query, cert.UserID, cert.EventID, cert.Serial, cert.IssuedAt)
	if err != nil {
		logger.Error("CertificateRepository:Insert", err)
		return nil, err
	}

	return &created, nil
}

func (r *CertificateRepository) GetByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*entity.Certificate, error) {
	query := `
		SELECT id, user_id, event_id, serial, issued_at, created_at, updated_at
		FROM certificates
		WHERE user_id = $1 AND event_id = $2
	`

	var cert entity.Certificate
	err := r.db.GetContext(ctx, &cert, query, userID, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CertificateRepository:GetByUserAndEvent", err)
		return nil, err
	}

	return &cert, nil
}

func (r *CertificateRepository) GetBySerial(ctx context.Context, serial string) (*entity.CertificateWithEvent, error) {
	query := `
		SELECT c.id, c.user_id, c.event_id, c.serial, c.issued_at, c.created_at, c.updated_at,
		       e.title AS event_title, e.date AS event_date, u.name AS user_name
		FROM certificates c
		JOIN events e ON e.id = c.event_id
		JOIN users u ON u.id = c.user_id
		WHERE c.serial = $1
	`

	var cert entity.CertificateWithEvent
	err := r.db.GetContext(ctx, &cert, query, serial)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CertificateRepository:GetBySerial", err)
		return nil, err
	}

	return &cert, nil
}

func (r *CertificateRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.CertificateWithEvent, error) {
	query := `
		SELECT c.id, c.user_id, c.event_id, c.serial, c.issued_at, c.created_at, c.updated_at,
		       e.title AS event_title, e.date AS event_date, u.name AS user_name
		FROM certificates c
		JOIN events e ON e.id = c.event_id
		JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1
		ORDER BY c.issued_at DESC
	`

	var certs []entity.CertificateWithEvent
	if err := r.db.SelectContext(ctx, &certs, query, userID); err != nil {
		logger.Error("CertificateRepository:ListByUser", err)
		return nil, err
	}

	return certs, nil
}
