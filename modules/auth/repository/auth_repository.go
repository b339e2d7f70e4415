package repository

import (
	"context"
	"database/sql"

	"campus-events-api/core/database"
	"campus-events-api/core/logger"
	"campus-events-api/modules/auth/entity"

	"github.com/google/uuid"
)

// AuthRepository handles user account database operations.
type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

// AuthRepositoryInterface defines the repository contract.
type AuthRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByRollNumber(ctx context.Context, rollNumber string) (*entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
}

const userColumns = `id, name, email, password, role, roll_number, department, semester, phone, avatar, is_active, created_at, updated_at`

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (name, email, password, role, roll_number, department, semester, phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.Name, user.Email, user.Password, user.Role,
		user.RollNumber, user.Department, user.Semester, user.Phone, user.IsActive)
	if err != nil {
		logger.Error("AuthRepository:CreateUser", err)
		return nil, err
	}

	return &created, nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID", err)
		return nil, err
	}

	return &user, nil
}

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail", err)
		return nil, err
	}

	return &user, nil
}

func (r *AuthRepository) GetUserByRollNumber(ctx context.Context, rollNumber string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE roll_number = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, rollNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByRollNumber", err)
		return nil, err
	}

	return &user, nil
}

func (r *AuthRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, department = $4, semester = $5, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		user.ID, user.Name, user.Phone, user.Department, user.Semester)
	if err != nil {
		logger.Error("AuthRepository:UpdateProfile", err)
		return err
	}

	return nil
}
