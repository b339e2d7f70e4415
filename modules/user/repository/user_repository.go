package repository

import (
	"context"
	"fmt"
	"strings"

	"campus-events-api/core/database"
	coreEntity "campus-events-api/core/entity"
	"campus-events-api/core/logger"
	"campus-events-api/core/params"
	authEntity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/user/dto"

	"github.com/google/uuid"
)

type PaginatedUserEntity = coreEntity.Pagination[authEntity.User]

type UserRepositoryInterface interface {
	ListUsers(ctx context.Context, filter dto.ListUsersFilter, params params.QueryParams) (*PaginatedUserEntity, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error
	GetUserStats(ctx context.Context, userID uuid.UUID) (*dto.UserStatsResponse, error)
}

type UserRepository struct {
	db database.Database
}

func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListUsers(ctx context.Context, filter dto.ListUsersFilter, queryParams params.QueryParams) (*PaginatedUserEntity, error) {
	where := []string{"1=1"}
	args := []any{}
	idx := 1

	if filter.Role != "" {
		where = append(where, fmt.Sprintf("role = $%d", idx))
		args = append(args, filter.Role)
		idx++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR roll_number ILIKE $%d)", idx, idx, idx))
		args = append(args, "%"+filter.Search+"%")
		idx++
	}

	baseQuery := "FROM users WHERE " + strings.Join(where, " AND ")

	var totalItems int
	if err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, args...); err != nil {
		logger.Error("UserRepository:ListUsers:Count", err)
		return nil, err
	}

	offset := (queryParams.PageNumber - 1) * queryParams.PageSize
	query := fmt.Sprintf(`
		SELECT id, name, email, password, role, roll_number, department, semester,
		       phone, avatar, is_active, created_at, updated_at
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseQuery, idx, idx+1)
	args = append(args, queryParams.PageSize, offset)

	var users []authEntity.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		logger.Error("UserRepository:ListUsers:Select", err)
		return nil, err
	}

	return &PaginatedUserEntity{
		Items:      users,
		TotalItems: totalItems,
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	query := `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`
	if err := r.db.ExecContext(ctx, query, id, isActive); err != nil {
		logger.Error("UserRepository:UpdateStatus", err)
		return err
	}
	return nil
}

// GetUserStats aggregates the dashboard counters in one round trip.
func (r *UserRepository) GetUserStats(ctx context.Context, userID uuid.UUID) (*dto.UserStatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM registrations r
				WHERE r.user_id = $1 AND r.status <> 'cancelled') AS events_registered,
			(SELECT COUNT(*) FROM registrations r
				WHERE r.user_id = $1 AND r.status = 'attended') AS events_attended,
			(SELECT COUNT(*) FROM registrations r
				JOIN events e ON e.id = r.event_id
				WHERE r.user_id = $1 AND r.status = 'registered' AND e.date >= CURRENT_DATE) AS upcoming_events,
			(SELECT COUNT(*) FROM certificates c
				WHERE c.user_id = $1) AS certificates_earned
	`

	var stats struct {
		EventsRegistered   int `db:"events_registered"`
		EventsAttended     int `db:"events_attended"`
		UpcomingEvents     int `db:"upcoming_events"`
		CertificatesEarned int `db:"certificates_earned"`
	}
	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		logger.Error("UserRepository:GetUserStats", err)
		return nil, err
	}

	return &dto.UserStatsResponse{
		EventsRegistered:   stats.EventsRegistered,
		EventsAttended:     stats.EventsAttended,
		UpcomingEvents:     stats.UpcomingEvents,
		CertificatesEarned: stats.CertificatesEarned,
	}, nil
}
