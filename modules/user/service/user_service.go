package service

import (
	"context"
	"encoding/json"

	"campus-events-api/core/cache"
	"campus-events-api/core/constants"
	coreEntity "campus-events-api/core/entity"
	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	"campus-events-api/core/params"
	"campus-events-api/modules/user/dto"
	"campus-events-api/modules/user/repository"

	"github.com/google/uuid"
)

type UserService struct {
	repo  repository.UserRepositoryInterface
	cache cache.Cache
}

func NewUserService(repo repository.UserRepositoryInterface, cache cache.Cache) *UserService {
	return &UserService{repo: repo, cache: cache}
}

func (s *UserService) ListUsers(ctx context.Context, filter dto.ListUsersFilter, queryParams params.QueryParams) (*coreEntity.Pagination[dto.UserListItem], error) {
	page, err := s.repo.ListUsers(ctx, filter, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list users", err)
	}

	items := make([]dto.UserListItem, 0, len(page.Items))
	for _, u := range page.Items {
		items = append(items, dto.UserListItem{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Role:       u.Role,
			RollNumber: u.RollNumber,
			Department: u.Department,
			IsActive:   u.IsActive,
			CreatedAt:  u.CreatedAt,
		})
	}

	return &coreEntity.Pagination[dto.UserListItem]{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}

func (s *UserService) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	if err := s.repo.UpdateStatus(ctx, id, isActive); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to update user status", err)
	}
	return nil
}

// GetMyStats returns the user's dashboard counters, served from redis
// when fresh. The TTL is short, so writes don't bother invalidating.
func (s *UserService) GetMyStats(ctx context.Context, userID uuid.UUID) (*dto.UserStatsResponse, error) {
	cacheKey := constants.RedisKeyUserStats + userID.String()

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var stats dto.UserStatsResponse
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.repo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load stats", err)
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(payload), constants.UserStatsCacheTTL); err != nil {
			logger.Warn("UserService:GetMyStats cache set failed", "error", err)
		}
	}

	return stats, nil
}
