package service

import (
	"context"
	"fmt"
	"time"

	"campus-events-api/core/cache"
	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	"campus-events-api/core/utils"
	"campus-events-api/modules/auth/dto"
	"campus-events-api/modules/auth/entity"
	"campus-events-api/modules/auth/repository"

	"github.com/google/uuid"
)

// AuthService handles account registration, login and profile management.
type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.Cache
}

func NewAuthService(repo repository.AuthRepositoryInterface, cache cache.Cache) *AuthService {
	return &AuthService{repo: repo, cache: cache}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("AuthService:Register:GetUserByEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check existing account", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "an account with this email already exists", nil)
	}

	role := req.Role
	if role == "" {
		role = entity.RoleStudent
	}

	// Roll numbers are unique among students.
	if role == entity.RoleStudent && req.RollNumber != "" {
		byRoll, err := s.repo.GetUserByRollNumber(ctx, req.RollNumber)
		if err != nil {
			logger.Error("AuthService:Register:GetUserByRollNumber:Error:", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check roll number", err)
		}
		if byRoll != nil {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "roll number already registered", nil)
		}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	user := &entity.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	if role == entity.RoleStudent && req.RollNumber != "" {
		user.RollNumber = &req.RollNumber
	}
	if req.Department != "" {
		user.Department = &req.Department
	}
	if req.Semester != "" {
		user.Semester = &req.Semester
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("AuthService:Register:CreateUser:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create account", err)
	}

	token, err := utils.GenerateToken(created.ID, created.Role)
	if err != nil {
		logger.Error("AuthService:Register:GenerateToken:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}

	return &dto.AuthResponse{Token: token, User: toUserResponse(created)}, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("AuthService:Login:GetUserByEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up account", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	// Each frontend portal passes its own role; logging into the wrong
	// portal is rejected even with valid credentials.
	if req.Role != "" && user.Role != req.Role {
		return nil, errors.NewAppError(errors.ErrForbidden,
			fmt.Sprintf("access denied: this is the %s portal", req.Role), nil)
	}

	if !utils.ComparePassword(user.Password, req.Password) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	if !user.IsActive {
		return nil, errors.NewAppError(errors.ErrForbidden, "account has been deactivated, contact an administrator", nil)
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		logger.Error("AuthService:Login:GenerateToken:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// Logout blacklists the token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	tokenData, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}

	ttl := time.Until(tokenData.Expiry)
	if err := s.cache.BlacklistToken(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:BlacklistToken:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke token", err)
	}

	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("AuthService:GetProfile:GetUserByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch profile", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("AuthService:UpdateProfile:GetUserByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch profile", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.Department != "" {
		user.Department = &req.Department
	}
	if req.Semester != "" {
		user.Semester = &req.Semester
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		logger.Error("AuthService:UpdateProfile:UpdateProfile:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update profile", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		RollNumber: user.RollNumber,
		Department: user.Department,
		Semester:   user.Semester,
		Phone:      user.Phone,
		Avatar:     user.Avatar,
		CreatedAt:  user.CreatedAt,
	}
}
