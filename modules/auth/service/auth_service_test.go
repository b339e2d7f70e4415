package service

import (
	"context"
	"testing"
	"time"

	"campus-events-api/core/config"
	"campus-events-api/core/errors"
	"campus-events-api/modules/auth/dto"
	"campus-events-api/modules/auth/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Token helpers read the config singleton; defaults are enough here.
	if _, err := config.Load(); err != nil {
		panic(err)
	}
	m.Run()
}

type memAuthRepo struct {
	byID map[uuid.UUID]*entity.User
}

func newMemAuthRepo() *memAuthRepo {
	return &memAuthRepo{byID: map[uuid.UUID]*entity.User{}}
}

func (r *memAuthRepo) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	created := *user
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.byID[created.ID] = &created
	out := created
	return &out, nil
}

func (r *memAuthRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (r *memAuthRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memAuthRepo) GetUserByRollNumber(ctx context.Context, rollNumber string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.RollNumber != nil && *u.RollNumber == rollNumber {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memAuthRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	u := *user
	r.byID[user.ID] = &u
	return nil
}

type memCache struct {
	values      map[string]string
	blacklisted map[string]bool
}

func newMemCache() *memCache {
	return &memCache{values: map[string]string{}, blacklisted: map[string]bool{}}
}

func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	return c.values[key], nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *memCache) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	c.blacklisted[token] = true
	return nil
}

func (c *memCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return c.blacklisted[token], nil
}

func newAuthFixture() (*AuthService, *memAuthRepo, *memCache) {
	repo := newMemAuthRepo()
	cache := newMemCache()
	return NewAuthService(repo, cache), repo, cache
}

func registerStudent(t *testing.T, svc *AuthService) *dto.AuthResponse {
	t.Helper()
	resp, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:       "Asha Verma",
		Email:      "asha@campus.edu",
		Password:   "secret123",
		RollNumber: "CS-1042",
		Department: "Computer Science",
	})
	require.Nil(t, appErr)
	return resp
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	svc, _, _ := newAuthFixture()

	resp := registerStudent(t, svc)
	assert.Equal(t, entity.RoleStudent, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User.RollNumber)
	assert.Equal(t, "CS-1042", *resp.User.RollNumber)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registerStudent(t, svc)

	_, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Other",
		Email:    "asha@campus.edu",
		Password: "secret123",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestRegisterDuplicateRollNumber(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registerStudent(t, svc)

	_, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:       "Other",
		Email:      "other@campus.edu",
		Password:   "secret123",
		RollNumber: "CS-1042",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registerStudent(t, svc)
	ctx := context.Background()

	resp, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "asha@campus.edu", Password: "secret123"})
	require.Nil(t, appErr)
	assert.NotEmpty(t, resp.Token)

	_, appErr = svc.Login(ctx, &dto.LoginRequest{Email: "asha@campus.edu", Password: "wrong"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)

	_, appErr = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@campus.edu", Password: "secret123"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}

func TestLoginWrongPortal(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registerStudent(t, svc)

	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@campus.edu",
		Password: "secret123",
		Role:     entity.RoleManager,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	resp := registerStudent(t, svc)
	repo.byID[resp.User.ID].IsActive = false

	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@campus.edu",
		Password: "secret123",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, _, cache := newAuthFixture()
	resp := registerStudent(t, svc)

	appErr := svc.Logout(context.Background(), resp.Token)
	require.Nil(t, appErr)
	assert.True(t, cache.blacklisted[resp.Token])
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _, _ := newAuthFixture()
	resp := registerStudent(t, svc)

	updated, appErr := svc.UpdateProfile(context.Background(), resp.User.ID, &dto.UpdateProfileRequest{
		Phone: "9876543210",
	})
	require.Nil(t, appErr)
	assert.Equal(t, "Asha Verma", updated.Name, "unset fields stay untouched")
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "9876543210", *updated.Phone)
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, appErr := svc.GetProfile(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
