package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"campus-events-api/core/config"
	"campus-events-api/core/middleware"
	"campus-events-api/core/utils"
	"campus-events-api/core/validation"
	authEntity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/registration/controller"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if _, err := config.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type noopCache struct{}

func (noopCache) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }
func (noopCache) Get(ctx context.Context, key string) (string, error)                 { return "", nil }
func (noopCache) Delete(ctx context.Context, key string) error                        { return nil }
func (noopCache) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	return nil
}
func (noopCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return false, nil
}

// The registration controller is wired without a service: requests that
// clear the middleware chain are sent with an empty body, so the handler
// rejects them at validation before the service is touched.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Validator = validation.New()

	r := NewRegistrationRouter(controller.NewRegistrationController(nil))
	r.Register(e.Group("/api/v1"), middleware.NewMiddleware(noopCache{}))
	return e
}

func doRegister(t *testing.T, e *echo.Echo, role string) *httptest.ResponseRecorder {
	t.Helper()

	token, err := utils.GenerateToken(uuid.New(), role)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterRouteRejectsManagerRole(t *testing.T) {
	e := newTestServer(t)

	rec := doRegister(t, e, authEntity.RoleManager)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterRouteRejectsAdminRole(t *testing.T) {
	e := newTestServer(t)

	rec := doRegister(t, e, authEntity.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterRouteAdmitsStudentRole(t *testing.T) {
	e := newTestServer(t)

	// An empty body fails validation inside the handler, so a 400 shows
	// the student cleared the role gate and reached it.
	rec := doRegister(t, e, authEntity.RoleStudent)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRouteRequiresAuthentication(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
