package auth

import (
	"campus-events-api/core/cache"
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	"campus-events-api/modules/auth/controller"
	"campus-events-api/modules/auth/repository"
	"campus-events-api/modules/auth/router"
	"campus-events-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.Database, cache cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo, cache)
	ctrl := controller.NewAuthController(svc)
	router.NewAuthRouter(ctrl).Register(g, mw)
}
