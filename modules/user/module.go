package user

import (
	"campus-events-api/core/cache"
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	"campus-events-api/modules/user/controller"
	"campus-events-api/modules/user/repository"
	"campus-events-api/modules/user/router"
	"campus-events-api/modules/user/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.Database, cache cache.Cache, mw *middleware.Middleware) {
	repo := repository.NewUserRepository(db)
	svc := service.NewUserService(repo, cache)
	ctrl := controller.NewUserController(svc)

	router.NewUserRouter(ctrl).Register(g, mw)
}
