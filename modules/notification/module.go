package notification

import (
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	"campus-events-api/modules/notification/controller"
	"campus-events-api/modules/notification/repository"
	"campus-events-api/modules/notification/router"
	"campus-events-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(g, mw)

	return svc
}
