package event

import (
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	"campus-events-api/core/storage"
	"campus-events-api/modules/event/controller"
	"campus-events-api/modules/event/repository"
	"campus-events-api/modules/event/router"
	"campus-events-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init wires the event module and returns its service for the background
// worker's expired-event sweep.
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, uploader storage.Uploader) *service.EventService {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, uploader)
	ctrl := controller.NewEventController(svc)
	router.NewEventRouter(ctrl).Register(g, mw)
	return svc
}
