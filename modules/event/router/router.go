package router

import (
	"campus-events-api/core/middleware"
	authEntity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{controller: controller}
}

func (r *EventRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	group := g.Group("/events")

	// Public browsing
	group.GET("", r.controller.ListEvents)
	group.GET("/:id", r.controller.GetEvent)

	// Manager routes
	managerOnly := []echo.MiddlewareFunc{
		mw.AuthMiddleware(),
		mw.RequireRoles(authEntity.RoleManager, authEntity.RoleAdmin),
	}
	group.POST("", r.controller.CreateEvent, managerOnly...)
	group.PUT("/:id", r.controller.UpdateEvent, managerOnly...)
	group.DELETE("/:id", r.controller.DeleteEvent, managerOnly...)
	group.GET("/manager/my-events", r.controller.GetMyEvents, managerOnly...)
	group.PUT("/:id/close", r.controller.CloseEvent, managerOnly...)
	group.PUT("/:id/reopen", r.controller.ReopenEvent, managerOnly...)
	group.POST("/:id/image", r.controller.UploadImage, managerOnly...)
}
