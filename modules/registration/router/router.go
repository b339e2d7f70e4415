package router

import (
	"campus-events-api/core/middleware"
	authEntity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/registration/controller"

	"github.com/labstack/echo/v4"
)

type RegistrationRouter struct {
	controller *controller.RegistrationController
}

func NewRegistrationRouter(controller *controller.RegistrationController) *RegistrationRouter {
	return &RegistrationRouter{controller: controller}
}

func (r *RegistrationRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	auth := mw.AuthMiddleware()

	group := g.Group("/registrations", auth)
	group.POST("", r.controller.Register, mw.RequireRoles(authEntity.RoleStudent))
	group.GET("/my", r.controller.MyRegistrations)
	group.DELETE("/:id", r.controller.Cancel)
	group.POST("/:id/feedback", r.controller.SubmitFeedback)

	managerOnly := []echo.MiddlewareFunc{
		auth,
		mw.RequireRoles(authEntity.RoleManager, authEntity.RoleAdmin),
	}
	group.PUT("/:id/check-in", r.controller.CheckIn, mw.RequireRoles(authEntity.RoleManager, authEntity.RoleAdmin))

	// Attendee views hang off the event resource.
	events := g.Group("/events")
	events.GET("/:id/attendees", r.controller.EventAttendees, managerOnly...)
	events.GET("/:id/attendees/export", r.controller.ExportAttendees, managerOnly...)
}
