package router

import (
	"campus-events-api/core/middleware"
	authEntity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/user/controller"

	"github.com/labstack/echo/v4"
)

type UserRouter struct {
	controller *controller.UserController
}

func NewUserRouter(controller *controller.UserController) *UserRouter {
	return &UserRouter{controller: controller}
}

func (r *UserRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	group := g.Group("/users", mw.AuthMiddleware())

	group.GET("/stats", r.controller.GetMyStats)

	managerOnly := mw.RequireRoles(authEntity.RoleManager, authEntity.RoleAdmin)
	group.GET("", r.controller.ListUsers, managerOnly)
	group.PUT("/:id/status", r.controller.UpdateStatus, mw.RequireRoles(authEntity.RoleAdmin))
}
