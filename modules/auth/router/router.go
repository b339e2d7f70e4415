package router

import (
	"campus-events-api/core/middleware"
	"campus-events-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	group := g.Group("/auth")
	group.POST("/register", r.controller.Register)
	group.POST("/login", r.controller.Login)
	group.POST("/logout", r.controller.Logout, mw.AuthMiddleware())
	group.GET("/me", r.controller.Me, mw.AuthMiddleware())
	group.PUT("/profile", r.controller.UpdateProfile, mw.AuthMiddleware())
}
