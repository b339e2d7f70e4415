package router

import (
	"campus-events-api/core/middleware"
	authEntity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/certificate/controller"

	"github.com/labstack/echo/v4"
)

type CertificateRouter struct {
	controller *controller.CertificateController
}

func NewCertificateRouter(controller *controller.CertificateController) *CertificateRouter {
	return &CertificateRouter{controller: controller}
}

func (r *CertificateRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	group := g.Group("/certificates")

	// Public verification
	group.GET("/verify/:serial", r.controller.Verify)

	group.GET("/my", r.controller.MyCertificates, mw.AuthMiddleware())
	group.POST("/registrations/:id", r.controller.Issue,
		mw.AuthMiddleware(), mw.RequireRoles(authEntity.RoleManager, authEntity.RoleAdmin))
}
