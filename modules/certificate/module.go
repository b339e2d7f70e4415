package certificate

import (
	"campus-events-api/core/database"
	"campus-events-api/core/middleware"
	"campus-events-api/modules/certificate/controller"
	"campus-events-api/modules/certificate/repository"
	"campus-events-api/modules/certificate/router"
	"campus-events-api/modules/certificate/service"
	eventRepository "campus-events-api/modules/event/repository"
	notifService "campus-events-api/modules/notification/service"
	regRepository "campus-events-api/modules/registration/repository"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, notifier *notifService.NotificationService) {
	repo := repository.NewCertificateRepository(db)
	regRepo := regRepository.NewRegistrationRepository(db)
	eventRepo := eventRepository.NewEventRepository(db)
	svc := service.NewCertificateService(repo, regRepo, eventRepo, notifier)
	ctrl := controller.NewCertificateController(svc)

	router.NewCertificateRouter(ctrl).Register(g, mw)
}
