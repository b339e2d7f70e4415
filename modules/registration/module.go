package registration

import (
	"campus-events-api/core/database"
	"campus-events-api/core/jobs"
	"campus-events-api/core/middleware"
	authRepository "campus-events-api/modules/auth/repository"
	eventRepository "campus-events-api/modules/event/repository"
	notifService "campus-events-api/modules/notification/service"
	"campus-events-api/modules/registration/controller"
	"campus-events-api/modules/registration/repository"
	"campus-events-api/modules/registration/router"
	"campus-events-api/modules/registration/service"

	"github.com/labstack/echo/v4"
)

func Init(
	g *echo.Group,
	db database.Database,
	mw *middleware.Middleware,
	notifier *notifService.NotificationService,
	jobsClient *jobs.Client,
) *service.RegistrationService {
	repo := repository.NewRegistrationRepository(db)
	eventRepo := eventRepository.NewEventRepository(db)
	authRepo := authRepository.NewAuthRepository(db)
	svc := service.NewRegistrationService(repo, eventRepo, authRepo, notifier, jobsClient)
	ctrl := controller.NewRegistrationController(svc)

	router.NewRegistrationRouter(ctrl).Register(g, mw)

	return svc
}
