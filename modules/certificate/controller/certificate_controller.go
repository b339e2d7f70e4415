package controller

import (
	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/core/middleware"
	"campus-events-api/modules/certificate/service"
	eventService "campus-events-api/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CertificateController struct {
	service *service.CertificateService
	controller.BaseController
}

func NewCertificateController(service *service.CertificateService) *CertificateController {
	return &CertificateController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Issue mints a certificate for an attended registration
// @Summary Issue a certificate
// @Tags Certificate
// @Security BearerAuth
// @Produce json
// @Param id path string true "Registration id"
// @Success 201 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /certificates/registrations/{id} [post]
func (c *CertificateController) Issue(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	registrationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid registration id", nil)
	}

	result, appErr := c.service.Issue(ctx.Request().Context(), actor, registrationID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Certificate issued successfully")
}

// MyCertificates lists the current user's certificates
// @Summary List my certificates
// @Tags Certificate
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /certificates/my [get]
func (c *CertificateController) MyCertificates(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.MyCertificates(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]any{"count": len(result), "certificates": result}, "Certificates retrieved successfully")
}

// Verify checks a certificate serial
// @Summary Verify a certificate
// @Tags Certificate
// @Produce json
// @Param serial path string true "Certificate serial"
// @Success 200 {object} dto.VerificationResponse
// @Router /certificates/verify/{serial} [get]
func (c *CertificateController) Verify(ctx echo.Context) error {
	serial := ctx.Param("serial")
	if serial == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Serial is required", nil)
	}

	result, appErr := c.service.Verify(ctx.Request().Context(), serial)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Verification completed")
}

func actorFromContext(ctx echo.Context) (eventService.Actor, bool) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return eventService.Actor{}, false
	}
	return eventService.Actor{UserID: userID, Role: middleware.RoleFromContext(ctx)}, true
}
