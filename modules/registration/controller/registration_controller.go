package controller

import (
	"fmt"
	"net/http"

	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/core/middleware"
	eventService "campus-events-api/modules/event/service"
	"campus-events-api/modules/registration/dto"
	"campus-events-api/modules/registration/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RegistrationController struct {
	service *service.RegistrationService
	controller.BaseController
}

func NewRegistrationController(service *service.RegistrationService) *RegistrationController {
	return &RegistrationController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Register books a seat on an event for the current user
// @Summary Register for an event
// @Tags Registration
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Event to register for"
// @Success 201 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /registrations [post]
func (c *RegistrationController) Register(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	requestData := new(dto.RegisterRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}
	if err := ctx.Validate(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error(), nil)
	}

	result, appErr := c.service.Register(ctx.Request().Context(), userID, requestData.EventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Registered successfully")
}

// Cancel releases the current user's seat
// @Summary Cancel a registration
// @Tags Registration
// @Security BearerAuth
// @Produce json
// @Param id path string true "Registration id"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /registrations/{id} [delete]
func (c *RegistrationController) Cancel(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	registrationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid registration id", nil)
	}

	if appErr := c.service.Cancel(ctx.Request().Context(), userID, registrationID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Registration cancelled successfully")
}

// MyRegistrations lists the current user's registrations
// @Summary List my registrations
// @Tags Registration
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /registrations/my [get]
func (c *RegistrationController) MyRegistrations(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	result, appErr := c.service.MyRegistrations(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]any{"count": len(result), "registrations": result}, "Registrations retrieved successfully")
}

// EventAttendees lists the active registrations of an event
// @Summary List event attendees
// @Tags Registration
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id}/attendees [get]
func (c *RegistrationController) EventAttendees(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	result, appErr := c.service.EventAttendees(ctx.Request().Context(), actor, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]any{"count": len(result), "attendees": result}, "Attendees retrieved successfully")
}

// ExportAttendees downloads the attendee list as csv or xlsx
// @Summary Export event attendees
// @Tags Registration
// @Security BearerAuth
// @Produce octet-stream
// @Param id path string true "Event id"
// @Param format query string false "csv | xlsx" default(csv)
// @Success 200 {file} file
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id}/attendees/export [get]
func (c *RegistrationController) ExportAttendees(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	export, appErr := c.service.ExportAttendees(ctx.Request().Context(), actor, eventID, ctx.QueryParam("format"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, export.FileName))
	return ctx.Blob(http.StatusOK, export.ContentType, export.Content)
}

// CheckIn marks a registration as attended
// @Summary Check in an attendee
// @Tags Registration
// @Security BearerAuth
// @Produce json
// @Param id path string true "Registration id"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /registrations/{id}/check-in [put]
func (c *RegistrationController) CheckIn(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	registrationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid registration id", nil)
	}

	result, appErr := c.service.CheckIn(ctx.Request().Context(), actor, registrationID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Checked in successfully")
}

// SubmitFeedback stores the attendee's rating for an event
// @Summary Submit event feedback
// @Tags Registration
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Registration id"
// @Param request body dto.FeedbackRequest true "Rating and comment"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /registrations/{id}/feedback [post]
func (c *RegistrationController) SubmitFeedback(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	registrationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid registration id", nil)
	}

	requestData := new(dto.FeedbackRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}
	if err := ctx.Validate(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error(), nil)
	}

	if appErr := c.service.SubmitFeedback(ctx.Request().Context(), userID, registrationID, requestData); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Feedback submitted successfully")
}

func actorFromContext(ctx echo.Context) (eventService.Actor, bool) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return eventService.Actor{}, false
	}
	return eventService.Actor{UserID: userID, Role: middleware.RoleFromContext(ctx)}, true
}
