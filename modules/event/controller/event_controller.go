package controller

import (
	"campus-events-api/core/constants"
	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/core/middleware"
	"campus-events-api/core/utils"
	"campus-events-api/modules/event/dto"
	"campus-events-api/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	service *service.EventService
	controller.BaseController
}

func NewEventController(service *service.EventService) *EventController {
	return &EventController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// ListEvents returns the browsable event catalogue
// @Summary List events
// @Tags Event
// @Produce json
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param search query string false "Search title, organizer and tags"
// @Param sortBy query string false "date | popularity | availability"
// @Success 200 {object} controller.SuccessResponse
// @Router /events [get]
func (c *EventController) ListEvents(ctx echo.Context) error {
	filter := dto.ListEventsFilter{
		Category: ctx.QueryParam("category"),
		Status:   ctx.QueryParam("status"),
		Search:   ctx.QueryParam("search"),
		SortBy:   ctx.QueryParam("sortBy"),
	}

	events, appErr := c.service.ListEvents(ctx.Request().Context(), filter, optionalUserID(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]any{"count": len(events), "events": events}, "Events retrieved successfully")
}

// GetEvent returns a single event
// @Summary Get event by id
// @Tags Event
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} controller.SuccessResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	event, appErr := c.service.GetEvent(ctx.Request().Context(), eventID, optionalUserID(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event retrieved successfully")
}

// CreateEvent creates a new event
// @Summary Create event
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 201 {object} controller.SuccessResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /events [post]
func (c *EventController) CreateEvent(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required", nil)
	}

	requestData := new(dto.CreateEventRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}
	if err := ctx.Validate(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", err.Error())
	}

	event, appErr := c.service.CreateEvent(ctx.Request().Context(), actor, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, event, "Event created successfully")
}

// UpdateEvent updates an event's details
// @Summary Update event
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event id"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required", nil)
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	requestData := new(dto.UpdateEventRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}
	if err := ctx.Validate(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", err.Error())
	}

	event, appErr := c.service.UpdateEvent(ctx.Request().Context(), actor, eventID, requestData)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event updated successfully")
}

// DeleteEvent deletes an event and its registrations
// @Summary Delete event
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required", nil)
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	if appErr := c.service.DeleteEvent(ctx.Request().Context(), actor, eventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// GetMyEvents lists the manager's own events
// @Summary List my events
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Router /events/manager/my-events [get]
func (c *EventController) GetMyEvents(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required", nil)
	}

	events, appErr := c.service.GetMyEvents(ctx.Request().Context(), actor)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]any{"count": len(events), "events": events}, "Events retrieved successfully")
}

// CloseEvent closes registrations
// @Summary Close event registrations
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} controller.SuccessResponse
// @Router /events/{id}/close [put]
func (c *EventController) CloseEvent(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required", nil)
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	event, appErr := c.service.CloseEvent(ctx.Request().Context(), actor, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event closed successfully")
}

// ReopenEvent reopens registrations
// @Summary Reopen event registrations
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} controller.SuccessResponse
// @Router /events/{id}/reopen [put]
func (c *EventController) ReopenEvent(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required", nil)
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	event, appErr := c.service.ReopenEvent(ctx.Request().Context(), actor, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event reopened successfully")
}

// UploadImage stores an event banner image
// @Summary Upload event image
// @Tags Event
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Event id"
// @Param image formData file true "Image file"
// @Success 200 {object} controller.SuccessResponse
// @Router /events/{id}/image [post]
func (c *EventController) UploadImage(ctx echo.Context) error {
	actor, ok := actorFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Authentication required", nil)
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id", nil)
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Image file is required", nil)
	}
	if file.Size > constants.MaxImageUploadBytes {
		return c.BadRequest(errors.ErrInvalidInput, "Image exceeds the 5 MiB limit", nil)
	}

	src, err := file.Open()
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to read uploaded file", nil)
	}
	defer src.Close()

	url, appErr := c.service.UploadImage(ctx.Request().Context(), actor, eventID,
		file.Filename, file.Header.Get("Content-Type"), src)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]string{"image": url}, "Image uploaded successfully")
}

func actorFromContext(ctx echo.Context) (service.Actor, bool) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, Role: middleware.RoleFromContext(ctx)}, true
}

// optionalUserID resolves the caller's identity when a bearer token is
// present; public listing endpoints work either way.
func optionalUserID(ctx echo.Context) *uuid.UUID {
	if id, ok := middleware.UserIDFromContext(ctx); ok {
		return &id
	}
	token, err := utils.GetTokenFromHeader(ctx)
	if err != nil {
		return nil
	}
	tokenData, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return nil
	}
	return &tokenData.UserID
}
