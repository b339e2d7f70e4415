package controller

import (
	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/core/middleware"
	"campus-events-api/core/params"
	"campus-events-api/modules/user/dto"
	"campus-events-api/modules/user/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserController struct {
	service *service.UserService
	controller.BaseController
}

func NewUserController(service *service.UserService) *UserController {
	return &UserController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// ListUsers returns the user directory
// @Summary List users
// @Tags User
// @Security BearerAuth
// @Produce json
// @Param role query string false "Filter by role"
// @Param search query string false "Search name, email and roll number"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /users [get]
func (c *UserController) ListUsers(ctx echo.Context) error {
	filter := dto.ListUsersFilter{
		Role:   ctx.QueryParam("role"),
		Search: ctx.QueryParam("search"),
	}
	queryParams := params.NewQueryParams(ctx)

	result, appErr := c.service.ListUsers(ctx.Request().Context(), filter, *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Users retrieved successfully")
}

// UpdateStatus activates or deactivates an account
// @Summary Update user status
// @Tags User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /users/{id}/status [put]
func (c *UserController) UpdateStatus(ctx echo.Context) error {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user id", nil)
	}

	requestData := new(dto.UpdateStatusRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}
	if err := ctx.Validate(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error(), nil)
	}

	if appErr := c.service.UpdateStatus(ctx.Request().Context(), userID, *requestData.IsActive); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "User status updated successfully")
}

// GetMyStats returns the current user's dashboard counters
// @Summary Get my stats
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserStatsResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /users/stats [get]
func (c *UserController) GetMyStats(ctx echo.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	stats, appErr := c.service.GetMyStats(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, stats, "Stats retrieved successfully")
}
