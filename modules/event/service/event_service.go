package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	"campus-events-api/core/storage"
	authEntity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/event/dto"
	"campus-events-api/modules/event/entity"
	"campus-events-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
)

// Actor identifies the authenticated caller for authorization decisions.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// CanManage reports whether the actor may mutate the event: its owner or
// an admin.
func (a Actor) CanManage(event *entity.Event) bool {
	return event.CreatedBy == a.UserID || a.Role == authEntity.RoleAdmin
}

// EventService handles event business logic.
type EventService struct {
	repo     repository.EventRepositoryInterface
	uploader storage.Uploader
}

func NewEventService(repo repository.EventRepositoryInterface, uploader storage.Uploader) *EventService {
	return &EventService{repo: repo, uploader: uploader}
}

func (s *EventService) CreateEvent(ctx context.Context, actor Actor, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid event date, expected YYYY-MM-DD", err)
	}

	event := &entity.Event{
		Title:           strings.TrimSpace(req.Title),
		Slug:            slug.Make(req.Title),
		Description:     req.Description,
		Category:        entity.EventCategory(strings.ToLower(req.Category)),
		Date:            date,
		Time:            req.Time,
		Venue:           strings.TrimSpace(req.Venue),
		Organizer:       strings.TrimSpace(req.Organizer),
		Prerequisites:   req.Prerequisites,
		Tags:            normalizeTags(req.Tags),
		MaxParticipants: req.MaxParticipants,
		Status:          entity.EventStatusOpen,
		CreatedBy:       actor.UserID,
	}
	if event.Prerequisites == "" {
		event.Prerequisites = "None"
	}
	if req.Department != "" {
		event.Department = &req.Department
	}
	if req.Duration != "" {
		event.Duration = &req.Duration
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		logger.Error("EventService:CreateEvent:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create event", err)
	}

	resp := dto.ToEventResponse(created, false)
	return &resp, nil
}

// ListEvents returns filtered events; when the caller is authenticated,
// each entry carries whether they hold an active registration for it.
func (s *EventService) ListEvents(ctx context.Context, filter dto.ListEventsFilter, userID *uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.ListEvents(ctx, filter)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch events", err)
	}

	registered := map[uuid.UUID]bool{}
	if userID != nil {
		ids, err := s.repo.ListActiveEventIDsForUser(ctx, *userID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch registrations", err)
		}
		for _, id := range ids {
			registered[id] = true
		}
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, dto.ToEventResponse(&events[i], registered[events[i].ID]))
	}
	return responses, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID uuid.UUID, userID *uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	isRegistered := false
	if userID != nil {
		ids, err := s.repo.ListActiveEventIDsForUser(ctx, *userID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch registrations", err)
		}
		for _, id := range ids {
			if id == event.ID {
				isRegistered = true
				break
			}
		}
	}

	resp := dto.ToEventResponse(event, isRegistered)
	return &resp, nil
}

func (s *EventService) GetMyEvents(ctx context.Context, actor Actor) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.ListEventsByCreator(ctx, actor.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch your events", err)
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, dto.ToEventResponse(&events[i], false))
	}
	return responses, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, actor Actor, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if !actor.CanManage(event) {
		return nil, errors.NewAppError(errors.ErrForbidden, "not authorized to update this event", nil)
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
		event.Slug = slug.Make(event.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Category != nil {
		event.Category = entity.EventCategory(strings.ToLower(*req.Category))
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid event date, expected YYYY-MM-DD", err)
		}
		event.Date = date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Venue != nil {
		event.Venue = strings.TrimSpace(*req.Venue)
	}
	if req.Organizer != nil {
		event.Organizer = strings.TrimSpace(*req.Organizer)
	}
	if req.Department != nil {
		event.Department = req.Department
	}
	if req.Duration != nil {
		event.Duration = req.Duration
	}
	if req.Prerequisites != nil {
		event.Prerequisites = *req.Prerequisites
	}
	if req.Tags != nil {
		event.Tags = normalizeTags(*req.Tags)
	}
	if req.MaxParticipants != nil {
		// Capacity may never drop below seats already taken.
		if *req.MaxParticipants < event.CurrentRegistrations {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("max participants cannot be lower than the %d current registrations", event.CurrentRegistrations), nil)
		}
		event.MaxParticipants = *req.MaxParticipants
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		logger.Error("EventService:UpdateEvent:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update event", err)
	}

	resp := dto.ToEventResponse(event, false)
	return &resp, nil
}

// DeleteEvent removes an event and all its registrations.
func (s *EventService) DeleteEvent(ctx context.Context, actor Actor, eventID uuid.UUID) *errors.AppError {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to fetch event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if !actor.CanManage(event) {
		return errors.NewAppError(errors.ErrForbidden, "not authorized to delete this event", nil)
	}

	if err := s.repo.DeleteEventCascade(ctx, eventID); err != nil {
		logger.Error("EventService:DeleteEvent:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete event", err)
	}

	return nil
}

// CloseEvent stops further registrations.
func (s *EventService) CloseEvent(ctx context.Context, actor Actor, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if !actor.CanManage(event) {
		return nil, errors.NewAppError(errors.ErrForbidden, "not authorized to close this event", nil)
	}

	if err := s.repo.UpdateStatus(ctx, eventID, entity.EventStatusClosed); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to close event", err)
	}

	event.Status = entity.EventStatusClosed
	resp := dto.ToEventResponse(event, false)
	return &resp, nil
}

// ReopenEvent resumes registrations for a closed event.
func (s *EventService) ReopenEvent(ctx context.Context, actor Actor, eventID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if !actor.CanManage(event) {
		return nil, errors.NewAppError(errors.ErrForbidden, "not authorized to reopen this event", nil)
	}
	if event.Status == entity.EventStatusOpen {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event is already open", nil)
	}

	if err := s.repo.UpdateStatus(ctx, eventID, entity.EventStatusOpen); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to reopen event", err)
	}

	event.Status = entity.EventStatusOpen
	resp := dto.ToEventResponse(event, false)
	return &resp, nil
}

// UploadImage stores an event banner and saves its URL on the event.
func (s *EventService) UploadImage(ctx context.Context, actor Actor, eventID uuid.UUID, filename, contentType string, body io.Reader) (string, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to fetch event", err)
	}
	if event == nil {
		return "", errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if !actor.CanManage(event) {
		return "", errors.NewAppError(errors.ErrForbidden, "not authorized to update this event", nil)
	}

	if !allowedImageType(contentType) {
		return "", errors.NewAppError(errors.ErrInvalidInput, "only jpeg, png, gif or webp images are allowed", nil)
	}

	key := fmt.Sprintf("events/%s/banner-%d%s", eventID, time.Now().UnixMilli(), path.Ext(filename))
	url, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		logger.Error("EventService:UploadImage:Upload:Error:", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to store image", err)
	}

	if err := s.repo.UpdateImage(ctx, eventID, url); err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to save image reference", err)
	}

	return url, nil
}

// CloseExpiredEvents is the periodic sweep run by the background worker.
func (s *EventService) CloseExpiredEvents(ctx context.Context) (int, error) {
	return s.repo.CloseExpired(ctx)
}

func parseEventDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func normalizeTags(tags []string) pq.StringArray {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func allowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
