package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	coreEntity "campus-events-api/core/entity"
	"campus-events-api/core/errors"
	authEntity "campus-events-api/modules/auth/entity"
	"campus-events-api/modules/event/dto"
	"campus-events-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memEventRepo struct {
	events     map[uuid.UUID]*entity.Event
	activeRegs map[uuid.UUID][]uuid.UUID // userID -> event ids
	deleted    []uuid.UUID
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{
		events:     map[uuid.UUID]*entity.Event{},
		activeRegs: map[uuid.UUID][]uuid.UUID{},
	}
}

func (r *memEventRepo) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	created := *event
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.events[created.ID] = &created
	out := created
	return &out, nil
}

func (r *memEventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	e := *event
	return &e, nil
}

func (r *memEventRepo) ListEvents(ctx context.Context, filter dto.ListEventsFilter) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, nil
}

func (r *memEventRepo) ListEventsByCreator(ctx context.Context, createdBy uuid.UUID) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range r.events {
		if e.CreatedBy == createdBy {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memEventRepo) UpdateEvent(ctx context.Context, event *entity.Event) error {
	e := *event
	r.events[event.ID] = &e
	return nil
}

func (r *memEventRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EventStatus) error {
	r.events[id].Status = status
	return nil
}

func (r *memEventRepo) UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	r.events[id].Image = &imageURL
	return nil
}

func (r *memEventRepo) DeleteEventCascade(ctx context.Context, id uuid.UUID) error {
	delete(r.events, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *memEventRepo) ListActiveEventIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.activeRegs[userID], nil
}

func (r *memEventRepo) CloseExpired(ctx context.Context) (int, error) {
	n := 0
	today := time.Now().Truncate(24 * time.Hour)
	for _, e := range r.events {
		if e.Status == entity.EventStatusOpen && e.Date.Before(today) {
			e.Status = entity.EventStatusClosed
			n++
		}
	}
	return n, nil
}

type memUploader struct {
	uploads map[string]string
}

func (u *memUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if u.uploads == nil {
		u.uploads = map[string]string{}
	}
	u.uploads[key] = contentType
	return "https://cdn.example.com/" + key, nil
}

func (u *memUploader) Delete(ctx context.Context, key string) error {
	delete(u.uploads, key)
	return nil
}

func newEventFixture() (*EventService, *memEventRepo, Actor) {
	repo := newMemEventRepo()
	svc := NewEventService(repo, &memUploader{})
	manager := Actor{UserID: uuid.New(), Role: authEntity.RoleManager}
	return svc, repo, manager
}

func seedEvent(repo *memEventRepo, createdBy uuid.UUID, status entity.EventStatus) *entity.Event {
	event := &entity.Event{
		BaseEntity:      coreEntity.BaseEntity{ID: uuid.New()},
		Title:           "Robotics Workshop",
		Slug:            "robotics-workshop",
		Category:        entity.CategoryWorkshop,
		Date:            time.Now().AddDate(0, 0, 3),
		Time:            "2:00 PM",
		Venue:           "Lab 4",
		Organizer:       "Robotics Club",
		MaxParticipants: 30,
		Status:          status,
		CreatedBy:       createdBy,
	}
	repo.events[event.ID] = event
	return event
}

func TestCreateEventDefaults(t *testing.T) {
	svc, _, manager := newEventFixture()

	resp, appErr := svc.CreateEvent(context.Background(), manager, &dto.CreateEventRequest{
		Title:           "  AI Summit 2026  ",
		Description:     "A day of talks",
		Category:        "Technical",
		Date:            "2026-09-15",
		Time:            "9:00 AM",
		Venue:           "Main Hall",
		Organizer:       "CS Department",
		MaxParticipants: 120,
		Tags:            []string{" ml ", "", "research"},
	})
	require.Nil(t, appErr)

	assert.Equal(t, "AI Summit 2026", resp.Title)
	assert.Equal(t, "ai-summit-2026", resp.Slug)
	assert.Equal(t, "technical", resp.Category)
	assert.Equal(t, "None", resp.Prerequisites)
	assert.Equal(t, []string{"ml", "research"}, resp.Tags)
	assert.Equal(t, "open", resp.Status)
	assert.Equal(t, 0, resp.CurrentRegistrations)
}

func TestCreateEventRejectsBadDate(t *testing.T) {
	svc, _, manager := newEventFixture()

	_, appErr := svc.CreateEvent(context.Background(), manager, &dto.CreateEventRequest{
		Title: "X", Description: "d", Category: "technical", Date: "15/09/2026",
		Time: "9:00", Venue: "v", Organizer: "o", MaxParticipants: 10,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestGetEventMarksRegistration(t *testing.T) {
	svc, repo, manager := newEventFixture()
	event := seedEvent(repo, manager.UserID, entity.EventStatusOpen)
	student := uuid.New()
	repo.activeRegs[student] = []uuid.UUID{event.ID}

	resp, appErr := svc.GetEvent(context.Background(), event.ID, &student)
	require.Nil(t, appErr)
	assert.True(t, resp.IsRegistered)

	other := uuid.New()
	resp, appErr = svc.GetEvent(context.Background(), event.ID, &other)
	require.Nil(t, appErr)
	assert.False(t, resp.IsRegistered)
}

func TestUpdateEventCapacityFloor(t *testing.T) {
	svc, repo, manager := newEventFixture()
	event := seedEvent(repo, manager.UserID, entity.EventStatusOpen)
	event.CurrentRegistrations = 12

	lower := 10
	_, appErr := svc.UpdateEvent(context.Background(), manager, event.ID, &dto.UpdateEventRequest{
		MaxParticipants: &lower,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	higher := 40
	resp, appErr := svc.UpdateEvent(context.Background(), manager, event.ID, &dto.UpdateEventRequest{
		MaxParticipants: &higher,
	})
	require.Nil(t, appErr)
	assert.Equal(t, 40, resp.MaxParticipants)
}

func TestUpdateEventForbiddenForStranger(t *testing.T) {
	svc, repo, manager := newEventFixture()
	event := seedEvent(repo, manager.UserID, entity.EventStatusOpen)

	stranger := Actor{UserID: uuid.New(), Role: authEntity.RoleManager}
	title := "Hijacked"
	_, appErr := svc.UpdateEvent(context.Background(), stranger, event.ID, &dto.UpdateEventRequest{Title: &title})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestAdminCanManageAnyEvent(t *testing.T) {
	svc, repo, manager := newEventFixture()
	event := seedEvent(repo, manager.UserID, entity.EventStatusOpen)

	admin := Actor{UserID: uuid.New(), Role: authEntity.RoleAdmin}
	resp, appErr := svc.CloseEvent(context.Background(), admin, event.ID)
	require.Nil(t, appErr)
	assert.Equal(t, "closed", resp.Status)
}

func TestReopenAlreadyOpenEvent(t *testing.T) {
	svc, repo, manager := newEventFixture()
	event := seedEvent(repo, manager.UserID, entity.EventStatusOpen)

	_, appErr := svc.ReopenEvent(context.Background(), manager, event.ID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	assert.Contains(t, appErr.Message, "already open")
}

func TestCloseThenReopen(t *testing.T) {
	svc, repo, manager := newEventFixture()
	event := seedEvent(repo, manager.UserID, entity.EventStatusOpen)
	ctx := context.Background()

	_, appErr := svc.CloseEvent(ctx, manager, event.ID)
	require.Nil(t, appErr)
	assert.Equal(t, entity.EventStatusClosed, repo.events[event.ID].Status)

	resp, appErr := svc.ReopenEvent(ctx, manager, event.ID)
	require.Nil(t, appErr)
	assert.Equal(t, "open", resp.Status)
}

func TestDeleteEventCascades(t *testing.T) {
	svc, repo, manager := newEventFixture()
	event := seedEvent(repo, manager.UserID, entity.EventStatusOpen)

	appErr := svc.DeleteEvent(context.Background(), manager, event.ID)
	require.Nil(t, appErr)
	assert.Contains(t, repo.deleted, event.ID)

	_, appErr = svc.GetEvent(context.Background(), event.ID, nil)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestUploadImageRejectsUnknownType(t *testing.T) {
	svc, repo, manager := newEventFixture()
	event := seedEvent(repo, manager.UserID, entity.EventStatusOpen)

	_, appErr := svc.UploadImage(context.Background(), manager, event.ID,
		"banner.pdf", "application/pdf", strings.NewReader("not an image"))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestUploadImageStoresURL(t *testing.T) {
	svc, repo, manager := newEventFixture()
	event := seedEvent(repo, manager.UserID, entity.EventStatusOpen)

	url, appErr := svc.UploadImage(context.Background(), manager, event.ID,
		"banner.png", "image/png", strings.NewReader("png bytes"))
	require.Nil(t, appErr)
	assert.Contains(t, url, "events/"+event.ID.String())
	require.NotNil(t, repo.events[event.ID].Image)
	assert.Equal(t, url, *repo.events[event.ID].Image)
}

func TestCloseExpiredEvents(t *testing.T) {
	svc, repo, manager := newEventFixture()
	past := seedEvent(repo, manager.UserID, entity.EventStatusOpen)
	past.Date = time.Now().AddDate(0, 0, -2)
	seedEvent(repo, manager.UserID, entity.EventStatusOpen)

	n, err := svc.CloseExpiredEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, entity.EventStatusClosed, repo.events[past.ID].Status)
}
