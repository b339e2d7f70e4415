package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	coreEntity "campus-events-api/core/entity"
	"campus-events-api/core/errors"
	"campus-events-api/core/params"
	authEntity "campus-events-api/modules/auth/entity"
	eventDto "campus-events-api/modules/event/dto"
	eventEntity "campus-events-api/modules/event/entity"
	eventService "campus-events-api/modules/event/service"
	notifEntity "campus-events-api/modules/notification/entity"
	notifService "campus-events-api/modules/notification/service"
	"campus-events-api/modules/registration/dto"
	"campus-events-api/modules/registration/entity"
	"campus-events-api/modules/registration/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeState is the in-memory registration/event state shared by the fake
// repository and its transactional store.
type fakeState struct {
	event *eventEntity.Event
	regs  map[uuid.UUID]*entity.Registration
}

func (s *fakeState) clone() *fakeState {
	out := &fakeState{regs: make(map[uuid.UUID]*entity.Registration, len(s.regs))}
	if s.event != nil {
		ev := *s.event
		out.event = &ev
	}
	for id, reg := range s.regs {
		r := *reg
		out.regs[id] = &r
	}
	return out
}

type fakeRepo struct {
	state *fakeState
	users map[uuid.UUID]*authEntity.User

	// row-lock acquisitions, in order, across all transactions
	locks []string
}

func newFakeRepo(event *eventEntity.Event) *fakeRepo {
	return &fakeRepo{
		state: &fakeState{event: event, regs: map[uuid.UUID]*entity.Registration{}},
		users: map[uuid.UUID]*authEntity.User{},
	}
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(store repository.WorkflowStore) error) error {
	snapshot := f.state.clone()
	if err := fn(&fakeStore{state: f.state, repo: f}); err != nil {
		f.state = snapshot
		return err
	}
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error) {
	reg, ok := f.state.regs[id]
	if !ok {
		return nil, nil
	}
	r := *reg
	return &r, nil
}

func (f *fakeRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]entity.RegistrationWithEvent, error) {
	var out []entity.RegistrationWithEvent
	for _, reg := range f.state.regs {
		if reg.UserID != userID || reg.Status == entity.StatusCancelled {
			continue
		}
		out = append(out, entity.RegistrationWithEvent{
			Registration: *reg,
			EventTitle:   f.state.event.Title,
			EventDate:    f.state.event.Date,
			EventTime:    f.state.event.Time,
			EventVenue:   f.state.event.Venue,
			EventStatus:  string(f.state.event.Status),
		})
	}
	return out, nil
}

func (f *fakeRepo) ListActiveByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.AttendeeRow, error) {
	var out []entity.AttendeeRow
	for _, reg := range f.state.regs {
		if reg.EventID != eventID || reg.Status == entity.StatusCancelled {
			continue
		}
		row := entity.AttendeeRow{Registration: *reg, UserName: "Student", UserEmail: "student@campus.edu"}
		if u, ok := f.users[reg.UserID]; ok {
			row.UserName = u.Name
			row.UserEmail = u.Email
			row.UserRollNumber = u.RollNumber
			row.UserDepartment = u.Department
			row.UserPhone = u.Phone
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeRepo) SaveFeedback(ctx context.Context, id uuid.UUID, rating int, comment string) error {
	reg, ok := f.state.regs[id]
	if !ok {
		return sql.ErrNoRows
	}
	reg.FeedbackRating = &rating
	reg.FeedbackComment = &comment
	return nil
}

type fakeStore struct {
	state *fakeState
	repo  *fakeRepo
}

func (s *fakeStore) GetEventForUpdate(ctx context.Context, eventID uuid.UUID) (*eventEntity.Event, error) {
	s.repo.locks = append(s.repo.locks, "event")
	if s.state.event == nil || s.state.event.ID != eventID {
		return nil, nil
	}
	ev := *s.state.event
	return &ev, nil
}

func (s *fakeStore) GetRegistrationByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error) {
	reg, ok := s.state.regs[id]
	if !ok {
		return nil, nil
	}
	r := *reg
	return &r, nil
}

func (s *fakeStore) GetRegistrationByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*entity.Registration, error) {
	for _, reg := range s.state.regs {
		if reg.UserID == userID && reg.EventID == eventID {
			r := *reg
			return &r, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetRegistrationForUpdate(ctx context.Context, id uuid.UUID) (*entity.Registration, error) {
	s.repo.locks = append(s.repo.locks, "registration")
	reg, ok := s.state.regs[id]
	if !ok {
		return nil, nil
	}
	r := *reg
	return &r, nil
}

func (s *fakeStore) InsertRegistration(ctx context.Context, reg *entity.Registration) (*entity.Registration, error) {
	created := *reg
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.state.regs[created.ID] = &created
	out := created
	return &out, nil
}

func (s *fakeStore) ReactivateRegistration(ctx context.Context, id uuid.UUID, registeredAt time.Time, qrCode string) error {
	reg, ok := s.state.regs[id]
	if !ok || reg.Status != entity.StatusCancelled {
		return sql.ErrNoRows
	}
	reg.Status = entity.StatusRegistered
	reg.RegisteredAt = registeredAt
	reg.QRCode = qrCode
	reg.CheckedInAt = nil
	return nil
}

func (s *fakeStore) CancelRegistration(ctx context.Context, id uuid.UUID) error {
	reg, ok := s.state.regs[id]
	if !ok || reg.Status == entity.StatusCancelled {
		return sql.ErrNoRows
	}
	reg.Status = entity.StatusCancelled
	return nil
}

func (s *fakeStore) MarkAttended(ctx context.Context, id uuid.UUID, at time.Time) error {
	reg, ok := s.state.regs[id]
	if !ok || reg.Status != entity.StatusRegistered {
		return sql.ErrNoRows
	}
	reg.Status = entity.StatusAttended
	reg.CheckedInAt = &at
	return nil
}

func (s *fakeStore) IncrementEventCounter(ctx context.Context, eventID uuid.UUID) error {
	if s.state.event.CurrentRegistrations >= s.state.event.MaxParticipants {
		return repository.ErrCapacityConflict
	}
	s.state.event.CurrentRegistrations++
	return nil
}

func (s *fakeStore) DecrementEventCounter(ctx context.Context, eventID uuid.UUID) error {
	if s.state.event.CurrentRegistrations > 0 {
		s.state.event.CurrentRegistrations--
	}
	return nil
}

// fakeEventRepo only needs GetEventByID for attendee listings.
type fakeEventRepo struct {
	event *eventEntity.Event
}

func (f *fakeEventRepo) CreateEvent(ctx context.Context, event *eventEntity.Event) (*eventEntity.Event, error) {
	return event, nil
}

func (f *fakeEventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	if f.event == nil || f.event.ID != id {
		return nil, nil
	}
	ev := *f.event
	return &ev, nil
}

func (f *fakeEventRepo) ListEvents(ctx context.Context, filter eventDto.ListEventsFilter) ([]eventEntity.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListEventsByCreator(ctx context.Context, createdBy uuid.UUID) ([]eventEntity.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) UpdateEvent(ctx context.Context, event *eventEntity.Event) error { return nil }

func (f *fakeEventRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status eventEntity.EventStatus) error {
	return nil
}

func (f *fakeEventRepo) UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	return nil
}

func (f *fakeEventRepo) DeleteEventCascade(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeEventRepo) ListActiveEventIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeEventRepo) CloseExpired(ctx context.Context) (int, error) { return 0, nil }

type fakeAuthRepo struct {
	users map[uuid.UUID]*authEntity.User
}

func (f *fakeAuthRepo) CreateUser(ctx context.Context, user *authEntity.User) (*authEntity.User, error) {
	return user, nil
}

func (f *fakeAuthRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*authEntity.User, error) {
	return f.users[id], nil
}

func (f *fakeAuthRepo) GetUserByEmail(ctx context.Context, email string) (*authEntity.User, error) {
	return nil, nil
}

func (f *fakeAuthRepo) GetUserByRollNumber(ctx context.Context, rollNumber string) (*authEntity.User, error) {
	return nil, nil
}

func (f *fakeAuthRepo) UpdateProfile(ctx context.Context, user *authEntity.User) error { return nil }

type fakeNotifRepo struct {
	created []*notifEntity.Notification
}

func (f *fakeNotifRepo) Create(ctx context.Context, n *notifEntity.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotifRepo) GetByUserID(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*notifEntity.PaginatedNotificationEntity, error) {
	return &notifEntity.PaginatedNotificationEntity{}, nil
}

func (f *fakeNotifRepo) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return nil
}

func (f *fakeNotifRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error { return nil }

func (f *fakeNotifRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}

type fixture struct {
	svc       *RegistrationService
	repo      *fakeRepo
	notifRepo *fakeNotifRepo
	event     *eventEntity.Event
	owner     uuid.UUID
	student   uuid.UUID
}

func newFixture(t *testing.T, capacity, current int) *fixture {
	t.Helper()

	owner := uuid.New()
	student := uuid.New()
	event := &eventEntity.Event{
		BaseEntity:           coreEntity.BaseEntity{ID: uuid.New()},
		Title:                "Intro to Distributed Systems",
		Date:                 time.Now().AddDate(0, 0, 7),
		Time:                 "10:00 AM",
		Venue:                "Auditorium A",
		Status:               eventEntity.EventStatusOpen,
		MaxParticipants:      capacity,
		CurrentRegistrations: current,
		CreatedBy:            owner,
	}

	repo := newFakeRepo(event)
	roll := "CS-1042"
	repo.users[student] = &authEntity.User{
		BaseEntity: coreEntity.BaseEntity{ID: student},
		Name:       "Asha Verma",
		Email:      "asha@campus.edu",
		Role:       authEntity.RoleStudent,
		RollNumber: &roll,
	}

	notifRepo := &fakeNotifRepo{}
	svc := NewRegistrationService(
		repo,
		&fakeEventRepo{event: event},
		&fakeAuthRepo{users: repo.users},
		notifService.NewNotificationService(notifRepo),
		nil,
	)

	return &fixture{svc: svc, repo: repo, notifRepo: notifRepo, event: event, owner: owner, student: student}
}

func (fx *fixture) seedRegistration(status entity.RegistrationStatus) *entity.Registration {
	reg := &entity.Registration{
		UserID:       fx.student,
		EventID:      fx.event.ID,
		Status:       status,
		QRCode:       "data:image/png;base64,old",
		RegisteredAt: time.Now().Add(-time.Hour),
	}
	reg.ID = uuid.New()
	fx.repo.state.regs[reg.ID] = reg
	return reg
}

func appErrCode(t *testing.T, err error) errors.ErrorCode {
	t.Helper()
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected *errors.AppError, got %T: %v", err, err)
	return appErr.Code
}

func TestRegisterSuccess(t *testing.T) {
	fx := newFixture(t, 10, 0)

	result, err := fx.svc.Register(context.Background(), fx.student, fx.event.ID)
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusRegistered), result.Status)
	assert.True(t, strings.HasPrefix(result.QRCode, "data:image/png;base64,"))
	require.NotNil(t, result.Event)
	assert.Equal(t, fx.event.Title, result.Event.Title)
	require.NotNil(t, result.User)
	assert.Equal(t, "Asha Verma", result.User.Name)
	assert.Equal(t, "asha@campus.edu", result.User.Email)
	assert.Equal(t, 1, fx.repo.state.event.CurrentRegistrations)
	assert.Len(t, fx.notifRepo.created, 1)
}

func TestRegisterEventNotFound(t *testing.T) {
	fx := newFixture(t, 10, 0)

	_, err := fx.svc.Register(context.Background(), fx.student, uuid.New())
	assert.Equal(t, errors.ErrNotFound, appErrCode(t, err))
}

func TestRegisterClosedEvent(t *testing.T) {
	fx := newFixture(t, 10, 0)
	fx.repo.state.event.Status = eventEntity.EventStatusClosed

	_, err := fx.svc.Register(context.Background(), fx.student, fx.event.ID)
	assert.Equal(t, errors.ErrRegistrationsClosed, appErrCode(t, err))
	assert.Equal(t, 0, fx.repo.state.event.CurrentRegistrations)
}

func TestRegisterFullEvent(t *testing.T) {
	fx := newFixture(t, 5, 5)

	_, err := fx.svc.Register(context.Background(), fx.student, fx.event.ID)
	assert.Equal(t, errors.ErrEventFull, appErrCode(t, err))
	assert.Equal(t, 5, fx.repo.state.event.CurrentRegistrations)
	assert.Empty(t, fx.repo.state.regs)
}

func TestRegisterLastSeat(t *testing.T) {
	fx := newFixture(t, 3, 2)

	_, err := fx.svc.Register(context.Background(), fx.student, fx.event.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, fx.repo.state.event.CurrentRegistrations)

	_, err = fx.svc.Register(context.Background(), uuid.New(), fx.event.ID)
	assert.Equal(t, errors.ErrEventFull, appErrCode(t, err))
	assert.Equal(t, 3, fx.repo.state.event.CurrentRegistrations)
}

func TestRegisterTwice(t *testing.T) {
	fx := newFixture(t, 10, 0)

	_, err := fx.svc.Register(context.Background(), fx.student, fx.event.ID)
	require.NoError(t, err)

	_, err = fx.svc.Register(context.Background(), fx.student, fx.event.ID)
	assert.Equal(t, errors.ErrAlreadyRegistered, appErrCode(t, err))
	assert.Equal(t, 1, fx.repo.state.event.CurrentRegistrations)
	assert.Len(t, fx.repo.state.regs, 1)
}

func TestRegisterReactivatesCancelledInPlace(t *testing.T) {
	fx := newFixture(t, 10, 0)
	cancelled := fx.seedRegistration(entity.StatusCancelled)

	result, err := fx.svc.Register(context.Background(), fx.student, fx.event.ID)
	require.NoError(t, err)

	assert.Equal(t, cancelled.ID, result.ID, "reactivation must reuse the original row")
	assert.Equal(t, string(entity.StatusRegistered), result.Status)
	assert.NotEqual(t, "data:image/png;base64,old", result.QRCode, "QR code must be regenerated")
	assert.Equal(t, 1, fx.repo.state.event.CurrentRegistrations)
	assert.Len(t, fx.repo.state.regs, 1)
}

func TestCancelSuccess(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusRegistered)

	err := fx.svc.Cancel(context.Background(), fx.student, reg.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCancelled, fx.repo.state.regs[reg.ID].Status)
	assert.Equal(t, 0, fx.repo.state.event.CurrentRegistrations)
}

func TestCancelNotFound(t *testing.T) {
	fx := newFixture(t, 10, 0)

	err := fx.svc.Cancel(context.Background(), fx.student, uuid.New())
	assert.Equal(t, errors.ErrNotFound, appErrCode(t, err))
}

func TestCancelNotOwner(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusRegistered)

	err := fx.svc.Cancel(context.Background(), uuid.New(), reg.ID)
	assert.Equal(t, errors.ErrForbidden, appErrCode(t, err))
	assert.Equal(t, entity.StatusRegistered, fx.repo.state.regs[reg.ID].Status)
	assert.Equal(t, 1, fx.repo.state.event.CurrentRegistrations)
}

func TestCancelTwice(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusRegistered)

	require.NoError(t, fx.svc.Cancel(context.Background(), fx.student, reg.ID))
	assert.Equal(t, 0, fx.repo.state.event.CurrentRegistrations)

	err := fx.svc.Cancel(context.Background(), fx.student, reg.ID)
	assert.Equal(t, errors.ErrAlreadyCancelled, appErrCode(t, err))
	assert.Equal(t, 0, fx.repo.state.event.CurrentRegistrations, "double cancel must not decrement twice")
}

func TestCancelFloorsCounterAtZero(t *testing.T) {
	fx := newFixture(t, 10, 0)
	reg := fx.seedRegistration(entity.StatusRegistered)

	err := fx.svc.Cancel(context.Background(), fx.student, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fx.repo.state.event.CurrentRegistrations)
}

// Register, Cancel and CheckIn must all take the event row lock before the
// registration row lock, or two of them running concurrently for the same
// user could deadlock.
func TestCancelLocksEventRowFirst(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusRegistered)

	require.NoError(t, fx.svc.Cancel(context.Background(), fx.student, reg.ID))
	assert.Equal(t, []string{"event", "registration"}, fx.repo.locks)
}

func TestCheckInLocksEventRowFirst(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusRegistered)

	owner := eventService.Actor{UserID: fx.owner, Role: authEntity.RoleManager}
	_, err := fx.svc.CheckIn(context.Background(), owner, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"event", "registration"}, fx.repo.locks)
}

func TestRegisterCancelCycle(t *testing.T) {
	fx := newFixture(t, 1, 0)
	ctx := context.Background()

	first, err := fx.svc.Register(ctx, fx.student, fx.event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fx.repo.state.event.CurrentRegistrations)

	require.NoError(t, fx.svc.Cancel(ctx, fx.student, first.ID))
	assert.Equal(t, 0, fx.repo.state.event.CurrentRegistrations)

	second, err := fx.svc.Register(ctx, fx.student, fx.event.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, fx.repo.state.event.CurrentRegistrations)
	assert.Len(t, fx.repo.state.regs, 1)
}

func TestEventAttendeesOwnerOnly(t *testing.T) {
	fx := newFixture(t, 10, 0)
	fx.seedRegistration(entity.StatusRegistered)
	ctx := context.Background()

	stranger := eventService.Actor{UserID: uuid.New(), Role: authEntity.RoleManager}
	_, err := fx.svc.EventAttendees(ctx, stranger, fx.event.ID)
	assert.Equal(t, errors.ErrForbidden, appErrCode(t, err))

	owner := eventService.Actor{UserID: fx.owner, Role: authEntity.RoleManager}
	attendees, err := fx.svc.EventAttendees(ctx, owner, fx.event.ID)
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	assert.Equal(t, "Asha Verma", attendees[0].Name)
	assert.Equal(t, "CS-1042", attendees[0].RollNumber)

	admin := eventService.Actor{UserID: uuid.New(), Role: authEntity.RoleAdmin}
	attendees, err = fx.svc.EventAttendees(ctx, admin, fx.event.ID)
	require.NoError(t, err)
	assert.Len(t, attendees, 1)
}

func TestEventAttendeesExcludesCancelled(t *testing.T) {
	fx := newFixture(t, 10, 0)
	fx.seedRegistration(entity.StatusCancelled)

	owner := eventService.Actor{UserID: fx.owner, Role: authEntity.RoleManager}
	attendees, err := fx.svc.EventAttendees(context.Background(), owner, fx.event.ID)
	require.NoError(t, err)
	assert.Empty(t, attendees)
}

func TestExportAttendeesCSV(t *testing.T) {
	fx := newFixture(t, 10, 0)
	fx.seedRegistration(entity.StatusRegistered)

	owner := eventService.Actor{UserID: fx.owner, Role: authEntity.RoleManager}
	export, err := fx.svc.ExportAttendees(context.Background(), owner, fx.event.ID, "csv")
	require.NoError(t, err)

	assert.Equal(t, "text/csv", export.ContentType)
	records, readErr := csv.NewReader(strings.NewReader(string(export.Content))).ReadAll()
	require.NoError(t, readErr)
	require.Len(t, records, 2)
	assert.Equal(t, attendeeExportHeader, records[0])
	assert.Equal(t, "Asha Verma", records[1][0])
}

func TestExportAttendeesUnsupportedFormat(t *testing.T) {
	fx := newFixture(t, 10, 0)

	owner := eventService.Actor{UserID: fx.owner, Role: authEntity.RoleManager}
	_, err := fx.svc.ExportAttendees(context.Background(), owner, fx.event.ID, "pdf")
	assert.Equal(t, errors.ErrInvalidInput, appErrCode(t, err))
}

func TestCheckInSuccess(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusRegistered)

	owner := eventService.Actor{UserID: fx.owner, Role: authEntity.RoleManager}
	result, err := fx.svc.CheckIn(context.Background(), owner, reg.ID)
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusAttended), result.Status)
	assert.NotNil(t, fx.repo.state.regs[reg.ID].CheckedInAt)
}

func TestCheckInTwice(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusRegistered)
	owner := eventService.Actor{UserID: fx.owner, Role: authEntity.RoleManager}
	ctx := context.Background()

	_, err := fx.svc.CheckIn(ctx, owner, reg.ID)
	require.NoError(t, err)

	_, err = fx.svc.CheckIn(ctx, owner, reg.ID)
	assert.Equal(t, errors.ErrInvalidInput, appErrCode(t, err))
}

func TestCheckInCancelledRegistration(t *testing.T) {
	fx := newFixture(t, 10, 0)
	reg := fx.seedRegistration(entity.StatusCancelled)

	owner := eventService.Actor{UserID: fx.owner, Role: authEntity.RoleManager}
	_, err := fx.svc.CheckIn(context.Background(), owner, reg.ID)
	assert.Equal(t, errors.ErrInvalidInput, appErrCode(t, err))
}

func TestCheckInForbiddenForStranger(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusRegistered)

	stranger := eventService.Actor{UserID: uuid.New(), Role: authEntity.RoleManager}
	_, err := fx.svc.CheckIn(context.Background(), stranger, reg.ID)
	assert.Equal(t, errors.ErrForbidden, appErrCode(t, err))
	assert.Equal(t, entity.StatusRegistered, fx.repo.state.regs[reg.ID].Status)
}

func TestMyRegistrations(t *testing.T) {
	fx := newFixture(t, 10, 0)
	fx.seedRegistration(entity.StatusRegistered)
	fx.seedRegistration(entity.StatusCancelled)

	result, err := fx.svc.MyRegistrations(context.Background(), fx.student)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, fx.event.Title, result[0].Event.Title)
}

func TestSubmitFeedback(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusAttended)
	ctx := context.Background()

	err := fx.svc.SubmitFeedback(ctx, fx.student, reg.ID, &dto.FeedbackRequest{Rating: 5, Comment: "Great talk"})
	require.NoError(t, err)
	require.NotNil(t, fx.repo.state.regs[reg.ID].FeedbackRating)
	assert.Equal(t, 5, *fx.repo.state.regs[reg.ID].FeedbackRating)
}

func TestSubmitFeedbackRequiresAttendance(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusRegistered)

	err := fx.svc.SubmitFeedback(context.Background(), fx.student, reg.ID, &dto.FeedbackRequest{Rating: 4})
	assert.Equal(t, errors.ErrInvalidInput, appErrCode(t, err))
}

func TestSubmitFeedbackNotOwner(t *testing.T) {
	fx := newFixture(t, 10, 1)
	reg := fx.seedRegistration(entity.StatusAttended)

	err := fx.svc.SubmitFeedback(context.Background(), uuid.New(), reg.ID, &dto.FeedbackRequest{Rating: 4})
	assert.Equal(t, errors.ErrForbidden, appErrCode(t, err))
}
