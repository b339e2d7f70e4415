package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"campus-events-api/core/errors"
	"campus-events-api/core/jobs"
	"campus-events-api/core/logger"
	"campus-events-api/core/utils"
	authEntity "campus-events-api/modules/auth/entity"
	authRepository "campus-events-api/modules/auth/repository"
	eventEntity "campus-events-api/modules/event/entity"
	eventRepository "campus-events-api/modules/event/repository"
	eventService "campus-events-api/modules/event/service"
	notifEntity "campus-events-api/modules/notification/entity"
	notifService "campus-events-api/modules/notification/service"
	"campus-events-api/modules/registration/dto"
	"campus-events-api/modules/registration/entity"
	"campus-events-api/modules/registration/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// RegistrationService handles the registration workflow. All seat
// accounting runs inside a single transaction holding the event row lock,
// so current_registrations never leaves [0, max_participants].
type RegistrationService struct {
	repo      repository.RegistrationRepositoryInterface
	eventRepo eventRepository.EventRepositoryInterface
	authRepo  authRepository.AuthRepositoryInterface
	notifier  *notifService.NotificationService
	jobs      *jobs.Client
}

func NewRegistrationService(
	repo repository.RegistrationRepositoryInterface,
	eventRepo eventRepository.EventRepositoryInterface,
	authRepo authRepository.AuthRepositoryInterface,
	notifier *notifService.NotificationService,
	jobsClient *jobs.Client,
) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		eventRepo: eventRepo,
		authRepo:  authRepo,
		notifier:  notifier,
		jobs:      jobsClient,
	}
}

// Register books a seat on an event for the user. A cancelled prior
// registration is reactivated in place; otherwise a new row is created.
// Either way the seat counter moves exactly once per transition into the
// registered state.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID uuid.UUID) (*dto.RegistrationResponse, error) {
	var (
		reg   *entity.Registration
		event *eventEntity.Event
	)

	err := s.repo.InTx(ctx, func(store repository.WorkflowStore) error {
		locked, err := store.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
		}
		if locked == nil {
			return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
		}
		event = locked

		if event.Status != eventEntity.EventStatusOpen {
			return errors.NewAppError(errors.ErrRegistrationsClosed, "Registrations are closed for this event", nil)
		}
		if event.CurrentRegistrations >= event.MaxParticipants {
			return errors.NewAppError(errors.ErrEventFull, "Event is full", nil)
		}

		existing, err := store.GetRegistrationByUserAndEvent(ctx, userID, eventID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to load registration", err)
		}

		now := time.Now()
		qrCode, err := utils.GenerateRegistrationQR(userID, eventID, now)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to generate QR code", err)
		}

		switch {
		case existing == nil:
			created, err := store.InsertRegistration(ctx, &entity.Registration{
				UserID:       userID,
				EventID:      eventID,
				Status:       entity.StatusRegistered,
				QRCode:       qrCode,
				RegisteredAt: now,
			})
			if err != nil {
				return errors.NewAppError(errors.ErrInternalServer, "Failed to create registration", err)
			}
			reg = created

		case existing.IsActive():
			return errors.NewAppError(errors.ErrAlreadyRegistered, "Already registered for this event", nil)

		default:
			// Same row comes back: the (user, event) pair keeps one
			// registration across cancel/re-register cycles.
			if err := store.ReactivateRegistration(ctx, existing.ID, now, qrCode); err != nil {
				return errors.NewAppError(errors.ErrInternalServer, "Failed to reactivate registration", err)
			}
			existing.Status = entity.StatusRegistered
			existing.RegisteredAt = now
			existing.QRCode = qrCode
			existing.CheckedInAt = nil
			reg = existing
		}

		if err := store.IncrementEventCounter(ctx, eventID); err != nil {
			if err == repository.ErrCapacityConflict {
				return errors.NewAppError(errors.ErrEventFull, "Event is full", nil)
			}
			return errors.NewAppError(errors.ErrInternalServer, "Failed to update event capacity", err)
		}
		event.CurrentRegistrations++
		return nil
	})
	if err != nil {
		return nil, err
	}

	user, err := s.authRepo.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		logger.Warn("RegistrationService:Register load user failed", "user_id", userID, "error", err)
	} else {
		s.afterRegister(ctx, user, event, reg)
	}

	resp := &dto.RegistrationResponse{
		ID:           reg.ID,
		Status:       string(reg.Status),
		QRCode:       reg.QRCode,
		RegisteredAt: reg.RegisteredAt,
		Event: &dto.EventSummary{
			ID:     event.ID,
			Title:  event.Title,
			Date:   event.Date,
			Time:   event.Time,
			Venue:  event.Venue,
			Status: string(event.Status),
			Image:  event.Image,
		},
	}
	if user != nil {
		resp.User = &dto.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return resp, nil
}

// afterRegister runs the best-effort side effects once the transaction has
// committed: confirmation email via the task queue and an in-app
// notification. Failures are logged, never surfaced.
func (s *RegistrationService) afterRegister(ctx context.Context, user *authEntity.User, event *eventEntity.Event, reg *entity.Registration) {
	task, err := jobs.NewRegistrationConfirmedTask(jobs.RegistrationConfirmedPayload{
		UserName:     user.Name,
		UserEmail:    user.Email,
		EventTitle:   event.Title,
		EventVenue:   event.Venue,
		EventDate:    event.Date,
		EventTime:    event.Time,
		EventID:      event.ID,
		RegisteredAt: reg.RegisteredAt,
	})
	if err != nil {
		logger.Error("RegistrationService:afterRegister task build failed", err)
	} else {
		s.jobs.Enqueue(ctx, task)
	}

	if notifyErr := s.notifier.Notify(ctx, user.ID, notifEntity.TypeRegistration,
		"Registration confirmed",
		fmt.Sprintf("You are registered for %s on %s.", event.Title, event.Date.Format("Jan 2, 2006")),
		map[string]interface{}{"event_id": event.ID.String(), "registration_id": reg.ID.String()},
	); notifyErr != nil {
		logger.Warn("RegistrationService:afterRegister notify failed", "error", notifyErr)
	}
}

// Cancel releases the user's seat. Only the registering user may cancel,
// and a registration cancels at most once; the seat counter decrement is
// paired with the status flip inside one transaction.
func (s *RegistrationService) Cancel(ctx context.Context, userID, registrationID uuid.UUID) error {
	return s.repo.InTx(ctx, func(store repository.WorkflowStore) error {
		// Unlocked read first, to learn the event. Row locks are taken in
		// the same order as Register: event, then registration.
		peek, err := store.GetRegistrationByID(ctx, registrationID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to load registration", err)
		}
		if peek == nil {
			return errors.NewAppError(errors.ErrNotFound, "Registration not found", nil)
		}
		if peek.UserID != userID {
			return errors.NewAppError(errors.ErrForbidden, "You can only cancel your own registration", nil)
		}

		event, err := store.GetEventForUpdate(ctx, peek.EventID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
		}
		if event == nil {
			return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
		}

		reg, err := store.GetRegistrationForUpdate(ctx, registrationID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to load registration", err)
		}
		if reg == nil {
			return errors.NewAppError(errors.ErrNotFound, "Registration not found", nil)
		}
		if reg.Status == entity.StatusCancelled {
			return errors.NewAppError(errors.ErrAlreadyCancelled, "Registration is already cancelled", nil)
		}

		if err := store.CancelRegistration(ctx, registrationID); err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to cancel registration", err)
		}
		if err := store.DecrementEventCounter(ctx, reg.EventID); err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to update event capacity", err)
		}
		return nil
	})
}

// MyRegistrations lists the user's non-cancelled registrations, newest
// first, with their event summaries.
func (s *RegistrationService) MyRegistrations(ctx context.Context, userID uuid.UUID) ([]dto.MyRegistrationResponse, error) {
	rows, err := s.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list registrations", err)
	}

	out := make([]dto.MyRegistrationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToMyRegistrationResponse(&rows[i]))
	}
	return out, nil
}

// EventAttendees lists the active registrations of an event for its owner
// or an admin.
func (s *RegistrationService) EventAttendees(ctx context.Context, actor eventService.Actor, eventID uuid.UUID) ([]dto.AttendeeResponse, error) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if !actor.CanManage(event) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the event organizer may view attendees", nil)
	}

	rows, err := s.repo.ListActiveByEvent(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list attendees", err)
	}

	out := make([]dto.AttendeeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToAttendeeResponse(&rows[i], event.Title))
	}
	return out, nil
}

// Export formats supported by ExportAttendees.
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

var attendeeExportHeader = []string{"Name", "Email", "Roll Number", "Department", "Phone", "Registered At", "Status"}

// ExportAttendees renders the attendee list as a downloadable file.
func (s *RegistrationService) ExportAttendees(ctx context.Context, actor eventService.Actor, eventID uuid.UUID, format string) (*dto.AttendeeExport, error) {
	attendees, err := s.EventAttendees(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}

	switch format {
	case ExportFormatCSV, "":
		return s.exportCSV(eventID, attendees)
	case ExportFormatXLSX:
		return s.exportXLSX(eventID, attendees)
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unsupported export format", nil)
	}
}

func (s *RegistrationService) exportCSV(eventID uuid.UUID, attendees []dto.AttendeeResponse) (*dto.AttendeeExport, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(attendeeExportHeader); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to build export", err)
	}
	for _, a := range attendees {
		record := []string{a.Name, a.Email, a.RollNumber, a.Department, a.Phone,
			a.RegisteredAt.Format(time.RFC3339), a.Status}
		if err := w.Write(record); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to build export", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to build export", err)
	}

	return &dto.AttendeeExport{
		FileName:    fmt.Sprintf("attendees-%s.csv", eventID),
		ContentType: "text/csv",
		Content:     buf.Bytes(),
	}, nil
}

func (s *RegistrationService) exportXLSX(eventID uuid.UUID, attendees []dto.AttendeeResponse) (*dto.AttendeeExport, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendees"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range attendeeExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row, a := range attendees {
		values := []interface{}{a.Name, a.Email, a.RollNumber, a.Department, a.Phone,
			a.RegisteredAt.Format(time.RFC3339), a.Status}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to build export", err)
	}

	return &dto.AttendeeExport{
		FileName:    fmt.Sprintf("attendees-%s.xlsx", eventID),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     buf.Bytes(),
	}, nil
}

// CheckIn marks a registration attended. Organizer-side operation, keyed
// by the registration scanned off the attendee's QR code.
func (s *RegistrationService) CheckIn(ctx context.Context, actor eventService.Actor, registrationID uuid.UUID) (*dto.RegistrationResponse, error) {
	var checked *entity.Registration

	err := s.repo.InTx(ctx, func(store repository.WorkflowStore) error {
		// Same lock order as Register and Cancel: event row, then
		// registration row.
		peek, err := store.GetRegistrationByID(ctx, registrationID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to load registration", err)
		}
		if peek == nil {
			return errors.NewAppError(errors.ErrNotFound, "Registration not found", nil)
		}

		event, err := store.GetEventForUpdate(ctx, peek.EventID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
		}
		if event == nil {
			return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
		}
		if !actor.CanManage(event) {
			return errors.NewAppError(errors.ErrForbidden, "Only the event organizer may check in attendees", nil)
		}

		reg, err := store.GetRegistrationForUpdate(ctx, registrationID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to load registration", err)
		}
		if reg == nil {
			return errors.NewAppError(errors.ErrNotFound, "Registration not found", nil)
		}

		switch reg.Status {
		case entity.StatusCancelled:
			return errors.NewAppError(errors.ErrInvalidInput, "Cancelled registration cannot be checked in", nil)
		case entity.StatusAttended:
			return errors.NewAppError(errors.ErrInvalidInput, "Attendee is already checked in", nil)
		}

		now := time.Now()
		if err := store.MarkAttended(ctx, registrationID, now); err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to check in", err)
		}
		reg.Status = entity.StatusAttended
		reg.CheckedInAt = &now
		checked = reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegistrationResponse{
		ID:           checked.ID,
		Status:       string(checked.Status),
		QRCode:       checked.QRCode,
		RegisteredAt: checked.RegisteredAt,
	}, nil
}

// SubmitFeedback records the attendee's rating for an event they attended.
func (s *RegistrationService) SubmitFeedback(ctx context.Context, userID, registrationID uuid.UUID, req *dto.FeedbackRequest) error {
	reg, err := s.repo.GetByID(ctx, registrationID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load registration", err)
	}
	if reg == nil {
		return errors.NewAppError(errors.ErrNotFound, "Registration not found", nil)
	}
	if reg.UserID != userID {
		return errors.NewAppError(errors.ErrForbidden, "You can only leave feedback on your own registration", nil)
	}
	if reg.DisplayStatus() != entity.StatusAttended {
		return errors.NewAppError(errors.ErrInvalidInput, "Feedback is only accepted after attending the event", nil)
	}

	if err := s.repo.SaveFeedback(ctx, registrationID, req.Rating, req.Comment); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to save feedback", err)
	}
	return nil
}
