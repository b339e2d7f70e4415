package service

import (
	"context"
	"fmt"
	"time"

	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	"campus-events-api/core/utils"
	"campus-events-api/modules/certificate/dto"
	"campus-events-api/modules/certificate/entity"
	"campus-events-api/modules/certificate/repository"
	eventRepository "campus-events-api/modules/event/repository"
	eventService "campus-events-api/modules/event/service"
	notifEntity "campus-events-api/modules/notification/entity"
	notifService "campus-events-api/modules/notification/service"
	regEntity "campus-events-api/modules/registration/entity"
	regRepository "campus-events-api/modules/registration/repository"

	"github.com/google/uuid"
)

type CertificateService struct {
	repo      repository.CertificateRepositoryInterface
	regRepo   regRepository.RegistrationRepositoryInterface
	eventRepo eventRepository.EventRepositoryInterface
	notifier  *notifService.NotificationService
}

func NewCertificateService(
	repo repository.CertificateRepositoryInterface,
	regRepo regRepository.RegistrationRepositoryInterface,
	eventRepo eventRepository.EventRepositoryInterface,
	notifier *notifService.NotificationService,
) *CertificateService {
	return &CertificateService{
		repo:      repo,
		regRepo:   regRepo,
		eventRepo: eventRepo,
		notifier:  notifier,
	}
}

// Issue mints a certificate for an attended registration. Issuing twice
// for the same (user, event) returns the existing certificate.
func (s *CertificateService) Issue(ctx context.Context, actor eventService.Actor, registrationID uuid.UUID) (*dto.CertificateResponse, error) {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load registration", err)
	}
	if reg == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Registration not found", nil)
	}
	if reg.DisplayStatus() != regEntity.StatusAttended {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Certificates are only issued for attended registrations", nil)
	}

	event, err := s.eventRepo.GetEventByID(ctx, reg.EventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if !actor.CanManage(event) {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the event organizer may issue certificates", nil)
	}

	existing, err := s.repo.GetByUserAndEvent(ctx, reg.UserID, reg.EventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load certificate", err)
	}
	if existing != nil {
		return &dto.CertificateResponse{
			ID:         existing.ID,
			Serial:     existing.Serial,
			EventID:    existing.EventID,
			EventTitle: event.Title,
			EventDate:  event.Date,
			IssuedAt:   existing.IssuedAt,
		}, nil
	}

	cert, err := s.repo.Insert(ctx, &entity.Certificate{
		UserID:   reg.UserID,
		EventID:  reg.EventID,
		Serial:   utils.GenerateID(),
		IssuedAt: time.Now(),
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to issue certificate", err)
	}

	if notifyErr := s.notifier.Notify(ctx, reg.UserID, notifEntity.TypeCertificate,
		"Certificate issued",
		fmt.Sprintf("Your certificate for %s is ready.", event.Title),
		map[string]interface{}{"serial": cert.Serial, "event_id": event.ID.String()},
	); notifyErr != nil {
		logger.Warn("CertificateService:Issue notify failed", "error", notifyErr)
	}

	return &dto.CertificateResponse{
		ID:         cert.ID,
		Serial:     cert.Serial,
		EventID:    cert.EventID,
		EventTitle: event.Title,
		EventDate:  event.Date,
		IssuedAt:   cert.IssuedAt,
	}, nil
}

// MyCertificates lists the user's certificates, newest first.
func (s *CertificateService) MyCertificates(ctx context.Context, userID uuid.UUID) ([]dto.CertificateResponse, error) {
	certs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list certificates", err)
	}

	out := make([]dto.CertificateResponse, 0, len(certs))
	for i := range certs {
		out = append(out, dto.ToCertificateResponse(&certs[i]))
	}
	return out, nil
}

// Verify is the public serial lookup. An unknown serial is not an error,
// it is a negative verification.
func (s *CertificateService) Verify(ctx context.Context, serial string) (*dto.VerificationResponse, error) {
	cert, err := s.repo.GetBySerial(ctx, serial)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to verify certificate", err)
	}
	if cert == nil {
		return &dto.VerificationResponse{Valid: false, Serial: serial}, nil
	}

	return &dto.VerificationResponse{
		Valid:      true,
		Serial:     cert.Serial,
		HolderName: cert.UserName,
		EventTitle: cert.EventTitle,
		EventDate:  cert.EventDate,
		IssuedAt:   cert.IssuedAt,
	}, nil
}
