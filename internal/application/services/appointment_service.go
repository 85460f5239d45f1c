package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/application/auth"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/observability"
	"github.com/sokebat/barber-frontend-sub000/pkg/booking"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

// AppointmentService handles appointment booking logic
type AppointmentService struct {
	repo    repositories.AppointmentRepository
	events  providers.EventPublisher
	metrics *observability.Metrics
	now     func() time.Time
}

// NewAppointmentService creates a new appointment service. events and metrics may be nil.
func NewAppointmentService(
	repo repositories.AppointmentRepository,
	events providers.EventPublisher,
	metrics *observability.Metrics,
) *AppointmentService {
	return &AppointmentService{
		repo:    repo,
		events:  events,
		metrics: metrics,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for the "date is not in the past" rule
func (s *AppointmentService) WithClock(now func() time.Time) *AppointmentService {
	s.now = now
	return s
}

// Create books an appointment for the authenticated caller
func (s *AppointmentService) Create(ctx context.Context, req *entities.CreateAppointmentRequest) (*entities.Appointment, error) {
	identity := auth.IdentityFromContext(ctx)
	if identity == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	if req == nil {
		return nil, apperrors.NewValidationError("appointment is required")
	}

	appointment := &entities.Appointment{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		ServiceName:     strings.TrimSpace(req.ServiceName),
		SpecialistName:  strings.TrimSpace(req.SpecialistName),
		AppointmentDate: strings.TrimSpace(req.AppointmentDate),
		AppointmentTime: strings.TrimSpace(req.AppointmentTime),
	}
	if err := s.validate(appointment, true); err != nil {
		return nil, err
	}

	booked, err := s.repo.BookedTimes(ctx, appointment.SpecialistName, appointment.AppointmentDate)
	if err != nil {
		return nil, err
	}
	for _, t := range booked {
		if t == appointment.AppointmentTime {
			return nil, apperrors.NewConflictError(appointment.SpecialistName + " is already booked on " +
				appointment.AppointmentDate + " at " + appointment.AppointmentTime)
		}
	}

	now := s.now()
	appointment.ID = uuid.New().String()
	appointment.UserID = identity.UserID
	appointment.IsApproved = false
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	observability.RecordAppointmentBooked(ctx, s.metrics, appointment.SpecialistName)
	observability.CountAppointmentBooked(appointment.SpecialistName)
	s.publish(ctx, entities.EventAppointmentCreated, appointment.ID, appointment)

	return appointment, nil
}

// GetByID returns one appointment; customers only see their own
func (s *AppointmentService) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	identity := auth.IdentityFromContext(ctx)
	if identity == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	if !identity.IsAdmin() && appointment.UserID != identity.UserID {
		return nil, apperrors.NewForbiddenError("appointment belongs to another customer")
	}
	return appointment, nil
}

// List returns appointments ordered by date then time
func (s *AppointmentService) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	return s.repo.List(ctx, filter)
}

// Mine returns the caller's own appointments
func (s *AppointmentService) Mine(ctx context.Context) ([]*entities.Appointment, error) {
	identity := auth.IdentityFromContext(ctx)
	if identity == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	return s.repo.List(ctx, repositories.AppointmentFilter{UserID: identity.UserID})
}

// Update replaces every mutable field of an appointment, approval included
func (s *AppointmentService) Update(ctx context.Context, id string, update *entities.Appointment) (*entities.Appointment, error) {
	if update == nil {
		return nil, apperrors.NewValidationError("appointment is required")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.CustomerName = strings.TrimSpace(update.CustomerName)
	existing.ServiceName = strings.TrimSpace(update.ServiceName)
	existing.SpecialistName = strings.TrimSpace(update.SpecialistName)
	existing.AppointmentDate = strings.TrimSpace(update.AppointmentDate)
	existing.AppointmentTime = strings.TrimSpace(update.AppointmentTime)
	existing.IsApproved = update.IsApproved
	existing.UpdatedAt = s.now()

	// Past dates are allowed on admin edits.
	if err := s.validate(existing, false); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.EventAppointmentUpdated, existing.ID, existing)
	return existing, nil
}

// Approve sets only the approval flag
func (s *AppointmentService) Approve(ctx context.Context, id string, approved bool) (*entities.Appointment, error) {
	if err := s.repo.SetApproved(ctx, id, approved); err != nil {
		return nil, err
	}

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if approved {
		observability.CountAppointmentApproved()
	}
	s.publish(ctx, entities.EventAppointmentApproved, id, appointment)
	return appointment, nil
}

// Delete removes an appointment
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, entities.EventAppointmentDeleted, id, nil)
	return nil
}

// Availability lists the free and taken slots for a specialist on a date
func (s *AppointmentService) Availability(ctx context.Context, specialist, date string) (*entities.Availability, error) {
	specialist = strings.TrimSpace(specialist)
	if specialist == "" {
		return nil, apperrors.NewValidationError("specialist is required")
	}
	if _, err := time.Parse(entities.DateLayout, date); err != nil {
		return nil, apperrors.NewValidationError("date must be in YYYY-MM-DD format")
	}

	booked, err := s.repo.BookedTimes(ctx, specialist, date)
	if err != nil {
		return nil, err
	}
	if booked == nil {
		booked = []string{}
	}

	return &entities.Availability{
		SpecialistName: specialist,
		Date:           date,
		Slots:          booking.AvailableSlots(booked),
		Unavailable:    booked,
	}, nil
}

func (s *AppointmentService) validate(a *entities.Appointment, futureOnly bool) error {
	if err := booking.ValidateName(a.CustomerName); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if a.ServiceName == "" {
		return apperrors.NewValidationError("service is required")
	}
	if a.SpecialistName == "" {
		return apperrors.NewValidationError("specialist is required")
	}
	if futureOnly {
		if err := booking.ValidateDate(a.AppointmentDate, s.now()); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	} else if _, err := time.Parse(entities.DateLayout, a.AppointmentDate); err != nil {
		return apperrors.NewValidationError("date must be in YYYY-MM-DD format")
	}
	if err := booking.ValidateSlot(a.AppointmentTime); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

func (s *AppointmentService) publish(ctx context.Context, eventType entities.EventType, id string, payload any) {
	if s.events == nil {
		return
	}
	event := entities.NewDomainEvent(eventType, entities.AggregateAppointment, id, payload)
	if err := s.events.Publish(ctx, providers.ChannelFor(eventType), event); err != nil {
		log.Warn().Err(err).Str("event_type", string(eventType)).Str("appointment_id", id).Msg("failed to publish appointment event")
	}
}
