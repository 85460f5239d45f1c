package repositories

import (
	"context"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create creates a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// Update replaces every mutable field of an appointment
	Update(ctx context.Context, appointment *entities.Appointment) error

	// SetApproved flips only the approval flag
	SetApproved(ctx context.Context, id string, approved bool) error

	// Delete deletes an appointment
	Delete(ctx context.Context, id string) error

	// List retrieves appointments matching the filter, ordered by date then time
	List(ctx context.Context, filter AppointmentFilter) ([]*entities.Appointment, error)

	// BookedTimes returns the times already taken for a specialist on a date
	BookedTimes(ctx context.Context, specialistName, date string) ([]string, error)
}

// AppointmentFilter defines filters for listing appointments
type AppointmentFilter struct {
	UserID         string
	SpecialistName string
	Date           string
	Approved       *bool
	Limit          int
	Offset         int
}
