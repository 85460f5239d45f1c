package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

var appointmentColumns = []interface{}{
	"id", "customer_name", "service_name", "specialist_name",
	"appointment_date", "appointment_time", "is_approved", "user_id",
	"created_at", "updated_at",
}

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"id":               appointment.ID,
		"customer_name":    appointment.CustomerName,
		"service_name":     appointment.ServiceName,
		"specialist_name":  appointment.SpecialistName,
		"appointment_date": appointment.AppointmentDate,
		"appointment_time": appointment.AppointmentTime,
		"is_approved":      appointment.IsApproved,
		"user_id":          nullIfEmpty(appointment.UserID),
		"created_at":       appointment.CreatedAt,
		"updated_at":       appointment.UpdatedAt,
	}

	query, args, err := a.db.Insert("appointments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return writeError(err, "failed to create appointment", slotTakenMessage(appointment))
	}

	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, readError(err, "appointment", id)
	}

	return appointment, nil
}

// Update replaces every mutable field of an appointment
func (a *AppointmentAdapter) Update(ctx context.Context, appointment *entities.Appointment) error {
	appointment.UpdatedAt = time.Now()

	record := goqu.Record{
		"customer_name":    appointment.CustomerName,
		"service_name":     appointment.ServiceName,
		"specialist_name":  appointment.SpecialistName,
		"appointment_date": appointment.AppointmentDate,
		"appointment_time": appointment.AppointmentTime,
		"is_approved":      appointment.IsApproved,
		"updated_at":       appointment.UpdatedAt,
	}

	query, args, err := a.db.Update("appointments").
		Set(record).
		Where(goqu.Ex{"id": appointment.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return writeError(err, "failed to update appointment", slotTakenMessage(appointment))
	}

	return expectAffected(result, "appointment", appointment.ID)
}

// SetApproved flips only the approval flag
func (a *AppointmentAdapter) SetApproved(ctx context.Context, id string, approved bool) error {
	query, args, err := a.db.Update("appointments").
		Set(goqu.Record{
			"is_approved": approved,
			"updated_at":  time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build approve query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to approve appointment", err)
	}

	return expectAffected(result, "appointment", id)
}

// Delete deletes an appointment
func (a *AppointmentAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("appointments").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete appointment", err)
	}

	return expectAffected(result, "appointment", id)
}

// List retrieves appointments matching the filter, ordered by date then time
func (a *AppointmentAdapter) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).From("appointments")

	if filter.UserID != "" {
		ds = ds.Where(goqu.Ex{"user_id": filter.UserID})
	}
	if filter.SpecialistName != "" {
		ds = ds.Where(goqu.Ex{"specialist_name": filter.SpecialistName})
	}
	if filter.Date != "" {
		ds = ds.Where(goqu.Ex{"appointment_date": filter.Date})
	}
	if filter.Approved != nil {
		ds = ds.Where(goqu.Ex{"is_approved": *filter.Approved})
	}

	ds = ds.Order(
		goqu.I("appointment_date").Asc(),
		goqu.L("to_timestamp(appointment_time, 'HH12:MI AM')").Asc(),
	)

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	appointments := make([]*entities.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating appointments", err)
	}

	return appointments, nil
}

// BookedTimes returns the times already taken for a specialist on a date
func (a *AppointmentAdapter) BookedTimes(ctx context.Context, specialistName, date string) ([]string, error) {
	query, args, err := a.db.Select("appointment_time").
		From("appointments").
		Where(goqu.Ex{
			"specialist_name":  specialistName,
			"appointment_date": date,
		}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load booked times", err)
	}
	defer rows.Close()

	times := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, apperrors.NewInternalError("failed to scan booked time", err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating booked times", err)
	}

	return times, nil
}

func scanAppointment(row rowScanner) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var date time.Time
	var userID sql.NullString

	err := row.Scan(
		&appointment.ID,
		&appointment.CustomerName,
		&appointment.ServiceName,
		&appointment.SpecialistName,
		&date,
		&appointment.AppointmentTime,
		&appointment.IsApproved,
		&userID,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.AppointmentDate = date.Format(entities.DateLayout)
	appointment.UserID = userID.String
	return appointment, nil
}

func slotTakenMessage(appointment *entities.Appointment) string {
	return fmt.Sprintf("%s is already booked on %s at %s",
		appointment.SpecialistName, appointment.AppointmentDate, appointment.AppointmentTime)
}
