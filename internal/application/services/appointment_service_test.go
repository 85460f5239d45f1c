package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/sokebat/barber-frontend-sub000/internal/application/auth"
	"github.com/sokebat/barber-frontend-sub000/internal/application/services"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)

func customerCtx() context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{UserID: "u-1", Name: "Jane Doe", Role: entities.RoleCustomer})
}

func adminCtx() context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{UserID: "admin-1", Name: "Admin", Role: entities.RoleAdmin})
}

func validRequest() *entities.CreateAppointmentRequest {
	return &entities.CreateAppointmentRequest{
		CustomerName:    "  John Smith ",
		ServiceName:     "Haircut",
		SpecialistName:  "Anna",
		AppointmentDate: "2026-03-10",
		AppointmentTime: "10:00 AM",
	}
}

func TestAppointmentService_Create(t *testing.T) {
	t.Run("successfully books appointment", func(t *testing.T) {
		// Arrange
		repo := new(MockAppointmentRepository)
		events := &RecordingPublisher{}
		service := services.NewAppointmentService(repo, events, nil).WithClock(func() time.Time { return fixedNow })

		repo.On("BookedTimes", mock.Anything, "Anna", "2026-03-10").Return([]string{"09:00 AM"}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return a.CustomerName == "John Smith" && !a.IsApproved && a.UserID == "u-1" && a.ID != ""
		})).Return(nil)

		// Act
		appointment, err := service.Create(customerCtx(), validRequest())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "10:00 AM", appointment.AppointmentTime)
		assert.False(t, appointment.IsApproved)
		assert.Equal(t, []entities.EventType{entities.EventAppointmentCreated}, events.Types())
		assert.Equal(t, []string{providers.EventChannelAppointments}, events.Channels())
		repo.AssertExpectations(t)
	})

	t.Run("rejects anonymous callers", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := services.NewAppointmentService(repo, nil, nil)

		_, err := service.Create(context.Background(), validRequest())

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a double booking", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := services.NewAppointmentService(repo, nil, nil).WithClock(func() time.Time { return fixedNow })

		repo.On("BookedTimes", mock.Anything, "Anna", "2026-03-10").Return([]string{"10:00 AM"}, nil)

		_, err := service.Create(customerCtx(), validRequest())

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	validationCases := []struct {
		name   string
		mutate func(r *entities.CreateAppointmentRequest)
	}{
		{"name with digits", func(r *entities.CreateAppointmentRequest) { r.CustomerName = "John123" }},
		{"blank name", func(r *entities.CreateAppointmentRequest) { r.CustomerName = "   " }},
		{"missing service", func(r *entities.CreateAppointmentRequest) { r.ServiceName = "" }},
		{"missing specialist", func(r *entities.CreateAppointmentRequest) { r.SpecialistName = "" }},
		{"date in the past", func(r *entities.CreateAppointmentRequest) { r.AppointmentDate = "2026-03-09" }},
		{"malformed date", func(r *entities.CreateAppointmentRequest) { r.AppointmentDate = "10/03/2026" }},
		{"unknown slot", func(r *entities.CreateAppointmentRequest) { r.AppointmentTime = "10:30 AM" }},
	}
	for _, tc := range validationCases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			repo := new(MockAppointmentRepository)
			service := services.NewAppointmentService(repo, nil, nil).WithClock(func() time.Time { return fixedNow })

			req := validRequest()
			tc.mutate(req)
			_, err := service.Create(customerCtx(), req)

			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "got %v", err)
			repo.AssertNotCalled(t, "BookedTimes", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAppointmentService_GetByID(t *testing.T) {
	repo := new(MockAppointmentRepository)
	service := services.NewAppointmentService(repo, nil, nil)
	repo.On("GetByID", mock.Anything, "a-1").Return(&entities.Appointment{ID: "a-1", UserID: "u-2"}, nil)

	_, err := service.GetByID(customerCtx(), "a-1")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

	appointment, err := service.GetByID(adminCtx(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, "a-1", appointment.ID)
}

func TestAppointmentService_Mine(t *testing.T) {
	repo := new(MockAppointmentRepository)
	service := services.NewAppointmentService(repo, nil, nil)
	repo.On("List", mock.Anything, repositories.AppointmentFilter{UserID: "u-1"}).
		Return([]*entities.Appointment{{ID: "a-1", UserID: "u-1"}}, nil)

	list, err := service.Mine(customerCtx())

	require.NoError(t, err)
	assert.Len(t, list, 1)
	repo.AssertExpectations(t)
}

func TestAppointmentService_Update(t *testing.T) {
	repo := new(MockAppointmentRepository)
	events := &RecordingPublisher{}
	service := services.NewAppointmentService(repo, events, nil).WithClock(func() time.Time { return fixedNow })

	existing := &entities.Appointment{ID: "a-1", UserID: "u-1", CreatedAt: fixedNow.Add(-time.Hour)}
	repo.On("GetByID", mock.Anything, "a-1").Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
		return a.IsApproved && a.UserID == "u-1" && a.AppointmentTime == "02:00 PM"
	})).Return(nil)

	updated, err := service.Update(adminCtx(), "a-1", &entities.Appointment{
		CustomerName:    "John Smith",
		ServiceName:     "Colour",
		SpecialistName:  "Anna",
		AppointmentDate: "2026-01-05",
		AppointmentTime: "02:00 PM",
		IsApproved:      true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Colour", updated.ServiceName)
	assert.Equal(t, []entities.EventType{entities.EventAppointmentUpdated}, events.Types())
}

func TestAppointmentService_Approve(t *testing.T) {
	repo := new(MockAppointmentRepository)
	events := &RecordingPublisher{}
	service := services.NewAppointmentService(repo, events, nil)

	repo.On("SetApproved", mock.Anything, "a-1", true).Return(nil)
	repo.On("GetByID", mock.Anything, "a-1").Return(&entities.Appointment{ID: "a-1", IsApproved: true}, nil)

	appointment, err := service.Approve(adminCtx(), "a-1", true)

	require.NoError(t, err)
	assert.True(t, appointment.IsApproved)
	assert.Equal(t, []entities.EventType{entities.EventAppointmentApproved}, events.Types())
}

func TestAppointmentService_ApproveMissing(t *testing.T) {
	repo := new(MockAppointmentRepository)
	events := &RecordingPublisher{}
	service := services.NewAppointmentService(repo, events, nil)

	repo.On("SetApproved", mock.Anything, "nope", true).Return(apperrors.NewNotFoundError("appointment nope not found"))

	_, err := service.Approve(adminCtx(), "nope", true)

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Empty(t, events.Types())
}

func TestAppointmentService_Delete(t *testing.T) {
	repo := new(MockAppointmentRepository)
	events := &RecordingPublisher{}
	service := services.NewAppointmentService(repo, events, nil)
	repo.On("Delete", mock.Anything, "a-1").Return(nil)

	require.NoError(t, service.Delete(adminCtx(), "a-1"))
	assert.Equal(t, []entities.EventType{entities.EventAppointmentDeleted}, events.Types())
}

func TestAppointmentService_Availability(t *testing.T) {
	repo := new(MockAppointmentRepository)
	service := services.NewAppointmentService(repo, nil, nil)
	repo.On("BookedTimes", mock.Anything, "Anna", "2026-03-12").Return([]string{"09:00 AM", "01:00 PM"}, nil)

	availability, err := service.Availability(context.Background(), "Anna", "2026-03-12")

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM", "01:00 PM"}, availability.Unavailable)
	assert.NotContains(t, availability.Slots, "09:00 AM")
	assert.NotContains(t, availability.Slots, "01:00 PM")
	assert.Len(t, availability.Slots, 7)

	_, err = service.Availability(context.Background(), "", "2026-03-12")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.Availability(context.Background(), "Anna", "tomorrow")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
