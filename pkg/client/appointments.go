package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AppointmentService covers /Appointment
type AppointmentService struct {
	c *Client
}

// List returns every appointment (admin)
func (s *AppointmentService) List(ctx context.Context, filter AppointmentFilter) Response[[]Appointment] {
	query := url.Values{}
	if filter.Specialist != "" {
		query.Set("specialist", filter.Specialist)
	}
	if filter.Date != "" {
		query.Set("date", filter.Date)
	}
	if filter.Approved != nil {
		query.Set("approved", strconv.FormatBool(*filter.Approved))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}
	return do[[]Appointment](ctx, s.c, call{method: http.MethodGet, path: "/Appointment", query: query, private: true})
}

// Mine returns the caller's appointments
func (s *AppointmentService) Mine(ctx context.Context) Response[[]Appointment] {
	return do[[]Appointment](ctx, s.c, call{method: http.MethodGet, path: "/Appointment/mine", private: true})
}

func (s *AppointmentService) Get(ctx context.Context, id string) Response[Appointment] {
	return do[Appointment](ctx, s.c, call{method: http.MethodGet, path: "/Appointment/" + url.PathEscape(id), private: true})
}

// Create books an appointment
func (s *AppointmentService) Create(ctx context.Context, req CreateAppointment) Response[Appointment] {
	return do[Appointment](ctx, s.c, call{method: http.MethodPost, path: "/Appointment", body: req, private: true})
}

// Update replaces an appointment, approval flag included (admin)
func (s *AppointmentService) Update(ctx context.Context, id string, a Appointment) Response[Appointment] {
	return do[Appointment](ctx, s.c, call{method: http.MethodPut, path: "/Appointment/" + url.PathEscape(id), body: a, private: true})
}

// Approve sets only the approval flag (admin)
func (s *AppointmentService) Approve(ctx context.Context, id string, approved bool) Response[Appointment] {
	return do[Appointment](ctx, s.c, call{
		method:  http.MethodPatch,
		path:    "/Appointment/" + url.PathEscape(id) + "/approve",
		body:    map[string]bool{"isApproved": approved},
		private: true,
	})
}

func (s *AppointmentService) Delete(ctx context.Context, id string) Response[struct{}] {
	return do[struct{}](ctx, s.c, call{method: http.MethodDelete, path: "/Appointment/" + url.PathEscape(id), private: true})
}

// Availability lists the free slots of a specialist on a date
func (s *AppointmentService) Availability(ctx context.Context, specialist, date string) Response[Availability] {
	query := url.Values{"specialist": {specialist}, "date": {date}}
	return do[Availability](ctx, s.c, call{method: http.MethodGet, path: "/Appointment/availability", query: query})
}
