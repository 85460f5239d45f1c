package entities

import (
	"time"
)

// DateLayout is the wire format of Appointment.AppointmentDate
const DateLayout = "2006-01-02"

// TimeLayout is the wire format of Appointment.AppointmentTime
const TimeLayout = "03:04 PM"

// Appointment is a booking request for one service with one specialist.
// Service and specialist are referenced by display name, not by id.
type Appointment struct {
	ID              string    `json:"id" db:"id"`
	CustomerName    string    `json:"customerName" db:"customer_name"`
	ServiceName     string    `json:"serviceName" db:"service_name"`
	SpecialistName  string    `json:"specialistName" db:"specialist_name"`
	AppointmentDate string    `json:"appointmentDate" db:"appointment_date"`
	AppointmentTime string    `json:"appointmentTime" db:"appointment_time"`
	IsApproved      bool      `json:"isApproved" db:"is_approved"`
	UserID          string    `json:"userId,omitempty" db:"user_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateAppointmentRequest is the payload accepted when booking
type CreateAppointmentRequest struct {
	CustomerName    string `json:"customerName"`
	ServiceName     string `json:"serviceName"`
	SpecialistName  string `json:"specialistName"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
}

// Availability lists the bookable slots for one specialist on one day
type Availability struct {
	SpecialistName string   `json:"specialistName"`
	Date           string   `json:"date"`
	Slots          []string `json:"slots"`
	Unavailable    []string `json:"unavailable"`
}
