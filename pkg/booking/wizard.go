package booking

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Step is a stage of the booking wizard
type Step int

const (
	StepService Step = iota + 1
	StepSpecialist
	StepDetails
	StepTime
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepSpecialist:
		return "specialist"
	case StepDetails:
		return "details"
	case StepTime:
		return "time"
	case StepConfirm:
		return "confirm"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Query keys accepted by Prefill and written into the login return path
const (
	QueryService    = "service"
	QuerySpecialist = "specialist"
)

// Redirect targets
const (
	BookPath  = "/book"
	LoginPath = "/login"
)

var (
	ErrWrongStep  = errors.New("action is not available at this step")
	ErrIncomplete = errors.New("service, specialist, date and time are required")
)

// FieldError is a validation failure tied to one form field
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Draft is the appointment being assembled. Its JSON matches the create-appointment payload.
type Draft struct {
	CustomerName    string `json:"customerName"`
	ServiceName     string `json:"serviceName"`
	SpecialistName  string `json:"specialistName"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
}

func (d Draft) complete() bool {
	return d.ServiceName != "" && d.SpecialistName != "" && d.CustomerName != "" &&
		d.AppointmentDate != "" && d.AppointmentTime != ""
}

// Wizard walks a single customer through the five booking stages. It is not safe for concurrent use.
type Wizard struct {
	step        Step
	draft       Draft
	unavailable []string
	now         func() time.Time
}

// NewWizard starts a wizard at StepService
func NewWizard() *Wizard {
	return &Wizard{step: StepService, now: time.Now}
}

// WithClock replaces the clock used by the date rule
func (w *Wizard) WithClock(now func() time.Time) *Wizard {
	w.now = now
	return w
}

// Step returns the current stage
func (w *Wizard) Step() Step {
	return w.step
}

// SelectService picks the service and advances to StepSpecialist
func (w *Wizard) SelectService(name string) error {
	if w.step != StepService {
		return ErrWrongStep
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &FieldError{Field: "service", Err: errors.New("service is required")}
	}
	w.draft.ServiceName = name
	w.step = StepSpecialist
	return nil
}

// SelectSpecialist picks the specialist and advances to StepDetails
func (w *Wizard) SelectSpecialist(name string) error {
	if w.step != StepSpecialist {
		return ErrWrongStep
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &FieldError{Field: "specialist", Err: errors.New("specialist is required")}
	}
	w.draft.SpecialistName = name
	w.step = StepDetails
	return nil
}

// EnterDetails validates the customer name and date and advances to StepTime
func (w *Wizard) EnterDetails(name, date string) error {
	if w.step != StepDetails {
		return ErrWrongStep
	}
	if err := ValidateName(name); err != nil {
		return &FieldError{Field: "name", Err: err}
	}
	date = strings.TrimSpace(date)
	if err := ValidateDate(date, w.now()); err != nil {
		return &FieldError{Field: "date", Err: err}
	}
	w.draft.CustomerName = strings.TrimSpace(name)
	w.draft.AppointmentDate = date
	w.step = StepTime
	return nil
}

// SetUnavailable records the slots already taken for the chosen specialist and date
func (w *Wizard) SetUnavailable(slots []string) {
	w.unavailable = append([]string(nil), slots...)
}

// Slots returns the slots that can still be picked
func (w *Wizard) Slots() []string {
	return AvailableSlots(w.unavailable)
}

// SelectTime picks a free slot and advances to StepConfirm
func (w *Wizard) SelectTime(slot string) error {
	if w.step != StepTime {
		return ErrWrongStep
	}
	slot = strings.TrimSpace(slot)
	if err := ValidateSlot(slot); err != nil {
		return &FieldError{Field: "time", Err: err}
	}
	for _, taken := range w.unavailable {
		if taken == slot {
			return &FieldError{Field: "time", Err: fmt.Errorf("%s is already booked", slot)}
		}
	}
	w.draft.AppointmentTime = slot
	w.step = StepConfirm
	return nil
}

// Back returns to the previous stage. Entered values are kept.
func (w *Wizard) Back() {
	if w.step > StepService {
		w.step--
	}
}

// Reset clears the wizard back to StepService
func (w *Wizard) Reset() {
	w.step = StepService
	w.draft = Draft{}
	w.unavailable = nil
}

// Prefill seeds the service and specialist stages from query parameters
func (w *Wizard) Prefill(values url.Values) error {
	if service := values.Get(QueryService); service != "" && w.step == StepService {
		if err := w.SelectService(service); err != nil {
			return err
		}
	}
	if specialist := values.Get(QuerySpecialist); specialist != "" && w.step == StepSpecialist {
		if err := w.SelectSpecialist(specialist); err != nil {
			return err
		}
	}
	return nil
}

// Ready reports whether Confirm may be attempted
func (w *Wizard) Ready() bool {
	return w.step == StepConfirm && w.draft.complete()
}

// Draft returns the assembled appointment once every field is set
func (w *Wizard) Draft() (Draft, error) {
	if !w.draft.complete() {
		return Draft{}, ErrIncomplete
	}
	return w.draft, nil
}

// ReturnPath is the booking page with the chosen service and specialist preselected
func (w *Wizard) ReturnPath() string {
	q := url.Values{}
	if w.draft.ServiceName != "" {
		q.Set(QueryService, w.draft.ServiceName)
	}
	if w.draft.SpecialistName != "" {
		q.Set(QuerySpecialist, w.draft.SpecialistName)
	}
	if len(q) == 0 {
		return BookPath
	}
	return BookPath + "?" + q.Encode()
}

// Outcome is the result of Confirm: a redirect, a message, or both
type Outcome[T any] struct {
	Redirect    string
	Message     string
	Appointment T
	Booked      bool
}

// Confirm submits the draft. Anonymous callers are sent to the login page with a
// return path; a successful booking resets the wizard and redirects to BookPath.
func Confirm[T any](ctx context.Context, w *Wizard, authenticated bool, submit func(context.Context, Draft) (T, error)) Outcome[T] {
	var out Outcome[T]

	draft, err := w.Draft()
	if err != nil || w.step != StepConfirm {
		out.Message = ErrIncomplete.Error()
		return out
	}

	if !authenticated {
		out.Redirect = LoginPath + "?returnUrl=" + url.QueryEscape(w.ReturnPath())
		return out
	}

	appointment, err := submit(ctx, draft)
	if err != nil {
		out.Message = err.Error()
		return out
	}

	w.Reset()
	out.Redirect = BookPath
	out.Message = "appointment booked"
	out.Appointment = appointment
	out.Booked = true
	return out
}
