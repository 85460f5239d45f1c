package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sokebat/barber-frontend-sub000/pkg/booking"
	"github.com/sokebat/barber-frontend-sub000/pkg/client"
	"github.com/spf13/cobra"
)

type bookOptions struct {
	query      string
	service    string
	specialist string
	name       string
	date       string
	time       string
}

func newBookCmd(a *app) *cobra.Command {
	var opts bookOptions
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		Long: `Walks the booking steps non-interactively. Service and specialist may come
from --query ("service=Haircut&specialist=Anna") as a booking link would
preselect them. Without --time the free slots are listed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.book(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.query, "query", "", "booking link query string")
	f.StringVar(&opts.service, "service", "", "service name")
	f.StringVar(&opts.specialist, "specialist", "", "specialist name")
	f.StringVar(&opts.name, "name", "", "customer name")
	f.StringVar(&opts.date, "date", "", "date (YYYY-MM-DD)")
	f.StringVar(&opts.time, "time", "", `time slot, e.g. "10:00 AM"`)
	return cmd
}

func (a *app) book(ctx context.Context, opts bookOptions) error {
	w := booking.NewWizard()

	values, err := url.ParseQuery(strings.TrimPrefix(opts.query, "?"))
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}
	if err := w.Prefill(values); err != nil {
		return err
	}
	if w.Step() == booking.StepService {
		if err := w.SelectService(opts.service); err != nil {
			return err
		}
		if err := w.Prefill(values); err != nil {
			return err
		}
	}

	specialist := strings.TrimSpace(values.Get(booking.QuerySpecialist))
	if w.Step() == booking.StepSpecialist {
		if err := w.SelectSpecialist(opts.specialist); err != nil {
			return err
		}
		specialist = strings.TrimSpace(opts.specialist)
	}

	if err := w.EnterDetails(opts.name, opts.date); err != nil {
		return err
	}

	availability := a.client.Appointments.Availability(ctx, specialist, strings.TrimSpace(opts.date))
	if err := availability.Err(); err != nil {
		return fmt.Errorf("load availability: %w", err)
	}
	w.SetUnavailable(availability.Data.Unavailable)

	if opts.time == "" {
		a.printf("free slots for %s on %s:\n", specialist, opts.date)
		for _, slot := range w.Slots() {
			a.printf("  %s\n", slot)
		}
		return errors.New("pick one with --time")
	}
	if err := w.SelectTime(opts.time); err != nil {
		return err
	}

	outcome := booking.Confirm(ctx, w, a.client.Session().IsAuthenticated(),
		func(ctx context.Context, d booking.Draft) (client.Appointment, error) {
			resp := a.client.Appointments.Create(ctx, client.CreateAppointment{
				CustomerName:    d.CustomerName,
				ServiceName:     d.ServiceName,
				SpecialistName:  d.SpecialistName,
				AppointmentDate: d.AppointmentDate,
				AppointmentTime: d.AppointmentTime,
			})
			return resp.Data, resp.Err()
		})

	if outcome.Redirect != "" {
		client.PrintNavigator{W: a.out}.Navigate(outcome.Redirect)
	}
	if !outcome.Booked {
		if outcome.Message != "" {
			return errors.New(outcome.Message)
		}
		return errors.New("log in to finish booking")
	}

	ap := outcome.Appointment
	a.printf("booked %s with %s on %s at %s (pending approval)\n",
		ap.ServiceName, ap.SpecialistName, ap.AppointmentDate, ap.AppointmentTime)
	return nil
}
