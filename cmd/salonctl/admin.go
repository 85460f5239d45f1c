package main

import (
	"fmt"
	"strconv"

	"github.com/sokebat/barber-frontend-sub000/pkg/client"
	"github.com/spf13/cobra"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands (requires an Admin login)",
	}
	cmd.AddCommand(newAdminAppointmentsCmd(a))
	return cmd
}

func newAdminAppointmentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appt"},
		Short:   "Review and approve bookings",
	}

	var filter client.AppointmentFilter
	var approved string
	list := &cobra.Command{
		Use:   "list",
		Short: "List appointments by date and time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if approved != "" {
				v, err := strconv.ParseBool(approved)
				if err != nil {
					return fmt.Errorf("--approved must be true or false")
				}
				filter.Approved = &v
			}

			resp := a.client.Appointments.List(cmd.Context(), filter)
			if err := resp.Err(); err != nil {
				return err
			}

			tw := a.table()
			fmt.Fprintln(tw, "ID\tDATE\tTIME\tCUSTOMER\tSERVICE\tSPECIALIST\tAPPROVED")
			for _, ap := range resp.Data {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
					ap.ID, ap.AppointmentDate, ap.AppointmentTime, ap.CustomerName, ap.ServiceName, ap.SpecialistName, ap.IsApproved)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&filter.Specialist, "specialist", "", "only this specialist")
	list.Flags().StringVar(&filter.Date, "date", "", "only this date (YYYY-MM-DD)")
	list.Flags().StringVar(&approved, "approved", "", "only approved (true) or pending (false)")
	list.Flags().IntVar(&filter.Limit, "limit", 0, "maximum rows")

	var revoke bool
	approve := &cobra.Command{
		Use:   "approve ID",
		Short: "Approve an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := a.client.Appointments.Approve(cmd.Context(), args[0], !revoke)
			if err := resp.Err(); err != nil {
				return err
			}
			state := "approved"
			if !resp.Data.IsApproved {
				state = "pending"
			}
			a.printf("appointment %s is %s\n", resp.Data.ID, state)
			return nil
		},
	}
	approve.Flags().BoolVar(&revoke, "revoke", false, "withdraw a previous approval")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp := a.client.Appointments.Delete(cmd.Context(), args[0])
			if err := resp.Err(); err != nil {
				return err
			}
			a.printf("appointment %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, approve, del)
	return cmd
}
