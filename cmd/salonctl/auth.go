package main

import (
	"errors"

	"github.com/sokebat/barber-frontend-sub000/pkg/client"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := a.client.Auth.Login(cmd.Context(), email, password)
			if err := resp.Err(); err != nil {
				return err
			}
			name := email
			if resp.Data.User != nil {
				name = resp.Data.User.FullName
			}
			a.printf("logged in as %s (%s)\n", name, resp.Data.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var req client.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := a.client.Auth.Register(cmd.Context(), req)
			if err := resp.Err(); err != nil {
				return err
			}
			a.printf("registered %s; run salonctl login to continue\n", resp.Data.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Auth.Logout(); err != nil {
				return err
			}
			a.printf("logged out\n")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.client.Session().IsAuthenticated() {
				return errors.New("not logged in")
			}
			resp := a.client.Auth.Me(cmd.Context())
			if err := resp.Err(); err != nil {
				return err
			}
			a.printf("%s <%s> %s\n", resp.Data.FullName, resp.Data.Email, resp.Data.Role)
			return nil
		},
	}
}
