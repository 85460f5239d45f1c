package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/pkg/cart"
	"github.com/sokebat/barber-frontend-sub000/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "SALON"

// app is the state shared by every command, built once flags and config are parsed
type app struct {
	v       *viper.Viper
	client  *client.Client
	storage client.Storage
	out     io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "salonctl",
		Short:         "Book appointments, shop and administer the salon from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.salonctl.yaml)")
	flags.String("api-url", "http://localhost:8080", "salon API base URL")
	flags.String("session-file", defaultSessionFile(), "where cookies, profile and cart are kept; empty keeps them in memory")
	flags.Duration("timeout", client.DefaultTimeout, "per-request timeout")
	flags.Float64("tax-rate", cart.DefaultTaxRate, "tax rate used for cart totals")
	flags.Bool("verbose", false, "log diagnostics to stderr")
	_ = a.v.BindPFlags(flags)

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newServicesCmd(a),
		newProductsCmd(a),
		newTeamCmd(a),
		newCategoriesCmd(a),
		newBookCmd(a),
		newCartCmd(a),
		newCheckoutCmd(a),
		newAdminCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.readConfig(); err != nil {
		return err
	}

	level := zerolog.WarnLevel
	if a.v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()
	cmd.SetContext(log.Logger.WithContext(cmd.Context()))

	if path := a.v.GetString("session-file"); path != "" {
		fs, err := client.NewFileStorage(path)
		if err != nil {
			return err
		}
		a.storage = fs
	} else {
		a.storage = client.NewMemoryStorage()
	}

	a.out = cmd.OutOrStdout()
	a.client = client.New(a.v.GetString("api-url"),
		client.WithSession(client.NewSession(a.storage)),
		client.WithNavigator(client.PrintNavigator{W: cmd.ErrOrStderr()}),
		client.WithTimeout(a.v.GetDuration("timeout")),
	)

	log.Debug().
		Str("api_url", a.client.BaseURL()).
		Str("session_file", a.v.GetString("session-file")).
		Msg("salonctl configured")
	return nil
}

func (a *app) readConfig() error {
	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	a.v.AddConfigPath(home)
	a.v.SetConfigName(".salonctl")
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "salonctl", "session.json")
}
