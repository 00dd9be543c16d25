package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/etkecc/emailscore/internal/config"
)

var (
	cfgPath string
	cfg     *config.Config
	log     zerolog.Logger
)

func main() {
	defer recovery()

	if err := newRootCmd().Execute(); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(5 * time.Second)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sentry.Flush(5 * time.Second)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "emailscore",
		Short:         "Email address scoring",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initApp()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to configuration file (YAML)")

	rootCmd.AddCommand(newVerifyCmd(), newFetchCmd(), newServeCmd())
	return rootCmd
}

func initApp() error {
	var err error
	cfg, err = config.New(cfgPath)
	if err != nil {
		return err
	}

	log = newLogger(cfg.LogLevel)
	initSentry(cfg)
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// component logger
func component(name string) *zerolog.Logger {
	clog := log.With().Str("component", name).Logger()
	return &clog
}

func initSentry(cfg *config.Config) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Monitoring.SentryDSN,
		AttachStacktrace: true,
		TracesSampleRate: float64(cfg.Monitoring.SentrySampleRate) / 100,
	})
	if err != nil {
		log.Error().Err(err).Msg("cannot initialize sentry")
	}
}

func recovery() {
	err := recover()
	if err == nil {
		return
	}
	sentry.CurrentHub().Recover(err)
	sentry.Flush(5 * time.Second)
	log.Error().Interface("panic", err).Msg("emailscore crashed")
	os.Exit(2)
}
