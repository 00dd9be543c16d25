package main

import (
	"fmt"
	"strings"

	"github.com/etkecc/go-healthchecks/v2"
	"github.com/spf13/cobra"

	"github.com/etkecc/emailscore/internal/disposable"
)

func newFetchCmd() *cobra.Command {
	var opts disposable.FetchOptions
	cmd := &cobra.Command{
		Use:   "fetch-disposable",
		Short: "Download the disposable domains blocklist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hc := newHealthchecks()
			if hc != nil {
				hc.Start(strings.NewReader("fetching disposable domains"))
			}

			fetcher := disposable.NewFetcher(disposable.FetcherConfig{
				URL:      cfg.Disposable.SourceURL,
				Path:     cfg.Disposable.File,
				Timeout:  cfg.Disposable.Timeout,
				MaxBytes: cfg.Disposable.MaxBytes,
			}, component("fetcher"))

			res, err := fetcher.Fetch(cmd.Context(), opts)
			if err != nil {
				if hc != nil {
					hc.Fail(strings.NewReader(err.Error()))
				}
				return err
			}

			summary := fmt.Sprintf("%d domains from %s", res.Count, res.URL)
			if res.Changed {
				summary += " written to " + res.Path
			} else {
				summary += ", " + res.Path + " is up to date"
			}
			if hc != nil {
				hc.Success(strings.NewReader(summary))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Path, "path", "", "Blocklist file path (default from config)")
	cmd.Flags().StringVar(&opts.URL, "url", "", "Upstream blocklist URL (default from config)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Write the file even if the list did not change")

	return cmd
}

func newHealthchecks() *healthchecks.Client {
	if cfg.Monitoring.HealthchecksUUID == "" {
		return nil
	}
	options := []healthchecks.Option{
		healthchecks.WithCheckUUID(cfg.Monitoring.HealthchecksUUID),
		healthchecks.WithErrLog(func(operation string, err error) {
			log.Error().Err(err).Str("operation", operation).Msg("healthchecks operation failed")
		}),
	}
	if cfg.Monitoring.HealthchecksURL != "" {
		options = append(options, healthchecks.WithBaseURL(cfg.Monitoring.HealthchecksURL))
	}
	return healthchecks.New(options...)
}
