package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	ticketscraper "github.com/labrat-0/event-ticket-scraper"
	"github.com/labrat-0/event-ticket-scraper/config"
	"github.com/labrat-0/event-ticket-scraper/logger"
	"github.com/labrat-0/event-ticket-scraper/metrics"
	"github.com/labrat-0/event-ticket-scraper/sink"
	"github.com/labrat-0/event-ticket-scraper/state"
	"github.com/labrat-0/event-ticket-scraper/types"
)

// resolveSettings loads the settings file, if any, and applies the
// persistent flag overrides on top.
func resolveSettings(g globalFlags) (*config.Settings, error) {
	var s *config.Settings
	if g.settings != "" {
		loaded, err := config.LoadSettings(g.settings)
		if err != nil {
			return nil, err
		}
		s = loaded
	} else {
		d := config.DefaultSettings()
		s = &d
	}

	if g.logLevel != "" {
		s.Logging.Level = g.logLevel
	}
	if g.output != "" {
		s.Output.Path = g.output
	}
	if g.format != "" {
		s.Output.Format = g.format
	}
	if g.metricsAddr != "" {
		s.Metrics.Addr = g.metricsAddr
	}
	if g.statePath != "" {
		s.State.Path = g.statePath
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return s, nil
}

func openSink(s config.OutputSettings, stdout io.Writer) (sink.Sink, io.Closer, error) {
	w := stdout
	var closer io.Closer = nopCloser{}
	if s.Path != "" {
		f, err := os.Create(s.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open output: %w", err)
		}
		w, closer = f, f
	}

	if s.Format == "table" {
		return sink.NewTable(w), closer, nil
	}
	return sink.NewJSONLines(w), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openStore(s config.StateSettings) state.Store {
	if s.Path == "" {
		return state.NewMemoryStore()
	}
	return state.NewFileStore(s.Path)
}

// execute runs one scrape for the raw actor input and serves metrics
// alongside it when configured.
func execute(ctx context.Context, g globalFlags, raw map[string]any, stdout, stderr io.Writer) error {
	settings, err := resolveSettings(g)
	if err != nil {
		return err
	}

	slogger := settings.Logging.NewSlog(stderr)
	slog.SetDefault(slogger)
	log := logger.NewSlog(slogger)

	if err := config.LoadEnv(g.envFile); err != nil {
		return err
	}
	in, err := types.FromActorInput(config.ApplyEnv(raw))
	if err != nil {
		return err
	}

	out, closer, err := openSink(settings.Output, stdout)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	clientOpts := []ticketscraper.ConfigOption{
		ticketscraper.WithLogger(log),
		ticketscraper.WithTimeout(settings.HTTP.Timeout()),
		ticketscraper.WithObserver(collector),
	}
	if settings.HTTP.BaseURL != "" {
		clientOpts = append(clientOpts, ticketscraper.WithBaseUrl(settings.HTTP.BaseURL))
	}
	client := ticketscraper.NewClient(in.ApiKey, clientOpts...)

	scraper := ticketscraper.NewScraper(client, out,
		ticketscraper.WithFreeTier(config.FreeTier()),
		ticketscraper.WithFreeTierLimit(settings.FreeTier.Limit),
		ticketscraper.WithStateStore(openStore(settings.State)),
		ticketscraper.WithBatchSize(settings.Batch.Size),
		ticketscraper.WithFlushInterval(settings.Batch.FlushInterval()),
		ticketscraper.WithMaxRetries(settings.Batch.MaxRetries),
		ticketscraper.WithRecordObserver(collector),
		ticketscraper.WithScraperLogger(log),
	)

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	eg, egCtx := errgroup.WithContext(ctx)

	if settings.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              settings.Metrics.Addr,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		eg.Go(func() error {
			slog.Info("serving metrics", "addr", settings.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		eg.Go(func() error {
			<-egCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	var res *ticketscraper.RunResult
	eg.Go(func() error {
		defer stop()
		var err error
		res, err = scraper.Run(egCtx, in)
		return err
	})

	runErr := eg.Wait()
	if err := out.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close sink: %w", err)
	}
	if err := closer.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close output: %w", err)
	}

	if res != nil {
		slog.Info("run finished",
			"run_id", res.RunID.String(),
			"mode", res.Mode,
			"pushed", res.Pushed,
			"reason", string(res.Reason),
		)
	}
	return runErr
}
