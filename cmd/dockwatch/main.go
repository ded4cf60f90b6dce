// Command dockwatch monitors one Docker container and its dependent
// services, printing health reports and exporting Prometheus metrics.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/dockwatch/broker"
	"github.com/jonwraymond/dockwatch/check"
	"github.com/jonwraymond/dockwatch/config"
	"github.com/jonwraymond/dockwatch/docker"
	"github.com/jonwraymond/dockwatch/metrics"
	"github.com/jonwraymond/dockwatch/observe"
	"github.com/jonwraymond/dockwatch/probe"
	"github.com/jonwraymond/dockwatch/report"
	"github.com/jonwraymond/dockwatch/sched"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dockwatch:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logOut, closeLog, err := logWriter(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := observe.NewLoggerWithWriter(cfg.Log.Level, logOut).
		WithContainer(cfg.ContainerName)

	registry := prometheus.NewRegistry()
	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "dockwatch",
		Version:     version,
		Metrics: observe.MetricsConfig{
			Enabled:  true,
			Exporter: cfg.Monitoring.Exporter,
			Registry: registry,
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "telemetry shutdown failed",
				observe.Field{Key: "error", Value: err.Error()})
		}
	}()

	inspector, err := docker.NewInspector(docker.InspectorConfig{})
	if err != nil {
		return err
	}

	probeSrv, err := probe.NewServer(cfg.Probe.Port)
	if err != nil {
		return err
	}

	// Port-scan exhaustion is fatal: monitoring without an exporter would
	// silently disable the metrics contract.
	metricsSrv, err := metrics.NewServer(metrics.ServerConfig{
		BasePort:    cfg.Monitoring.MetricsPort,
		MaxAttempts: cfg.Monitoring.MaxPortAttempts,
		Registry:    registry,
	})
	if err != nil {
		return err
	}

	suite := buildSuite(cfg, inspector)
	sink := metrics.NewMeterSink(obs.Meter())

	publishers := []sched.Publisher{
		report.NewConsole(report.ConsoleConfig{}),
		probeSrv,
	}
	if cfg.Log.SaveReports {
		fileWriter, err := report.NewFileWriter(cfg.Log.OutputDir)
		if err != nil {
			return err
		}
		publishers = append(publishers, fileWriter)
	}

	scheduler := sched.New(suite, sink, logger,
		sched.Config{Interval: cfg.Monitoring.CheckInterval},
		publishers...)

	logger.Info(ctx, "dockwatch starting",
		observe.Field{Key: "version", Value: version},
		observe.Field{Key: "metrics_port", Value: metricsSrv.Port()},
		observe.Field{Key: "probe_port", Value: probeSrv.Port()},
		observe.Field{Key: "interval", Value: cfg.Monitoring.CheckInterval.String()},
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return metricsSrv.Serve(ctx) })
	g.Go(func() error { return probeSrv.Serve(ctx) })
	g.Go(func() error { return scheduler.Run(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info(context.Background(), "dockwatch stopped")
	return nil
}

// buildSuite assembles the checkers in their fixed execution order:
// liveness first, then resources, api, broker, logs and restarts.
func buildSuite(cfg *config.Config, inspector check.Inspector) *check.Suite {
	checkers := []check.Checker{
		check.NewResourceChecker(inspector, cfg.ContainerName, check.ResourceCheckerConfig{
			Thresholds: cfg.Thresholds,
		}),
		check.NewAPIChecker(check.APICheckerConfig{
			Enabled:      cfg.API.Enabled,
			Endpoints:    cfg.API.Endpoints,
			Timeout:      cfg.API.Timeout,
			ResponseTime: cfg.Thresholds.ResponseTime,
		}),
	}

	if cfg.Broker.Enabled {
		client := broker.NewClient(broker.ClientConfig{
			Host:     cfg.Broker.Host,
			Port:     cfg.Broker.Port,
			Username: cfg.Broker.Username,
			Password: cfg.Broker.Password,
		})
		checkers = append(checkers, check.NewBrokerChecker(client))
	}

	checkers = append(checkers,
		check.NewLogChecker(inspector, cfg.ContainerName, cfg.ErrorPatterns),
		check.NewRestartChecker(inspector, cfg.ContainerName, cfg.Thresholds.RestartCountMax),
	)

	return check.NewSuite(cfg.ContainerName,
		check.NewRunningChecker(inspector, cfg.ContainerName),
		checkers...)
}

// logWriter builds the log destination: stderr, mirrored into the
// configured log file when an output directory is set.
func logWriter(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.Log.OutputDir == "" || cfg.Log.File == "" {
		return os.Stderr, func() {}, nil
	}

	if err := os.MkdirAll(cfg.Log.OutputDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(cfg.LogFilePath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return io.MultiWriter(os.Stderr, f), func() { f.Close() }, nil
}
