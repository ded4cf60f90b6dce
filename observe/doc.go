// Package observe provides the telemetry bootstrap for the monitor: a
// structured JSON logger and an OpenTelemetry meter provider whose reader
// is selected by configuration (prometheus, stdout, otlp or none).
//
// # Basic Usage
//
//	registry := prometheus.NewRegistry()
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "dockwatch",
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus", Registry: registry},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//	if err != nil {
//	    // configuration is invalid
//	}
//	defer obs.Shutdown(ctx)
//
//	obs.Logger().Info(ctx, "starting", observe.Field{Key: "port", Value: 8000})
//	meter := obs.Meter()
package observe
