// Package telemetry provides OpenTelemetry metrics for jira-as.
//
// Telemetry is disabled by default (zero runtime overhead when off).
//
// # Configuration
//
//	JIRA_AS_TELEMETRY=true   enable telemetry (default: off)
//
// When enabled, API request and error counters are exported to stderr on
// shutdown via the stdout metric exporter.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const instrumentationScope = "github.com/jira-assistant/jira-as"

var (
	requests metric.Int64Counter
	failures metric.Int64Counter
	shutdown func(context.Context) error
)

// Enabled reports whether telemetry is active (JIRA_AS_TELEMETRY=true).
func Enabled() bool {
	return os.Getenv("JIRA_AS_TELEMETRY") == "true"
}

// Init configures the OTel meter provider. When JIRA_AS_TELEMETRY is not
// "true" this installs a no-op provider and returns immediately.
func Init(ctx context.Context) error {
	if !Enabled() {
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
		return initInstruments()
	}

	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr))
	if err != nil {
		return fmt.Errorf("telemetry: stdout exporter: %w", err)
	}

	res, err := resource.New(ctx)
	if err != nil {
		return fmt.Errorf("telemetry: resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
	)
	otel.SetMeterProvider(mp)
	shutdown = mp.Shutdown

	return initInstruments()
}

func initInstruments() error {
	meter := otel.Meter(instrumentationScope)
	var err error
	requests, err = meter.Int64Counter("jira.api.requests",
		metric.WithDescription("Jira API requests issued"))
	if err != nil {
		return fmt.Errorf("telemetry: requests counter: %w", err)
	}
	failures, err = meter.Int64Counter("jira.api.errors",
		metric.WithDescription("Jira API requests that returned an error"))
	if err != nil {
		return fmt.Errorf("telemetry: errors counter: %w", err)
	}
	return nil
}

// CountRequest records one outbound API request.
func CountRequest(ctx context.Context, method string) {
	if requests != nil {
		requests.Add(ctx, 1, metric.WithAttributes(attribute.String("http.method", method)))
	}
}

// CountError records one failed API request.
func CountError(ctx context.Context, method string) {
	if failures != nil {
		failures.Add(ctx, 1, metric.WithAttributes(attribute.String("http.method", method)))
	}
}

// Shutdown flushes any pending metrics. Safe to call when telemetry was
// never enabled.
func Shutdown(ctx context.Context) error {
	if shutdown == nil {
		return nil
	}
	return shutdown(ctx)
}
