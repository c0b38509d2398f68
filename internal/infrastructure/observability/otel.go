package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Metrics holds the pipeline's instruments
type Metrics struct {
	RunDuration metric.Float64Histogram
	RowsRead    metric.Int64Counter
	RowsWritten metric.Int64Counter
	RunFailures metric.Int64Counter
}

// Setup initializes OpenTelemetry tracing
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		return tracerProvider.Shutdown(ctx)
	}

	return shutdown, nil
}

// InitMetrics initializes the pipeline instruments
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/NorrieF/jp-search-quality")

	runDuration, err := meter.Float64Histogram(
		"pipeline.run.duration",
		metric.WithDescription("Full metrics run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	rowsRead, err := meter.Int64Counter(
		"pipeline.rows.read",
		metric.WithDescription("Input rows read per run"),
	)
	if err != nil {
		return nil, err
	}

	rowsWritten, err := meter.Int64Counter(
		"pipeline.rows.written",
		metric.WithDescription("Output rows written per run"),
	)
	if err != nil {
		return nil, err
	}

	runFailures, err := meter.Int64Counter(
		"pipeline.run.failures",
		metric.WithDescription("Number of failed metrics runs"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RunDuration: runDuration,
		RowsRead:    rowsRead,
		RowsWritten: rowsWritten,
		RunFailures: runFailures,
	}, nil
}
