package trace

import (
	// 外部依赖
	"context"
	"time"

	host "go.opentelemetry.io/contrib/instrumentation/host"
	runtime "go.opentelemetry.io/contrib/instrumentation/runtime"
	otel "go.opentelemetry.io/otel"
	otlpmetricgrpc "go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	otlptracegrpc "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	stdoutmetric "go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	stdouttrace "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	propagation "go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	// 内部引用
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
)

type InitConfig struct {
	ServiceName     string
	Version         string
	TraceEndpoint   string
	MetricEndpoint  string
	TraceInstanceID string
}

var (
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
)

func InitTrace(ctx context.Context, conf *InitConfig) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(conf.ServiceName),
			semconv.ServiceVersion(conf.Version),
			semconv.ServiceInstanceID(conf.TraceInstanceID),
		))
	if err != nil {
		logger.Errorf(ctx, "build trace resource err: %+v", err)
		return
	}

	traceExp, err := newTraceExporter(ctx, conf.TraceEndpoint)
	if err != nil {
		logger.Errorf(ctx, "init trace exporter err: %+v", err)
		return
	}
	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	metricExp, err := newMetricExporter(ctx, conf.MetricEndpoint)
	if err != nil {
		logger.Errorf(ctx, "init metric exporter err: %+v", err)
		return
	}
	meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp,
			sdkmetric.WithInterval(30*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	if err := runtime.Start(); err != nil {
		logger.Warnf(ctx, "start runtime instrumentation err: %+v", err)
	}
	if err := host.Start(); err != nil {
		logger.Warnf(ctx, "start host instrumentation err: %+v", err)
	}
}

func CloseTrace() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if tracerProvider != nil {
		_ = tracerProvider.Shutdown(ctx)
	}
	if meterProvider != nil {
		_ = meterProvider.Shutdown(ctx)
	}
}

func newTraceExporter(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	if endpoint == "" {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	return otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure())
}

func newMetricExporter(ctx context.Context, endpoint string) (sdkmetric.Exporter, error) {
	if endpoint == "" {
		return stdoutmetric.New()
	}
	return otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure())
}
