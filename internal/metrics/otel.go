package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultServiceName = "widgetbridge"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx              context.Context
	requests         metric.Int64Counter
	requestLatencyMs metric.Float64Histogram
	updates          metric.Int64Counter
	updateLatencyMs  metric.Float64Histogram
	observerFaults   metric.Int64Counter
	nativeMessages   metric.Int64Counter
	callbacks        metric.Int64Counter
	legacyCalls      metric.Int64Counter
	replayCycles     metric.Int64Counter
	replayErrors     metric.Int64Counter
	replayLatencyMs  metric.Float64Histogram
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(defaultServiceName)
	inst := &otelInstruments{ctx: context.Background()}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
	}{
		{&inst.requests, "http_requests_total"},
		{&inst.updates, "provider_updates_total"},
		{&inst.observerFaults, "provider_observer_faults_total"},
		{&inst.nativeMessages, "native_messages_total"},
		{&inst.callbacks, "native_callbacks_total"},
		{&inst.legacyCalls, "legacy_calls_total"},
		{&inst.replayCycles, "emulation_replay_cycles_total"},
		{&inst.replayErrors, "emulation_replay_errors_total"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	histograms := []struct {
		dst  *metric.Float64Histogram
		name string
	}{
		{&inst.requestLatencyMs, "http_request_duration_ms"},
		{&inst.updateLatencyMs, "provider_update_duration_ms"},
		{&inst.replayLatencyMs, "emulation_replay_duration_ms"},
	}
	for _, h := range histograms {
		hist, err := meter.Float64Histogram(h.name)
		if err != nil {
			return nil, err
		}
		*h.dst = hist
	}

	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordUpdate(namespace string, duration time.Duration, applied bool) {
	if o == nil {
		return
	}
	result := "applied"
	if !applied {
		result = "ignored"
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrNamespace, namespace),
		attribute.String(AttrResult, result),
	}
	o.recordCounter(o.updates, 1, attrs...)
	if applied {
		o.recordHistogram(o.updateLatencyMs, float64(duration.Microseconds())/1000, attrs[:1]...)
	}
}

func (o *otelInstruments) recordObserverFault(namespace string) {
	if o == nil {
		return
	}
	o.recordCounter(o.observerFaults, 1, attribute.String(AttrNamespace, namespace))
}

func (o *otelInstruments) recordNativeMessage(direction, kind string) {
	if o == nil {
		return
	}
	o.recordCounter(o.nativeMessages, 1,
		attribute.String(AttrDirection, direction),
		attribute.String(AttrKind, kind),
	)
}

func (o *otelInstruments) recordCallback(result string) {
	if o == nil {
		return
	}
	o.recordCounter(o.callbacks, 1, attribute.String(AttrResult, result))
}

func (o *otelInstruments) recordLegacyCall(object, result string) {
	if o == nil {
		return
	}
	o.recordCounter(o.legacyCalls, 1,
		attribute.String(AttrObject, object),
		attribute.String(AttrResult, result),
	)
}

func (o *otelInstruments) recordReplay(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.replayCycles, 1)
	o.recordHistogram(o.replayLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.replayErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
