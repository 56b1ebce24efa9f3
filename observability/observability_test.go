package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/kbukum/convokit/errors"
	"github.com/kbukum/convokit/logger"
)

func useRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("convokit")

	if cfg.Enabled {
		t.Error("export should be disabled by default")
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("Endpoint = %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %f", cfg.SampleRate)
	}
	if cfg.MetricInterval != 15*time.Second {
		t.Errorf("MetricInterval = %v", cfg.MetricInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"sample rate above one", func(c *Config) { c.SampleRate = 1.5 }, true},
		{"negative interval", func(c *Config) { c.MetricInterval = -time.Second }, true},
		{"enabled without endpoint", func(c *Config) { c.Enabled = true; c.Endpoint = "" }, true},
		{"enabled", func(c *Config) { c.Enabled = true }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("svc")
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), DefaultConfig("svc"))
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	for _, rate := range []float64{1.0, 0.0, 0.5} {
		cfg := DefaultConfig("svc")
		cfg.SampleRate = rate
		tp, err := InitTracer(context.Background(), cfg)
		if err != nil {
			t.Fatalf("InitTracer(rate=%v): %v", rate, err)
		}
		shutdownQuickly(tp.Shutdown)
	}
}

func TestInitMeter(t *testing.T) {
	prev := otel.GetMeterProvider()
	defer otel.SetMeterProvider(prev)

	mp, err := InitMeter(context.Background(), DefaultConfig("svc"))
	if err != nil {
		t.Fatalf("InitMeter: %v", err)
	}
	shutdownQuickly(mp.Shutdown)
}

// shutdownQuickly bounds exporter flushes, since no collector is listening.
func shutdownQuickly(shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = shutdown(ctx)
}

func TestNewMetricsNoop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordRequestStart(ctx)
	metrics.RecordRequestEnd(ctx, "convokit", "annotate", "ok", 100*time.Millisecond)
	metrics.RecordDetectorRun(ctx, "gap", "ok", time.Millisecond, 2)
	metrics.RecordError(ctx, "execute", "gap")
}

func TestDetectorMetricsRecorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	metrics.RecordDetectorRun(ctx, "gap", "ok", 2*time.Millisecond, 3)
	metrics.RecordDetectorRun(ctx, "gap", "ok", 2*time.Millisecond, 0)
	metrics.RecordDetectorRun(ctx, "pause", "error", time.Millisecond, 0)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatal(err)
	}

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			data, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range data.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}
	if sums["convokit.detector.runs"] != 3 {
		t.Errorf("detector runs = %d, want 3", sums["convokit.detector.runs"])
	}
	if sums["convokit.detector.markers"] != 3 {
		t.Errorf("markers = %d, want 3", sums["convokit.detector.markers"])
	}
}

func TestStartSpanRecordsAttributes(t *testing.T) {
	exporter := useRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanDetect)
	SetSpanAttribute(ctx, AttrDetector, "gap")
	SetSpanAttribute(ctx, AttrMarkers, 2)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "slice-key", []string{"a", "b"})
	SetSpanAttribute(ctx, "ignored", struct{}{})
	SetSpanError(ctx, fmt.Errorf("detector failed"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	got := spans[0]
	if got.Name != SpanDetect {
		t.Errorf("span name = %q", got.Name)
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range got.Attributes {
		attrs[kv.Key] = kv.Value
	}
	if attrs[AttrDetector].AsString() != "gap" {
		t.Errorf("detector attribute = %v", attrs[AttrDetector])
	}
	if _, ok := attrs["ignored"]; ok {
		t.Error("unsupported attribute type should be ignored")
	}
	if len(got.Events) != 1 {
		t.Errorf("expected one error event, got %d", len(got.Events))
	}
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span"))
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected a non-recording span")
	}
}

func TestOperation(t *testing.T) {
	exporter := useRecorder(t)

	ctx := logger.ContextWithRequestID(context.Background(), "req-1")
	ctx, op := StartOperation(ctx, "convokit", "annotate", SpanAnnotate, nil)
	if op.Started.IsZero() || op.RequestID != "req-1" {
		t.Fatalf("operation = %+v", op)
	}
	if OperationFromContext(ctx) != op {
		t.Fatal("operation not stored in context")
	}
	if OperationFromContext(context.Background()) != nil {
		t.Fatal("expected nil without stored operation")
	}
	op.End(ctx, "error", fmt.Errorf("bad input"))

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != SpanAnnotate {
		t.Fatalf("spans = %+v", spans)
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v", spans[0].Status)
	}
	if op.Elapsed() <= 0 {
		t.Error("Elapsed should be positive")
	}
}

func TestOperationCountsErrorsByCode(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(provider.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	ctx, op := StartOperation(context.Background(), "convokit", "annotate", SpanAnnotate, metrics)
	op.End(ctx, "error", apperrors.NotFound("vocabulary", "docx"))

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key("type")); ok && v.AsString() == "NOT_FOUND" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("expected an error count labelled NOT_FOUND")
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"app error", apperrors.DetectorFailed("gap", fmt.Errorf("boom")), "DETECTOR_FAILED"},
		{"plain error", fmt.Errorf("boom"), "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorType(tt.err); got != tt.want {
				t.Errorf("ErrorType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServiceHealth(t *testing.T) {
	up := HealthCheckFunc(func(context.Context) Health { return Health{Name: "detectors", Status: HealthStatusUp} })
	degraded := HealthCheckFunc(func(context.Context) Health { return Health{Name: "vocab", Status: HealthStatusDegraded} })
	down := HealthCheckFunc(func(context.Context) Health { return Health{Name: "otel", Status: HealthStatusDown} })

	tests := []struct {
		name     string
		checkers []HealthChecker
		want     HealthStatus
	}{
		{"no checkers", nil, HealthStatusUp},
		{"all up", []HealthChecker{up}, HealthStatusUp},
		{"degraded", []HealthChecker{up, degraded}, HealthStatusDegraded},
		{"down wins", []HealthChecker{down, degraded}, HealthStatusDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := Evaluate(context.Background(), "convokit", "1.0.0", tt.checkers...)
			if sh.Status != tt.want {
				t.Errorf("status = %s, want %s", sh.Status, tt.want)
			}
			if len(sh.Components) != len(tt.checkers) {
				t.Errorf("components = %d", len(sh.Components))
			}
		})
	}
}
