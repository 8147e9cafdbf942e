package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"chronicle-hq/chronicle/pkg/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.TracingConfig
		wantErr     bool
		wantEnabled bool
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name:   "disabled tracing",
			config: &config.TracingConfig{Enabled: false, ServiceName: "test"},
		},
		{
			name: "enabled with ratio sampler",
			config: &config.TracingConfig{
				Enabled:     true,
				Sampler:     "ratio",
				SampleRatio: 0.5,
				Endpoint:    "localhost:4317",
				ServiceName: "test",
				Insecure:    true,
				Timeout:     time.Second,
			},
			wantEnabled: true,
		},
		{
			name: "invalid sampler",
			config: &config.TracingConfig{
				Enabled:  true,
				Sampler:  "sometimes",
				Endpoint: "localhost:4317",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tracer.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.wantEnabled)
			}
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = tracer.Shutdown(ctx)
		})
	}
}

func TestTracer_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer := NewWithExporter(exporter)
	defer tracer.Shutdown(context.Background())

	ctx, parent := tracer.Start(context.Background(), "loader.load")
	Load(parent, "run-1", 3, 1, 2)
	_, child := tracer.Start(ctx, "loader.parse")
	Document(child, "common/cultures/00_cultures.txt", "cultures", 4)
	SetError(child, errors.New("boom"))
	child.End()
	SetError(parent, nil)
	parent.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}

	byName := map[string]tracetest.SpanStub{}
	for _, s := range spans {
		byName[s.Name] = s
	}
	parse, load := byName["loader.parse"], byName["loader.load"]

	if parse.Parent.SpanID() != load.SpanContext.SpanID() {
		t.Error("loader.parse is not a child of loader.load")
	}
	if parse.Status.Code != codes.Error {
		t.Errorf("parse status = %v, want Error", parse.Status.Code)
	}
	if load.Status.Code != codes.Ok {
		t.Errorf("load status = %v, want Ok", load.Status.Code)
	}

	want := attribute.String("chronicle.document.kind", "cultures")
	found := false
	for _, kv := range parse.Attributes {
		if kv == want {
			found = true
		}
	}
	if !found {
		t.Errorf("parse attributes %v missing %v", parse.Attributes, want)
	}
}

func TestTracer_NilAndNoop(t *testing.T) {
	var tracer *Tracer
	if tracer.Enabled() {
		t.Error("nil tracer should be disabled")
	}
	_, span := tracer.Start(context.Background(), "op")
	if span.SpanContext().IsValid() {
		t.Error("nil tracer produced a recording span")
	}
	span.End()
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}

	if Noop().Enabled() {
		t.Error("Noop() should be disabled")
	}
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{"always", 0, false},
		{"", 0, false},
		{"never", 0, false},
		{"ratio", 0.25, false},
		{"ratio", 1.5, true},
		{"random", 0, true},
	}
	for _, tt := range tests {
		_, err := createSampler(tt.strategy, tt.ratio)
		if (err != nil) != tt.wantErr {
			t.Errorf("createSampler(%q, %v) error = %v, wantErr %v", tt.strategy, tt.ratio, err, tt.wantErr)
		}
	}
}
