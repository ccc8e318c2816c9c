package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
)

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "battle.attack")
	defer span.End()

	if span.SpanContext().IsValid() || span.IsRecording() {
		t.Fatalf("noop spans should not record")
	}
}

func TestSetup(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	// nothing listens here, spans are dropped on shutdown
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://127.0.0.1:1")

	ctx := context.Background()
	shutdown, err := Setup(ctx)
	if err != nil {
		t.Fatalf("setup failed: %s", err)
	}

	_, span := Tracer("test").Start(ctx, "battle.create")
	if !span.SpanContext().IsValid() || !span.IsRecording() {
		t.Fatalf("spans from the global provider should record after setup")
	}
	span.End()

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := shutdown(shutdownCtx); err != nil {
		t.Logf("shutdown could not export: %s", err)
	}
}
