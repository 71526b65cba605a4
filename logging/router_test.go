package logging_test

import (
	"context"
	"testing"
	"time"

	"monkey-rumble/server/logging"
	"monkey-rumble/server/logging/sinks"
)

func newMemoryRouter(t *testing.T, cfg logging.Config) (*logging.Router, *sinks.MemorySink) {
	t.Helper()
	memory := sinks.NewMemorySink()
	router, err := logging.NewRouter(logging.ClockFunc(time.Now), cfg, []logging.NamedSink{
		{Name: "memory", Sink: memory},
	})
	if err != nil {
		t.Fatalf("unexpected error constructing router: %v", err)
	}
	return router, memory
}

func TestRouterDeliversToSinks(t *testing.T) {
	router, memory := newMemoryRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{
		Type:     "combat.attack_landed",
		Tick:     7,
		Severity: logging.SeverityInfo,
		Actor:    logging.EntityRef{ID: "monkey-1", Kind: logging.EntityKindMonkey},
	})

	if err := router.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event in sink, got %d", len(events))
	}
	if events[0].Type != "combat.attack_landed" || events[0].Tick != 7 {
		t.Fatalf("unexpected event: %+v", events[0])
	}
	if events[0].Time.IsZero() {
		t.Fatalf("router must stamp events with the clock time")
	}
	if got := router.Stats().EventsTotal; got != 1 {
		t.Fatalf("expected 1 counted event, got %d", got)
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router, memory := newMemoryRouter(t, cfg)

	router.Publish(context.Background(), logging.Event{Type: "x", Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "y", Severity: logging.SeverityError})

	if err := router.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	events := memory.Events()
	if len(events) != 1 || events[0].Type != "y" {
		t.Fatalf("expected only the error event, got %+v", events)
	}
}

func TestRouterIgnoresUntypedEvents(t *testing.T) {
	router, memory := newMemoryRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityInfo})

	if err := router.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := len(memory.Events()); got != 0 {
		t.Fatalf("untyped event must be dropped, got %d", got)
	}
}

func TestWithFieldsAnnotatesExtra(t *testing.T) {
	var captured logging.Event
	pub := logging.WithFields(logging.PublisherFunc(func(_ context.Context, e logging.Event) {
		captured = e
	}), map[string]any{"env": "test"})

	pub.Publish(context.Background(), logging.Event{Type: "x"})

	if captured.Extra["env"] != "test" {
		t.Fatalf("expected static field in extra, got %+v", captured.Extra)
	}
}
