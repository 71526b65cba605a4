package sinks

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"monkey-rumble/server/logging"
)

func sampleEvent(sev logging.Severity) logging.Event {
	return logging.Event{
		Type:     "combat.attack_landed",
		Tick:     7,
		Severity: sev,
		Actor:    logging.EntityRef{ID: "monkey-1", Kind: logging.EntityKindMonkey},
	}
}

func TestJSONSinkBatchesByMaxBatch(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSON(&buf, logging.JSONConfig{MaxBatch: 3})

	for i := 0; i < 2; i++ {
		if err := sink.Write(sampleEvent(logging.SeverityInfo)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Fatalf("sink must hold writes below the batch size, got %d bytes", buf.Len())
	}

	if err := sink.Write(sampleEvent(logging.SeverityInfo)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 3 {
		t.Fatalf("full batch must flush all pending events, got %d lines", got)
	}
}

func TestJSONSinkCloseFlushesPartialBatch(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSON(&buf, logging.JSONConfig{MaxBatch: 10})

	if err := sink.Write(sampleEvent(logging.SeverityInfo)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("partial batch must stay buffered, got %d bytes", buf.Len())
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Fatalf("close must flush the partial batch, got %d lines", got)
	}
}

func TestJSONSinkFlushesEveryWriteWithoutBatching(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSON(&buf, logging.JSONConfig{})

	if err := sink.Write(sampleEvent(logging.SeverityInfo)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Fatalf("unbatched sink must flush each write, got %d lines", got)
	}
}

func TestConsoleSinkColorizesSeverity(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, logging.ConsoleConfig{UseColor: true})

	if err := sink.Write(sampleEvent(logging.SeverityError)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[31merror\x1b[0m") {
		t.Fatalf("error severity must render red, got %q", buf.String())
	}
}

func TestConsoleSinkPlainWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, logging.ConsoleConfig{UseColor: false})

	if err := sink.Write(sampleEvent(logging.SeverityWarn)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("colorless sink must not emit escape codes, got %q", out)
	}
	if !strings.Contains(out, "severity=warn") {
		t.Fatalf("severity must still render as text, got %q", out)
	}
}
