package sinks

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"saferoom/server/logging"
)

func sampleEvent() logging.Event {
	return logging.Event{
		Type:     "combat.attack",
		Tick:     7,
		Actor:    logging.EntityRef{ID: "monster-1", Kind: logging.EntityKindMonster},
		Targets:  []logging.EntityRef{{ID: "player-1", Kind: logging.EntityKindPlayer}},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
	}
}

func TestMemorySinkRetainsAndResets(t *testing.T) {
	sink := NewMemorySink()
	if err := sink.Write(sampleEvent()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Write(sampleEvent()); err != nil {
		t.Fatalf("write: %v", err)
	}

	events := sink.Events()
	if len(events) != 2 {
		t.Fatalf("retained %d events, want 2", len(events))
	}
	// Events returns a copy: mutating it must not affect the sink.
	events[0].Tick = 999
	if sink.Events()[0].Tick != 7 {
		t.Fatalf("sink storage aliased by the returned slice")
	}

	sink.Reset()
	if got := sink.Events(); len(got) != 0 {
		t.Fatalf("reset left %d events", len(got))
	}
}

func TestConsoleSinkFormatsEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)
	if err := sink.Write(sampleEvent()); err != nil {
		t.Fatalf("write: %v", err)
	}

	line := buf.String()
	for _, want := range []string{"[combat.attack]", "tick=7", "monster:monster-1", "severity=info", "targets=player:player-1"} {
		if !strings.Contains(line, want) {
			t.Fatalf("console line %q missing %q", line, want)
		}
	}
}

func TestJSONSinkWritesParseableLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")
	sink, err := NewJSONSink(path)
	if err != nil {
		t.Fatalf("open sink: %v", err)
	}

	if err := sink.Write(sampleEvent()); err != nil {
		t.Fatalf("write: %v", err)
	}
	second := sampleEvent()
	second.Tick = 8
	if err := sink.Write(second); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("reopen log: %v", err)
	}
	defer file.Close()

	var ticks []uint64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var event logging.Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("line %q does not parse: %v", scanner.Text(), err)
		}
		ticks = append(ticks, event.Tick)
	}
	if len(ticks) != 2 || ticks[0] != 7 || ticks[1] != 8 {
		t.Fatalf("ticks = %v, want [7 8]", ticks)
	}
}
