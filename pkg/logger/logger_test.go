package logger

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]struct {
		want zerolog.Level
		ok   bool
	}{
		"":        {zerolog.InfoLevel, true},
		"DEBUG":   {zerolog.DebugLevel, true},
		" warn ":  {zerolog.WarnLevel, true},
		"warning": {zerolog.WarnLevel, true},
		"trace":   {zerolog.TraceLevel, true},
		"error":   {zerolog.ErrorLevel, true},
		"loud":    {zerolog.InfoLevel, false},
	}
	for in, tc := range cases {
		got, ok := ParseLevel(in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v, %v", in, got, ok, tc.want, tc.ok)
		}
	}
}

// reset tears down the singleton so the next Init rebuilds it.
func reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
}

func TestInit_ServiceField(t *testing.T) {
	reset()
	t.Cleanup(reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "info", Output: &buf, Service: "catalog-api"})
	log.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["service"] != "catalog-api" || entry["message"] != "hello" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	reset()
	t.Cleanup(reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first})
	log := Init(Options{Level: "debug", Output: &second})
	log.Info().Msg("routed")

	if second.Len() != 0 {
		t.Fatalf("second Init must not replace the output")
	}
	if !bytes.Contains(first.Bytes(), []byte("routed")) {
		t.Fatalf("expected entry on the first writer, got %q", first.String())
	}
}
