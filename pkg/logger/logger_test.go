package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitConfiguresOnce(t *testing.T) {
	Reset()
	var buf bytes.Buffer

	log := Init(Options{Level: "info", Service: "api", Output: &buf})
	log.Info().Msg("first")

	// A second Init must not reconfigure the singleton.
	var other bytes.Buffer
	Init(Options{Level: "debug", Service: "other", Output: &other})
	second := Get()
	second.Info().Msg("second")

	out := buf.String()
	if !strings.Contains(out, `"service":"api"`) || !strings.Contains(out, "second") {
		t.Fatalf("expected both entries on the first writer, got %q", out)
	}
	if other.Len() != 0 {
		t.Fatalf("second Init must be a no-op, but it wrote %q", other.String())
	}
}

func TestResetRebuildsSingleton(t *testing.T) {
	Reset()
	var first bytes.Buffer
	Init(Options{Service: "before", Output: &first})

	Reset()
	var second bytes.Buffer
	Init(Options{Service: "after", Output: &second})
	rebuilt := Get()
	rebuilt.Info().Msg("rebuilt")

	if !strings.Contains(second.String(), `"service":"after"`) {
		t.Fatalf("expected the rebuilt logger to write here, got %q", second.String())
	}
	if strings.Contains(first.String(), "rebuilt") {
		t.Fatalf("old writer received output after Reset: %q", first.String())
	}
}

func TestGetPanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatal("expected Get to panic before Init")
		}
	}()
	Get()
}
