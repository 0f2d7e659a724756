package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesToInjectedWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Info().Str("component", "store").Msg("collection loaded")

	out := buf.String()
	if !strings.Contains(out, "collection loaded") {
		t.Fatalf("output %q should contain the message", out)
	}
	if !strings.Contains(out, "component") {
		t.Errorf("output %q should carry the field", out)
	}
}

func TestNewFiltersBelowInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Debug().Msg("should be filtered")
	if buf.Len() != 0 {
		t.Fatalf("debug output leaked: %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"release", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		SetLevel(tt.input)
		if got := zerolog.GlobalLevel(); got != tt.want {
			t.Errorf("SetLevel(%q): global level = %s, want %s", tt.input, got, tt.want)
		}
	}

	// Restore the default so other tests are unaffected.
	SetLevel("info")
}
