package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Info().Str("prefix", "type=events").Msg("Syncing prefix")

	out := buf.String()
	if !strings.Contains(out, "Syncing prefix") {
		t.Errorf("log output = %q, want the message present", out)
	}
	if !strings.Contains(out, "type=events") {
		t.Errorf("log output = %q, want the field value present", out)
	}
}

func TestDebugfRespectsGlobalLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	SetGlobalLevel(zerolog.InfoLevel)
	l.Debugf("selected prefix %s", "type=decisions/date=2020-07-01")
	if buf.Len() != 0 {
		t.Errorf("debug output at info level = %q, want none", buf.String())
	}

	SetGlobalLevel(zerolog.DebugLevel)
	defer SetGlobalLevel(zerolog.InfoLevel)

	l.Debugf("selected prefix %s", "type=decisions/date=2020-07-01")
	if !strings.Contains(buf.String(), "selected prefix") {
		t.Errorf("debug output = %q, want the formatted message", buf.String())
	}
}
