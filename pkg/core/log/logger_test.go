package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tperror "github.com/msto63/toypeg/pkg/core/error"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: FormatJSON, Output: &buf}), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelFatal, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("console"); err != nil || f != FormatConsole {
		t.Errorf("ParseFormat(console) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	} else if err.Error() != "invalid format: xml" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown")

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %s", len(lines), buf.String())
	}
	if lines[0]["msg"] != "shown" {
		t.Errorf("msg = %v, want shown", lines[0]["msg"])
	}
	if logger.IsLevelEnabled(LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
}

func TestLogger_Fields(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)

	logger.WithName("test").
		WithField("component", "parser").
		WithRequestID("req-1").
		Debug("matched", Fields{"tokens": 3})

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	line := lines[0]
	for key, want := range map[string]interface{}{
		"logger":     "test",
		"component":  "parser",
		"request_id": "req-1",
		"tokens":     float64(3),
		"level":      "debug",
	} {
		if line[key] != want {
			t.Errorf("%s = %v, want %v", key, line[key], want)
		}
	}
}

func TestLogger_DerivedDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(LevelInfo)
	_ = parent.WithField("child", true)

	parent.Info("parent")
	lines := decodeLines(t, buf)
	if _, ok := lines[0]["child"]; ok {
		t.Error("parent logger picked up child field")
	}
}

func TestLogger_LogError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		check     func(t *testing.T, line map[string]interface{})
	}{
		{
			name:      "low severity logs at info",
			err:       tperror.New("no statement").WithCode(tperror.CodeNoMatch).WithDetail("line", 1),
			wantLevel: "info",
			check: func(t *testing.T, line map[string]interface{}) {
				if line["error_code"] != "NO_MATCH" {
					t.Errorf("error_code = %v", line["error_code"])
				}
				if line["error_line"] != float64(1) {
					t.Errorf("error_line = %v", line["error_line"])
				}
			},
		},
		{
			name:      "high severity logs at error",
			err:       tperror.New("bad config").WithCode(tperror.CodeInvalidConfig),
			wantLevel: "error",
		},
		{
			name:      "plain error logs at error",
			err:       errors.New("boom"),
			wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace)
			logger.LogError(tt.err)

			lines := decodeLines(t, buf)
			if len(lines) != 1 {
				t.Fatalf("got %d lines, want 1", len(lines))
			}
			if lines[0]["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", lines[0]["level"], tt.wantLevel)
			}
			if lines[0]["error"] != tt.err.Error() {
				t.Errorf("error = %v, want %v", lines[0]["error"], tt.err.Error())
			}
			if tt.check != nil {
				tt.check(t, lines[0])
			}
		})
	}

	logger, buf := newBufferLogger(LevelTrace)
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Error("LogError(nil) should not log")
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger, _ := newBufferLogger(LevelInfo)
	child := logger.WithField("k", "v")

	logger.SetLevel(LevelTrace)
	if child.GetLevel() != LevelTrace {
		t.Errorf("child level = %v, want trace", child.GetLevel())
	}
}

func TestTimer_Stop(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)

	timer := logger.StartTimer("parse").WithField("rule", "statement")
	if !timer.IsRunning() {
		t.Error("timer should be running")
	}
	timer.Stop()
	if timer.IsRunning() {
		t.Error("timer should be stopped")
	}
	if d := timer.Stop(); d != 0 {
		t.Errorf("second Stop() = %v, want 0", d)
	}

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0]["msg"] != "parse completed" {
		t.Errorf("msg = %v", lines[0]["msg"])
	}
	if lines[0]["rule"] != "statement" {
		t.Errorf("rule = %v", lines[0]["rule"])
	}
	if _, ok := lines[0]["duration_ms"]; !ok {
		t.Error("duration_ms missing")
	}
}

func TestTimer_StopWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)

	logger.StartTimer("eval").StopWithError(errors.New("division by zero"))

	lines := decodeLines(t, buf)
	if lines[0]["msg"] != "eval failed" || lines[0]["success"] != false {
		t.Errorf("unexpected line %v", lines[0])
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelError) {
		t.Error("Discard logger should only enable fatal")
	}
	logger.Error("dropped")
}
