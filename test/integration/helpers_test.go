package integration

import (
	"context"
	"os"
	"testing"
	"time"

	tplog "github.com/msto63/toypeg/pkg/core/log"

	"github.com/msto63/toypeg/internal/eval"
	"github.com/msto63/toypeg/internal/parser"
)

// testLogger returns a discarding logger unless TEST_LOG_LEVEL is set
func testLogger(t *testing.T) *tplog.Logger {
	t.Helper()
	name := os.Getenv("TEST_LOG_LEVEL")
	if name == "" {
		return tplog.Discard()
	}
	level, err := tplog.ParseLevel(name)
	requireNoError(t, err, "invalid TEST_LOG_LEVEL")
	return tplog.NewWithConfig(tplog.Config{Level: level, Format: tplog.FormatText, Output: os.Stderr, Name: t.Name()})
}

// newPipeline returns a parser and a fresh interpreter sharing one logger
func newPipeline(t *testing.T) (*parser.Parser, *eval.Interpreter) {
	t.Helper()
	logger := testLogger(t)
	p, err := parser.New(parser.Options{Logger: logger, Trace: logger.IsLevelEnabled(tplog.LevelTrace)})
	requireNoError(t, err, "parser.New failed")
	return p, eval.New(eval.Options{Logger: logger})
}

// testContext returns a context with timeout for tests
func testContext(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), timeout)
}

// requireNoError fails the test if err is not nil
func requireNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

// requireTrue fails the test if condition is false
func requireTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Fatalf("Expected true: %s", msg)
	}
}

// requireEqual fails the test if expected != actual
func requireEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// logTestStart logs the start of a test with its stage
func logTestStart(t *testing.T, stage, testName string) {
	t.Helper()
	t.Logf("=== %s: %s ===", stage, testName)
}
