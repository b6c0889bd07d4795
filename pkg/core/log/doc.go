// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     log
// Description: Structured logging on top of logrus
// Created:     2026-10-15
// License:     MIT
// ============================================================================

/*
Package log provides the structured logger used by every toypeg component.

The API is field oriented: every message takes optional Fields, and loggers
derived with WithField / WithFields / WithName / WithRequestID carry their
context into every entry. Records are rendered by logrus, as JSON, plain
text or colored console output.

	logger := tplog.NewWithConfig(tplog.Config{Level: tplog.LevelDebug, Format: tplog.FormatText})
	logger = logger.WithField("component", "parser")
	logger.Debug("statement matched", tplog.Fields{"tokens": 5})

Timers measure an operation and log its duration on Stop:

	timer := logger.StartTimer("parse")
	defer timer.Stop()
*/
package log
