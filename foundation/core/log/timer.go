// File: timer.go
// Title: Operation Timers
// Description: Timers that log the duration of an operation on completion,
//              with intermediate checkpoints.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-19 v0.2.0: Durations carried on the entry instead of ad-hoc fields

package log

import (
	"time"
)

// Timer measures the duration of one operation
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer and logs the elapsed time. Only the first stop logs.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger != nil {
		t.logger.log(t.level, t.operation+" completed", nil, elapsed, t.fields, Fields{"operation": t.operation})
	}
	return elapsed
}

// StopWithError stops the timer and logs err with the elapsed time
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger != nil {
		t.logger.log(LevelError, t.operation+" failed", err, elapsed, t.fields, Fields{"operation": t.operation, "success": false})
	}
	return elapsed
}

// Checkpoint logs an intermediate timing checkpoint at debug level
func (t *Timer) Checkpoint(name string, fields ...Fields) {
	if t.stopped || t.logger == nil {
		return
	}

	combined := Fields{
		"operation":  t.operation,
		"checkpoint": name,
		"elapsed":    t.Elapsed().String(),
	}.Merge(t.fields).Merge(fields...)

	t.logger.Debug(t.operation+" checkpoint: "+name, combined)
}

// Cancel stops the timer without logging
func (t *Timer) Cancel() {
	t.stopped = true
}

// IsRunning returns true if the timer is still running
func (t *Timer) IsRunning() bool {
	return !t.stopped
}
