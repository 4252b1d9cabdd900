// Package log provides structured logging for pl2 components and hosts.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, structured logging with persistent context fields,
//              several output formats and operation timers. Every engine
//              component takes a *Logger and tags its entries with a
//              "component" field; hosts configure the root logger once.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-19 v0.2.0: Run identifiers replace request/user context, async mode removed
//
// Usage:
//   logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText})
//   parserLog := logger.WithField("component", "pl2-parser")
//   parserLog.Debug("parsed program", log.Fields{"commands": 12})
//
//   timer := logger.WithRunID(id).StartTimer("run")
//   defer timer.Stop()
package log
