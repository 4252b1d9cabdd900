// Package stringx provides small Unicode-aware string helpers shared by the
// engine, the configuration layer and the command line front end.
//
// Package: stringx
// Title: String Utilities
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-19 v0.2.0: Reduced to the helpers pl2 uses
package stringx
