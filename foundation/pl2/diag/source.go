// File: source.go
// Title: Source Locations
// Description: File name and line number attached to commands and errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package diag

import (
	"math"
	"strconv"
)

// MaxLine is the largest representable line number. Later lines saturate.
const MaxLine = math.MaxUint16

// SourceInfo identifies a line of a source file.
type SourceInfo struct {
	FileName string
	Line     uint16
}

// NewSourceInfo builds a SourceInfo, saturating line at MaxLine.
func NewSourceInfo(fileName string, line int) SourceInfo {
	switch {
	case line < 0:
		line = 0
	case line > MaxLine:
		line = MaxLine
	}
	return SourceInfo{FileName: fileName, Line: uint16(line)}
}

// String renders "file:line".
func (s SourceInfo) String() string {
	return s.FileName + ":" + strconv.Itoa(int(s.Line))
}
