// File: semver_test.go
// Title: Compatibility Gate Tests
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19

package semver

import (
	"testing"

	"github.com/msto63/pl2/foundation/pl2/diag"
)

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name string
		have Version
		want Version
		ok   bool
	}{
		{"newer minor", New(1, 2, 0), New(1, 1, 5), true},
		{"other major", New(2, 0, 0), New(1, 9, 9), false},
		{"older minor", New(1, 0, 9), New(1, 1, 0), false},
		{"patch unconstrained", New(1, 1, 0), New(1, 1, 9), true},
		{"exact equal", New(1, 2, 3), New(1, 2, 3).AsExact(), true},
		{"exact newer patch", New(1, 2, 4), New(1, 2, 3).AsExact(), false},
		{"exact newer minor", New(1, 3, 3), New(1, 2, 3).AsExact(), false},
		{"postfix ignored", Version{Major: 1, Minor: 2, Postfix: "rc1"}, Version{Major: 1, Minor: 2, Postfix: "beta"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCompatible(tt.have, tt.want); got != tt.ok {
				t.Errorf("IsCompatible(%v, %v) = %v, want %v", tt.have, tt.want, got, tt.ok)
			}
		})
	}
}

func TestIsCompatibleWithPolicy(t *testing.T) {
	have := Version{Major: 1, Minor: 2, Postfix: "rc1"}
	want := Version{Major: 1, Minor: 1, Postfix: "rc2"}

	if IsCompatibleWith(have, want, SamePostfix) {
		t.Error("SamePostfix should reject different postfixes")
	}
	if !IsCompatibleWith(have, want, nil) {
		t.Error("nil policy should ignore postfixes")
	}
	want.Postfix = "rc1"
	if !IsCompatibleWith(have, want, SamePostfix) {
		t.Error("SamePostfix should accept equal postfixes")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"1.2.3", New(1, 2, 3), false},
		{"v1.2.3-rc1", Version{Major: 1, Minor: 2, Patch: 3, Postfix: "rc1"}, false},
		{"=1.0.0", New(1, 0, 0).AsExact(), false},
		{"1.4", New(1, 4, 0), false},
		{"2", New(2, 0, 0), false},
		{"1.2.3+build.7", New(1, 2, 3), false},
		{"1.2.3-averyveryverylongtag", Version{}, true},
		{"70000.0.0", Version{}, true},
		{"1.2.x", Version{}, true},
		{"", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"1.2.3", "0.1.0-rc1", "=3.0.7"} {
		v := MustParse(s)
		if v.String() != s {
			t.Errorf("MustParse(%q).String() = %q", s, v.String())
		}
	}
}

func TestCompare(t *testing.T) {
	if Compare(MustParse("1.2.0"), MustParse("1.10.0")) >= 0 {
		t.Error("1.2.0 should sort before 1.10.0")
	}
	if Compare(MustParse("1.0.0-rc1"), MustParse("1.0.0")) >= 0 {
		t.Error("pre-release should sort before release")
	}
	if Compare(MustParse("=1.0.0"), MustParse("1.0.0")) != 0 {
		t.Error("Exact should not affect ordering")
	}
}

func TestWithPostfix(t *testing.T) {
	if _, err := New(1, 0, 0).WithPostfix("12345678901234"); err != nil {
		t.Errorf("14 byte postfix should fit: %v", err)
	}
	if _, err := New(1, 0, 0).WithPostfix("123456789012345"); err == nil {
		t.Error("15 byte postfix should be rejected")
	}
}

func TestCheck(t *testing.T) {
	errOut := diag.NewErrorBuffer(diag.DefaultCapacity)
	defer errOut.Release()

	if !Check(New(1, 2, 0), New(1, 1, 0), errOut) || diag.IsError(errOut) {
		t.Fatal("compatible versions should pass without error")
	}
	if Check(New(2, 0, 0), New(1, 0, 0), errOut) {
		t.Fatal("incompatible versions should fail")
	}
	if errOut.Kind() != diag.KindCompat || errOut.Code() != diag.CodeIncompatible {
		t.Errorf("kind=%v code=%v", errOut.Kind(), errOut.Code())
	}
	if errOut.Reason() != "incompatible version: requires 1.0.0, have 2.0.0" {
		t.Errorf("Reason() = %q", errOut.Reason())
	}
}
