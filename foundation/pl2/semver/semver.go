// File: semver.go
// Title: PL2 Compatibility Gate
// Description: Semantic versions with a short postfix and an exact flag,
//              and the rule deciding whether a core version satisfies a
//              plugin's requirement.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

// Package semver decides whether a provided version satisfies a required
// one. With Exact set on the requirement major, minor and patch must be
// equal; otherwise the major versions must be equal and the provided minor
// must be at least the required one. Postfixes are ignored unless a
// PostfixPolicy says otherwise.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	xsemver "golang.org/x/mod/semver"

	"github.com/msto63/pl2/foundation/pl2/diag"
)

// MaxPostfix is the longest postfix in bytes.
const MaxPostfix = 14

// Version is a semantic version.
type Version struct {
	Major, Minor, Patch uint16

	// Postfix is a pre-release tag such as "rc1", at most MaxPostfix bytes.
	Postfix string

	// Exact requires an identical major.minor.patch when used as a
	// requirement.
	Exact bool
}

// New returns major.minor.patch without postfix.
func New(major, minor, patch uint16) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// WithPostfix returns v with the given postfix.
func (v Version) WithPostfix(postfix string) (Version, error) {
	if len(postfix) > MaxPostfix {
		return v, fmt.Errorf("postfix %q longer than %d bytes", postfix, MaxPostfix)
	}
	v.Postfix = postfix
	return v, nil
}

// AsExact returns v with Exact set.
func (v Version) AsExact() Version {
	v.Exact = true
	return v
}

// String renders "1.2.3", "1.2.3-rc1" and "=1.2.3" for exact versions.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Postfix != "" {
		s += "-" + v.Postfix
	}
	if v.Exact {
		s = "=" + s
	}
	return s
}

// Parse reads "1.2.3", "v1.2.3-rc1" or "=1.2" (shorthand fills zeros). A
// leading '=' marks the version exact. Build metadata is dropped.
func Parse(s string) (Version, error) {
	var v Version
	text := strings.TrimSpace(s)
	if strings.HasPrefix(text, "=") {
		v.Exact = true
		text = text[1:]
	}
	if !strings.HasPrefix(text, "v") {
		text = "v" + text
	}
	if !xsemver.IsValid(text) {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	canonical := xsemver.Canonical(text)
	core := strings.TrimPrefix(canonical, "v")
	if i := strings.IndexByte(core, '-'); i >= 0 {
		core = core[:i]
	}

	nums := strings.Split(core, ".")
	fields := []*uint16{&v.Major, &v.Minor, &v.Patch}
	for i, n := range nums {
		x, err := strconv.ParseUint(n, 10, 16)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: component %q out of range", s, n)
		}
		*fields[i] = uint16(x)
	}

	postfix := strings.TrimPrefix(xsemver.Prerelease(canonical), "-")
	return v.WithPostfix(postfix)
}

// MustParse is Parse that panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare orders versions by semantic version precedence, ignoring Exact.
func Compare(a, b Version) int {
	return xsemver.Compare(a.semver(), b.semver())
}

func (v Version) semver() string {
	s := fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Postfix != "" {
		s += "-" + v.Postfix
	}
	return s
}

// PostfixPolicy decides whether a provided postfix satisfies a required one.
type PostfixPolicy func(have, want string) bool

// IgnorePostfix accepts any postfix.
func IgnorePostfix(have, want string) bool { return true }

// SamePostfix requires identical postfixes.
func SamePostfix(have, want string) bool { return have == want }

// IsCompatible reports whether have satisfies want, ignoring postfixes.
func IsCompatible(have, want Version) bool {
	return IsCompatibleWith(have, want, IgnorePostfix)
}

// IsCompatibleWith is IsCompatible with a postfix policy. A nil policy
// ignores postfixes.
func IsCompatibleWith(have, want Version, policy PostfixPolicy) bool {
	if policy == nil {
		policy = IgnorePostfix
	}
	var ok bool
	if want.Exact {
		ok = have.Major == want.Major && have.Minor == want.Minor && have.Patch == want.Patch
	} else {
		ok = have.Major == want.Major && have.Minor >= want.Minor
	}
	return ok && policy(have.Postfix, want.Postfix)
}

// Check records a compatibility error in errOut when have does not satisfy
// want and reports whether it does.
func Check(have, want Version, errOut *diag.Error) bool {
	if IsCompatible(have, want) {
		return true
	}
	errOut.FormatKind(diag.KindCompat, diag.CodeIncompatible, diag.SourceInfo{}, nil,
		"incompatible version: requires %s, have %s", want, have)
	return false
}
