package domain

import (
	"strconv"
	"strings"
)

// Version is a dotted package version. The original string form is preserved
// verbatim; numeric components are parsed lazily-tolerantly, so versions such
// as "1.43.0-beta" still expose Major()/Minor() for their leading numeric
// parts.
type Version struct {
	raw string
}

// ParseVersion wraps a raw version string.
func ParseVersion(s string) Version {
	return Version{raw: s}
}

// String returns the version exactly as declared by the package.
func (v Version) String() string {
	return v.raw
}

// Major returns the first numeric component, or 0 if absent.
func (v Version) Major() int {
	return v.component(0)
}

// Minor returns the second numeric component, or 0 if absent.
func (v Version) Minor() int {
	return v.component(1)
}

func (v Version) component(i int) int {
	parts := strings.Split(v.raw, ".")
	if i >= len(parts) {
		return 0
	}
	// Strip any non-numeric suffix ("0-beta" -> "0").
	digits := parts[i]
	for j, r := range digits {
		if r < '0' || r > '9' {
			digits = digits[:j]
			break
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// Compare orders versions component-wise, numerically where both components
// are numeric, lexically otherwise. Shorter versions sort before longer ones
// when all shared components are equal ("1.2" < "1.2.1").
func (v Version) Compare(other Version) int {
	a := strings.Split(v.raw, ".")
	b := strings.Split(other.raw, ".")
	for i := 0; i < len(a) && i < len(b); i++ {
		an, aerr := strconv.Atoi(a[i])
		bn, berr := strconv.Atoi(b[i])
		switch {
		case aerr == nil && berr == nil:
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
		default:
			if c := strings.Compare(a[i], b[i]); c != 0 {
				return c
			}
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	v.raw = string(text)
	return nil
}
