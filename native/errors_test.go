// Copyright 2025 The InVesalius Authors. SPDX-License-Identifier: Apache-2.0

package native

import (
	"math"
	"testing"
)

func TestInvalidArgumentError(t *testing.T) {
	err := &InvalidArgumentError{Param: "shape", Reason: "must be positive"}
	want := `invalid argument "shape": must be positive`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnsupportedTypeError(t *testing.T) {
	err := &UnsupportedTypeError{Op: "FloodFill", Kind: KindFloat64}
	want := "FloodFill: unsupported element type float64"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNotFinite(t *testing.T) {
	cases := []struct {
		name    string
		v       float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"negative", -1.5, false},
		{"nan", math.NaN(), true},
		{"posinf", math.Inf(1), true},
		{"neginf", math.Inf(-1), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := NotFinite("cval", c.v)
			if (err != nil) != c.wantErr {
				t.Errorf("NotFinite(%v) error = %v, wantErr %v", c.v, err, c.wantErr)
			}
		})
	}
}
