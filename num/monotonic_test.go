/*
Copyright © 2026 the OceanCast authors.
This file is part of OceanCast.

OceanCast is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

OceanCast is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with OceanCast.  If not, see <http://www.gnu.org/licenses/>.
*/

package num

import (
	"math"
	"testing"
)

func TestForceMonotonic(t *testing.T) {
	x := []float64{0, 1, 1, 0.5, 2, 2}
	m := ForceMonotonic(x)
	for i := 1; i < len(m); i++ {
		if !(m[i] > m[i-1]) {
			t.Fatalf("not strictly increasing at %d: %v", i, m)
		}
	}
	// Already increasing samples are untouched.
	if m[0] != 0 || m[1] != 1 || m[4] != 2 {
		t.Errorf("increasing samples changed: %v", m)
	}
	// Nudges are minimal.
	if m[2]-1 > 1e-12 || m[3]-m[2] > 1e-12 {
		t.Errorf("nudges too large: %v", m)
	}
	// The input is not modified.
	if x[2] != 1 {
		t.Error("input modified in place")
	}

	// NaN stays in place and does not reset the running maximum.
	nan := math.NaN()
	m = ForceMonotonic([]float64{0, nan, 0})
	if !math.IsNaN(m[1]) {
		t.Errorf("NaN not preserved: %v", m)
	}
	if !(m[2] > m[0]) {
		t.Errorf("running maximum lost across NaN: %v", m)
	}
}

func TestIsMonotonic(t *testing.T) {
	cases := []struct {
		x    []float64
		want bool
	}{
		{[]float64{}, true},
		{[]float64{1}, true},
		{[]float64{1, 2, 3}, true},
		{[]float64{1, 1, 2}, false},
		{[]float64{3, 2, 1}, false},
		{[]float64{1, math.NaN(), 3}, false},
	}
	for _, c := range cases {
		if got := IsMonotonic(c.x); got != c.want {
			t.Errorf("IsMonotonic(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}
