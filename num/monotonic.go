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

// Package num provides the grid numerics underlying profile and transect
// calculations: monotonic coercion, finite differences on non-uniform
// grids, banded difference operators, transect-wise differencing, vertical
// shear integration, and smoothing.
package num

import "math"

// ForceMonotonic coerces x into a strictly increasing sequence using a
// cumulative-maximum pass: any sample at or below the running maximum is
// nudged to the next representable value above it. NaN samples are left in
// place. The input is not modified.
func ForceMonotonic(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	prev := math.Inf(-1)
	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		if v <= prev {
			v = math.Nextafter(prev, math.Inf(1))
			out[i] = v
		}
		prev = v
	}
	return out
}

// IsMonotonic reports whether x is strictly increasing. A sequence
// containing NaN is not monotonic.
func IsMonotonic(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return false
		}
	}
	return len(x) == 0 || !math.IsNaN(x[0])
}
