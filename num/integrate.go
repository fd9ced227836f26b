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
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// IntegrateShear integrates vertical shear dudz column-wise into velocity,
// with depths given by z (same m×n shape, increasing downward). Each column
// is integrated trapezoidally upward from its deepest sample where both
// shear and depth are valid, which is the assumed level of no motion
// (u = 0). NaN shear samples contribute nothing to the integral; rows with
// NaN depth yield NaN velocity.
func IntegrateShear(dudz, z *sparse.DenseArray) (*sparse.DenseArray, error) {
	if len(dudz.Shape) != 2 || len(z.Shape) != 2 {
		return nil, fmt.Errorf("num: IntegrateShear needs 2-d arrays")
	}
	if dudz.Shape[0] != z.Shape[0] || dudz.Shape[1] != z.Shape[1] {
		return nil, fmt.Errorf("num: IntegrateShear shape mismatch: %v != %v",
			dudz.Shape, z.Shape)
	}
	m, n := dudz.Shape[0], dudz.Shape[1]
	u := sparse.ZerosDense(m, n)
	for j := 0; j < n; j++ {
		ref := -1
		for i := m - 1; i >= 0; i-- {
			if !math.IsNaN(dudz.Get(i, j)) && !math.IsNaN(z.Get(i, j)) {
				ref = i
				break
			}
		}
		for i := 0; i < m; i++ {
			u.Set(math.NaN(), i, j)
		}
		if ref < 0 {
			continue
		}
		u.Set(0, ref, j)
		for i := ref - 1; i >= 0; i-- {
			zi, zb := z.Get(i, j), z.Get(i+1, j)
			if math.IsNaN(zi) {
				// Leave NaN but keep integrating below this gap.
				continue
			}
			below := u.Get(i+1, j)
			if math.IsNaN(below) {
				// Find the nearest valid level beneath the gap.
				for k := i + 2; k <= ref; k++ {
					if !math.IsNaN(u.Get(k, j)) {
						below = u.Get(k, j)
						zb = z.Get(k, j)
						break
					}
				}
			}
			du := shearBetween(dudz.Get(i, j), dudz.Get(i+1, j)) * (zb - zi)
			u.Set(below-du, i, j)
		}
	}
	return u, nil
}

// shearBetween averages two shear samples for trapezoidal integration,
// treating NaN as a zero contribution.
func shearBetween(a, b float64) float64 {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return b / 2
	case math.IsNaN(b):
		return a / 2
	}
	return (a + b) / 2
}
