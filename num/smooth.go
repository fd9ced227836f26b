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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// GaussianSmooth convolves v with a truncated Gaussian kernel of standard
// deviation sigma (in samples), reflecting the signal at the boundaries.
// sigma <= 0 returns a copy of v unchanged. NaN samples propagate to every
// output cell whose kernel support includes them.
func GaussianSmooth(v []float64, sigma float64) []float64 {
	out := make([]float64, len(v))
	if sigma <= 0 || len(v) == 0 {
		copy(out, v)
		return out
	}
	radius := int(math.Ceil(4 * sigma))
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)

	n := len(v)
	for i := range v {
		var acc float64
		for k, w := range kernel {
			j := i + k - radius
			// Reflect at the boundaries, repeatedly when the kernel is
			// wider than the signal.
			for j < 0 || j >= n {
				if j < 0 {
					j = -j - 1
				} else {
					j = 2*n - j - 1
				}
			}
			acc += w * v[j]
		}
		out[i] = acc
	}
	return out
}

// PenalizedSmooth smooths y sampled at the strictly increasing, possibly
// non-uniform coordinates x by minimizing
//
//	Σ (z_i - y_i)² + s Σ (D² z)_i²
//
// where D² is the non-uniform second-difference operator. Larger s gives a
// smoother result; s = 0 returns y unchanged. A straight line is invariant
// under the penalty, so linear trends pass through exactly.
func PenalizedSmooth(x, y []float64, s float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("num: PenalizedSmooth length mismatch: %d != %d", len(x), len(y))
	}
	n := len(x)
	if n < 3 {
		out := make([]float64, n)
		copy(out, y)
		return out, nil
	}
	if s < 0 {
		return nil, fmt.Errorf("num: PenalizedSmooth needs s >= 0, got %g", s)
	}

	// Second-difference operator rows: d[i] applies to samples i-1, i, i+1.
	cl := make([]float64, n)
	cm := make([]float64, n)
	cr := make([]float64, n)
	for i := 1; i < n-1; i++ {
		h1 := x[i] - x[i-1]
		h2 := x[i+1] - x[i]
		cl[i] = 2 / (h1 * (h1 + h2))
		cm[i] = -2 / (h1 * h2)
		cr[i] = 2 / (h2 * (h1 + h2))
	}

	// A = I + s DᵀD; DᵀD has bandwidth 2.
	a := mat.NewSymBandDense(n, 2, nil)
	for j := 0; j < n; j++ {
		for k := j; k <= j+2 && k < n; k++ {
			var v float64
			for i := max(1, j-1); i <= j+1 && i < n-1; i++ {
				v += rowCoeff(cl, cm, cr, i, j) * rowCoeff(cl, cm, cr, i, k)
			}
			v *= s
			if j == k {
				v++
			}
			a.SetSymBand(j, k, v)
		}
	}

	var chol mat.BandCholesky
	if ok := chol.Factorize(a); !ok {
		return nil, fmt.Errorf("num: PenalizedSmooth system is not positive definite")
	}
	var z mat.VecDense
	if err := chol.SolveVecTo(&z, mat.NewVecDense(n, y)); err != nil {
		return nil, fmt.Errorf("num: PenalizedSmooth solve: %w", err)
	}
	out := make([]float64, n)
	copy(out, z.RawVector().Data)
	return out, nil
}

// rowCoeff returns entry (i, j) of the second-difference operator, whose
// row i has support on columns i-1, i, i+1.
func rowCoeff(cl, cm, cr []float64, i, j int) float64 {
	switch j {
	case i - 1:
		return cl[i]
	case i:
		return cm[i]
	case i + 1:
		return cr[i]
	}
	return 0
}
