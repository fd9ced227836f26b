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
	"gonum.org/v1/gonum/mat"
)

// Diff1 returns the first derivative dy/dx on the possibly non-uniform grid
// x: centered differences in the interior, one-sided differences at the
// ends. x and y must have equal length of at least 2.
func Diff1(y, x []float64) ([]float64, error) {
	if len(y) != len(x) {
		return nil, fmt.Errorf("num: Diff1 length mismatch: %d != %d", len(y), len(x))
	}
	n := len(y)
	if n < 2 {
		return nil, fmt.Errorf("num: Diff1 needs at least 2 samples, got %d", n)
	}
	d := make([]float64, n)
	d[0] = (y[1] - y[0]) / (x[1] - x[0])
	d[n-1] = (y[n-1] - y[n-2]) / (x[n-1] - x[n-2])
	for i := 1; i < n-1; i++ {
		d[i] = (y[i+1] - y[i-1]) / (x[i+1] - x[i-1])
	}
	return d, nil
}

// DiffMat returns the n×n banded finite-difference operator of the given
// order (1 or 2) for a uniform grid with spacing h. The first-order
// operator uses centered differences with one-sided ends; the second-order
// operator uses the standard three-point stencil with one-sided ends.
func DiffMat(n, order int, h float64) (*mat.BandDense, error) {
	if n < 3 {
		return nil, fmt.Errorf("num: DiffMat needs n >= 3, got %d", n)
	}
	if h <= 0 {
		return nil, fmt.Errorf("num: DiffMat needs positive spacing, got %g", h)
	}
	d := mat.NewBandDense(n, n, 2, 2, nil)
	switch order {
	case 1:
		d.SetBand(0, 0, -1/h)
		d.SetBand(0, 1, 1/h)
		for i := 1; i < n-1; i++ {
			d.SetBand(i, i-1, -1/(2*h))
			d.SetBand(i, i+1, 1/(2*h))
		}
		d.SetBand(n-1, n-2, -1/h)
		d.SetBand(n-1, n-1, 1/h)
	case 2:
		h2 := h * h
		d.SetBand(0, 0, 1/h2)
		d.SetBand(0, 1, -2/h2)
		d.SetBand(0, 2, 1/h2)
		for i := 1; i < n-1; i++ {
			d.SetBand(i, i-1, 1/h2)
			d.SetBand(i, i, -2/h2)
			d.SetBand(i, i+1, 1/h2)
		}
		d.SetBand(n-1, n-3, 1/h2)
		d.SetBand(n-1, n-2, -2/h2)
		d.SetBand(n-1, n-1, 1/h2)
	default:
		return nil, fmt.Errorf("num: DiffMat order must be 1 or 2, got %d", order)
	}
	return d, nil
}

// TransectGradient returns the row-wise derivative ∂a/∂x of the m×n matrix
// a, where x gives the (possibly non-uniform) coordinate of each column.
// Interior columns use centered differences; columns at the edges use
// one-sided differences. NaN gaps are bridged by differencing against the
// nearest valid neighbor on each side; cells with no valid neighbor, and
// cells that are themselves NaN, yield NaN.
func TransectGradient(a *sparse.DenseArray, x []float64) (*sparse.DenseArray, error) {
	if len(a.Shape) != 2 {
		return nil, fmt.Errorf("num: TransectGradient needs a 2-d array, got %d dimensions", len(a.Shape))
	}
	m, n := a.Shape[0], a.Shape[1]
	if len(x) != n {
		return nil, fmt.Errorf("num: TransectGradient has %d columns but %d coordinates", n, len(x))
	}
	out := sparse.ZerosDense(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v := a.Get(i, j)
			if math.IsNaN(v) {
				out.Set(math.NaN(), i, j)
				continue
			}
			jl, jr := -1, -1
			for k := j - 1; k >= 0; k-- {
				if !math.IsNaN(a.Get(i, k)) {
					jl = k
					break
				}
			}
			for k := j + 1; k < n; k++ {
				if !math.IsNaN(a.Get(i, k)) {
					jr = k
					break
				}
			}
			switch {
			case jl >= 0 && jr >= 0:
				out.Set((a.Get(i, jr)-a.Get(i, jl))/(x[jr]-x[jl]), i, j)
			case jr >= 0:
				out.Set((a.Get(i, jr)-v)/(x[jr]-x[j]), i, j)
			case jl >= 0:
				out.Set((v-a.Get(i, jl))/(x[j]-x[jl]), i, j)
			default:
				out.Set(math.NaN(), i, j)
			}
		}
	}
	return out, nil
}

// TransectGradientInner returns the derivative ∂a/∂x evaluated between
// adjacent columns of the m×n matrix a, producing an m×(n-1) matrix whose
// column j holds (a[:,j+1]-a[:,j])/(x[j+1]-x[j]).
func TransectGradientInner(a *sparse.DenseArray, x []float64) (*sparse.DenseArray, error) {
	if len(a.Shape) != 2 {
		return nil, fmt.Errorf("num: TransectGradientInner needs a 2-d array, got %d dimensions", len(a.Shape))
	}
	m, n := a.Shape[0], a.Shape[1]
	if len(x) != n {
		return nil, fmt.Errorf("num: TransectGradientInner has %d columns but %d coordinates", n, len(x))
	}
	if n < 2 {
		return nil, fmt.Errorf("num: TransectGradientInner needs at least 2 columns, got %d", n)
	}
	out := sparse.ZerosDense(m, n-1)
	for i := 0; i < m; i++ {
		for j := 0; j < n-1; j++ {
			out.Set((a.Get(i, j+1)-a.Get(i, j))/(x[j+1]-x[j]), i, j)
		}
	}
	return out, nil
}
