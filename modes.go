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

package oceancast

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/oceanmodel/oceancast/num"
)

// defaultSmoothing is the penalized-smoother strength used when N² must be
// derived implicitly.
const defaultSmoothing = 0.2

// BaroclinicModes computes the first nmodes baroclinic normal modes from
// linear quasigeostrophy and the vertical stratification, returning the
// deformation radii [m] in decreasing order together with the associated
// eigenfunctions (one column per mode, on the grid below the cutoff).
//
// The profile is cut off above depth ztop [m] to avoid surface effects.
// N² and depth fields are derived first if absent. The stretching operator
// d/dz(f²/N² d/dz) is assembled from banded difference operators and solved
// as a dense eigenproblem; the barotropic (near-zero) eigenvalue is
// discarded. The vertical grid below the cutoff must be uniformly spaced;
// ErrNonUniformGrid is returned otherwise.
func (c *CTDCast) BaroclinicModes(nmodes int, ztop float64) ([]float64, *mat.Dense, error) {
	if nmodes < 1 {
		return nil, nil, fmt.Errorf("oceancast: baroclinic modes: nmodes must be positive, got %d", nmodes)
	}
	if !c.HasField(NSquaredKey) {
		if _, err := c.AddNSquared("", defaultSmoothing); err != nil {
			return nil, nil, err
		}
	}
	if !c.HasField("depth") {
		if _, err := c.AddDepth(""); err != nil {
			return nil, nil, err
		}
	}
	n2f, err := c.Field(NSquaredKey)
	if err != nil {
		return nil, nil, err
	}
	depf, err := c.Field("depth")
	if err != nil {
		return nil, nil, err
	}
	mask, err := c.NaNMask(NSquaredKey, "depth")
	if err != nil {
		return nil, nil, err
	}

	var n2, dep []float64
	for i, bad := range mask {
		if !bad && depf[i] > ztop {
			n2 = append(n2, n2f[i])
			dep = append(dep, depf[i])
		}
	}
	m := len(dep)
	if m < nmodes+2 {
		return nil, nil, fmt.Errorf("oceancast: baroclinic modes: %d samples below cutoff cannot resolve %d modes", m, nmodes)
	}

	h := dep[1] - dep[0]
	for i := 1; i < m-1; i++ {
		if math.Abs(dep[i+1]-dep[i]-h) > 1e-6*math.Max(1, math.Abs(h)) {
			return nil, nil, fmt.Errorf("oceancast: baroclinic modes: %w", ErrNonUniformGrid)
		}
	}

	f := coriolis(c.Coords().Y)
	bigF := make([]float64, m)
	for i, v := range n2 {
		if v <= 0 {
			return nil, nil, fmt.Errorf("oceancast: baroclinic modes: non-positive N² (%g) at depth %g", v, dep[i])
		}
		bigF[i] = f * f / v
	}
	bigF[0] = 0
	bigF[m-1] = 0

	d1, err := num.DiffMat(m, 1, h)
	if err != nil {
		return nil, nil, err
	}
	d2, err := num.DiffMat(m, 2, h)
	if err != nil {
		return nil, nil, err
	}

	// d/dz(F dφ/dz) = F' dφ/dz + F d²φ/dz².
	var fp mat.VecDense
	fp.MulVec(d1, mat.NewVecDense(m, bigF))
	op := mat.NewDense(m, m, nil)
	for i := 0; i < m; i++ {
		for j := max(0, i-2); j < m && j <= i+2; j++ {
			op.Set(i, j, fp.AtVec(i)*d1.At(i, j)+bigF[i]*d2.At(i, j))
		}
	}

	var eig mat.Eigen
	if ok := eig.Factorize(op, mat.EigenRight); !ok {
		return nil, nil, fmt.Errorf("oceancast: baroclinic modes: eigendecomposition failed")
	}
	vals := eig.Values(nil)
	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	// Smallest-magnitude eigenvalues first; index 0 is the barotropic mode.
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return math.Abs(real(vals[order[a]])) < math.Abs(real(vals[order[b]]))
	})

	ld := make([]float64, nmodes)
	modes := mat.NewDense(m, nmodes, nil)
	for k := 0; k < nmodes; k++ {
		idx := order[k+1]
		ld[k] = 1 / math.Sqrt(math.Abs(real(vals[idx])))
		for i := 0; i < m; i++ {
			modes.Set(i, k, real(vecs.At(i, idx)))
		}
	}
	return ld, modes, nil
}
