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

	"gonum.org/v1/gonum/mat"
)

// SourceWater gives the prototype tracer values of one source water mass.
type SourceWater struct {
	// Tracer values in the order of the tracers argument to WaterFractions.
	A, B float64
}

// WaterFractions decomposes each observation into fractions of exactly
// three source water masses using two conservative tracers (default
// salinity and temperature) plus mass conservation. The mixing system is
// identical for every observation, so its 3×3 prototype matrix is factored
// once and solved against all valid observations simultaneously. The three
// returned vectors have the cast length, with NaN where either tracer is
// missing.
func (c *CTDCast) WaterFractions(sources []SourceWater, tracers ...string) ([3][]float64, error) {
	var out [3][]float64
	if len(sources) != 3 {
		return out, fmt.Errorf("oceancast: water fractions: three source waters must be given, not %d", len(sources))
	}
	if len(tracers) == 0 {
		tracers = []string{SalinityKey, TemperatureKey}
	}
	if len(tracers) != 2 {
		return out, fmt.Errorf("oceancast: water fractions: two conservative tracers must be given, not %d", len(tracers))
	}
	ta, err := c.Field(tracers[0])
	if err != nil {
		return out, err
	}
	tb, err := c.Field(tracers[1])
	if err != nil {
		return out, err
	}
	mask, err := c.NaNMask(tracers...)
	if err != nil {
		return out, err
	}

	for k := range out {
		out[k] = make([]float64, c.Len())
		for i := range out[k] {
			out[k][i] = math.NaN()
		}
	}
	var valid []int
	for i, bad := range mask {
		if !bad {
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return out, nil
	}

	a := mat.NewDense(3, 3, []float64{
		sources[0].A, sources[1].A, sources[2].A,
		sources[0].B, sources[1].B, sources[2].B,
		1, 1, 1,
	})
	b := mat.NewDense(3, len(valid), nil)
	for k, i := range valid {
		b.Set(0, k, ta[i])
		b.Set(1, k, tb[i])
		b.Set(2, k, 1) // mass conservation
	}

	var lu mat.LU
	lu.Factorize(a)
	var x mat.Dense
	if err := lu.SolveTo(&x, false, b); err != nil {
		return out, fmt.Errorf("oceancast: water fractions: source waters are degenerate: %w", err)
	}
	for k, i := range valid {
		out[0][i] = x.At(0, k)
		out[1][i] = x.At(1, k)
		out[2][i] = x.At(2, k)
	}
	return out, nil
}
