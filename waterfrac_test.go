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
	"math"
	"testing"
)

func TestWaterFractions(t *testing.T) {
	sources := []SourceWater{
		{A: 34, B: 2},  // e.g. polar water
		{A: 35, B: 12}, // e.g. subtropical water
		{A: 36, B: 4},  // e.g. deep water
	}
	// Observation 0 is pure source 1; observation 1 is an equal mixture of
	// sources 0 and 2; observation 2 has a missing tracer.
	sal := []float64{35, 35, 35.5}
	temp := []float64{12, 3, math.NaN()}
	pres := []float64{0, 10, 20}
	c, err := NewCTDCast(pres, sal, temp)
	if err != nil {
		t.Fatal(err)
	}
	frac, err := c.WaterFractions(sources)
	if err != nil {
		t.Fatal(err)
	}

	want0 := [3]float64{0, 1, 0}
	want1 := [3]float64{0.5, 0, 0.5}
	for k := 0; k < 3; k++ {
		if different(frac[k][0], want0[k], 1e-9) {
			t.Errorf("fraction %d of pure obs = %g, want %g", k, frac[k][0], want0[k])
		}
		if different(frac[k][1], want1[k], 1e-9) {
			t.Errorf("fraction %d of mixture = %g, want %g", k, frac[k][1], want1[k])
		}
		if !math.IsNaN(frac[k][2]) {
			t.Errorf("fraction %d of masked obs = %g, want NaN", k, frac[k][2])
		}
	}
	// Fractions of each valid observation sum to one.
	for i := 0; i < 2; i++ {
		sum := frac[0][i] + frac[1][i] + frac[2][i]
		if different(sum, 1, 1e-9) {
			t.Errorf("fractions of obs %d sum to %g, want 1", i, sum)
		}
	}
}

func TestWaterFractionsArgs(t *testing.T) {
	c, err := NewCTDCast([]float64{0, 10}, []float64{35, 35}, []float64{10, 10})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.WaterFractions([]SourceWater{{34, 2}, {36, 4}}); err == nil {
		t.Error("two source waters should fail")
	}
	if _, err := c.WaterFractions(
		[]SourceWater{{34, 2}, {35, 12}, {36, 4}}, "sal"); err == nil {
		t.Error("a single tracer should fail")
	}
	if _, err := c.WaterFractions(
		[]SourceWater{{34, 2}, {35, 12}, {36, 4}}, "sal", "oxygen"); err == nil {
		t.Error("a missing tracer field should fail")
	}
}
