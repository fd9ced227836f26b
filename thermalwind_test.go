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

// saltFrontSection builds a 3-station transect at 45°N in which salinity,
// and hence density, increases eastward.
func saltFrontSection(t *testing.T) *CastCollection {
	t.Helper()
	cc := NewCastCollection()
	for j := 0; j < 3; j++ {
		n := 10
		p := make([]float64, n)
		sal := make([]float64, n)
		temp := make([]float64, n)
		for i := range p {
			p[i] = float64(i) * 10
			sal[i] = 34 + 0.2*float64(j)
			temp[i] = 10
		}
		c, err := NewCTDCast(p, sal, temp,
			Coordinates(-30+0.5*float64(j), 45),
			Property(BottomKey, 3000.0))
		if err != nil {
			t.Fatal(err)
		}
		cc.Append(c)
	}
	return cc
}

func TestThermalWind(t *testing.T) {
	cc := saltFrontSection(t)
	if err := cc.ThermalWind(nil); err != nil {
		t.Fatal(err)
	}
	for j := 0; j < cc.Len(); j++ {
		core := cc.Cast(j).Core()
		dudz, err := core.Field("dudz")
		if err != nil {
			t.Fatal(err)
		}
		u, err := core.Field("u")
		if err != nil {
			t.Fatal(err)
		}
		// Density increases eastward in the northern hemisphere, so the
		// shear is positive everywhere.
		for i, s := range dudz {
			if math.IsNaN(s) || s <= 0 {
				t.Errorf("cast %d dudz[%d] = %g, want positive", j, i, s)
			}
		}
		// No motion at the deepest sample; flow strengthens upward in
		// magnitude.
		if u[len(u)-1] != 0 {
			t.Errorf("cast %d reference velocity = %g, want 0", j, u[len(u)-1])
		}
		if math.IsNaN(u[0]) || u[0] >= 0 {
			t.Errorf("cast %d surface velocity = %g, want negative", j, u[0])
		}
		// Depth was derived as a side effect.
		if !core.HasField("depth") {
			t.Errorf("cast %d has no depth field after ThermalWind", j)
		}
	}
}

func TestThermalWindInner(t *testing.T) {
	cc := saltFrontSection(t)
	mid, err := cc.ThermalWindInner(nil)
	if err != nil {
		t.Fatal(err)
	}
	if mid.Len() != cc.Len()-1 {
		t.Fatalf("midpoint collection has %d casts, want %d", mid.Len(), cc.Len()-1)
	}
	// The input collection is untouched.
	for j := 0; j < cc.Len(); j++ {
		if cc.Cast(j).Core().HasField("u") {
			t.Errorf("input cast %d gained a velocity field", j)
		}
	}
	wantLon := []float64{-29.75, -29.25}
	for j := 0; j < mid.Len(); j++ {
		core := mid.Cast(j).Core()
		p := core.Coords()
		if different(p.X, wantLon[j], 1e-9) || different(p.Y, 45, 1e-9) {
			t.Errorf("midpoint %d at (%g, %g), want (%g, 45)", j, p.X, p.Y, wantLon[j])
		}
		u, err := core.Field("u")
		if err != nil {
			t.Fatal(err)
		}
		if u[len(u)-1] != 0 {
			t.Errorf("midpoint %d reference velocity = %g, want 0", j, u[len(u)-1])
		}
		if _, err := core.Field("dudz"); err != nil {
			t.Fatal(err)
		}
		// Bottom depths were averaged onto the midpoints.
		b, err := core.Property(BottomKey)
		if err != nil {
			t.Fatal(err)
		}
		if different(b.(float64), 3000, 1e-9) {
			t.Errorf("midpoint %d bottom = %v, want 3000", j, b)
		}
	}
}

func TestThermalWindInnerTooShort(t *testing.T) {
	cc := saltFrontSection(t).Slice(0, 1)
	if _, err := cc.ThermalWindInner(nil); err == nil {
		t.Error("a single-cast transect should fail")
	}
}
