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
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNewCTDCast(t *testing.T) {
	c, err := NewCTDCast(
		[]float64{0, 10, 20, 30},
		[]float64{35, 35, 35, 35},
		[]float64{10, 10, 10, 10},
		Coordinates(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if c.PrimaryKey() != "pres" {
		t.Errorf("primary key = %q, want pres", c.PrimaryKey())
	}
	want := []string{"pres", "sal", "temp"}
	if !reflect.DeepEqual(c.Fields(), want) {
		t.Errorf("fields = %v, want %v", c.Fields(), want)
	}

	_, err = NewCTDCast([]float64{0, 10}, []float64{35}, []float64{10, 10})
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		t.Errorf("mismatched salinity error = %v, want ShapeError", err)
	}
}

func TestNewXBTCast(t *testing.T) {
	c, err := NewXBTCast([]float64{0, 5, 10}, []float64{18, 17, 16})
	if err != nil {
		t.Fatal(err)
	}
	if c.PrimaryKey() != "z" {
		t.Errorf("primary key = %q, want z", c.PrimaryKey())
	}
	if !c.HasField("temp") {
		t.Error("XBT cast should carry a temp field")
	}
}

func TestAddShear(t *testing.T) {
	n := 20
	z := make([]float64, n)
	u := make([]float64, n)
	v := make([]float64, n)
	for i := range z {
		z[i] = float64(i) * 5
		u[i] = 0.02 * z[i] // constant du/dz = 0.02
		v[i] = 1 - 0.01*z[i]
	}
	c, err := NewLADCPCast(z, u, v, Coordinates(-48, 61))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddShear(0); err != nil {
		t.Fatal(err)
	}
	dudz, err := c.Field("dudz")
	if err != nil {
		t.Fatal(err)
	}
	dvdz, err := c.Field("dvdz")
	if err != nil {
		t.Fatal(err)
	}
	for i := range dudz {
		if different(dudz[i], 0.02, 1e-12) {
			t.Errorf("dudz[%d] = %g, want 0.02", i, dudz[i])
		}
		if different(dvdz[i], -0.01, 1e-12) {
			t.Errorf("dvdz[%d] = %g, want -0.01", i, dvdz[i])
		}
	}

	// Smoothing must not disturb a linear profile away from the ends.
	if err := c.AddShear(2); err != nil {
		t.Fatal(err)
	}
	smoothed, err := c.Field("dudz_2")
	if err != nil {
		t.Fatal(err)
	}
	if different(smoothed[n/2], 0.02, 1e-6) {
		t.Errorf("smoothed dudz = %g, want 0.02", smoothed[n/2])
	}
}

func TestAddShearShortCast(t *testing.T) {
	// A smoothing kernel wider than the profile must still work.
	c, err := NewLADCPCast(
		[]float64{0, 5, 10},
		[]float64{0.1, 0.2, 0.3},
		[]float64{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddShear(2); err != nil {
		t.Fatal(err)
	}
	dudz, err := c.Field("dudz")
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range dudz {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Errorf("dudz[%d] = %g, want finite", i, s)
		}
	}
}
