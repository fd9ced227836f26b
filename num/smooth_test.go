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

func TestGaussianSmooth(t *testing.T) {
	n := 40
	v := make([]float64, n)
	for i := range v {
		v[i] = 0.5 * float64(i)
	}
	s := GaussianSmooth(v, 2)
	// A symmetric kernel leaves a linear signal unchanged away from the
	// boundaries.
	for i := 8; i < n-8; i++ {
		if different(s[i], v[i], 1e-9) {
			t.Errorf("s[%d] = %g, want %g", i, s[i], v[i])
		}
	}

	// sigma <= 0 is the identity.
	id := GaussianSmooth(v, 0)
	for i := range v {
		if id[i] != v[i] {
			t.Fatalf("sigma=0 changed sample %d", i)
		}
	}

	// A kernel wider than the whole signal reflects more than once and
	// still yields a bounded weighted average.
	short := GaussianSmooth([]float64{1, 2, 3}, 2)
	for i, x := range short {
		if x < 1 || x > 3 {
			t.Errorf("short[%d] = %g, want within [1, 3]", i, x)
		}
	}
	one := GaussianSmooth([]float64{7}, 5)
	if len(one) != 1 || one[0] != 7 {
		t.Errorf("single sample smoothed to %v, want [7]", one)
	}
	flat := GaussianSmooth([]float64{2, 2, 2}, 3)
	for i, x := range flat {
		if different(x, 2, 1e-12) {
			t.Errorf("flat[%d] = %g, want 2", i, x)
		}
	}

	// A spike spreads but its mass is conserved in the interior.
	spike := make([]float64, n)
	spike[n/2] = 1
	sm := GaussianSmooth(spike, 1.5)
	if sm[n/2] >= 1 || sm[n/2] <= 0 {
		t.Errorf("smoothed spike peak = %g, want in (0, 1)", sm[n/2])
	}
	var sum float64
	for _, x := range sm {
		sum += x
	}
	if different(sum, 1, 1e-9) {
		t.Errorf("smoothed spike mass = %g, want 1", sum)
	}
}

func TestPenalizedSmooth(t *testing.T) {
	n := 30
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * 3
		y[i] = 2*x[i] + 1
	}
	// A straight line is in the null space of the penalty.
	z, err := PenalizedSmooth(x, y, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := range y {
		if different(z[i], y[i], 1e-6) {
			t.Errorf("z[%d] = %g, want %g", i, z[i], y[i])
		}
	}

	// s = 0 returns the data unchanged.
	noisy := make([]float64, n)
	for i := range noisy {
		noisy[i] = y[i] + 0.5*math.Pow(-1, float64(i))
	}
	z0, err := PenalizedSmooth(x, noisy, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range noisy {
		if different(z0[i], noisy[i], 1e-9) {
			t.Errorf("s=0 changed sample %d: %g != %g", i, z0[i], noisy[i])
		}
	}

	// Smoothing reduces the curvature of an alternating signal.
	zs, err := PenalizedSmooth(x, noisy, 10)
	if err != nil {
		t.Fatal(err)
	}
	if curvature(x, zs) >= curvature(x, noisy) {
		t.Error("smoothing did not reduce curvature")
	}

	if _, err := PenalizedSmooth(x, y[:n-1], 1); err == nil {
		t.Error("length mismatch should fail")
	}
	if _, err := PenalizedSmooth(x, y, -1); err == nil {
		t.Error("negative smoothing should fail")
	}
}

// curvature sums squared second differences.
func curvature(x, y []float64) float64 {
	var c float64
	for i := 1; i < len(y)-1; i++ {
		h1 := x[i] - x[i-1]
		h2 := x[i+1] - x[i]
		d := 2 * (h1*y[i+1] - (h1+h2)*y[i] + h2*y[i-1]) / (h1 * h2 * (h1 + h2))
		c += d * d
	}
	return c
}
