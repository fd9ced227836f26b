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

	"github.com/oceanmodel/oceancast/gsw"
	"github.com/oceanmodel/oceancast/num"
)

// DensityKey is the default field name for in-situ density.
const DensityKey = "rho"

// AddDensity computes in-situ density from salinity, temperature, and
// pressure via absolute-salinity and conservative-temperature conversions,
// appends it as a new field (nominally "rho"), and returns the field name
// used.
func (c *CTDCast) AddDensity() (string, error) {
	p, err := c.Field(PressureKey)
	if err != nil {
		return "", err
	}
	sal, err := c.Field(SalinityKey)
	if err != nil {
		return "", err
	}
	temp, err := c.Field(TemperatureKey)
	if err != nil {
		return "", err
	}
	pos := c.Coords()
	rho := make([]float64, c.Len())
	for i := range rho {
		sa := gsw.SAFromSP(sal[i], p[i], pos.X, pos.Y)
		ct := gsw.CTFromT(sa, temp[i], p[i])
		rho[i] = gsw.Rho(sa, ct, p[i])
	}
	return c.AddField(DensityKey, rho, false)
}

// AddDepth integrates the hydrostatic relation dz = dp/(ρg) to derive depth
// [m] from pressure [dbar] and in-situ density, appends the result as a new
// field (nominally "depth"), and returns the field name used. rhoKey names
// an existing density field; when empty, density is computed first with
// AddDensity.
//
// Leading NaNs in density are back-filled from the first valid value before
// integration; this is a documented edge-case policy for casts whose
// shallowest bins carry no salinity or temperature.
func (c *CTDCast) AddDepth(rhoKey string) (string, error) {
	if rhoKey == "" {
		var err error
		if rhoKey, err = c.AddDensity(); err != nil {
			return "", err
		}
	}
	rhoField, err := c.Field(rhoKey)
	if err != nil {
		return "", err
	}
	p, err := c.Field(PressureKey)
	if err != nil {
		return "", err
	}

	rho := make([]float64, len(rhoField))
	copy(rho, rhoField)
	first := -1
	for i, r := range rho {
		if !math.IsNaN(r) {
			first = i
			break
		}
	}
	if first < 0 {
		return "", fmt.Errorf("oceancast: computing depth: density field %q has no valid samples", rhoKey)
	}
	for i := 0; i < first; i++ {
		rho[i] = rho[first]
	}

	depth := make([]float64, c.Len())
	z := 0.0
	for i := range depth {
		dp := p[i]
		if i > 0 {
			dp = p[i] - p[i-1]
		}
		// 1 dbar = 1e4 Pa.
		z += dp / (rho[i] * gravity) * 1e4
		depth[i] = z
	}
	return c.AddField("depth", depth, false)
}

// NSquaredKey is the default field name for squared buoyancy frequency.
const NSquaredKey = "N2"

// AddNSquared computes the squared buoyancy frequency from the density
// field named by rhoKey (computed first when empty), appends it as a new
// field (nominally "N2"), and returns the field name used. Density is
// smoothed against pressure with a penalized smoother of strength s before
// differencing; smaller s gives a noisier result. Observations masked in
// density or pressure yield NaN.
func (c *CTDCast) AddNSquared(rhoKey string, s float64) (string, error) {
	if rhoKey == "" {
		var err error
		if rhoKey, err = c.AddDensity(); err != nil {
			return "", err
		}
	}
	rho, err := c.Field(rhoKey)
	if err != nil {
		return "", err
	}
	p, err := c.Field(PressureKey)
	if err != nil {
		return "", err
	}
	mask, err := c.NaNMask(rhoKey, PressureKey)
	if err != nil {
		return "", err
	}

	var xs, ys []float64
	for i, bad := range mask {
		if !bad {
			xs = append(xs, p[i])
			ys = append(ys, rho[i])
		}
	}
	if len(xs) < 3 {
		return "", fmt.Errorf("oceancast: computing N²: only %d valid samples", len(xs))
	}
	smooth, err := num.PenalizedSmooth(xs, ys, s)
	if err != nil {
		return "", fmt.Errorf("oceancast: computing N²: %w", err)
	}
	drhodp, err := num.Diff1(smooth, xs)
	if err != nil {
		return "", fmt.Errorf("oceancast: computing N²: %w", err)
	}

	n2 := make([]float64, c.Len())
	k := 0
	for i, bad := range mask {
		if bad {
			n2[i] = math.NaN()
			continue
		}
		n2[i] = gravity / ys[k] * drhodp[k]
		k++
	}
	return c.AddField(NSquaredKey, n2, false)
}
