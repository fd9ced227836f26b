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

	"github.com/ctessum/sparse"

	"github.com/oceanmodel/oceancast/num"
)

// ThermalWindOptions parameterizes ThermalWind and ThermalWindInner. Field
// names are explicit so that derived fields never silently clobber caller
// data; the zero value selects the defaults.
type ThermalWindOptions struct {
	// RhoKey names an existing in-situ density field. When empty, density
	// is computed per cast with AddDensity, and the computation fails if
	// the resulting field names diverge between casts.
	RhoKey string
	// DUDZKey and UKey name the shear and velocity fields to add,
	// subject to Overwrite.
	DUDZKey string
	UKey    string
	// BottomKey names the bottom-depth property averaged onto midpoint
	// casts by ThermalWindInner.
	BottomKey string
	// Overwrite allows replacing existing fields instead of
	// incrementing the names until there is no clash.
	Overwrite bool
}

func (o *ThermalWindOptions) withDefaults() ThermalWindOptions {
	out := ThermalWindOptions{}
	if o != nil {
		out = *o
	}
	if out.DUDZKey == "" {
		out.DUDZKey = "dudz"
	}
	if out.UKey == "" {
		out.UKey = "u"
	}
	if out.BottomKey == "" {
		out.BottomKey = BottomKey
	}
	return out
}

// densityAdder is the capability ThermalWind requires of each cast when no
// density field is supplied.
type densityAdder interface {
	AddDensity() (string, error)
}

// depthAdder is the capability required to derive depth from pressure when
// a cast has no depth field.
type depthAdder interface {
	AddDepth(rhoKey string) (string, error)
}

// ThermalWind computes the vertical shear of the transect-orthogonal
// geostrophic velocity from the hydrostatic thermal-wind relation
//
//	∂u/∂z = g/(ρ·2Ω·sinφ) · ∂ρ/∂x
//
// and integrates it into absolute velocity, assuming no motion at the
// deepest common reference level. A shear field and a velocity field are
// added to every cast in the collection; as a side effect, casts without a
// "depth" field get one.
//
// The casts are assumed to share vertical grid alignment; regrid or defray
// first when they do not.
func (cc *CastCollection) ThermalWind(opts *ThermalWindOptions) error {
	o := opts.withDefaults()
	rho, err := cc.densityArray(&o)
	if err != nil {
		return err
	}
	for i, c := range cc.casts {
		if c.Core().HasField("depth") {
			continue
		}
		da, ok := c.(depthAdder)
		if !ok {
			return fmt.Errorf("oceancast: thermal wind: cast %d has no depth field and cannot derive one", i)
		}
		if _, err := da.AddDepth(o.RhoKey); err != nil {
			return fmt.Errorf("oceancast: thermal wind: deriving depth for cast %d: %w", i, err)
		}
	}

	x, err := cc.AlongTrackDistance()
	if err != nil {
		return err
	}
	drho, err := num.TransectGradient(rho, x)
	if err != nil {
		return err
	}

	m, n := rho.Shape[0], rho.Shape[1]
	dudz := sparse.ZerosDense(m, n)
	for j := 0; j < n; j++ {
		f := coriolis(cc.casts[j].Core().Coords().Y)
		for i := 0; i < m; i++ {
			dudz.Set(gravity/rho.Get(i, j)*drho.Get(i, j)/f, i, j)
		}
	}

	depth, err := cc.AsArray("depth")
	if err != nil {
		return err
	}
	u, err := num.IntegrateShear(dudz, depth)
	if err != nil {
		return err
	}

	for j, c := range cc.casts {
		if _, err := addColumn(c.Core(), o.DUDZKey, dudz, j, o.Overwrite); err != nil {
			return err
		}
		if _, err := addColumn(c.Core(), o.UKey, u, j, o.Overwrite); err != nil {
			return err
		}
	}
	return nil
}

// ThermalWindInner computes thermal-wind shear and velocity on a new
// collection of casts synthesized at the midpoints between adjacent
// stations, where the horizontal density differences are actually
// evaluated. Midpoint casts average the adjacent coordinates and bottom
// depths and take pressure, temperature, and salinity from whichever
// neighbor has more valid samples. Shear and velocity are added only to the
// midpoint collection, one cast shorter, which is returned; the input casts
// gain at most a derived density field.
func (cc *CastCollection) ThermalWindInner(opts *ThermalWindOptions) (*CastCollection, error) {
	o := opts.withDefaults()
	if cc.Len() < 2 {
		return nil, fmt.Errorf("oceancast: thermal wind: need at least 2 casts, got %d", cc.Len())
	}
	rho, err := cc.densityArray(&o)
	if err != nil {
		return nil, err
	}

	mid := NewCastCollection()
	for i := 0; i < cc.Len()-1; i++ {
		a, b := cc.casts[i].Core(), cc.casts[i+1].Core()
		ca, cb := a.Coords(), b.Coords()

		p, err := avgColumn(a, b, PressureKey)
		if err != nil {
			return nil, err
		}
		t, err := avgColumn(a, b, TemperatureKey)
		if err != nil {
			return nil, err
		}
		s, err := avgColumn(a, b, SalinityKey)
		if err != nil {
			return nil, err
		}
		mc, err := NewCTDCast(p, s, t,
			Coordinates((ca.X+cb.X)/2, (ca.Y+cb.Y)/2))
		if err != nil {
			return nil, err
		}
		if _, err := mc.AddDepth(""); err != nil {
			return nil, fmt.Errorf("oceancast: thermal wind: midpoint cast %d: %w", i, err)
		}
		ba, aok := a.Properties[o.BottomKey].(float64)
		bb, bok := b.Properties[o.BottomKey].(float64)
		if aok && bok {
			if err := mc.SetProperty(o.BottomKey, (ba+bb)/2); err != nil {
				return nil, err
			}
		}
		mid.Append(mc)
	}

	x, err := cc.AlongTrackDistance()
	if err != nil {
		return nil, err
	}
	drho, err := num.TransectGradientInner(rho, x)
	if err != nil {
		return nil, err
	}

	m, n := drho.Shape[0], drho.Shape[1]
	dudz := sparse.ZerosDense(m, n)
	for j := 0; j < n; j++ {
		f := coriolis(mid.casts[j].Core().Coords().Y)
		for i := 0; i < m; i++ {
			rhoavg := (rho.Get(i, j) + rho.Get(i, j+1)) / 2
			dudz.Set(gravity/rhoavg*drho.Get(i, j)/f, i, j)
		}
	}

	depth, err := mid.AsArray("depth")
	if err != nil {
		return nil, err
	}
	u, err := num.IntegrateShear(dudz, depth)
	if err != nil {
		return nil, err
	}

	for j, c := range mid.casts {
		if _, err := addColumn(c.Core(), o.DUDZKey, dudz, j, o.Overwrite); err != nil {
			return nil, err
		}
		if _, err := addColumn(c.Core(), o.UKey, u, j, o.Overwrite); err != nil {
			return nil, err
		}
	}
	return mid, nil
}

// densityArray resolves the density field for a thermal-wind computation:
// either the field named in the options, or density computed per cast, in
// which case the field names used must agree across the collection.
func (cc *CastCollection) densityArray(o *ThermalWindOptions) (*sparse.DenseArray, error) {
	if o.RhoKey == "" {
		for i, c := range cc.casts {
			da, ok := c.(densityAdder)
			if !ok {
				return nil, fmt.Errorf("oceancast: thermal wind: cast %d cannot derive density; supply RhoKey", i)
			}
			key, err := da.AddDensity()
			if err != nil {
				return nil, fmt.Errorf("oceancast: thermal wind: computing density for cast %d: %w", i, err)
			}
			if o.RhoKey == "" {
				o.RhoKey = key
			} else if key != o.RhoKey {
				return nil, fmt.Errorf("oceancast: thermal wind: density field names diverge (%q vs %q)", o.RhoKey, key)
			}
		}
	}
	return cc.AsArray(o.RhoKey)
}

// avgColumn implements the midpoint-cast sampling policy: it returns a copy
// of the named field from whichever of the two casts has more valid
// samples, preferring the second on a tie.
func avgColumn(a, b *Cast, key string) ([]float64, error) {
	va, err := a.Field(key)
	if err != nil {
		return nil, err
	}
	vb, err := b.Field(key)
	if err != nil {
		return nil, err
	}
	na, err := a.NValid(key)
	if err != nil {
		return nil, err
	}
	nb, err := b.NValid(key)
	if err != nil {
		return nil, err
	}
	src := vb
	if na > nb {
		src = va
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out, nil
}

// addColumn appends column j of a as a new field on c, truncating or
// NaN-padding to the cast length.
func addColumn(c *Cast, key string, a *sparse.DenseArray, j int, overwrite bool) (string, error) {
	rows := a.Shape[0]
	v := make([]float64, c.Len())
	for i := range v {
		if i < rows {
			v[i] = a.Get(i, j)
		} else {
			v[i] = math.NaN()
		}
	}
	return c.AddField(key, v, overwrite)
}
