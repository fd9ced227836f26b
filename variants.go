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

	"github.com/oceanmodel/oceancast/num"
)

// Required field names for the cast variants.
const (
	PressureKey    = "pres"
	DepthFieldKey  = "z"
	SalinityKey    = "sal"
	TemperatureKey = "temp"
	EastVelKey     = "u"
	NorthVelKey    = "v"
)

// CTDCast is a cast guaranteed to carry salinity and temperature keyed by
// pressure.
type CTDCast struct {
	*Cast
}

// NewCTDCast creates a CTD cast from pressure [dbar], practical salinity,
// and in-situ temperature [°C] vectors of equal length.
func NewCTDCast(p, sal, temp []float64, opts ...CastOption) (*CTDCast, error) {
	all := append([]CastOption{
		Field(SalinityKey, sal),
		Field(TemperatureKey, temp),
	}, opts...)
	c, err := NewCast(PressureKey, p, all...)
	if err != nil {
		return nil, fmt.Errorf("oceancast: creating CTD cast: %w", err)
	}
	return &CTDCast{Cast: c}, nil
}

// LADCPCast is a velocity-profile cast guaranteed to carry east and north
// velocity keyed by depth.
type LADCPCast struct {
	*Cast
}

// NewLADCPCast creates a velocity-profile cast from depth [m] and east and
// north velocity [m/s] vectors of equal length.
func NewLADCPCast(z, u, v []float64, opts ...CastOption) (*LADCPCast, error) {
	all := append([]CastOption{
		Field(EastVelKey, u),
		Field(NorthVelKey, v),
	}, opts...)
	c, err := NewCast(DepthFieldKey, z, all...)
	if err != nil {
		return nil, fmt.Errorf("oceancast: creating LADCP cast: %w", err)
	}
	return &LADCPCast{Cast: c}, nil
}

// AddShear differentiates the east and north velocity fields against depth
// and stores the results as new "dudz" and "dvdz" fields. With sigma > 0,
// the velocities are smoothed with a Gaussian filter of that width (in
// samples) before differencing.
func (c *LADCPCast) AddShear(sigma float64) error {
	z, err := c.Field(DepthFieldKey)
	if err != nil {
		return err
	}
	u, err := c.Field(EastVelKey)
	if err != nil {
		return err
	}
	v, err := c.Field(NorthVelKey)
	if err != nil {
		return err
	}
	if sigma > 0 {
		u = num.GaussianSmooth(u, sigma)
		v = num.GaussianSmooth(v, sigma)
	}
	dudz, err := num.Diff1(u, z)
	if err != nil {
		return fmt.Errorf("oceancast: computing shear: %w", err)
	}
	dvdz, err := num.Diff1(v, z)
	if err != nil {
		return fmt.Errorf("oceancast: computing shear: %w", err)
	}
	if _, err := c.AddField("dudz", dudz, false); err != nil {
		return err
	}
	_, err = c.AddField("dvdz", dvdz, false)
	return err
}

// XBTCast is a temperature-only cast keyed by depth.
type XBTCast struct {
	*Cast
}

// NewXBTCast creates a temperature-only cast from depth [m] and in-situ
// temperature [°C] vectors of equal length.
func NewXBTCast(z, temp []float64, opts ...CastOption) (*XBTCast, error) {
	all := append([]CastOption{
		Field(TemperatureKey, temp),
	}, opts...)
	c, err := NewCast(DepthFieldKey, z, all...)
	if err != nil {
		return nil, fmt.Errorf("oceancast: creating XBT cast: %w", err)
	}
	return &XBTCast{Cast: c}, nil
}

// copyCaster deep-copies a cast while preserving its variant type.
func copyCaster(c Caster) Caster {
	core := c.Core().Copy()
	switch c.(type) {
	case *CTDCast:
		return &CTDCast{Cast: core}
	case *LADCPCast:
		return &LADCPCast{Cast: core}
	case *XBTCast:
		return &XBTCast{Cast: core}
	default:
		return core
	}
}
