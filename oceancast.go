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

// Package oceancast models oceanographic CTD profile data. A Cast is a
// single vertical profile of co-registered measurement vectors keyed by a
// monotonic vertical coordinate; a CastCollection is an ordered sequence of
// casts along a cruise transect. Derived physical quantities (in-situ
// density, depth, buoyancy frequency, baroclinic modes, water-mass
// fractions, geostrophic shear and velocity) are written back onto the
// casts as new fields.
package oceancast

import "math"

// Physical constants.
const (
	gravity     = 9.8                   // m/s²
	earthOmega  = 2 * math.Pi / 86400.0 // rad/s
	earthRadius = 6371e3                // m
)

// CoordinatesKey is the property under which every cast stores its
// geographic position as a geom.Point (X = longitude, Y = latitude,
// degrees).
const CoordinatesKey = "coordinates"

// Caster is satisfied by Cast and all of its variants. Core returns the
// common field-mapping core that every variant wraps.
type Caster interface {
	Core() *Cast
}

// coriolis returns the Coriolis parameter f = 2Ω·sin(φ) for latitude
// lat in degrees.
func coriolis(lat float64) float64 {
	return 2 * earthOmega * math.Sin(lat*math.Pi/180)
}
