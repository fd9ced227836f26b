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

// Package gsw provides seawater thermodynamic conversions: absolute
// salinity, conservative temperature, and in-situ density.
//
// The implementation uses the reference-composition salinity scaling of
// Millero et al. (2008), the potential-temperature polynomial of Bryden
// (1973), and the UNESCO/EOS-80 international equation of state (Millero
// and Poisson, 1981; Fofonoff and Millard, 1983). Conservative temperature
// is approximated by potential temperature, which agrees to within about
// 0.05°C over oceanic ranges. The location-dependent salinity anomaly is
// neglected.
package gsw

import "math"

// uPS converts practical salinity to reference-composition absolute
// salinity [g/kg] (Millero et al. 2008).
const uPS = 35.16504 / 35.0

// SAFromSP returns absolute salinity [g/kg] from practical salinity sp at
// pressure p [dbar] and location lon, lat [degrees]. The location and
// pressure arguments are accepted for interface parity with TEOS-10 but do
// not contribute to the result, as the regional salinity anomaly is
// neglected.
func SAFromSP(sp, p, lon, lat float64) float64 {
	return sp * uPS
}

// CTFromT returns conservative temperature [°C] from absolute salinity sa
// [g/kg], in-situ temperature t [°C], and pressure p [dbar], approximated by
// the potential temperature referenced to the surface.
func CTFromT(sa, t, p float64) float64 {
	return potentialTemperature(sa/uPS, t, p)
}

// potentialTemperature computes potential temperature [°C] referenced to
// 0 dbar from practical salinity s, in-situ temperature t [°C], and
// pressure p [dbar], using the Bryden (1973) polynomial.
func potentialTemperature(s, t, p float64) float64 {
	pb := p / 10 // bars
	ds := s - 35
	return t -
		pb*(3.6504e-4+8.3198e-5*t-5.4065e-7*t*t+4.0274e-9*t*t*t) -
		pb*ds*(1.7439e-5-2.9778e-7*t) -
		pb*pb*(8.9309e-7-3.1628e-8*t+2.1987e-10*t*t) +
		4.1057e-9*ds*pb*pb -
		pb*pb*pb*(-1.6056e-10+5.0484e-12*t)
}

// Rho returns in-situ density [kg/m³] from absolute salinity sa [g/kg],
// conservative temperature ct [°C], and pressure p [dbar], using the EOS-80
// international equation of state evaluated with potential temperature.
func Rho(sa, ct, p float64) float64 {
	s := sa / uPS
	t := ct
	pb := p / 10 // bars

	rho0 := densityAtSurface(s, t)
	if pb == 0 {
		return rho0
	}
	k := secantBulkModulus(s, t, pb)
	return rho0 / (1 - pb/k)
}

// densityAtSurface is the one-atmosphere term ρ(S,T,0) of EOS-80
// (Millero and Poisson, 1981).
func densityAtSurface(s, t float64) float64 {
	rhoW := 999.842594 + t*(6.793952e-2+t*(-9.095290e-3+
		t*(1.001685e-4+t*(-1.120083e-6+t*6.536332e-9))))
	a := 8.24493e-1 + t*(-4.0899e-3+t*(7.6438e-5+
		t*(-8.2467e-7+t*5.3875e-9)))
	b := -5.72466e-3 + t*(1.0227e-4-t*1.6546e-6)
	const c = 4.8314e-4
	s15 := s * math.Sqrt(s)
	return rhoW + a*s + b*s15 + c*s*s
}

// secantBulkModulus is the EOS-80 secant bulk modulus K(S,T,p), with p in
// bars (Fofonoff and Millard, 1983).
func secantBulkModulus(s, t, p float64) float64 {
	s15 := s * math.Sqrt(s)

	kw := 19652.21 + t*(148.4206+t*(-2.327105+
		t*(1.360477e-2-t*5.155288e-5)))
	k0 := kw +
		s*(54.6746+t*(-0.603459+t*(1.09987e-2-t*6.1670e-5))) +
		s15*(7.944e-2+t*(1.6483e-2-t*5.3009e-4))

	aw := 3.239908 + t*(1.43713e-3+t*(1.16092e-4-t*5.77905e-7))
	a := aw +
		s*(2.2838e-3+t*(-1.0981e-5-t*1.6078e-6)) +
		s15*1.91075e-4

	bw := 8.50935e-5 + t*(-6.12293e-6+t*5.2787e-8)
	b := bw + s*(-9.9348e-7+t*(2.0816e-8+t*9.1697e-10))

	return k0 + a*p + b*p*p
}
