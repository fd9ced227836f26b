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

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// BottomKey is the property under which bathymetry attachment stores the
// water depth at a cast's position. It is a property, not a field, so it
// never collides with the derived "depth" field.
const BottomKey = "bottom"

// CastCollection is an ordered sequence of casts along a cruise transect.
// The collection holds shared references to the casts it was built from;
// only Defray and ThermalWindInner copy.
type CastCollection struct {
	casts []Caster
}

// NewCastCollection creates a collection over the given casts in transect
// order.
func NewCastCollection(casts ...Caster) *CastCollection {
	cc := &CastCollection{casts: make([]Caster, len(casts))}
	copy(cc.casts, casts)
	return cc
}

// Len returns the number of casts.
func (cc *CastCollection) Len() int { return len(cc.casts) }

// Cast returns the i'th cast in transect order.
func (cc *CastCollection) Cast(i int) Caster { return cc.casts[i] }

// Casts returns the underlying cast sequence.
func (cc *CastCollection) Casts() []Caster { return cc.casts }

// Slice returns a new collection over casts [lo, hi).
func (cc *CastCollection) Slice(lo, hi int) *CastCollection {
	return NewCastCollection(cc.casts[lo:hi]...)
}

// Append adds casts to the end of the collection.
func (cc *CastCollection) Append(casts ...Caster) {
	cc.casts = append(cc.casts, casts...)
}

// Concat returns a new collection holding the casts of cc followed by the
// casts of other.
func (cc *CastCollection) Concat(other *CastCollection) *CastCollection {
	out := NewCastCollection(cc.casts...)
	out.casts = append(out.casts, other.casts...)
	return out
}

// Field stacks the named field across all casts into a depth×station
// matrix, requiring the field in every cast and all casts of equal length.
// Use AsArray for ragged collections.
func (cc *CastCollection) Field(key string) (*sparse.DenseArray, error) {
	if cc.Len() == 0 {
		return nil, fmt.Errorf("oceancast: empty cast collection")
	}
	n := cc.casts[0].Core().Len()
	for _, c := range cc.casts {
		if !c.Core().HasField(key) {
			return nil, &KeyNotFoundError{Key: key, Collection: true}
		}
		if c.Core().Len() != n {
			return nil, &ShapeError{Key: key, Got: c.Core().Len(), Want: n}
		}
	}
	out := sparse.ZerosDense(n, cc.Len())
	for j, c := range cc.casts {
		v, _ := c.Core().Field(key)
		for i, x := range v {
			out.Set(x, i, j)
		}
	}
	return out, nil
}

// PropertyValues returns the named property from every cast, in transect
// order, requiring the property in every cast.
func (cc *CastCollection) PropertyValues(key string) ([]interface{}, error) {
	out := make([]interface{}, cc.Len())
	for i, c := range cc.casts {
		v, ok := c.Core().Properties[key]
		if !ok {
			return nil, &KeyNotFoundError{Key: key, Collection: true}
		}
		out[i] = v
	}
	return out, nil
}

// CastWhere returns the first cast whose property key equals value, or nil
// if there is none.
func (cc *CastCollection) CastWhere(key string, value interface{}) Caster {
	for _, c := range cc.casts {
		if propertyEqual(c.Core().Properties[key], value) {
			return c
		}
	}
	return nil
}

// CastsWhere returns a new collection of all casts whose property key
// equals one of values.
func (cc *CastCollection) CastsWhere(key string, values ...interface{}) *CastCollection {
	out := NewCastCollection()
	for _, c := range cc.casts {
		for _, v := range values {
			if propertyEqual(c.Core().Properties[key], v) {
				out.Append(c)
				break
			}
		}
	}
	return out
}

// Defray deep-copies the collection with every cast padded to the length of
// the longest using the fill value. Differing pressure bins are not
// corrected; regrid explicitly when grids differ.
func (cc *CastCollection) Defray(fill float64) *CastCollection {
	n := 0
	for _, c := range cc.casts {
		if l := c.Core().Len(); l > n {
			n = l
		}
	}
	out := NewCastCollection()
	for _, c := range cc.casts {
		cp := copyCaster(c)
		if d := n - cp.Core().Len(); d > 0 {
			// Extend only rejects non-positive counts.
			if err := cp.Core().Extend(d, fill); err != nil {
				panic(err)
			}
		}
		out.Append(cp)
	}
	return out
}

// AsArray stacks the named field across all casts into a depth×station
// matrix, padding columns of shorter casts with NaN. The field must be
// present in every cast. Grid alignment across casts is assumed, not
// verified: callers must regrid or defray first when grids differ.
func (cc *CastCollection) AsArray(key string) (*sparse.DenseArray, error) {
	if cc.Len() == 0 {
		return nil, fmt.Errorf("oceancast: empty cast collection")
	}
	rows := 0
	for _, c := range cc.casts {
		if !c.Core().HasField(key) {
			return nil, &KeyNotFoundError{Key: key, Collection: true}
		}
		if l := c.Core().Len(); l > rows {
			rows = l
		}
	}
	out := sparse.ZerosDense(rows, cc.Len())
	for j, c := range cc.casts {
		v, _ := c.Core().Field(key)
		for i := 0; i < rows; i++ {
			if i < len(v) {
				out.Set(v[i], i, j)
			} else {
				out.Set(math.NaN(), i, j)
			}
		}
	}
	return out, nil
}

// AlongTrackDistance returns the cumulative great-circle distance [m] from
// the first cast to each cast, computed with the haversine formula. The
// first station is at distance 0 and the sequence is non-decreasing.
func (cc *CastCollection) AlongTrackDistance() ([]float64, error) {
	if cc.Len() == 0 {
		return nil, fmt.Errorf("oceancast: empty cast collection")
	}
	out := make([]float64, cc.Len())
	prev := cc.casts[0].Core().Coords()
	if math.IsNaN(prev.X) || math.IsNaN(prev.Y) {
		return nil, fmt.Errorf("oceancast: along-track distance: cast 0 has no coordinates")
	}
	for i := 1; i < cc.Len(); i++ {
		p := cc.casts[i].Core().Coords()
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return nil, fmt.Errorf("oceancast: along-track distance: cast %d has no coordinates", i)
		}
		out[i] = out[i-1] + greatCircleDistance(prev, p)
		prev = p
	}
	return out, nil
}

// greatCircleDistance returns the haversine distance [m] between two
// lon/lat points in degrees.
func greatCircleDistance(a, b geom.Point) float64 {
	lat1 := a.Y * math.Pi / 180
	lat2 := b.Y * math.Pi / 180
	dlat := (b.Y - a.Y) * math.Pi / 180
	dlon := (b.X - a.X) * math.Pi / 180
	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bathymeter supplies water depth at a geographic position; it is the
// interface OceanCast requires from an external bathymetry dataset.
type Bathymeter interface {
	Depth(p geom.Point) (float64, error)
}

// AddBathymetry attaches the water depth at each cast's position as the
// "bottom" scalar property. A cast without coordinates gets a NaN bottom
// depth and a warning rather than an error.
func (cc *CastCollection) AddBathymetry(b Bathymeter) error {
	for i, c := range cc.casts {
		p := c.Core().Coords()
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			logrus.Warnf("adding bathymetry: cast %d has no coordinates", i)
			if err := c.Core().SetProperty(BottomKey, math.NaN()); err != nil {
				return err
			}
			continue
		}
		d, err := b.Depth(p)
		if err != nil {
			return fmt.Errorf("oceancast: bathymetry lookup for cast %d: %w", i, err)
		}
		if err := c.Core().SetProperty(BottomKey, d); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether two collections hold equal casts in the same order.
func (cc *CastCollection) Equal(other *CastCollection) bool {
	if other == nil || cc.Len() != other.Len() {
		return false
	}
	for i, c := range cc.casts {
		if !c.Core().Equal(other.casts[i].Core()) {
			return false
		}
	}
	return true
}

// String summarizes the collection for display.
func (cc *CastCollection) String() string {
	return fmt.Sprintf("cast collection with %d casts", cc.Len())
}
