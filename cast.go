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
	"reflect"
	"strings"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/interp"

	"github.com/oceanmodel/oceancast/num"
)

// Cast is a set of referenced measurements associated with a single
// geographic coordinate. Measurement vectors ("fields") all share the cast
// length and are keyed by name; the primary key names the monotonic
// vertical coordinate (usually pressure "pres" or depth "z") and is always
// the first field. Scalar metadata lives in Properties, which always
// contains CoordinatesKey.
//
// A name identifies either a field or a property, never both.
type Cast struct {
	primaryKey string
	fields     []string // insertion order; primaryKey first
	data       map[string][]float64

	// Properties holds scalar metadata.
	Properties map[string]interface{}
}

// CastOption configures a cast under construction.
type CastOption func(c *Cast) error

// Field adds a measurement vector during construction. The vector length
// must match the primary vector length.
func Field(name string, v []float64) CastOption {
	return func(c *Cast) error {
		return c.SetField(name, v)
	}
}

// Property adds a scalar metadata value during construction.
func Property(name string, v interface{}) CastOption {
	return func(c *Cast) error {
		return c.SetProperty(name, v)
	}
}

// Coordinates sets the cast's geographic position (degrees).
func Coordinates(lon, lat float64) CastOption {
	return func(c *Cast) error {
		c.Properties[CoordinatesKey] = geom.Point{X: lon, Y: lat}
		return nil
	}
}

// NewCast creates a cast from its primary vertical coordinate vector p,
// stored under primaryKey. If no Coordinates option is given the cast's
// position is (NaN, NaN).
func NewCast(primaryKey string, p []float64, opts ...CastOption) (*Cast, error) {
	if primaryKey == "" {
		return nil, fmt.Errorf("oceancast: cast primary key must not be empty")
	}
	pc := make([]float64, len(p))
	copy(pc, p)
	c := &Cast{
		primaryKey: primaryKey,
		fields:     []string{primaryKey},
		data:       map[string][]float64{primaryKey: pc},
		Properties: map[string]interface{}{
			CoordinatesKey: geom.Point{X: math.NaN(), Y: math.NaN()},
		},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Len returns the number of observations in the cast.
func (c *Cast) Len() int { return len(c.data[c.primaryKey]) }

// PrimaryKey returns the name of the vertical coordinate field.
func (c *Cast) PrimaryKey() string { return c.primaryKey }

// Fields returns the field names in insertion order, primary key first.
func (c *Cast) Fields() []string {
	out := make([]string, len(c.fields))
	copy(out, c.fields)
	return out
}

// HasField reports whether name is a measurement vector in the cast.
func (c *Cast) HasField(name string) bool {
	_, ok := c.data[name]
	return ok
}

// Core returns the cast itself, satisfying Caster.
func (c *Cast) Core() *Cast { return c }

// Coords returns the cast's geographic position. If the coordinates
// property has been removed or holds an unexpected type, the position is
// (NaN, NaN).
func (c *Cast) Coords() geom.Point {
	if p, ok := c.Properties[CoordinatesKey].(geom.Point); ok {
		return p
	}
	return geom.Point{X: math.NaN(), Y: math.NaN()}
}

// FieldValue is one (field, value) pair of an observation.
type FieldValue struct {
	Field string
	Value float64
}

// Observation returns the (field, value) pairs at index i in field order.
func (c *Cast) Observation(i int) ([]FieldValue, error) {
	if i < 0 || i >= c.Len() {
		return nil, fmt.Errorf("oceancast: observation index %d out of range for cast of length %d", i, c.Len())
	}
	out := make([]FieldValue, len(c.fields))
	for k, name := range c.fields {
		out[k] = FieldValue{Field: name, Value: c.data[name][i]}
	}
	return out, nil
}

// Field returns the measurement vector stored under name. The returned
// slice is the cast's own storage, not a copy.
func (c *Cast) Field(name string) ([]float64, error) {
	v, ok := c.data[name]
	if !ok {
		return nil, &KeyNotFoundError{Key: name}
	}
	return v, nil
}

// SetField stores v as the measurement vector name, replacing any existing
// vector of that name. The length of v must equal the cast length, and name
// must not be in use as a property.
func (c *Cast) SetField(name string, v []float64) error {
	if len(v) != c.Len() {
		return &ShapeError{Key: name, Got: len(v), Want: c.Len()}
	}
	if _, ok := c.Properties[name]; ok {
		return fmt.Errorf("oceancast: %q is already a property and cannot be a field", name)
	}
	if _, ok := c.data[name]; !ok {
		c.fields = append(c.fields, name)
	}
	vc := make([]float64, len(v))
	copy(vc, v)
	c.data[name] = vc
	return nil
}

// Property returns the scalar metadata value stored under name.
func (c *Cast) Property(name string) (interface{}, error) {
	v, ok := c.Properties[name]
	if !ok {
		return nil, &KeyNotFoundError{Key: name}
	}
	return v, nil
}

// SetProperty stores scalar metadata under name, which must not be in use
// as a field.
func (c *Cast) SetProperty(name string, v interface{}) error {
	if _, ok := c.data[name]; ok {
		return fmt.Errorf("oceancast: %q is already a field and cannot be a property", name)
	}
	c.Properties[name] = v
	return nil
}

// Get looks name up first among the fields and then among the properties.
func (c *Cast) Get(name string) (interface{}, error) {
	if v, ok := c.data[name]; ok {
		return v, nil
	}
	if v, ok := c.Properties[name]; ok {
		return v, nil
	}
	return nil, &KeyNotFoundError{Key: name}
}

// AddField appends v as a new field. If name is already in use and
// overwrite is false, numeric suffixes (name_2, name_3, …) are tried until
// an unused name is found; the name finally used is returned. Every
// derivation uses this mechanism so that caller fields are never silently
// clobbered.
func (c *Cast) AddField(name string, v []float64, overwrite bool) (string, error) {
	if len(v) != c.Len() {
		return "", &ShapeError{Key: name, Got: len(v), Want: c.Len()}
	}
	key := name
	if !overwrite {
		for i := 2; c.nameInUse(key); i++ {
			key = fmt.Sprintf("%s_%d", name, i)
		}
	}
	if err := c.SetField(key, v); err != nil {
		return "", err
	}
	return key, nil
}

func (c *Cast) nameInUse(name string) bool {
	if _, ok := c.data[name]; ok {
		return true
	}
	_, ok := c.Properties[name]
	return ok
}

// NaNMask reports which observations contain at least one NaN among the
// named fields (all fields if none are named).
func (c *Cast) NaNMask(fields ...string) ([]bool, error) {
	if len(fields) == 0 {
		fields = c.fields
	}
	mask := make([]bool, c.Len())
	for _, name := range fields {
		v, ok := c.data[name]
		if !ok {
			return nil, &KeyNotFoundError{Key: name}
		}
		for i, x := range v {
			if math.IsNaN(x) {
				mask[i] = true
			}
		}
	}
	return mask, nil
}

// NValid returns the number of observations with no NaN among the named
// fields (all fields if none are named).
func (c *Cast) NValid(fields ...string) (int, error) {
	mask, err := c.NaNMask(fields...)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, bad := range mask {
		if !bad {
			n++
		}
	}
	return n, nil
}

// Extend appends n fill-valued observations to every field. n must be
// positive.
func (c *Cast) Extend(n int, fill float64) error {
	if n <= 0 {
		return fmt.Errorf("oceancast: cannot extend cast by %d observations", n)
	}
	pad := make([]float64, n)
	for i := range pad {
		pad[i] = fill
	}
	for _, name := range c.fields {
		c.data[name] = append(c.data[name], pad...)
	}
	return nil
}

// Interpolate evaluates the field target as a function of the field ref at
// the points query. The reference field must be strictly increasing; with
// force set, a non-monotonic reference is first coerced using
// num.ForceMonotonic. This makes it reasonable to interpolate against
// density or sigma axes that are monotonic only up to measurement noise.
func (c *Cast) Interpolate(target, ref string, query []float64, force bool) ([]float64, error) {
	y, ok := c.data[target]
	if !ok {
		return nil, &KeyNotFoundError{Key: target}
	}
	x, ok := c.data[ref]
	if !ok {
		return nil, &KeyNotFoundError{Key: ref}
	}
	if !num.IsMonotonic(x) {
		if !force {
			return nil, &NonMonotonicError{Key: ref}
		}
		x = num.ForceMonotonic(x)
	}
	return interpolate1D(x, y, query, false)
}

// Regrid returns a new cast whose primary coordinate equals levels, with
// every other field linearly interpolated against the old primary
// coordinate. Query points outside the original range become NaN. The
// receiver is not modified.
func (c *Cast) Regrid(levels []float64) (*Cast, error) {
	x, err := c.Field(c.primaryKey)
	if err != nil {
		return nil, err
	}
	if !num.IsMonotonic(x) {
		return nil, &NonMonotonicError{Key: c.primaryKey}
	}
	out := c.Copy()
	lc := make([]float64, len(levels))
	copy(lc, levels)
	out.data[c.primaryKey] = lc
	for _, name := range c.fields {
		if name == c.primaryKey {
			continue
		}
		v, err := interpolate1D(x, c.data[name], levels, true)
		if err != nil {
			return nil, fmt.Errorf("oceancast: regridding %q: %w", name, err)
		}
		out.data[name] = v
	}
	return out, nil
}

// interpolate1D evaluates piecewise-linear interpolation of (x, y) at
// query. With nanOutside, points beyond the range of x become NaN;
// otherwise they clamp to the boundary values.
func interpolate1D(x, y, query []float64, nanOutside bool) ([]float64, error) {
	if len(x) != len(y) {
		return nil, &ShapeError{Key: "interpolant", Got: len(y), Want: len(x)}
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("interpolation needs at least 2 samples, got %d", len(x))
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(x, y); err != nil {
		return nil, err
	}
	lo, hi := x[0], x[len(x)-1]
	out := make([]float64, len(query))
	for i, q := range query {
		switch {
		case q < lo:
			if nanOutside {
				out[i] = math.NaN()
			} else {
				out[i] = y[0]
			}
		case q > hi:
			if nanOutside {
				out[i] = math.NaN()
			} else {
				out[i] = y[len(y)-1]
			}
		default:
			out[i] = pl.Predict(q)
		}
	}
	return out, nil
}

// Copy returns a deep copy of the cast.
func (c *Cast) Copy() *Cast {
	out := &Cast{
		primaryKey: c.primaryKey,
		fields:     make([]string, len(c.fields)),
		data:       make(map[string][]float64, len(c.data)),
		Properties: make(map[string]interface{}, len(c.Properties)),
	}
	copy(out.fields, c.fields)
	for name, v := range c.data {
		vc := make([]float64, len(v))
		copy(vc, v)
		out.data[name] = vc
	}
	for name, v := range c.Properties {
		out.Properties[name] = v
	}
	return out
}

// Equal reports whether two casts have the same fields in the same order,
// equal properties, and elementwise-equal data. NaN compares unequal, as in
// floating-point comparison generally.
func (c *Cast) Equal(other *Cast) bool {
	if other == nil || c.primaryKey != other.primaryKey ||
		len(c.fields) != len(other.fields) {
		return false
	}
	for i, name := range c.fields {
		if other.fields[i] != name {
			return false
		}
		a, b := c.data[name], other.data[name]
		if len(a) != len(b) {
			return false
		}
		for k := range a {
			if a[k] != b[k] {
				return false
			}
		}
	}
	if len(c.Properties) != len(other.Properties) {
		return false
	}
	for name, v := range c.Properties {
		w, ok := other.Properties[name]
		if !ok || !propertyEqual(v, w) {
			return false
		}
	}
	return true
}

// propertyEqual compares two property values, treating NaN as equal to NaN
// so that casts with unset coordinates or missing bottom depths still
// compare equal to their own copies.
func propertyEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && (av == bv || (math.IsNaN(av) && math.IsNaN(bv)))
	case geom.Point:
		bv, ok := b.(geom.Point)
		return ok && propertyEqual(av.X, bv.X) && propertyEqual(av.Y, bv.Y)
	}
	return reflect.DeepEqual(a, b)
}

// String summarizes the cast for display.
func (c *Cast) String() string {
	p := c.Coords()
	return fmt.Sprintf("cast (%s) at (%.3f, %.3f)",
		strings.Join(c.fields, ", "), p.X, p.Y)
}
