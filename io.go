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
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/ctessum/geom"
)

// Record type discriminators.
const (
	TypeCast           = "cast"
	TypeCTDCast        = "ctdcast"
	TypeXBTCast        = "xbtcast"
	TypeLADCPCast      = "ladcpcast"
	TypeCastCollection = "castcollection"
)

// Vector is a JSON-encodable measurement vector in which NaN round-trips
// as null. Infinities are also encoded as null, since JSON has no
// representation for them, and so decode as NaN: only finite and NaN
// samples round-trip exactly.
type Vector []float64

// MarshalJSON implements json.Marshaler.
func (v Vector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			buf.WriteString("null")
		} else {
			b, err := json.Marshal(x)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Vector, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *p
		}
	}
	*v = out
	return nil
}

// Record is the structured, type-discriminated representation of a cast or
// collection, the interchange format between the core and external
// serialization collaborators.
type Record struct {
	Type       string                 `json:"type"`
	PrimaryKey string                 `json:"primarykey,omitempty"`
	Fields     []string               `json:"fields,omitempty"`
	Data       map[string]Vector      `json:"data,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Casts      []*Record              `json:"casts,omitempty"`
}

// Record decomposes the cast into its structured representation.
func (c *Cast) Record() *Record {
	r := &Record{
		Type:       TypeCast,
		PrimaryKey: c.primaryKey,
		Fields:     c.Fields(),
		Data:       make(map[string]Vector, len(c.data)),
		Properties: make(map[string]interface{}, len(c.Properties)),
	}
	for name, v := range c.data {
		r.Data[name] = Vector(v)
	}
	for name, v := range c.Properties {
		r.Properties[name] = encodeProperty(v)
	}
	return r
}

// Record decomposes the cast, tagging it as a CTD cast.
func (c *CTDCast) Record() *Record {
	r := c.Cast.Record()
	r.Type = TypeCTDCast
	return r
}

// Record decomposes the cast, tagging it as an XBT cast.
func (c *XBTCast) Record() *Record {
	r := c.Cast.Record()
	r.Type = TypeXBTCast
	return r
}

// Record decomposes the cast, tagging it as an LADCP cast.
func (c *LADCPCast) Record() *Record {
	r := c.Cast.Record()
	r.Type = TypeLADCPCast
	return r
}

// Record decomposes the collection and its casts.
func (cc *CastCollection) Record() *Record {
	r := &Record{Type: TypeCastCollection}
	for _, c := range cc.casts {
		r.Casts = append(r.Casts, recordOf(c))
	}
	return r
}

func recordOf(c Caster) *Record {
	switch v := c.(type) {
	case *CTDCast:
		return v.Record()
	case *XBTCast:
		return v.Record()
	case *LADCPCast:
		return v.Record()
	default:
		return c.Core().Record()
	}
}

// encodeProperty converts property values into JSON-friendly forms:
// coordinates become a [lon, lat] pair and non-finite numbers become nil.
func encodeProperty(v interface{}) interface{} {
	switch x := v.(type) {
	case geom.Point:
		return []interface{}{encodeProperty(x.X), encodeProperty(x.Y)}
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
	}
	return v
}

// decodeProperty is the inverse of encodeProperty for scalar properties.
func decodeProperty(v interface{}) interface{} {
	if v == nil {
		return math.NaN()
	}
	return v
}

// decodeCoordinates parses a [lon, lat] property pair.
func decodeCoordinates(v interface{}) (geom.Point, error) {
	pair, ok := v.([]interface{})
	if !ok || len(pair) != 2 {
		return geom.Point{}, fmt.Errorf("coordinates property must be a [lon, lat] pair, got %#v", v)
	}
	var out [2]float64
	for i, e := range pair {
		if e == nil {
			out[i] = math.NaN()
			continue
		}
		f, ok := e.(float64)
		if !ok {
			return geom.Point{}, fmt.Errorf("coordinate %d must be a number, got %#v", i, e)
		}
		out[i] = f
	}
	return geom.Point{X: out[0], Y: out[1]}, nil
}

// FromRecord reconstructs the in-memory entity a record describes. The
// concrete return type is *Cast, *CTDCast, *XBTCast, *LADCPCast, or
// *CastCollection according to the record's type discriminator. A record
// without a discriminator yields ErrCorruptRecord; an unrecognized
// discriminator yields an UnknownTypeError.
func FromRecord(r *Record) (interface{}, error) {
	switch r.Type {
	case "":
		return nil, ErrCorruptRecord
	case TypeCastCollection:
		cc := NewCastCollection()
		for i, cr := range r.Casts {
			e, err := FromRecord(cr)
			if err != nil {
				return nil, fmt.Errorf("oceancast: cast %d: %w", i, err)
			}
			c, ok := e.(Caster)
			if !ok {
				return nil, fmt.Errorf("oceancast: cast %d: collections cannot nest", i)
			}
			cc.Append(c)
		}
		return cc, nil
	case TypeCast, TypeCTDCast, TypeXBTCast, TypeLADCPCast:
		return castFromRecord(r)
	default:
		return nil, &UnknownTypeError{Type: r.Type}
	}
}

func castFromRecord(r *Record) (interface{}, error) {
	if r.PrimaryKey == "" {
		return nil, ErrCorruptRecord
	}
	p, ok := r.Data[r.PrimaryKey]
	if !ok {
		return nil, fmt.Errorf("oceancast: record data is missing its primary key %q: %w", r.PrimaryKey, ErrCorruptRecord)
	}

	var opts []CastOption
	fields := r.Fields
	if len(fields) == 0 {
		for name := range r.Data {
			fields = append(fields, name)
		}
	}
	required := requiredFields(r.Type)
	for _, name := range fields {
		if name == r.PrimaryKey || required[name] {
			continue
		}
		v, ok := r.Data[name]
		if !ok {
			return nil, fmt.Errorf("oceancast: record field %q has no data: %w", name, ErrCorruptRecord)
		}
		opts = append(opts, Field(name, v))
	}
	for name, v := range r.Properties {
		if name == CoordinatesKey {
			pt, err := decodeCoordinates(v)
			if err != nil {
				return nil, fmt.Errorf("oceancast: %v: %w", err, ErrCorruptRecord)
			}
			opts = append(opts, Coordinates(pt.X, pt.Y))
			continue
		}
		opts = append(opts, Property(name, decodeProperty(v)))
	}

	get := func(name string) (Vector, error) {
		v, ok := r.Data[name]
		if !ok {
			return nil, fmt.Errorf("oceancast: %s record is missing field %q: %w", r.Type, name, ErrCorruptRecord)
		}
		return v, nil
	}
	switch r.Type {
	case TypeCTDCast:
		sal, err := get(SalinityKey)
		if err != nil {
			return nil, err
		}
		temp, err := get(TemperatureKey)
		if err != nil {
			return nil, err
		}
		return NewCTDCast(p, sal, temp, opts...)
	case TypeXBTCast:
		temp, err := get(TemperatureKey)
		if err != nil {
			return nil, err
		}
		return NewXBTCast(p, temp, opts...)
	case TypeLADCPCast:
		u, err := get(EastVelKey)
		if err != nil {
			return nil, err
		}
		v, err := get(NorthVelKey)
		if err != nil {
			return nil, err
		}
		return NewLADCPCast(p, u, v, opts...)
	default:
		return NewCast(r.PrimaryKey, p, opts...)
	}
}

// requiredFields lists the fields a variant constructor consumes directly,
// so they are not added twice.
func requiredFields(typ string) map[string]bool {
	switch typ {
	case TypeCTDCast:
		return map[string]bool{SalinityKey: true, TemperatureKey: true}
	case TypeXBTCast:
		return map[string]bool{TemperatureKey: true}
	case TypeLADCPCast:
		return map[string]bool{EastVelKey: true, NorthVelKey: true}
	}
	return map[string]bool{}
}

// Write encodes a record as JSON to w, gzip-compressed when gzipped is set.
func Write(w io.Writer, r *Record, gzipped bool) error {
	if gzipped {
		zw := gzip.NewWriter(w)
		if err := json.NewEncoder(zw).Encode(r); err != nil {
			return fmt.Errorf("oceancast: encoding record: %w", err)
		}
		return zw.Close()
	}
	if err := json.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("oceancast: encoding record: %w", err)
	}
	return nil
}

// WriteCast encodes a cast to w.
func WriteCast(w io.Writer, c Caster, gzipped bool) error {
	return Write(w, recordOf(c), gzipped)
}

// WriteCastCollection encodes a collection to w.
func WriteCastCollection(w io.Writer, cc *CastCollection, gzipped bool) error {
	return Write(w, cc.Record(), gzipped)
}

// Read decodes a JSON record from r, transparently detecting gzip
// compression, and reconstructs the entity it describes (see FromRecord).
func Read(r io.Reader) (interface{}, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("oceancast: reading record: %w", err)
	}
	var src io.Reader = br
	if magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("oceancast: reading record: %w", err)
		}
		defer zr.Close()
		src = zr
	}
	var rec Record
	if err := json.NewDecoder(src).Decode(&rec); err != nil {
		return nil, fmt.Errorf("oceancast: decoding record: %w", err)
	}
	return FromRecord(&rec)
}

// ReadCast decodes a single cast (of any variant) from r.
func ReadCast(r io.Reader) (Caster, error) {
	e, err := Read(r)
	if err != nil {
		return nil, err
	}
	c, ok := e.(Caster)
	if !ok {
		return nil, fmt.Errorf("oceancast: record holds a %T, not a cast", e)
	}
	return c, nil
}

// ReadCastCollection decodes a cast collection from r.
func ReadCastCollection(r io.Reader) (*CastCollection, error) {
	e, err := Read(r)
	if err != nil {
		return nil, err
	}
	cc, ok := e.(*CastCollection)
	if !ok {
		return nil, fmt.Errorf("oceancast: record holds a %T, not a cast collection", e)
	}
	return cc, nil
}
