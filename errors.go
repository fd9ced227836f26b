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
	"fmt"
)

// KeyNotFoundError is returned when a field or property lookup fails.
type KeyNotFoundError struct {
	Key string
	// Collection is set when the key was required in every cast of a
	// collection but was missing from at least one.
	Collection bool
}

func (e *KeyNotFoundError) Error() string {
	if e.Collection {
		return fmt.Sprintf("key %q not found in all casts", e.Key)
	}
	return fmt.Sprintf("key %q not found", e.Key)
}

// ShapeError is returned when a vector's length does not match the cast
// length (or another required length).
type ShapeError struct {
	Key       string
	Got, Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("vector %q has length %d, want %d", e.Key, e.Got, e.Want)
}

// NonMonotonicError is returned when an interpolation reference axis is not
// strictly increasing and coercion was not requested.
type NonMonotonicError struct {
	Key string
}

func (e *NonMonotonicError) Error() string {
	return fmt.Sprintf("field %q is not strictly monotonic", e.Key)
}

// UnknownTypeError is returned when a record carries a type discriminator
// that does not correspond to any cast or collection type.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown record type %q", e.Type)
}

// ErrCorruptRecord indicates a record with no type discriminator; the data
// may be corrupt or not an OceanCast record at all.
var ErrCorruptRecord = errors.New("record has no type discriminator; data may be corrupt")

// ErrNonUniformGrid indicates that an operation requiring uniform vertical
// grid spacing was given an irregular grid.
var ErrNonUniformGrid = errors.New("vertical grid spacing is not uniform")
