// Package props provides typed access to the free-form property maps carried
// by schematic blocks.
//
// Required accessors fail with ErrMissingProperty when the key is absent.
// Every accessor fails with ErrCoercion when the key is present but its value
// cannot be read as the requested shape. Optional accessors (the ...Or
// variants) return the supplied default for absent keys but still report
// coercion failures.
package props

import (
	"encoding/json"
	"math"

	"github.com/jwebster45206/schematic-engine/pkg/geom"
)

// Bag is an untyped string-keyed property map.
type Bag map[string]any

// Integer is the set of integer kinds an enum or flag set may be backed by.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~uint8 | ~uint16 | ~uint32
}

// Has reports whether key is present, even when its value is null.
func (b Bag) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// Lookup returns the raw value for key.
func (b Bag) Lookup(key string) (any, bool) {
	v, ok := b[key]
	return v, ok
}

func (b Bag) Bool(key string) (bool, error) {
	v, ok := b[key]
	if !ok {
		return false, missing(key, "bool")
	}
	out, err := toBool(v)
	if err != nil {
		return false, coercion(key, "bool", v, err)
	}
	return out, nil
}

// BoolOr returns def when key is absent.
func (b Bag) BoolOr(key string, def bool) (bool, error) {
	if !b.Has(key) {
		return def, nil
	}
	return b.Bool(key)
}

func (b Bag) Int32(key string) (int32, error) {
	v, ok := b[key]
	if !ok {
		return 0, missing(key, "int32")
	}
	n, err := toInt(v)
	if err != nil {
		return 0, coercion(key, "int32", v, err)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, coercion(key, "int32", v, errOutOfRange)
	}
	return int32(n), nil
}

// Int32Or returns def when key is absent.
func (b Bag) Int32Or(key string, def int32) (int32, error) {
	if !b.Has(key) {
		return def, nil
	}
	return b.Int32(key)
}

// Uint8 reads a byte-sized value such as a flag mask.
func (b Bag) Uint8(key string) (uint8, error) {
	v, ok := b[key]
	if !ok {
		return 0, missing(key, "uint8")
	}
	n, err := toInt(v)
	if err != nil {
		return 0, coercion(key, "uint8", v, err)
	}
	if n < 0 || n > math.MaxUint8 {
		return 0, coercion(key, "uint8", v, errOutOfRange)
	}
	return uint8(n), nil
}

func (b Bag) Float32(key string) (float32, error) {
	v, ok := b[key]
	if !ok {
		return 0, missing(key, "float32")
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, coercion(key, "float32", v, err)
	}
	if math.Abs(f) > math.MaxFloat32 {
		return 0, coercion(key, "float32", v, errOutOfRange)
	}
	return float32(f), nil
}

// String formats any scalar value as text. A null value reads as "".
func (b Bag) String(key string) (string, error) {
	v, ok := b[key]
	if !ok {
		return "", missing(key, "string")
	}
	s, err := toString(v)
	if err != nil {
		return "", coercion(key, "string", v, err)
	}
	return s, nil
}

func (b Bag) Vector2(key string) (geom.Vector2, error) {
	v, ok := b[key]
	if !ok {
		return geom.Vector2{}, missing(key, "vector2")
	}
	out, err := toVector2(v)
	if err != nil {
		return geom.Vector2{}, coercion(key, "vector2", v, err)
	}
	return out, nil
}

func (b Bag) Vector3(key string) (geom.Vector3, error) {
	v, ok := b[key]
	if !ok {
		return geom.Vector3{}, missing(key, "vector3")
	}
	out, err := toVector3(v)
	if err != nil {
		return geom.Vector3{}, coercion(key, "vector3", v, err)
	}
	return out, nil
}

func (b Bag) Color(key string) (geom.Color, error) {
	v, ok := b[key]
	if !ok {
		return geom.Color{}, missing(key, "color")
	}
	s, err := toString(v)
	if err != nil {
		return geom.Color{}, coercion(key, "color", v, err)
	}
	c, err := geom.ParseColor(s)
	if err != nil {
		return geom.Color{}, coercion(key, "color", v, err)
	}
	return c, nil
}

// Decode re-encodes a nested value as JSON and decodes it into out, which
// must be a pointer. Used for structured fields such as locker chambers.
func (b Bag) Decode(key string, out any) error {
	v, ok := b[key]
	if !ok {
		return missing(key, "structure")
	}
	raw, err := json.Marshal(normalize(v))
	if err != nil {
		return coercion(key, "structure", v, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return coercion(key, "structure", v, err)
	}
	return nil
}

// Enum reads an integer-valued enum or flag set.
func Enum[E Integer](b Bag, key string) (E, error) {
	n, err := b.Int32(key)
	if err != nil {
		return 0, err
	}
	return E(n), nil
}

// EnumOr returns def when key is absent.
func EnumOr[E Integer](b Bag, key string, def E) (E, error) {
	if !b.Has(key) {
		return def, nil
	}
	return Enum[E](b, key)
}
