package props

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jwebster45206/schematic-engine/pkg/geom"
)

var errOutOfRange = errors.New("value out of range")

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("not a number")
}

// toInt rounds fractional values half-to-even. Strings must hold an integer.
func toInt(v any) (int64, error) {
	switch n := v.(type) {
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}

	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errOutOfRange
	}
	return int64(math.RoundToEven(f)), nil
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(b))
	}

	f, err := toFloat(v)
	if err != nil {
		return false, fmt.Errorf("not a boolean")
	}
	return f != 0, nil
}

func toString(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case bool:
		return strconv.FormatBool(s), nil
	case map[string]any, []any:
		return "", fmt.Errorf("not a scalar")
	}

	if f, err := toFloat(v); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return fmt.Sprint(v), nil
}

func toVector2(v any) (geom.Vector2, error) {
	switch t := v.(type) {
	case geom.Vector2:
		return t, nil
	case string:
		return geom.ParseVector2(t)
	}

	f, err := components(v, "x", "y")
	if err != nil {
		return geom.Vector2{}, err
	}
	return geom.Vector2{X: f[0], Y: f[1]}, nil
}

func toVector3(v any) (geom.Vector3, error) {
	switch t := v.(type) {
	case geom.Vector3:
		return t, nil
	case string:
		return geom.ParseVector3(t)
	}

	f, err := components(v, "x", "y", "z")
	if err != nil {
		return geom.Vector3{}, err
	}
	return geom.Vector3{X: f[0], Y: f[1], Z: f[2]}, nil
}

// components reads a vector written as a list or as an {x,y,z} object.
func components(v any, axes ...string) ([]float32, error) {
	out := make([]float32, len(axes))

	switch t := normalize(v).(type) {
	case []any:
		if len(t) != len(axes) {
			return nil, fmt.Errorf("expected %d components, got %d", len(axes), len(t))
		}
		for i, c := range t {
			f, err := toFloat(c)
			if err != nil {
				return nil, fmt.Errorf("component %d: %w", i, err)
			}
			out[i] = float32(f)
		}
	case map[string]any:
		for i, axis := range axes {
			c, ok := t[axis]
			if !ok {
				c, ok = t[strings.ToUpper(axis)]
			}
			if !ok {
				return nil, fmt.Errorf("missing component %s", axis)
			}
			f, err := toFloat(c)
			if err != nil {
				return nil, fmt.Errorf("component %s: %w", axis, err)
			}
			out[i] = float32(f)
		}
	default:
		return nil, fmt.Errorf("not a vector")
	}
	return out, nil
}

// normalize rewrites maps with non-string keys, as produced by YAML
// decoders, into JSON-compatible maps.
func normalize(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	}
	return v
}
