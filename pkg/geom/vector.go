package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// Vector2 is a 2D single-precision vector.
type Vector2 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Vector3 is a 3D single-precision vector.
type Vector3 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

var (
	Zero3 = Vector3{}
	One3  = Vector3{X: 1, Y: 1, Z: 1}
)

func (v Vector2) Scale(f float32) Vector2 {
	return Vector2{X: v.X * f, Y: v.Y * f}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector3) Scale(f float32) Vector3 {
	return Vector3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Mul multiplies component-wise.
func (v Vector3) Mul(o Vector3) Vector3 {
	return Vector3{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z}
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// ParseVector2 parses "x,y", optionally wrapped in parentheses.
func ParseVector2(s string) (Vector2, error) {
	f, err := parseComponents(s, 2)
	if err != nil {
		return Vector2{}, err
	}
	return Vector2{X: f[0], Y: f[1]}, nil
}

// ParseVector3 parses "x,y,z", optionally wrapped in parentheses.
func ParseVector3(s string) (Vector3, error) {
	f, err := parseComponents(s, 3)
	if err != nil {
		return Vector3{}, err
	}
	return Vector3{X: f[0], Y: f[1], Z: f[2]}, nil
}

func parseComponents(s string, n int) ([]float32, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	parts := strings.Split(trimmed, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d components in %q, got %d", n, s, len(parts))
	}

	out := make([]float32, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}
