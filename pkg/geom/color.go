package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with channels in [0,1].
type Color struct {
	R, G, B, A float32
}

var namedColors = map[string]Color{
	"red":       {1, 0, 0, 1},
	"cyan":      {0, 1, 1, 1},
	"blue":      {0, 0, 1, 1},
	"darkblue":  {0, 0, 0.545, 1},
	"lightblue": {0.678, 0.847, 0.902, 1},
	"purple":    {0.5, 0, 0.5, 1},
	"yellow":    {1, 1, 0, 1},
	"lime":      {0, 1, 0, 1},
	"fuchsia":   {1, 0, 1, 1},
	"magenta":   {1, 0, 1, 1},
	"white":     {1, 1, 1, 1},
	"silver":    {0.753, 0.753, 0.753, 1},
	"grey":      {0.5, 0.5, 0.5, 1},
	"gray":      {0.5, 0.5, 0.5, 1},
	"black":     {0, 0, 0, 1},
	"orange":    {1, 0.647, 0, 1},
	"brown":     {0.647, 0.165, 0.165, 1},
	"maroon":    {0.5, 0, 0, 1},
	"green":     {0, 0.5, 0, 1},
	"olive":     {0.5, 0.5, 0, 1},
	"navy":      {0, 0, 0.5, 1},
	"teal":      {0, 0.5, 0.5, 1},
	"aqua":      {0, 1, 1, 1},
}

// ParseColor accepts "r:g:b:a" channel lists, HTML hex ("#RRGGBB",
// "#RRGGBBAA", "RRGGBB") and a small set of color names.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}

	if strings.Contains(s, ":") {
		return parseChannels(s)
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	return parseHex(s)
}

func parseChannels(s string) (Color, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("color %q: expected 3 or 4 channels", s)
	}

	ch := [4]float32{0, 0, 0, 1}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return Color{}, fmt.Errorf("color %q channel %d: %w", s, i, err)
		}
		ch[i] = float32(f)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// parseHex reads the RGB part with go-colorful and an optional trailing
// alpha byte.
func parseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: unrecognized format", s)
	}

	rgb, err := colorful.Hex("#" + hex[:6])
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	alpha := uint64(0xff)
	if len(hex) == 8 {
		alpha, err = strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q alpha: %w", s, err)
		}
	}
	return Color{
		R: float32(rgb.R),
		G: float32(rgb.G),
		B: float32(rgb.B),
		A: float32(alpha) / 255,
	}, nil
}
