package transform

import (
	"fmt"
	"sort"
)

// Default parameters, matching the values the card assets were cleaned with.
const (
	DefaultBorderSize     = 10
	DefaultWhiteThreshold = 240
	DefaultMinRed         = 200
	DefaultMaxGreen       = 150
	DefaultMaxBlue        = 150
)

// LightGray is the replacement colour for red-to-gray.
var LightGray = Pixel{R: 211, G: 211, B: 211, A: 255}

// Variant names accepted by Lookup.
const (
	NameNormalizeAlpha         = "normalize-alpha"
	NameBorderToTransparent    = "border-to-transparent"
	NameNearWhiteToTransparent = "near-white-to-transparent"
	NameRedToGray              = "red-to-gray"
)

// RedRule selects "red" pixels: R > MinRed, G < MaxGreen and B < MaxBlue.
// Matching pixels become Target.
type RedRule struct {
	MinRed   uint8
	MaxGreen uint8
	MaxBlue  uint8
	Target   Pixel
}

// DefaultRedRule returns the rule used on the joker sprites.
func DefaultRedRule() RedRule {
	return RedRule{
		MinRed:   DefaultMinRed,
		MaxGreen: DefaultMaxGreen,
		MaxBlue:  DefaultMaxBlue,
		Target:   LightGray,
	}
}

// Params holds the fixed parameters of every variant.
type Params struct {
	BorderSize     int
	WhiteThreshold uint8
	Red            RedRule
}

// DefaultParams returns the parameters the original passes were run with.
func DefaultParams() Params {
	return Params{
		BorderSize:     DefaultBorderSize,
		WhiteThreshold: DefaultWhiteThreshold,
		Red:            DefaultRedRule(),
	}
}

// NormalizeAlpha returns the identity transform. Running it through a
// decode/encode cycle rewrites the file as plain 8-bit RGBA, dropping gamma
// and colour profile chunks.
func NormalizeAlpha() Func {
	return func(p Pixel, _, _, _, _ int) Pixel {
		return p
	}
}

// BorderToTransparent clears every pixel within border pixels of an edge.
//
// The left and top edges use x < border; the right and bottom edges use
// x > width-border, so with border=10 on a 100 pixel wide image columns 0-9
// and 91-99 are cleared. A border of half the image size or more clears the
// whole image.
func BorderToTransparent(border int) Func {
	return func(p Pixel, x, y, width, height int) Pixel {
		if x < border || x > width-border || y < border || y > height-border {
			return Transparent
		}
		return p
	}
}

// NearWhiteToTransparent clears pixels whose four channels all exceed
// threshold.
func NearWhiteToTransparent(threshold uint8) Func {
	return func(p Pixel, _, _, _, _ int) Pixel {
		if p.R > threshold && p.G > threshold && p.B > threshold && p.A > threshold {
			return Transparent
		}
		return p
	}
}

// RedToGray replaces pixels matched by rule with rule.Target.
func RedToGray(rule RedRule) Func {
	return func(p Pixel, _, _, _, _ int) Pixel {
		if p.R > rule.MinRed && p.G < rule.MaxGreen && p.B < rule.MaxBlue {
			return rule.Target
		}
		return p
	}
}

var registry = map[string]func(Params) Func{
	NameNormalizeAlpha: func(Params) Func {
		return NormalizeAlpha()
	},
	NameBorderToTransparent: func(p Params) Func {
		return BorderToTransparent(p.BorderSize)
	},
	NameNearWhiteToTransparent: func(p Params) Func {
		return NearWhiteToTransparent(p.WhiteThreshold)
	},
	NameRedToGray: func(p Params) Func {
		return RedToGray(p.Red)
	},
}

// Lookup builds the named variant from params.
func Lookup(name string, params Params) (Func, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return build(params), nil
}

// Names returns the registered variant names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
