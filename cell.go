// Package tuicore: Cell is the fundamental unit of the cell buffer (C1) —
// a single terminal "pixel" holding a character and its styling attributes.
package tuicore

import "github.com/lucasb-eyer/go-colorful"

// Color represents terminal colors using a compact uint8 representation.
// Values 0-9 are named colors, 10-17 are their bright variants. RGB colors
// use a separate type and are carried alongside via *RGB.
type Color uint8

const (
	ColorNone    Color = iota // No color set (transparent)
	ColorDefault              // Terminal default
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// NameToColor converts a string color name to Color.
var NameToColor = map[string]Color{
	"default":      ColorDefault,
	"black":        ColorBlack,
	"red":          ColorRed,
	"green":        ColorGreen,
	"yellow":       ColorYellow,
	"blue":         ColorBlue,
	"magenta":      ColorMagenta,
	"cyan":         ColorCyan,
	"white":        ColorWhite,
	"brightBlack":  ColorBrightBlack,
	"brightRed":    ColorBrightRed,
	"brightGreen":  ColorBrightGreen,
	"brightYellow": ColorBrightYellow,
	"brightBlue":   ColorBrightBlue,
	"brightMagenta": ColorBrightMagenta,
	"brightCyan":   ColorBrightCyan,
	"brightWhite":  ColorBrightWhite,
}

// namedPalette maps each named Color to its approximate RGB value, used to
// find the nearest named color when downgrading truecolor output for a
// terminal that does not advertise 24-bit support.
var namedPalette = map[Color]RGB{
	ColorBlack:         {0, 0, 0},
	ColorRed:           {205, 0, 0},
	ColorGreen:         {0, 205, 0},
	ColorYellow:        {205, 205, 0},
	ColorBlue:          {0, 0, 238},
	ColorMagenta:       {205, 0, 205},
	ColorCyan:          {0, 205, 205},
	ColorWhite:         {229, 229, 229},
	ColorBrightBlack:   {127, 127, 127},
	ColorBrightRed:     {255, 0, 0},
	ColorBrightGreen:   {0, 255, 0},
	ColorBrightYellow:  {255, 255, 0},
	ColorBrightBlue:    {92, 92, 255},
	ColorBrightMagenta: {255, 0, 255},
	ColorBrightCyan:    {0, 255, 255},
	ColorBrightWhite:   {255, 255, 255},
}

// RGB represents a 24-bit true color.
type RGB struct {
	R, G, B uint8
}

// NearestNamed returns the named Color whose palette entry is closest to rgb
// in CIE Lab space, for terminals without truecolor support.
func (c RGB) NearestNamed() Color {
	target, _ := colorful.MakeColor(byteColor{c})
	best := ColorWhite
	bestDist := -1.0
	for name, rgb := range namedPalette {
		cand, _ := colorful.MakeColor(byteColor{rgb})
		d := target.DistanceLab(cand)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = name
		}
	}
	return best
}

// byteColor adapts RGB to the color.Color interface go-colorful expects.
type byteColor struct{ rgb RGB }

func (b byteColor) RGBA() (r, g, b2, a uint32) {
	r = uint32(b.rgb.R) * 0x101
	g = uint32(b.rgb.G) * 0x101
	b2 = uint32(b.rgb.B) * 0x101
	a = 0xffff
	return
}

// Style holds visual (paintable) styling attributes for a cell or a span of
// text: colors, text attributes, and an optional hyperlink target.
// Layout-affecting style (flex/padding/border/...) lives in Props instead —
// see layout.go's Get*Prop helpers — keeping "paint" style separate from
// "box model" props.
type Style struct {
	Color         Color
	Background    Color
	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Inverse       bool
	Strikethrough bool
	ColorRGB      *RGB
	BackgroundRGB *RGB
	HyperlinkURL  string
}

// Cell represents a single "pixel" in the terminal: a character plus style.
type Cell struct {
	Char  rune
	Style Style
	// Continuation marks the second cell of a wide (width-2) glyph.
	Continuation bool
}

// EmptyStyle is a Style with no attributes set.
var EmptyStyle = Style{}

// EmptyCell is a Cell with a space character and no styling.
var EmptyCell = Cell{Char: ' ', Style: EmptyStyle}

// New creates a new Cell with the given character and style.
func New(char rune, style Style) Cell {
	return Cell{Char: char, Style: style}
}

// Equal returns true if two Cells are identical.
func (a Cell) Equal(b Cell) bool {
	if a.Char != b.Char || a.Continuation != b.Continuation {
		return false
	}
	return a.Style.Equal(b.Style)
}

// Equal returns true if two Styles are identical.
func (a Style) Equal(b Style) bool {
	if a.Color != b.Color || a.Background != b.Background {
		return false
	}
	if a.Bold != b.Bold || a.Dim != b.Dim || a.Italic != b.Italic ||
		a.Underline != b.Underline || a.Inverse != b.Inverse ||
		a.Strikethrough != b.Strikethrough {
		return false
	}
	if a.HyperlinkURL != b.HyperlinkURL {
		return false
	}
	if !rgbEqual(a.ColorRGB, b.ColorRGB) {
		return false
	}
	return rgbEqual(a.BackgroundRGB, b.BackgroundRGB)
}

func rgbEqual(a, b *RGB) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.R == b.R && a.G == b.G && a.B == b.B
}

// HasColor returns true if the style has a foreground color set.
func (s Style) HasColor() bool {
	return s.Color != ColorNone || s.ColorRGB != nil
}

// HasBackground returns true if the style has a background color set.
func (s Style) HasBackground() bool {
	return s.Background != ColorNone || s.BackgroundRGB != nil
}

// Merge creates a new Style by combining two styles. The overlay style
// takes precedence for non-zero values.
func (base Style) Merge(overlay Style) Style {
	result := base

	if overlay.Color != ColorNone {
		result.Color = overlay.Color
		result.ColorRGB = overlay.ColorRGB
	}
	if overlay.Background != ColorNone {
		result.Background = overlay.Background
		result.BackgroundRGB = overlay.BackgroundRGB
	}
	if overlay.Bold {
		result.Bold = true
	}
	if overlay.Dim {
		result.Dim = true
	}
	if overlay.Italic {
		result.Italic = true
	}
	if overlay.Underline {
		result.Underline = true
	}
	if overlay.Inverse {
		result.Inverse = true
	}
	if overlay.Strikethrough {
		result.Strikethrough = true
	}
	if overlay.HyperlinkURL != "" {
		result.HyperlinkURL = overlay.HyperlinkURL
	}

	return result
}
