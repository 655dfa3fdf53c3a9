// Package vexterm implements the protocol core of a terminal emulator:
// an ANSI/VT escape-sequence parser and a screen-buffer renderer.
//
// This package contains:
//   - Color and cell types
//   - A fixed 256-entry color palette
//   - The escape-sequence parser (bytes in, Commands out)
//   - The terminal renderer (Commands in, grid + dirty regions out)
//   - A Session that wires both to a PTY-backed child process
//
// Display frontends (the cli subpackage, or anything else that can draw a
// character grid) consume the renderer's screen content once per frame and
// never mutate it.
package vexterm

// ColorType indicates how a color was specified
type ColorType uint8

const (
	ColorTypeDefault   ColorType = iota // Terminal default fg/bg (SGR 39/49)
	ColorTypeNamed                      // Standard 16 ANSI colors (0-15)
	ColorTypeIndex                      // 256-color palette index (0-255)
	ColorTypeTrueColor                  // 24-bit RGB
)

// Color represents a terminal color with its original specification
// preserved. Named and Index colors keep their index so a frontend can
// re-resolve them against its own palette. Default is a sentinel with no
// meaningful RGB of its own; consumers must special-case it.
type Color struct {
	Type    ColorType
	Index   uint8 // For Named (0-15) or Index (0-255)
	R, G, B uint8 // For TrueColor, or resolved RGB for display
}

// RGB holds just the red, green, blue components (used internally)
type RGB struct {
	R, G, B uint8
}

// Sentinel default colors. The RGB carried here is only a rendering hint;
// IsDefault is the authoritative test.
var (
	DefaultForeground = Color{Type: ColorTypeDefault, R: 212, G: 212, B: 212}
	DefaultBackground = Color{Type: ColorTypeDefault, R: 30, G: 30, B: 30}
)

// NamedColor creates a standard 16-color ANSI color (index 0-15)
func NamedColor(index int) Color {
	if index < 0 || index > 15 {
		index = 7 // Default to white
	}
	rgb := ansiColorsRGB[index]
	return Color{Type: ColorTypeNamed, Index: uint8(index), R: rgb.R, G: rgb.G, B: rgb.B}
}

// IndexColor creates a 256-color palette color (index 0-255)
func IndexColor(index int) Color {
	if index < 0 || index > 255 {
		index = 7
	}
	rgb := indexRGB(index)
	return Color{Type: ColorTypeIndex, Index: uint8(index), R: rgb.R, G: rgb.G, B: rgb.B}
}

// TrueColor creates a 24-bit true color
func TrueColor(r, g, b uint8) Color {
	return Color{Type: ColorTypeTrueColor, R: r, G: g, B: b}
}

// IsDefault returns true if this is the default fg/bg sentinel
func (c Color) IsDefault() bool {
	return c.Type == ColorTypeDefault
}

// ToIndex returns the palette index for named/indexed colors, or -1 for
// true color and the default sentinel.
func (c Color) ToIndex() int {
	switch c.Type {
	case ColorTypeNamed, ColorTypeIndex:
		return int(c.Index)
	default:
		return -1
	}
}

// ToSGRCode returns the SGR parameter string that reproduces this color
// (foreground form if isFg is true).
func (c Color) ToSGRCode(isFg bool) string {
	switch c.Type {
	case ColorTypeDefault:
		if isFg {
			return "39"
		}
		return "49"
	case ColorTypeNamed:
		idx := int(c.Index)
		if idx < 8 {
			if isFg {
				return itoa(30 + idx)
			}
			return itoa(40 + idx)
		}
		if isFg {
			return itoa(90 + idx - 8)
		}
		return itoa(100 + idx - 8)
	case ColorTypeIndex:
		if isFg {
			return "38;5;" + itoa(int(c.Index))
		}
		return "48;5;" + itoa(int(c.Index))
	case ColorTypeTrueColor:
		if isFg {
			return "38;2;" + itoa(int(c.R)) + ";" + itoa(int(c.G)) + ";" + itoa(int(c.B))
		}
		return "48;2;" + itoa(int(c.R)) + ";" + itoa(int(c.G)) + ";" + itoa(int(c.B))
	}
	return ""
}

// ToHex returns the color as a hex string like "#RRGGBB"
func (c Color) ToHex() string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

func hexByte(b uint8) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[b>>4], hex[b&0x0F]})
}

// itoa is a simple int to string conversion
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	if i < 0 {
		return "-" + itoa(-i)
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}
