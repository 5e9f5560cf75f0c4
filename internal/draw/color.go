package draw

import (
	"strconv"
	"strings"
)

// Color is a canvas pixel value. Off means the pixel is unset.
type Color uint8

const (
	Off Color = iota
	White
	Gray
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	Orange
)

// SGR sequences used outside the canvas.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorBrightCyan = "\033[96m"
	ColorDim        = "\033[2m"
)

// 256-color palette indices.
var palette = [...]int{
	White:   15,
	Gray:    245,
	Red:     196,
	Green:   46,
	Yellow:  226,
	Blue:    33,
	Magenta: 201,
	Cyan:    51,
	Orange:  208,
}

var colorNames = map[string]Color{
	"white":   White,
	"gray":    Gray,
	"grey":    Gray,
	"red":     Red,
	"green":   Green,
	"yellow":  Yellow,
	"blue":    Blue,
	"magenta": Magenta,
	"purple":  Magenta,
	"cyan":    Cyan,
	"orange":  Orange,
}

// ParseColor maps a color name to a palette entry. Unknown names are White.
func ParseColor(name string) Color {
	if c, ok := colorNames[strings.ToLower(name)]; ok {
		return c
	}
	return White
}

// fg appends the foreground SGR sequence for c.
func (c Color) fg(b *strings.Builder) {
	var num [4]byte
	b.WriteString("\033[38;5;")
	b.Write(strconv.AppendInt(num[:0], int64(palette[c]), 10))
	b.WriteByte('m')
}

// bg appends the background SGR sequence for c.
func (c Color) bg(b *strings.Builder) {
	var num [4]byte
	b.WriteString("\033[48;5;")
	b.Write(strconv.AppendInt(num[:0], int64(palette[c]), 10))
	b.WriteByte('m')
}
