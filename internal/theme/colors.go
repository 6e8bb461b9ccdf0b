package theme

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the 16 colour CGA/EGA palette, by name
var Palette = map[string]string{
	"black":         "#000000",
	"blue":          "#0000AA",
	"green":         "#00AA00",
	"cyan":          "#00AAAA",
	"red":           "#AA0000",
	"magenta":       "#AA00AA",
	"brown":         "#AA5500",
	"light_gray":    "#AAAAAA",
	"dark_gray":     "#555555",
	"light_blue":    "#5555FF",
	"light_green":   "#55FF55",
	"light_cyan":    "#55FFFF",
	"light_red":     "#FF5555",
	"light_magenta": "#FF55FF",
	"yellow":        "#FFFF55",
	"white":         "#FFFFFF",
}

// CGA returns the named palette colour, or tcell.ColorDefault for an unknown name
func CGA(name string) tcell.Color {
	hex, ok := Palette[name]
	if !ok {
		return tcell.ColorDefault
	}
	return HexToColor(hex)
}

// HexToColor converts a hex color string (#RRGGBB or #RGB) to tcell.Color
func HexToColor(hexColor string) tcell.Color {
	hexColor = strings.TrimPrefix(hexColor, "#")

	if len(hexColor) == 3 {
		hexColor = string(hexColor[0]) + string(hexColor[0]) +
			string(hexColor[1]) + string(hexColor[1]) +
			string(hexColor[2]) + string(hexColor[2])
	}
	if len(hexColor) != 6 {
		return tcell.ColorDefault
	}

	c, err := colorful.Hex("#" + strings.ToLower(hexColor))
	if err != nil {
		return tcell.ColorDefault
	}

	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// RGBToColor converts RGB values to tcell.Color
func RGBToColor(r, g, b int) tcell.Color {
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ParseColorString handles palette names, #RRGGBB, #RGB and rgb(r,g,b)
func ParseColorString(colorStr string) tcell.Color {
	colorStr = strings.TrimSpace(colorStr)

	if _, ok := Palette[strings.ToLower(colorStr)]; ok {
		return CGA(strings.ToLower(colorStr))
	}

	if strings.HasPrefix(colorStr, "#") {
		return HexToColor(colorStr)
	}

	if strings.HasPrefix(colorStr, "rgb(") && strings.HasSuffix(colorStr, ")") {
		innerStr := strings.TrimSuffix(strings.TrimPrefix(colorStr, "rgb("), ")")
		parts := strings.Split(innerStr, ",")
		if len(parts) != 3 {
			return tcell.ColorDefault
		}

		r, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		g, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		b, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 == nil && err2 == nil && err3 == nil {
			return RGBToColor(r, g, b)
		}
	}

	return tcell.ColorDefault
}

// ColorPairToStyle creates a style with specific foreground and background colors
func ColorPairToStyle(fgColor, bgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor).Background(bgColor)
}
