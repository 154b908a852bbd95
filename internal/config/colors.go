package config

import (
	"fmt"

	"github.com/derailed/tcell/v2"
)

// Color represents a color in the application
type Color string

const (
	// DefaultColor represents a default color
	DefaultColor Color = "default"

	// TransparentColor represents the terminal bg color
	TransparentColor Color = "-"
)

// NewColor returns a new color
func NewColor(c string) Color {
	return Color(c)
}

// String returns color as string
func (c Color) String() string {
	if c.isHex() {
		return string(c)
	}
	if c == DefaultColor || c == TransparentColor {
		return "-"
	}
	col := c.Color().TrueColor().Hex()
	if col < 0 {
		return "-"
	}
	return fmt.Sprintf("#%06x", col)
}

func (c Color) isHex() bool {
	return len(c) == 7 && c[0] == '#'
}

// Color returns a view color
func (c Color) Color() tcell.Color {
	if c == DefaultColor || c == TransparentColor || c == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(string(c)).TrueColor()
}

// BodyColors defines the screen background and text
type BodyColors struct {
	FgColor Color `yaml:"fgColor"`
	BgColor Color `yaml:"bgColor"`
}

// FrameColors defines colors for borders and titles
type FrameColors struct {
	BorderColor Color `yaml:"borderColor"`
	TitleColor  Color `yaml:"titleColor"`
}

// MenuColors defines colors of menu entries
type MenuColors struct {
	FgColor          Color `yaml:"fgColor"`
	HighlightFgColor Color `yaml:"highlightFgColor"`
	HighlightBgColor Color `yaml:"highlightBgColor"`
	CursorColor      Color `yaml:"cursorColor"`
	SeparatorColor   Color `yaml:"separatorColor"`
}

// ColorsConfig defines the complete color configuration
type ColorsConfig struct {
	Body  BodyColors  `yaml:"body"`
	Frame FrameColors `yaml:"frame"`
	Menu  MenuColors  `yaml:"menu"`
}

// DefaultColors returns the classic blue/yellow menu look
func DefaultColors() *ColorsConfig {
	return &ColorsConfig{
		Body: BodyColors{
			FgColor: DefaultColor,
			BgColor: DefaultColor,
		},
		Frame: FrameColors{
			BorderColor: NewColor("blue"),
			TitleColor:  NewColor("white"),
		},
		Menu: MenuColors{
			FgColor:          DefaultColor,
			HighlightFgColor: NewColor("yellow"),
			HighlightBgColor: NewColor("blue"),
			CursorColor:      NewColor("blue"),
			SeparatorColor:   NewColor("gray"),
		},
	}
}
