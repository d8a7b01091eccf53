package tetris

import "image/color"

// Color is a packed 0xAARRGGBB value.
type Color uint32

// IntenseShade is the flat gray used for locked cells while intense mode is on.
const IntenseShade Color = 0xff2d2d2d

// NRGBA unpacks c for image and ebiten consumers.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: uint8(c >> 24),
	}
}

// RGB returns c without its alpha channel.
func (c Color) RGB() int32 {
	return int32(c & 0xffffff)
}

// Palette is the color set active for a level. HueLow and HueHigh bound the
// hue range of intense-mode background effects.
type Palette struct {
	Pieces  [3]Color
	HueLow  int
	HueHigh int
}

var palettes = [5]Palette{
	{Pieces: [3]Color{0xfff44141, 0xfff4a941, 0xfff4e541}, HueLow: 0, HueHigh: 35},
	{Pieces: [3]Color{0xffa3f441, 0xff4192f4, 0xff42f4c2}, HueLow: 100, HueHigh: 140},
	{Pieces: [3]Color{0xff9141f4, 0xfff441d3, 0xfff44167}, HueLow: 190, HueHigh: 240},
	{Pieces: [3]Color{0xffeff2f7, 0xffc43131, 0xffffa530}, HueLow: 5, HueHigh: 20},
	{Pieces: [3]Color{0xffaff441, 0xffebf441, 0xfff49b42}, HueLow: 20, HueHigh: 50},
}

// kindSlot maps each kind onto one of the three palette colors.
var kindSlot = [KindCount]int{
	I: 0, O: 0, T: 0,
	L: 1, Z: 1,
	J: 2, S: 2,
}

// PaletteFor returns the palette for level, cycling every five levels.
func PaletteFor(level int) Palette {
	if level < 0 {
		level = 0
	}
	return palettes[level%len(palettes)]
}

// ColorOf returns the color a piece of kind k takes in p.
func (p Palette) ColorOf(k Kind) Color {
	if !k.Valid() {
		return p.Pieces[0]
	}
	return p.Pieces[kindSlot[k]]
}
