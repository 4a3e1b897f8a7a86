package layout

// RGB is a front-end neutral colour
type RGB struct {
	R, G, B uint8
}

// Palette is one theme's colours
type Palette struct {
	Background RGB
	Board      RGB
	Head       RGB
	Body       RGB
	Food       RGB
	Border     RGB
	BorderOver RGB
	Text       RGB
	Muted      RGB
	Title      RGB
	Score      RGB
	Overlay    RGB
	Button     RGB
}

var (
	Light = Palette{
		Background: RGB{0xF3, 0xF4, 0xF6},
		Board:      RGB{0xD1, 0xD5, 0xDB},
		Head:       RGB{0x22, 0xC5, 0x5E},
		Body:       RGB{0x15, 0x80, 0x3D},
		Food:       RGB{0xEF, 0x44, 0x44},
		Border:     RGB{0x05, 0x96, 0x69},
		BorderOver: RGB{0xDC, 0x26, 0x26},
		Text:       RGB{0x1E, 0x29, 0x3B},
		Muted:      RGB{0x47, 0x55, 0x69},
		Title:      RGB{0x05, 0x96, 0x69},
		Score:      RGB{0xEA, 0xB3, 0x08},
		Overlay:    RGB{0xF8, 0xFA, 0xFC},
		Button:     RGB{0xCB, 0xD5, 0xE1},
	}
	Dark = Palette{
		Background: RGB{0x1F, 0x29, 0x37},
		Board:      RGB{0x37, 0x41, 0x51},
		Head:       RGB{0x4A, 0xDE, 0x80},
		Body:       RGB{0x16, 0xA3, 0x4A},
		Food:       RGB{0xF8, 0x71, 0x71},
		Border:     RGB{0x10, 0xB9, 0x81},
		BorderOver: RGB{0xEF, 0x44, 0x44},
		Text:       RGB{0xF3, 0xF4, 0xF6},
		Muted:      RGB{0x9C, 0xA3, 0xAF},
		Title:      RGB{0x34, 0xD3, 0x99},
		Score:      RGB{0xFA, 0xCC, 0x15},
		Overlay:    RGB{0x11, 0x18, 0x27},
		Button:     RGB{0x33, 0x41, 0x55},
	}
)

// Theme returns the palette for "dark", anything else is light
func Theme(name string) Palette {
	if name == "dark" {
		return Dark
	}
	return Light
}

// Toggle flips between the two theme names
func Toggle(name string) string {
	if name == "dark" {
		return "light"
	}
	return "dark"
}
