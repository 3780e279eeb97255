package terminal

import "github.com/gdamore/tcell/v2"

// ColorID identifies an ink or paper slot in a Palette
type ColorID uint8

// Standard slots
const (
	ColorDefault ColorID = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// Semantic slots, redefined from configuration
const (
	ColorText ColorID = iota + 16
	ColorPaper
	ColorGutter
	ColorGutterPaper
	ColorStatus
	ColorStatusPaper
	ColorDialog
	ColorDialogPaper
	ColorHighlight
	ColorHighlightPaper
	ColorError
)

// Attr is a bitmask of text attributes applied on top of a color pair
type Attr uint8

const (
	AttrNone    Attr = 0
	AttrBold    Attr = 1 << 0
	AttrDim     Attr = 1 << 1
	AttrReverse Attr = 1 << 2
	AttrUnderln Attr = 1 << 3
)

// Apply returns st with the attributes in a switched on
func (a Attr) Apply(st tcell.Style) tcell.Style {
	if a&AttrBold != 0 {
		st = st.Bold(true)
	}
	if a&AttrDim != 0 {
		st = st.Dim(true)
	}
	if a&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if a&AttrUnderln != 0 {
		st = st.Underline(true)
	}
	return st
}

type pairKey struct {
	ink, paper ColorID
}

// Palette is the color-pair table for one screen
// Pairs are allocated lazily on first use and cached until a slot is redefined
type Palette struct {
	colors map[ColorID]tcell.Color
	pairs  map[pairKey]tcell.Style
}

// NewPalette creates a palette with the standard slots and default semantic colors
func NewPalette() *Palette {
	p := &Palette{
		colors: map[ColorID]tcell.Color{
			ColorDefault: tcell.ColorDefault,
			ColorBlack:   tcell.ColorBlack,
			ColorRed:     tcell.ColorMaroon,
			ColorGreen:   tcell.ColorGreen,
			ColorYellow:  tcell.ColorOlive,
			ColorBlue:    tcell.ColorNavy,
			ColorMagenta: tcell.ColorPurple,
			ColorCyan:    tcell.ColorTeal,
			ColorWhite:   tcell.ColorSilver,

			ColorText:           tcell.ColorSilver,
			ColorPaper:          tcell.ColorBlack,
			ColorGutter:         tcell.ColorGray,
			ColorGutterPaper:    tcell.ColorBlack,
			ColorStatus:         tcell.ColorBlack,
			ColorStatusPaper:    tcell.ColorTeal,
			ColorDialog:         tcell.ColorWhite,
			ColorDialogPaper:    tcell.ColorNavy,
			ColorHighlight:      tcell.ColorBlack,
			ColorHighlightPaper: tcell.ColorOlive,
			ColorError:          tcell.ColorRed,
		},
		pairs: make(map[pairKey]tcell.Style),
	}
	return p
}

// Define sets the color for a slot and drops cached pairs
func (p *Palette) Define(id ColorID, c tcell.Color) {
	p.colors[id] = c
	clear(p.pairs)
}

// Color returns the color bound to a slot, ColorDefault for unknown slots
func (p *Palette) Color(id ColorID) tcell.Color {
	if c, ok := p.colors[id]; ok {
		return c
	}
	return tcell.ColorDefault
}

// Pair returns the style for an ink/paper combination
func (p *Palette) Pair(ink, paper ColorID) tcell.Style {
	key := pairKey{ink, paper}
	if st, ok := p.pairs[key]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(p.Color(ink)).Background(p.Color(paper))
	p.pairs[key] = st
	return st
}

// Allocated returns the number of cached pairs
func (p *Palette) Allocated() int {
	return len(p.pairs)
}
