package input

// Pad is one touch control on the pad strip.
type Pad int

const (
	PadNone Pad = iota
	PadLeft
	PadFire
	PadRight
)

// Label returns the text drawn on the pad.
func (p Pad) Label() string {
	switch p {
	case PadLeft:
		return "⟵"
	case PadFire:
		return "FIRE"
	case PadRight:
		return "⟶"
	default:
		return ""
	}
}

// Pads lists the pads in strip order.
var Pads = [...]Pad{PadLeft, PadFire, PadRight}

// PadLayout places the pad strip on the terminal. The strip is split into
// three equal pads.
type PadLayout struct {
	Row   int // 1-based terminal row
	Col   int // 1-based first column
	Width int // Columns covered by the whole strip
}

// Span returns the first column and width of a pad.
func (l PadLayout) Span(p Pad) (col, width int) {
	third := l.Width / 3
	switch p {
	case PadLeft:
		return l.Col, third
	case PadFire:
		return l.Col + third, l.Width - 2*third
	case PadRight:
		return l.Col + l.Width - third, third
	default:
		return 0, 0
	}
}

// Hit returns the pad under a terminal position.
func (l PadLayout) Hit(col, row int) Pad {
	if row != l.Row || l.Width < 3 {
		return PadNone
	}
	for _, p := range Pads {
		start, w := l.Span(p)
		if col >= start && col < start+w {
			return p
		}
	}
	return PadNone
}

// Intent is the per-frame command handed to the simulation.
type Intent struct {
	Dir  int  // -1 left, 0 idle, +1 right
	Fire bool // Fire requested this frame
}

// Mapper merges keyboard and touch input into one Intent per frame.
// Touch direction overrides the keyboard while a pad is held.
type Mapper struct {
	Layout    PadLayout
	touchDir  int
	touchFire bool
}

// Map consumes one frame of input.
func (m *Mapper) Map(in Input) Intent {
	var intent Intent

	for _, ev := range in.Mouse {
		if ev.Button >= 64 { // Wheel
			continue
		}
		if ev.Release {
			m.touchDir = 0
			m.touchFire = false
			continue
		}
		switch m.Layout.Hit(ev.Col, ev.Row) {
		case PadLeft:
			m.touchDir = -1
		case PadRight:
			m.touchDir = 1
		case PadFire:
			m.touchFire = true
			intent.Fire = true
		}
	}

	if in.Left {
		intent.Dir--
	}
	if in.Right {
		intent.Dir++
	}
	if m.touchDir != 0 {
		intent.Dir = m.touchDir
	}
	if in.Fire {
		intent.Fire = true
	}
	return intent
}

// Touching reports whether a pad is currently held.
func (m *Mapper) Touching() (dir int, fire bool) {
	return m.touchDir, m.touchFire
}

// Release clears any held touch state.
func (m *Mapper) Release() {
	m.touchDir = 0
	m.touchFire = false
}
