package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	now := time.Unix(100, 0)
	tests := []struct {
		name  string
		bytes string
		check func(Input) bool
	}{
		{"fire", " ", func(in Input) bool { return in.Fire }},
		{"pause", "p", func(in Input) bool { return in.Pause }},
		{"reset", "R", func(in Input) bool { return in.Reset }},
		{"help", "h", func(in Input) bool { return in.Help }},
		{"skip intro", "s", func(in Input) bool { return in.SkipIntro }},
		{"enter", "\r", func(in Input) bool { return in.Enter }},
		{"quit q", "q", func(in Input) bool { return in.Quit }},
		{"quit esc", "\x1b", func(in Input) bool { return in.Quit }},
		{"quit ctrl-c", "\x03", func(in Input) bool { return in.Quit }},
		{"left key", "a", func(in Input) bool { return in.Left && !in.Right }},
		{"right key", "d", func(in Input) bool { return in.Right && !in.Left }},
		{"left arrow", "\x1b[D", func(in Input) bool { return in.Left && !in.Quit }},
		{"right arrow", "\x1b[C", func(in Input) bool { return in.Right && !in.Quit }},
		{"app mode arrow", "\x1bOD", func(in Input) bool { return in.Left && !in.Quit }},
		{"up arrow ignored", "\x1b[A", func(in Input) bool { return !in.Quit && !in.Left && !in.Right }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st KeyState
			in := Parse(&st, []byte(tt.bytes), now)
			if !tt.check(in) {
				t.Errorf("Parse(%q) = %+v", tt.bytes, in)
			}
		})
	}
}

func TestHeldKeysExpire(t *testing.T) {
	var st KeyState
	now := time.Unix(100, 0)
	Parse(&st, []byte("a"), now)

	in := Parse(&st, nil, now.Add(keyHoldDuration/2))
	if !in.Left {
		t.Error("left should still be held inside the hold window")
	}
	if in.Fire {
		t.Error("fire must not carry over to frames without a space byte")
	}

	in = Parse(&st, nil, now.Add(keyHoldDuration))
	if in.Left {
		t.Error("left should be released after the hold window")
	}
}

func TestParseSGRMouse(t *testing.T) {
	var st KeyState
	in := Parse(&st, []byte("\x1b[<0;12;40M\x1b[<0;12;40m"), time.Unix(0, 0))
	if len(in.Mouse) != 2 {
		t.Fatalf("mouse events = %d, want 2", len(in.Mouse))
	}
	want := MouseEvent{Button: 0, Col: 12, Row: 40}
	if in.Mouse[0] != want {
		t.Errorf("press = %+v, want %+v", in.Mouse[0], want)
	}
	if !in.Mouse[1].Release {
		t.Error("lowercase m should be a release")
	}
	if in.Quit {
		t.Error("mouse report must not be read as escape")
	}
}

func TestParseMalformedMouse(t *testing.T) {
	var st KeyState
	in := Parse(&st, []byte("\x1b[<0;12M"), time.Unix(0, 0))
	if len(in.Mouse) != 0 {
		t.Errorf("malformed report produced %+v", in.Mouse)
	}
}

func TestStreamReportsClose(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("p")))

	deadline := time.Now().Add(2 * time.Second)
	var sawPause bool
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		sawPause = sawPause || in.Pause
		if in.Closed {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !sawPause {
		t.Error("pause byte was not delivered")
	}
	if in := ReadInput(s); !in.Closed {
		t.Error("stream should stay closed")
	}
}

// feed returns a stream whose reads are driven by the test.
func feed() *Stream {
	now := time.Unix(100, 0)
	return &Stream{
		ch:  make(chan byte, 64),
		now: func() time.Time { return now },
	}
}

func send(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestSplitEscapeSequences(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
		check  func(Input) bool
	}{
		{"mouse report", "\x1b[<0;10;5", "M", func(in Input) bool {
			return len(in.Mouse) == 1 && in.Mouse[0] == MouseEvent{Col: 10, Row: 5}
		}},
		{"mouse after prefix", "\x1b[", "<0;3;4m", func(in Input) bool {
			return len(in.Mouse) == 1 && in.Mouse[0].Release
		}},
		{"left arrow", "\x1b", "[D", func(in Input) bool { return in.Left }},
		{"app mode arrow", "a\x1bO", "C", func(in Input) bool { return in.Right }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := feed()
			send(s, tt.first)
			in := ReadInput(s)
			if in.Quit || len(in.Mouse) != 0 {
				t.Fatalf("first half = %+v", in)
			}

			send(s, tt.second)
			in = ReadInput(s)
			if in.Quit || !tt.check(in) {
				t.Errorf("second half = %+v", in)
			}
		})
	}
}

func TestLoneEscapeQuitsNextFrame(t *testing.T) {
	s := feed()
	send(s, "\x1b")
	if in := ReadInput(s); in.Quit {
		t.Fatal("a trailing ESC should wait one frame")
	}
	if in := ReadInput(s); !in.Quit {
		t.Error("ESC with nothing after it should quit")
	}

	send(s, "\x1b")
	ReadInput(s)
	send(s, "p")
	in := ReadInput(s)
	if !in.Quit || !in.Pause {
		t.Errorf("ESC followed by a key = %+v, want quit and pause", in)
	}
}

func TestStaleSequenceDoesNotQuit(t *testing.T) {
	s := feed()
	send(s, "\x1b[<0;1")
	ReadInput(s)
	if in := ReadInput(s); in.Quit || len(in.Mouse) != 0 {
		t.Errorf("abandoned mouse prefix = %+v", in)
	}
}

func TestPadLayout(t *testing.T) {
	l := PadLayout{Row: 24, Col: 1, Width: 30}
	tests := []struct {
		col, row int
		want     Pad
	}{
		{1, 24, PadLeft},
		{10, 24, PadLeft},
		{11, 24, PadFire},
		{20, 24, PadFire},
		{21, 24, PadRight},
		{30, 24, PadRight},
		{31, 24, PadNone},
		{5, 23, PadNone},
	}
	for _, tt := range tests {
		if got := l.Hit(tt.col, tt.row); got != tt.want {
			t.Errorf("Hit(%d,%d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestMapperKeyboard(t *testing.T) {
	var m Mapper
	if got := m.Map(Input{Left: true}); got.Dir != -1 {
		t.Errorf("left dir = %d", got.Dir)
	}
	if got := m.Map(Input{Left: true, Right: true}); got.Dir != 0 {
		t.Errorf("both keys dir = %d, want 0", got.Dir)
	}
	if got := m.Map(Input{Fire: true}); !got.Fire {
		t.Error("space should fire")
	}
}

func TestMapperTouchOverridesKeyboard(t *testing.T) {
	m := Mapper{Layout: PadLayout{Row: 10, Col: 1, Width: 30}}

	got := m.Map(Input{Left: true, Mouse: []MouseEvent{{Col: 25, Row: 10}}})
	if got.Dir != 1 {
		t.Errorf("touch right with key left = %d, want 1", got.Dir)
	}

	// Held pad keeps steering without new events.
	if got := m.Map(Input{}); got.Dir != 1 {
		t.Errorf("held pad dir = %d, want 1", got.Dir)
	}

	got = m.Map(Input{Left: true, Mouse: []MouseEvent{{Col: 25, Row: 10, Release: true}}})
	if got.Dir != -1 {
		t.Errorf("after release keyboard should steer, dir = %d", got.Dir)
	}
}

func TestMapperTouchFireIsEdge(t *testing.T) {
	m := Mapper{Layout: PadLayout{Row: 10, Col: 1, Width: 30}}
	if got := m.Map(Input{Mouse: []MouseEvent{{Col: 15, Row: 10}}}); !got.Fire {
		t.Error("pressing the fire pad should fire")
	}
	if got := m.Map(Input{}); got.Fire {
		t.Error("holding the fire pad should not fire again")
	}
	if _, fire := m.Touching(); !fire {
		t.Error("fire pad should report as held")
	}
	m.Release()
	if dir, fire := m.Touching(); dir != 0 || fire {
		t.Error("Release should clear touch state")
	}
}

func TestMapperIgnoresWheel(t *testing.T) {
	m := Mapper{Layout: PadLayout{Row: 10, Col: 1, Width: 30}}
	if got := m.Map(Input{Mouse: []MouseEvent{{Button: 64, Col: 2, Row: 10}}}); got.Dir != 0 {
		t.Errorf("wheel moved the ship: %d", got.Dir)
	}
}
