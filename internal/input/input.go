// Package input turns raw terminal bytes into per-frame key and pointer state.
package input

import (
	"bufio"
	"bytes"
	"strconv"
	"time"
)

// keyHoldDuration is how long a direction key is considered "held" after its
// last byte. Terminals send no key-up, only auto-repeat.
const keyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
// Left and Right are held states; the other flags report bytes seen this frame.
type Input struct {
	Left      bool
	Right     bool
	Fire      bool
	Pause     bool
	Reset     bool
	Help      bool
	Enter     bool
	SkipIntro bool
	Quit      bool
	Closed    bool // The underlying reader has ended
	Mouse     []MouseEvent
	Pressed   []byte
}

// MouseEvent is one SGR mouse report.
type MouseEvent struct {
	Button  int
	Col     int // 1-based terminal column
	Row     int // 1-based terminal row
	Release bool
}

// KeyState tracks the last time each held key was pressed.
type KeyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   KeyState
	pending []byte // Unfinished escape sequence carried from the last read
	closed  bool
	now     func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine ends when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 256),
		now: time.Now,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// An escape sequence cut off at the end of the read is held back until the
// next call. If nothing arrives by then it is parsed as is, so a lone ESC
// still quits one frame later.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil
	fresh := len(buf)

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	if len(buf) > fresh && !s.closed {
		if cut := unfinishedEscape(buf); cut < len(buf) {
			s.pending = append([]byte(nil), buf[cut:]...)
			buf = buf[:cut]
		}
	}

	in := Parse(&s.state, buf, s.now())
	in.Closed = s.closed
	return in
}

// maxEscapeLen bounds how much of an unterminated sequence is held back.
const maxEscapeLen = 32

// unfinishedEscape returns where a truncated escape sequence at the end of
// buf starts, or len(buf) if buf ends cleanly.
func unfinishedEscape(buf []byte) int {
	i := bytes.LastIndexByte(buf, '\x1b')
	if i < 0 || len(buf)-i > maxEscapeLen {
		return len(buf)
	}
	tail := buf[i:]
	switch {
	case len(tail) == 1:
		return i
	case tail[1] != '[' && tail[1] != 'O':
		return len(buf)
	case len(tail) == 2:
		return i
	case tail[1] == '[' && tail[2] == '<':
		for _, c := range tail[3:] {
			if (c < '0' || c > '9') && c != ';' {
				return len(buf)
			}
		}
		return i
	}
	return len(buf)
}

// ResetKeyInput forgets held keys, so a direction pressed before a state
// change does not carry over.
func ResetKeyInput(s *Stream) {
	s.state = KeyState{}
}

// Parse decodes one frame's bytes, updating held-key timestamps in state.
func Parse(state *KeyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			if n, ev, ok := parseSGRMouse(buf[i:]); ok {
				in.Mouse = append(in.Mouse, ev)
				i += n - 1
				continue
			}
			if i+2 < len(buf) {
				switch buf[i+2] {
				case 'C': // Right arrow
					state.right = now
					i += 2
					continue
				case 'D': // Left arrow
					state.left = now
					i += 2
					continue
				case 'A', 'B': // Up/down arrows are unused
					i += 2
					continue
				}
			}
			// Unknown or stale sequence: drop the ESC rather than quit.
			continue
		}

		applyByte(state, &in, b, now)
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	return in
}

// applyByte handles a single key byte.
func applyByte(state *KeyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'a', 'A':
		state.left = now
	case 'd', 'D':
		state.right = now
	case ' ':
		in.Fire = true
	case 'p', 'P':
		in.Pause = true
	case 'r', 'R':
		in.Reset = true
	case 'h', 'H':
		in.Help = true
	case 's', 'S':
		in.SkipIntro = true
	case '\n', '\r':
		in.Enter = true
	case 'q', 'Q', '\x1b', '\x03':
		in.Quit = true
	}
}

// parseSGRMouse decodes "ESC [ < b ; col ; row (M|m)" at the start of buf.
// It returns the number of bytes consumed.
func parseSGRMouse(buf []byte) (n int, ev MouseEvent, ok bool) {
	if len(buf) < 3 || buf[1] != '[' || buf[2] != '<' {
		return 0, MouseEvent{}, false
	}
	var fields [3]int
	field := 0
	start := 3
	for i := 3; i < len(buf); i++ {
		c := buf[i]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';':
			if field >= 2 {
				return 0, MouseEvent{}, false
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return 0, MouseEvent{}, false
			}
			fields[field] = v
			field++
			start = i + 1
		case c == 'M' || c == 'm':
			if field != 2 {
				return 0, MouseEvent{}, false
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return 0, MouseEvent{}, false
			}
			fields[2] = v
			return i + 1, MouseEvent{
				Button:  fields[0],
				Col:     fields[1],
				Row:     fields[2],
				Release: c == 'm',
			}, true
		default:
			return 0, MouseEvent{}, false
		}
	}
	return 0, MouseEvent{}, false
}
