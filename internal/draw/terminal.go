package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ChunkWriter collects overlay text for one frame and flushes it in
// network-sized pieces. Cursor positions are canvas coordinates shifted by
// the current offset.
type ChunkWriter struct {
	pending strings.Builder
	out     *bufio.Writer
	scratch [20]byte
	col     int
	row     int
}

// NewChunkWriter returns a writer for w whose positions are shifted by the
// given column and row offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out: bufio.NewWriterSize(w, 8192),
		col: offsetCol,
		row: offsetRow,
	}
}

// SetOffset moves the origin after the canvas is re-centered.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.col, cw.row = offsetCol, offsetRow
}

func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.pending.Write(p)
}

// WriteString queues s at the current cursor position.
func (cw *ChunkWriter) WriteString(s string) {
	cw.pending.WriteString(s)
}

// WriteAt queues s at a 1-based canvas cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	b := cw.scratch[:0]
	b = append(b, termenv.CSI...)
	b = strconv.AppendInt(b, int64(row+cw.row), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col+cw.col), 10)
	b = append(b, 'H')
	cw.pending.Write(b)
	cw.pending.WriteString(s)
}

// Clear queues a full screen erase ahead of the next flush.
func (cw *ChunkWriter) Clear() {
	cw.pending.WriteString(termenv.CSI + "H" + termenv.CSI + "2J")
}

// Flush sends the queued text and empties the queue.
func (cw *ChunkWriter) Flush() error {
	data := cw.pending.String()
	cw.pending.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc reports the terminal size in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize reads the size of the process's own terminal.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// sgrMouse selects SGR extended mouse coordinates, which input parses.
const sgrMouse = "?1006"

// Terminal switches a session's terminal in and out of game mode.
type Terminal struct {
	out *termenv.Output
}

// NewTerminal wraps w. The profile is fixed since w may be a remote PTY.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{out: termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI256))}
}

// Enter hides the cursor, turns on mouse reporting and clears the screen.
func (t *Terminal) Enter() {
	t.out.HideCursor()
	t.out.EnableMouse()
	fmt.Fprint(t.out, termenv.CSI+sgrMouse+"h")
	t.out.ClearScreen()
}

// Leave restores the cursor and stops mouse reporting.
func (t *Terminal) Leave() {
	fmt.Fprint(t.out, termenv.CSI+sgrMouse+"l")
	t.out.DisableMouse()
	t.out.ShowCursor()
}

// Clear erases the screen.
func (t *Terminal) Clear() {
	t.out.ClearScreen()
}
