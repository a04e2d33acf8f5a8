// Package asset holds the embedded sprite art and decodes it off the frame path.
package asset

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/tomz197/dartkids/internal/draw"
)

// transparent marks an empty cell in sprite art.
const transparent = '.'

// Sprite is a small bitmap decoded from text art. Until Ready reports true
// it has no pixels and At always misses.
type Sprite struct {
	name   string
	width  int
	height int
	pix    []draw.Color
	opaque []bool
	ready  atomic.Bool
}

// Name returns the sprite's name.
func (s *Sprite) Name() string {
	return s.name
}

// Ready reports whether the sprite has been decoded.
func (s *Sprite) Ready() bool {
	return s != nil && s.ready.Load()
}

// Size returns the sprite dimensions in texels. Zero until ready.
func (s *Sprite) Size() (width, height int) {
	if !s.Ready() {
		return 0, 0
	}
	return s.width, s.height
}

// At samples the texel at normalized (u,v) in [0,1). Out-of-range
// coordinates, transparent texels and unready sprites miss.
func (s *Sprite) At(u, v float64) (draw.Color, bool) {
	if !s.Ready() || u < 0 || v < 0 || u >= 1 || v >= 1 {
		return draw.Color{}, false
	}
	i := int(v*float64(s.height))*s.width + int(u*float64(s.width))
	return s.pix[i], s.opaque[i]
}

// Wrap samples with u wrapping around horizontally, for textures mapped
// onto a rotating sphere.
func (s *Sprite) Wrap(u, v float64) (draw.Color, bool) {
	u -= float64(int(u))
	if u < 0 {
		u++
	}
	return s.At(u, v)
}

// decode parses art into the sprite and marks it ready.
//
// Art format: palette lines "<char> #rrggbb", one blank line, then the
// grid rows. '.' is transparent.
func (s *Sprite) decode(art string) error {
	palette := make(map[rune]draw.Color)
	var rows []string

	sc := bufio.NewScanner(strings.NewReader(art))
	inGrid := false
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if !inGrid {
			if line == "" {
				inGrid = true
				continue
			}
			key, hex, ok := strings.Cut(line, " ")
			if !ok || utf8.RuneCountInString(key) != 1 {
				return fmt.Errorf("sprite %s: bad palette line %q", s.name, line)
			}
			col, err := draw.ParseHex(strings.TrimSpace(hex))
			if err != nil {
				return fmt.Errorf("sprite %s: %w", s.name, err)
			}
			r, _ := utf8.DecodeRuneInString(key)
			palette[r] = col
			continue
		}
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("sprite %s: %w", s.name, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("sprite %s: %w", s.name, errEmpty)
	}

	width := utf8.RuneCountInString(rows[0])
	pix := make([]draw.Color, 0, width*len(rows))
	opaque := make([]bool, 0, width*len(rows))
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			return fmt.Errorf("sprite %s: row %d has %d texels, want %d", s.name, y, n, width)
		}
		for _, r := range row {
			if r == transparent {
				pix = append(pix, draw.Color{})
				opaque = append(opaque, false)
				continue
			}
			col, ok := palette[r]
			if !ok {
				return fmt.Errorf("sprite %s: unknown texel %q in row %d", s.name, r, y)
			}
			pix = append(pix, col)
			opaque = append(opaque, true)
		}
	}

	s.width = width
	s.height = len(rows)
	s.pix = pix
	s.opaque = opaque
	s.ready.Store(true)
	return nil
}

var errEmpty = errors.New("no rows")
