package asset

import (
	"context"
	"embed"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

//go:embed art/*.txt
var artFS embed.FS

// Sprite names.
const (
	Metal   = "metal"
	Ice     = "ice"
	Volcano = "volcano"
	Earth   = "earth"
)

var names = [...]string{Metal, Ice, Volcano, Earth}

// Library is the set of sprites shared by every session. Sprites become
// ready independently; callers poll Sprite.Ready and fall back when not.
type Library struct {
	sprites map[string]*Sprite
	done    chan struct{}
	err     error
}

func newLibrary() *Library {
	l := &Library{
		sprites: make(map[string]*Sprite, len(names)),
		done:    make(chan struct{}),
	}
	for _, n := range names {
		l.sprites[n] = &Sprite{name: n}
	}
	return l
}

// Load returns a library immediately and decodes the embedded art in the
// background. A sprite that fails to decode stays unready.
func Load(ctx context.Context, logger *log.Logger) *Library {
	l := newLibrary()
	go func() {
		defer close(l.done)
		l.err = l.decodeAll(ctx, func(name string) (string, error) {
			b, err := artFS.ReadFile("art/" + name + ".txt")
			return string(b), err
		})
		if l.err != nil {
			logger.Warn("sprite decode failed, using fallbacks", "err", l.err)
			return
		}
		for _, n := range names {
			w, h := l.sprites[n].Size()
			logger.Debug("sprite ready", "name", n, "size", fmt.Sprintf("%dx%d", w, h))
		}
	}()
	return l
}

// decodeAll decodes every sprite concurrently.
func (l *Library) decodeAll(ctx context.Context, read func(name string) (string, error)) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, n := range names {
		s := l.sprites[n]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			art, err := read(s.name)
			if err != nil {
				return fmt.Errorf("read sprite %s: %w", s.name, err)
			}
			return s.decode(art)
		})
	}
	return g.Wait()
}

// Sprite returns the named sprite, or nil for an unknown name.
// A nil *Sprite is never ready.
func (l *Library) Sprite(name string) *Sprite {
	if l == nil {
		return nil
	}
	return l.sprites[name]
}

// Wait blocks until background decoding finishes or ctx is done.
func (l *Library) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
