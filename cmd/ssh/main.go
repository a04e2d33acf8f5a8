package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/dartkids/internal/asset"
	"github.com/tomz197/dartkids/internal/config"
	"github.com/tomz197/dartkids/internal/draw"
	"github.com/tomz197/dartkids/internal/loop/client"
	"github.com/tomz197/dartkids/internal/loop/server"
	"github.com/tomz197/dartkids/internal/store"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDBPath      = "/app/data/dartkids.db"

	sessionDrainTimeout = 15 * time.Second
	serverCloseTimeout  = 5 * time.Second
)

// app holds what every SSH session shares.
type app struct {
	sessions *server.Server
	kv       store.KV
	sprites  *asset.Library
	logger   *log.Logger
}

func main() {
	envErr := config.LoadDotEnv()
	logger := config.NewLogger(os.Stderr, "ssh")
	if envErr != nil {
		logger.Warn("could not load .env", "err", envErr)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dbPath := config.GetEnv("DARTKIDS_DB", defaultDBPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath, "db", dbPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		sessions: server.NewServer(logger),
		kv:       store.Open(dbPath, logger),
		sprites:  asset.Load(ctx, logger),
		logger:   logger,
	}
	defer a.kv.Close()

	addr := net.JoinHostPort(host, port)
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Game input is many tiny writes.
		ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
			if tcp, ok := conn.(*net.TCPConn); ok {
				_ = tcp.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting ssh server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		// Players get the shutdown screen and a chance to leave on their own.
		if !a.sessions.Shutdown(sessionDrainTimeout) {
			logger.Warn("closing remaining sessions", "count", a.sessions.Count())
		}
		sctx, cancel := context.WithTimeout(context.Background(), serverCloseTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("ssh server stopped", "err", err)
	}
}

// gameMiddleware runs one game per SSH session. Best scores are kept per
// SSH user.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := a.logger.With("remote", sess.RemoteAddr().String())
		logger.Info("new game session", "user", sess.User(), "term", pty.Term,
			"cols", pty.Window.Width, "rows", pty.Window.Height)

		win := newWindow(pty.Window.Width, pty.Window.Height)
		go func() {
			for w := range winCh {
				win.set(w.Width, w.Height)
			}
		}()

		c := client.NewClient(a.sessions, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: win.size,
			Username:     sess.User(),
			Prefs:        store.NewPrefs(a.kv, "user:"+sess.User(), logger),
			Sprites:      a.sprites,
			Logger:       logger,
		})
		if err := c.Run(); err != nil {
			logger.Error("game error", "user", sess.User(), "err", err)
		}

		next(sess)
	}
}

// window is the session's latest PTY size, packed as cols<<32 | rows.
type window struct {
	packed atomic.Uint64
}

func newWindow(cols, rows int) *window {
	w := &window{}
	w.set(cols, rows)
	return w
}

func (w *window) set(cols, rows int) {
	w.packed.Store(uint64(uint32(cols))<<32 | uint64(uint32(rows)))
}

func (w *window) size() (int, int, error) {
	v := w.packed.Load()
	return int(uint32(v >> 32)), int(uint32(v)), nil
}

var _ draw.TermSizeFunc = (&window{}).size
