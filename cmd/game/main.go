package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/dartkids/internal/asset"
	"github.com/tomz197/dartkids/internal/config"
	"github.com/tomz197/dartkids/internal/loop/client"
	"github.com/tomz197/dartkids/internal/loop/server"
	"github.com/tomz197/dartkids/internal/store"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}

	// The terminal belongs to the game; logs go to a file or nowhere.
	logger, closeLog, err := openLog(config.GetEnv("DARTKIDS_LOG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	kv := store.Open(config.GetEnv("DARTKIDS_DB", ""), logger)
	defer kv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sprites := asset.Load(ctx, logger)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c := client.NewClient(server.NewServer(logger), bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Prefs:   store.NewPrefs(kv, "", logger),
		Sprites: sprites,
		Seed:    config.GetEnvInt("DARTKIDS_SEED", 0),
		Logger:  logger,
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// openLog returns a logger writing to path, or a discarding one when path
// is empty.
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return config.NewLogger(f, "game"), func() { _ = f.Close() }, nil
}
