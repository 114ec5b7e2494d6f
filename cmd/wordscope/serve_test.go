package main

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/nao1215/wordscope/internal/config"
)

func TestNewServeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewServeCmd()

	t.Run("has listen flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("listen")
		if flag == nil {
			t.Fatal("expected listen flag")
		}
		if flag.Shorthand != "l" || flag.DefValue != config.DefaultListenAddress {
			t.Errorf("unexpected listen flag %+v", flag)
		}
	})

	t.Run("has analysis flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"timeout", "max-batch", "concurrency", "respect-robots", "host-rate", "proxy", "detect-language"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected --%s flag", name)
			}
		}
	})

	t.Run("does not have report flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("json") != nil {
			t.Error("expected no --json flag on serve")
		}
	})
}

func TestRunServer(t *testing.T) {
	t.Parallel()

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.ListenAddress = "127.0.0.1:0"

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- runServer(ctx, cfg, newLogger(&bytes.Buffer{}, cfg, 0))
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})

	t.Run("stops with the page cache and its purger running", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.ListenAddress = "127.0.0.1:0"
		cfg.CacheTTL = 20 * time.Millisecond
		cfg.CacheDir = t.TempDir()

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- runServer(ctx, cfg, newLogger(io.Discard, cfg, 0))
		}()

		time.Sleep(100 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})

	t.Run("invalid listen address fails", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.ListenAddress = "not-an-address"

		if err := runServer(context.Background(), cfg, newLogger(&bytes.Buffer{}, cfg, 0)); err == nil {
			t.Error("expected listen error")
		}
	})
}
