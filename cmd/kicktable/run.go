package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Sternrassler/kickstarter-table/internal/config"
	"github.com/Sternrassler/kickstarter-table/pkg/cache"
	"github.com/Sternrassler/kickstarter-table/pkg/dataset"
	"github.com/Sternrassler/kickstarter-table/pkg/logging"
	"github.com/Sternrassler/kickstarter-table/pkg/metrics"
	"github.com/Sternrassler/kickstarter-table/pkg/view"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// ErrLoadFailed is returned after the failure view was shown.
var ErrLoadFailed = errors.New("dataset load failed")

const prompt = "> "

const hint = "Commands: n/next, p/prev, q/quit"

type command int

const (
	cmdUnknown command = iota
	cmdNext
	cmdPrevious
	cmdQuit
	cmdRedraw
)

func parseCommand(line string) command {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "n", "next":
		return cmdNext
	case "p", "prev", "previous":
		return cmdPrevious
	case "q", "quit", "exit":
		return cmdQuit
	case "":
		return cmdRedraw
	default:
		return cmdUnknown
	}
}

// app wires the loader, the optional cache and the metrics server.
type app struct {
	cfg    config.Config
	loader *dataset.Loader
	redis  *redis.Client
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	logger := logging.NewLogger("kicktable")
	loaderCfg := cfg.LoaderConfig()

	a := &app{cfg: cfg}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			// The cache is optional; run uncached rather than fail.
			logger.Warn().Err(err).Str("addr", opts.Addr).Msg("Redis unavailable - cache disabled")
			client.Close()
		} else {
			logger.Info().Str("addr", opts.Addr).Msg("Response cache enabled")
			a.redis = client
			loaderCfg.Cache = cache.NewManager(client)
		}
	}

	loader, err := dataset.NewLoader(loaderCfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.loader = loader
	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
}

// withMetrics runs fn alongside the metrics server when one is configured.
func (a *app) withMetrics(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.cfg.MetricsAddr == "" {
		return fn(ctx)
	}

	g, gctx := errgroup.WithContext(ctx)
	uiCtx, stopMetrics := context.WithCancel(gctx)

	g.Go(func() error {
		return metrics.Serve(uiCtx, a.cfg.MetricsAddr)
	})
	g.Go(func() error {
		defer stopMetrics()
		return fn(uiCtx)
	})
	return g.Wait()
}

func runInteractive(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.withMetrics(ctx, func(ctx context.Context) error {
		v := view.New(a.loader)
		defer v.Close()
		return interact(ctx, v, in, out)
	})
}

// interact mounts v, shows the loading and settled states, then applies
// commands from in until quit, EOF or ctx is done.
func interact(ctx context.Context, v *view.DataTableView, in io.Reader, out io.Writer) error {
	// First paint happens before the load starts, as the view is Loading.
	if err := view.Render(out, v.Snapshot()); err != nil {
		return err
	}
	if err := v.Mount(ctx); err != nil {
		return err
	}
	if err := v.Wait(ctx); err != nil {
		return nil
	}
	drain(v.Changes())

	snap := v.Snapshot()
	if err := view.Render(out, snap); err != nil {
		return err
	}
	if snap.Status == view.StatusFailed {
		return ErrLoadFailed
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// readErr is written before lines is closed.
	var readErr error
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr = scanner.Err()
	}()

	fmt.Fprint(out, prompt)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				if readErr != nil {
					return fmt.Errorf("read command: %w", readErr)
				}
				return nil
			}

			switch parseCommand(line) {
			case cmdQuit:
				return nil
			case cmdNext:
				v.Next()
			case cmdPrevious:
				v.Previous()
			case cmdUnknown:
				fmt.Fprintf(out, "Unknown command %q. %s\n", strings.TrimSpace(line), hint)
			}
			drain(v.Changes())

			if err := view.Render(out, v.Snapshot()); err != nil {
				return err
			}
			fmt.Fprint(out, prompt)
		}
	}
}

func runDump(ctx context.Context, cfg config.Config, page int, out io.Writer) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.withMetrics(ctx, func(ctx context.Context) error {
		v := view.New(a.loader)
		defer v.Close()
		return dump(ctx, v, page, out)
	})
}

// dump renders the requested page once. Pages past the end clamp to the
// last page.
func dump(ctx context.Context, v *view.DataTableView, page int, out io.Writer) error {
	if err := v.Mount(ctx); err != nil {
		return err
	}
	if err := v.Wait(ctx); err != nil {
		return err
	}

	for i := 1; i < page; i++ {
		if !v.Next() {
			break
		}
	}

	snap := v.Snapshot()
	if err := view.Render(out, snap); err != nil {
		return err
	}
	if snap.Status == view.StatusFailed {
		return ErrLoadFailed
	}
	return nil
}

func drain(ch <-chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
