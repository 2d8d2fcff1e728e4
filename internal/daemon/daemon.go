// Package daemon rebuilds the site when data files change and on a schedule.
// File events and timer ticks funnel into a single serialized executor, so
// at most one generation run is in flight at a time.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/informer/internal/config"
	"git.home.luguber.info/inful/informer/internal/logfields"
)

// BuildFunc executes one generation run.
type BuildFunc func(ctx context.Context) error

// Daemon coordinates watch- and schedule-triggered rebuilds.
type Daemon struct {
	cfg        *config.Config
	configPath string
	build      BuildFunc
	debounce   time.Duration

	// triggers carries rebuild reasons; capacity 1 gives skip-if-busy
	// semantics for triggers arriving mid-build.
	triggers chan string
}

// New creates a daemon around the given build function.
func New(cfg *config.Config, configPath string, build BuildFunc) *Daemon {
	return &Daemon{
		cfg:        cfg,
		configPath: configPath,
		build:      build,
		debounce:   cfg.Daemon.Debounce(),
		triggers:   make(chan string, 1),
	}
}

// watchPaths lists every file whose change should trigger a rebuild.
func (d *Daemon) watchPaths() []string {
	paths := []string{d.cfg.States.File}
	if d.configPath != "" {
		paths = append(paths, d.configPath)
	}
	// A local catalog file is watchable; an HTTP source is covered by the
	// scheduled rebuild.
	src := d.cfg.Catalog.Source
	if src != "" && !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		paths = append(paths, src)
	}
	paths = append(paths, d.cfg.Daemon.Watch...)
	return paths
}

// Run builds once, then serves triggers until ctx is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]struct{})
	for _, p := range d.watchPaths() {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		watched[abs] = struct{}{}
		// Watch the containing directory; editors often replace files.
		dir := filepath.Dir(abs)
		if err := watcher.Add(dir); err != nil {
			slog.Warn("cannot watch directory", logfields.Path(dir), logfields.Error(err))
		}
	}
	slog.Info("daemon watching for changes", slog.Int("files", len(watched)))

	scheduler, err := d.startScheduler()
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				slog.Warn("scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	go d.watchLoop(ctx, watcher, watched)

	// Initial build; failures are logged, the daemon keeps serving triggers.
	d.runBuild(ctx, "startup")

	for {
		select {
		case <-ctx.Done():
			slog.Info("daemon shutting down")
			return nil
		case reason := <-d.triggers:
			d.runBuild(ctx, reason)
		}
	}
}

func (d *Daemon) startScheduler() (gocron.Scheduler, error) {
	if d.cfg.Daemon.Interval == "" {
		return nil, nil
	}
	interval, err := time.ParseDuration(d.cfg.Daemon.Interval)
	if err != nil {
		return nil, fmt.Errorf("parse daemon interval: %w", err)
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { d.trigger("schedule") }),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return nil, fmt.Errorf("create periodic rebuild job: %w", err)
	}
	scheduler.Start()
	slog.Info("scheduled rebuilds enabled", slog.Duration("interval", interval))
	return scheduler, nil
}

// watchLoop debounces file events into rebuild triggers.
func (d *Daemon) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, watched map[string]struct{}) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, relevant := watched[abs]; !relevant {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("data file changed", logfields.Path(event.Name))
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(d.debounce, func() { d.trigger("file-change") })
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("file watcher error", logfields.Error(err))
		}
	}
}

// trigger requests a rebuild; if one is already pending the request is
// coalesced.
func (d *Daemon) trigger(reason string) {
	select {
	case d.triggers <- reason:
	default:
		slog.Debug("rebuild already pending, coalescing trigger", slog.String("reason", reason))
	}
}

func (d *Daemon) runBuild(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	slog.Info("rebuild triggered", slog.String("reason", reason))
	if err := d.build(ctx); err != nil {
		slog.Error("rebuild failed", slog.String("reason", reason), logfields.Error(err))
	}
}
