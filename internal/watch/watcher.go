package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/blogindex/internal/build"
	"git.home.luguber.info/inful/blogindex/internal/config"
	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
	"git.home.luguber.info/inful/blogindex/internal/logfields"
)

const (
	reasonInitial = "initial"
	reasonChange  = "change"
	reasonSweep   = "sweep"
)

// BuildHook is called after every run triggered by the watcher.
type BuildHook func(reason string, result *build.BuildResult, err error)

// Watcher regenerates the index when the source tree changes and on a
// periodic sweep. Every run still goes through the staleness check, and at
// most one run executes at a time.
type Watcher struct {
	service build.BuildService
	cfg     *config.Config
	hook    BuildHook

	buildMu sync.Mutex
	req     chan string

	debounceMu sync.Mutex
	timer      *time.Timer
}

// New creates a watcher driving service with cfg.
func New(service build.BuildService, cfg *config.Config) *Watcher {
	return &Watcher{
		service: service,
		cfg:     cfg,
		req:     make(chan string, 1),
	}
}

// WithBuildHook registers fn to observe completed runs.
func (w *Watcher) WithBuildHook(fn BuildHook) *Watcher {
	w.hook = fn
	return w
}

// Run performs an initial run and then watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	sourceDir, err := filepath.Abs(w.cfg.Source.Directory)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "resolve source directory").Build()
	}
	if st, statErr := os.Stat(sourceDir); statErr != nil || !st.IsDir() {
		return ferrors.FileSystemError("source directory not found or not a directory").
			WithContext("path", sourceDir).
			Build()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create filesystem watcher").Build()
	}
	defer func() { _ = fsw.Close() }()
	addDirsRecursive(fsw, sourceDir)

	scheduler, err := w.startSweep()
	if err != nil {
		return err
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			slog.Warn("Scheduler shutdown failed", logfields.Error(err))
		}
	}()

	w.build(ctx, reasonInitial)

	workerCtx, stopWorker := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(workerCtx)
	}()
	defer func() {
		w.stopTimer()
		stopWorker()
		wg.Wait()
	}()

	slog.Info("Watching source directory",
		logfields.Path(sourceDir),
		slog.Duration("debounce", w.cfg.Watch.Debounce),
		slog.Duration("interval", w.cfg.Watch.Interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// startSweep schedules the periodic staleness sweep. A non-positive interval
// leaves the scheduler empty.
func (w *Watcher) startSweep() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if w.cfg.Watch.Interval > 0 {
		_, err = s.NewJob(
			gocron.DurationJob(w.cfg.Watch.Interval),
			gocron.NewTask(w.request, reasonSweep),
			gocron.WithName("staleness-sweep"),
		)
		if err != nil {
			_ = s.Shutdown()
			return nil, fmt.Errorf("failed to create sweep job: %w", err)
		}
	}
	s.Start()
	return s, nil
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if w.shouldIgnore(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.debounce()
}

// debounce restarts the quiet window; the request fires when it elapses.
func (w *Watcher) debounce() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.cfg.Watch.Debounce, func() { w.request(reasonChange) })
}

func (w *Watcher) stopTimer() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// request queues a run. Requests arriving while one is queued coalesce.
func (w *Watcher) request(reason string) {
	select {
	case w.req <- reason:
	default:
	}
}

func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-w.req:
			w.build(ctx, reason)
		}
	}
}

func (w *Watcher) build(ctx context.Context, reason string) {
	w.buildMu.Lock()
	defer w.buildMu.Unlock()
	if ctx.Err() != nil {
		return
	}

	result, err := w.service.Run(ctx, build.BuildRequest{Config: w.cfg})
	if err != nil {
		slog.Warn("Index run failed", slog.String("trigger", reason), logfields.Error(err))
	} else {
		slog.Debug("Index run finished",
			slog.String("trigger", reason),
			logfields.Status(string(result.Status)),
			logfields.Count(result.Total))
	}
	if w.hook != nil {
		w.hook(reason, result, err)
	}
}

// shouldIgnore reports events that must not trigger a run: editor and temp
// files, and anything the run itself writes.
func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") ||
		strings.HasPrefix(base, "#") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		base == "Thumbs.db" {
		return true
	}
	return within(path, w.cfg.Output.AssetDirectory) || samePath(path, w.cfg.Output.DataFile)
}

func within(path, dir string) bool {
	absPath, err1 := filepath.Abs(path)
	absDir, err2 := filepath.Abs(dir)
	if err1 != nil || err2 != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func samePath(a, b string) bool {
	absA, err1 := filepath.Abs(a)
	absB, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && absA == absB
}

func addDirsRecursive(fsw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}
