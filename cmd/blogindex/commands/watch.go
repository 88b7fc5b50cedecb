package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/blogindex/internal/build"
	"git.home.luguber.info/inful/blogindex/internal/config"
	"git.home.luguber.info/inful/blogindex/internal/logfields"
	"git.home.luguber.info/inful/blogindex/internal/metrics"
	"git.home.luguber.info/inful/blogindex/internal/storage"
	"git.home.luguber.info/inful/blogindex/internal/watch"
)

const shutdownTimeout = 5 * time.Second

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	PathFlags `embed:""`

	Render      bool          `help:"Add rendered HTML to every document"`
	Debounce    time.Duration `help:"Quiet period after a change before regenerating"`
	Interval    time.Duration `help:"Period of the staleness sweep (set watch.interval: 0 to disable)"`
	Metrics     bool          `help:"Serve Prometheus metrics"`
	MetricsAddr string        `name:"metrics-addr" help:"Metrics listen address"`
	NATSURL     string        `name:"nats-url" help:"Publish an event to this NATS server after each regeneration"`
}

func (w *WatchCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := LoadConfig(root.Config, w.PathFlags)
	if err != nil {
		return err
	}
	w.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	root.configureLogging(cfg)
	return RunWatch(ctx, cfg, os.Stdout)
}

func (w *WatchCmd) apply(cfg *config.Config) {
	if w.Render {
		cfg.Render.Enabled = true
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}
	if w.Interval > 0 {
		cfg.Watch.Interval = w.Interval
	}
	if w.Metrics {
		cfg.Metrics.Enabled = true
	}
	if w.MetricsAddr != "" {
		cfg.Metrics.Address = w.MetricsAddr
	}
	if w.NATSURL != "" {
		cfg.Notify.NATSURL = w.NATSURL
	}
}

// RunWatch keeps the index current until ctx is cancelled.
func RunWatch(ctx context.Context, cfg *config.Config, out io.Writer) error {
	provider := storage.NewOSProvider()
	if err := prepareSources(provider, cfg, out); err != nil {
		return err
	}

	publisher := newPublisher(cfg)
	defer closePublisher(publisher)
	service := build.NewBuildService(provider).WithPublisher(publisher)

	if cfg.Metrics.Enabled {
		reg := prom.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		srv, err := metrics.StartServer(cfg.Metrics.Address, reg)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("Metrics server shutdown error", logfields.Error(err))
			}
		}()
		service = service.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	return watch.New(service, cfg).
		WithBuildHook(func(_ string, result *build.BuildResult, err error) {
			if err == nil && result.Status == build.BuildStatusGenerated {
				printResult(out, result)
			}
		}).
		Run(ctx)
}
