package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/blogindex/internal/bootstrap"
	"git.home.luguber.info/inful/blogindex/internal/build"
	"git.home.luguber.info/inful/blogindex/internal/config"
	"git.home.luguber.info/inful/blogindex/internal/logfields"
	"git.home.luguber.info/inful/blogindex/internal/notify"
	"git.home.luguber.info/inful/blogindex/internal/retry"
	"git.home.luguber.info/inful/blogindex/internal/storage"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	PathFlags `embed:""`

	Force     bool `short:"f" help:"Regenerate even when the index is up to date"`
	Render    bool `help:"Add rendered HTML to every document"`
	NoSamples bool `name:"no-samples" help:"Do not create sample posts in an empty source directory"`
}

func (g *GenerateCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := LoadConfig(root.Config, g.PathFlags)
	if err != nil {
		return err
	}
	root.configureLogging(cfg)
	if g.Render {
		cfg.Render.Enabled = true
	}
	if g.NoSamples {
		cfg.Bootstrap.Samples = false
	}
	return RunGenerate(ctx, cfg, g.Force, os.Stdout)
}

// RunGenerate performs a single index run and reports it on out.
func RunGenerate(ctx context.Context, cfg *config.Config, force bool, out io.Writer) error {
	provider := storage.NewOSProvider()
	if err := prepareSources(provider, cfg, out); err != nil {
		return err
	}

	publisher := newPublisher(cfg)
	defer closePublisher(publisher)

	result, err := build.NewBuildService(provider).
		WithPublisher(publisher).
		Run(ctx, build.BuildRequest{Config: cfg, Options: build.BuildOptions{Force: force}})
	if err != nil {
		return err
	}
	printResult(out, result)
	return nil
}

// prepareSources seeds an empty or missing source directory with the sample
// posts when enabled.
func prepareSources(provider storage.Provider, cfg *config.Config, out io.Writer) error {
	if !cfg.Bootstrap.Samples {
		return nil
	}
	created, err := bootstrap.EnsureSamples(provider, cfg.Source.Directory)
	if err != nil {
		return err
	}
	if created {
		_, _ = fmt.Fprintf(out, "Source directory %s was empty, created sample posts.\n", cfg.Source.Directory)
	}
	return nil
}

// newPublisher connects to NATS when configured. A connection failure
// downgrades to no notifications.
func newPublisher(cfg *config.Config) notify.Publisher {
	if cfg.Notify.NATSURL == "" {
		return notify.NoopPublisher{}
	}
	p, err := notify.NewNATSPublisher(cfg.Notify.NATSURL, cfg.Notify.Subject)
	if err != nil {
		slog.Warn("NATS unavailable, notifications disabled", logfields.Error(err))
		return notify.NoopPublisher{}
	}
	policy := retry.NewPolicy(cfg.Notify.RetryBackoff, cfg.Notify.RetryInitial, cfg.Notify.RetryMax, cfg.Notify.Retries)
	return notify.WithRetry(p, policy)
}

func closePublisher(p notify.Publisher) {
	if err := p.Close(); err != nil {
		slog.Warn("Failed to close publisher", logfields.Error(err))
	}
}

func printResult(out io.Writer, result *build.BuildResult) {
	switch result.Status {
	case build.BuildStatusSkipped:
		_, _ = fmt.Fprintln(out, "No changes detected. Skipping regeneration.")
		if result.Total > 0 {
			_, _ = fmt.Fprintf(out, "Existing total posts: %d\n", result.Total)
		}
	default:
		_, _ = fmt.Fprintf(out, "Successfully generated %d posts.\n", result.Total)
		if result.AssetsCopied > 0 || result.AssetsMissing > 0 {
			_, _ = fmt.Fprintf(out, "Images: %d copied, %d missing\n", result.AssetsCopied, result.AssetsMissing)
		}
	}
	if result.Latest != nil {
		_, _ = fmt.Fprintf(out, "Latest post: %s (%s)\n", result.Latest.Title, result.Latest.CreatedAt.Format(time.RFC3339))
	}
}
