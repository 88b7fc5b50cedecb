package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogindex/internal/assets"
	"git.home.luguber.info/inful/blogindex/internal/docmodel"
	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
	"git.home.luguber.info/inful/blogindex/internal/incremental"
	"git.home.luguber.info/inful/blogindex/internal/index"
	"git.home.luguber.info/inful/blogindex/internal/logfields"
	"git.home.luguber.info/inful/blogindex/internal/metrics"
	"git.home.luguber.info/inful/blogindex/internal/navigation"
	"git.home.luguber.info/inful/blogindex/internal/notify"
	"git.home.luguber.info/inful/blogindex/internal/observability"
	"git.home.luguber.info/inful/blogindex/internal/render"
	"git.home.luguber.info/inful/blogindex/internal/storage"
)

const (
	stagePrepare   = "prepare"
	stageStaleness = "staleness"
	stageDiscover  = "discover"
	stageParse     = "parse"
	stageResolve   = "resolve"
	stageRender    = "render"
	stageWrite     = "write"
	stageNotify    = "notify"
)

const notifyTimeout = 5 * time.Second

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	provider  storage.Provider
	recorder  metrics.Recorder
	publisher notify.Publisher
	renderer  render.Renderer
	newRunID  func() string
}

// NewBuildService creates a service working on provider with no metrics,
// no notifications and the goldmark renderer.
func NewBuildService(provider storage.Provider) *DefaultBuildService {
	return &DefaultBuildService{
		provider:  provider,
		recorder:  metrics.NoopRecorder{},
		publisher: notify.NoopPublisher{},
		newRunID:  uuid.NewString,
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithPublisher sets the publisher notified after each generated index.
func (s *DefaultBuildService) WithPublisher(p notify.Publisher) *DefaultBuildService {
	if p != nil {
		s.publisher = p
	}
	return s
}

// WithRenderer overrides the renderer used when render.enabled is set.
func (s *DefaultBuildService) WithRenderer(r render.Renderer) *DefaultBuildService {
	s.renderer = r
	return s
}

// WithRunIDGenerator overrides how run IDs are produced (for testing).
func (s *DefaultBuildService) WithRunIDGenerator(fn func() string) *DefaultBuildService {
	if fn != nil {
		s.newRunID = fn
	}
	return s
}

// Run executes one index run. The previous index is only replaced when every
// document parsed and the new index was encoded; on failure it is untouched.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	result := &BuildResult{
		RunID:     s.newRunID(),
		StartTime: time.Now(),
	}
	ctx = observability.WithRunID(ctx, result.RunID)

	if req.Config == nil {
		return s.fail(ctx, result, "", ferrors.ConfigError("config required").Build())
	}
	cfg := req.Config
	result.DataFile = cfg.Output.DataFile

	stageStart := time.Now()
	ctx = observability.WithStage(ctx, stagePrepare)
	if err := s.provider.MkdirAll(cfg.Output.AssetDirectory); err != nil {
		return s.fail(ctx, result, stagePrepare, ferrors.WrapError(err, ferrors.CategoryFileSystem, "create asset directory").
			WithContext("path", cfg.Output.AssetDirectory).
			Build())
	}
	s.stageDone(stagePrepare, stageStart)

	if req.Options.Force {
		observability.InfoContext(ctx, "Forced regeneration, skipping staleness check")
	} else {
		stageStart = time.Now()
		ctx = observability.WithStage(ctx, stageStaleness)
		decision, err := incremental.NewChecker(s.provider, cfg.Source.Extension).
			Check(cfg.Output.DataFile, cfg.Source.Directory)
		if err != nil {
			return s.fail(ctx, result, stageStaleness, wrapStage(ErrStaleness, err, "staleness check failed"))
		}
		s.stageDone(stageStaleness, stageStart)
		if !decision.Stale {
			return s.skip(ctx, result, decision.Reason), nil
		}
		observability.InfoContext(ctx, "Index is stale", slog.String("reason", decision.Reason))
	}

	stageStart = time.Now()
	ctx = observability.WithStage(ctx, stageDiscover)
	files, err := s.provider.ListFiles(cfg.Source.Directory, cfg.Source.Extension)
	if err != nil {
		return s.fail(ctx, result, stageDiscover, wrapStage(ErrDiscovery,
			ferrors.WrapError(err, ferrors.CategoryFileSystem, "list source directory").
				WithContext("path", cfg.Source.Directory).
				Build(),
			"discovery failed"))
	}
	s.stageDone(stageDiscover, stageStart)
	observability.InfoContext(ctx, "Discovered source documents", logfields.Count(len(files)))

	stageStart = time.Now()
	ctx = observability.WithStage(ctx, stageParse)
	parser := docmodel.NewParser(s.provider, assets.NewRelocator(s.provider, cfg.Output.AssetDirectory, cfg.Output.AssetURLPrefix))
	docs := make([]*docmodel.Document, 0, len(files))
	var assetStats assets.Stats
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return s.fail(ctx, result, stageParse, err)
		}
		doc, stats, err := parser.Parse(ctx, file)
		assetStats.Add(stats)
		if err != nil {
			result.AssetsCopied, result.AssetsMissing = assetStats.Copied, assetStats.Missing
			return s.fail(ctx, result, stageParse, wrapStage(ErrParse, err, "parse "+filepath.Base(file)))
		}
		docs = append(docs, doc)
	}
	result.Generated = len(docs)
	result.AssetsCopied, result.AssetsMissing = assetStats.Copied, assetStats.Missing
	s.recorder.AddAssets(assetStats.Copied, assetStats.Missing)
	s.stageDone(stageParse, stageStart)

	stageStart = time.Now()
	ctx = observability.WithStage(ctx, stageResolve)
	docs = navigation.Resolve(docs)
	s.stageDone(stageResolve, stageStart)

	if cfg.Render.Enabled {
		stageStart = time.Now()
		ctx = observability.WithStage(ctx, stageRender)
		renderer := s.renderer
		if renderer == nil {
			renderer = render.NewGoldmarkRenderer(cfg.Render.HighlightStyle)
		}
		for _, doc := range docs {
			html, err := renderer.Render(ctx, doc.Content)
			if err != nil {
				return s.fail(ctx, result, stageRender, wrapStage(ErrRender, err, "render "+doc.ID))
			}
			doc.HTML = html
		}
		s.stageDone(stageRender, stageStart)
	}

	stageStart = time.Now()
	ctx = observability.WithStage(ctx, stageWrite)
	if err := ctx.Err(); err != nil {
		return s.fail(ctx, result, stageWrite, err)
	}
	if err := index.WriteAtomic(s.provider, cfg.Output.DataFile, docs); err != nil {
		return s.fail(ctx, result, stageWrite, wrapStage(ErrWrite, err, "write index failed"))
	}
	s.stageDone(stageWrite, stageStart)

	result.Total = len(docs)
	if len(docs) > 0 {
		result.Latest = &LatestPost{ID: docs[0].ID, Title: docs[0].Title, CreatedAt: docs[0].CreatedAt}
	}
	s.recorder.SetDocuments(result.Total)

	s.notify(observability.WithStage(ctx, stageNotify), result)

	s.finish(result, BuildStatusGenerated, metrics.OutcomeGenerated)
	attrs := []slog.Attr{
		logfields.Count(result.Total),
		logfields.DataFile(result.DataFile),
		logfields.DurationMS(float64(result.Duration.Microseconds()) / 1000),
	}
	if result.Latest != nil {
		attrs = append(attrs, slog.String("latest", result.Latest.Title))
	}
	observability.InfoContext(ctx, "Index generated", attrs...)
	return result, nil
}

// skip reports an up-to-date index, reading it for the summary when possible.
func (s *DefaultBuildService) skip(ctx context.Context, result *BuildResult, reason string) *BuildResult {
	result.SkipReason = reason
	if docs, err := index.ReadFile(s.provider, result.DataFile); err != nil {
		observability.DebugContext(ctx, "Existing index not readable for summary", logfields.Error(err))
	} else {
		summary := index.Summarize(docs)
		result.Total = summary.Total
		if summary.Latest != nil {
			result.Latest = &LatestPost{ID: summary.Latest.ID, Title: summary.Latest.Title, CreatedAt: summary.Latest.CreatedAt}
		}
	}
	s.finish(result, BuildStatusSkipped, metrics.OutcomeSkipped)
	observability.InfoContext(ctx, "No changes detected, skipping regeneration",
		logfields.Count(result.Total), logfields.DataFile(result.DataFile))
	return result
}

// notify publishes the run. Failures never fail the run.
func (s *DefaultBuildService) notify(ctx context.Context, result *BuildResult) {
	event := notify.Event{
		RunID:       result.RunID,
		DataFile:    result.DataFile,
		Documents:   result.Total,
		GeneratedAt: time.Now().UTC(),
	}
	if result.Latest != nil {
		event.Latest = result.Latest.Title
	}
	pubCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.recorder.IncStageResult(stageNotify, metrics.ResultFailed)
		observability.WarnContext(ctx, "Failed to publish index event", logfields.Error(err))
		return
	}
	s.recorder.IncStageResult(stageNotify, metrics.ResultSuccess)
}

func (s *DefaultBuildService) stageDone(stage string, start time.Time) {
	s.recorder.ObserveStageDuration(stage, time.Since(start))
	s.recorder.IncStageResult(stage, metrics.ResultSuccess)
}

func (s *DefaultBuildService) finish(result *BuildResult, status BuildStatus, outcome metrics.BuildOutcomeLabel) {
	result.Status = status
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	s.recorder.IncBuildOutcome(outcome)
	s.recorder.ObserveBuildDuration(result.Duration)
}

func (s *DefaultBuildService) fail(ctx context.Context, result *BuildResult, stage string, err error) (*BuildResult, error) {
	if stage != "" {
		s.recorder.IncStageResult(stage, metrics.ResultFailed)
	}
	if ctx.Err() != nil {
		s.finish(result, BuildStatusCancelled, metrics.OutcomeCanceled)
		observability.WarnContext(ctx, "Index run cancelled")
		return result, err
	}
	s.finish(result, BuildStatusFailed, metrics.OutcomeFailed)
	observability.ErrorContext(ctx, "Index run failed", logfields.Error(err))
	return result, err
}

// wrapStage tags err with a stage sentinel, keeping the category of an
// already classified cause.
func wrapStage(sentinel, err error, message string) error {
	category := ferrors.CategoryBuild
	if ferrors.IsClassified(err) {
		category = ferrors.GetCategory(err)
	}
	return ferrors.WrapError(fmt.Errorf("%w: %w", sentinel, err), category, message).Build()
}

var _ BuildService = (*DefaultBuildService)(nil)
