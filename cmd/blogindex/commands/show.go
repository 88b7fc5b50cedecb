package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogindex/internal/index"
	"git.home.luguber.info/inful/blogindex/internal/storage"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	DataFile string `name:"data-file" short:"o" help:"Index to summarize (defaults to output.data_file)"`
	Top      int    `help:"Number of categories and tags to list" default:"10"`
}

func (s *ShowCmd) Run(_ context.Context, _ *Global, root *CLI) error {
	cfg, err := LoadConfig(root.Config, PathFlags{DataFile: s.DataFile})
	if err != nil {
		return err
	}
	root.configureLogging(cfg)
	return RunShow(cfg.Output.DataFile, s.Top, os.Stdout)
}

// RunShow prints the summary of the index at path.
func RunShow(path string, top int, out io.Writer) error {
	docs, err := index.ReadFile(storage.NewOSProvider(), path)
	if err != nil {
		return err
	}
	summary := index.Summarize(docs)

	_, _ = fmt.Fprintf(out, "Index:      %s\n", path)
	_, _ = fmt.Fprintf(out, "Posts:      %d\n", summary.Total)
	_, _ = fmt.Fprintf(out, "Categories: %s\n", formatCounts(summary.Categories, top))
	_, _ = fmt.Fprintf(out, "Tags:       %s\n", formatCounts(summary.Tags, top))
	if summary.Latest != nil {
		_, _ = fmt.Fprintf(out, "Latest:     %s (%s)\n", summary.Latest.Title, summary.Latest.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func formatCounts(counts []index.Count, top int) string {
	if len(counts) == 0 {
		return "-"
	}
	if top > 0 && len(counts) > top {
		counts = counts[:top]
	}
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s (%d)", c.Name, c.Count)
	}
	return strings.Join(parts, ", ")
}
