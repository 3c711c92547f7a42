package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/intake/internal/metrics"
	"github.com/crimson-sun/intake/internal/output"
	"github.com/crimson-sun/intake/internal/output/file"
	"github.com/crimson-sun/intake/internal/output/multi"
	"github.com/crimson-sun/intake/internal/output/stdout"
	"github.com/crimson-sun/intake/internal/pipeline"
	"github.com/crimson-sun/intake/internal/source"

	// Register source implementations.
	_ "github.com/crimson-sun/intake/internal/source/glob"
	_ "github.com/crimson-sun/intake/internal/source/jsonl"
	_ "github.com/crimson-sun/intake/internal/source/lines"
)

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify many task descriptions and write NDJSON records",
		Long: `Batch reads requests from a source, classifies each one and writes one JSON
record per request, in source order. Requests that cannot be classified are
written as error records with a kind; they do not stop the run.

Sources:
  lines  one request per non-blank line (file or stdin)
  jsonl  one {"id": "...", "input": "..."} object per line (file or stdin)
  glob   one request per file matching a pattern such as "tickets/**/*.txt"`,
		Example: `  intake batch --source lines --input requests.txt
  intake batch --source glob --input 'inbox/**/*.txt' --output file --output-file drafts.ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.cfg.Source.Kind, "source", a.cfg.Source.Kind, "request source: lines, jsonl, glob (env INTAKE_SOURCE)")
	f.StringVar(&a.cfg.Source.Path, "input", a.cfg.Source.Path, `file to read ("-" for stdin) or glob pattern (env INTAKE_SOURCE_PATH)`)
	f.IntVar(&a.cfg.Engine.Concurrency, "concurrency", a.cfg.Engine.Concurrency, "requests classified at once (env INTAKE_CONCURRENCY)")
	f.StringVar(&a.cfg.Output.Format, "output", a.cfg.Output.Format, "destination: stdout, file, both (env INTAKE_OUTPUT)")
	f.StringVar(&a.cfg.Output.FilePath, "output-file", a.cfg.Output.FilePath, "NDJSON file for file output (env INTAKE_OUTPUT_FILE)")
	f.Int64Var(&a.cfg.Output.MaxSize, "output-max-size", a.cfg.Output.MaxSize, "rotate the output file past this many bytes, 0 disables (env INTAKE_OUTPUT_MAX_SIZE)")
	f.BoolVar(&a.cfg.Output.Pretty, "pretty", a.cfg.Output.Pretty, "indent stdout records (env INTAKE_OUTPUT_PRETTY)")
	f.BoolVar(&a.cfg.Output.Explain, "explain", a.cfg.Output.Explain, "include scores and matched cues (env INTAKE_EXPLAIN)")
	f.StringVar(&a.cfg.Metrics.File, "metrics-file", a.cfg.Metrics.File, "write Prometheus metrics here when the run ends (env INTAKE_METRICS_FILE)")
	return cmd
}

func (a *app) runBatch(cmd *cobra.Command) error {
	ctor, err := source.Get(a.cfg.Source.Kind)
	if err != nil {
		return err
	}

	out, err := a.buildOutput(cmd)
	if err != nil {
		return err
	}

	m := metrics.New()
	p := pipeline.New(ctor(), a.engine, out,
		pipeline.WithMetrics(m),
		pipeline.WithLogger(a.logger),
		pipeline.WithMaxInputRunes(a.cfg.Engine.MaxInputRunes),
		pipeline.WithConcurrency(a.cfg.Engine.Concurrency),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("batch starting",
		"source", a.cfg.Source.Kind,
		"input", a.cfg.Source.Path,
		"output", a.cfg.Output.Format,
		"concurrency", a.cfg.Engine.Concurrency,
	)
	sum, runErr := p.Run(ctx, source.Config{Path: a.cfg.Source.Path, Stdin: cmd.InOrStdin()})
	closeErr := p.Close()

	if a.cfg.Metrics.File != "" {
		if err := m.WriteTextfile(a.cfg.Metrics.File); err != nil {
			a.logger.Error("failed to write metrics", "file", a.cfg.Metrics.File, "error", err)
		}
	}

	if runErr != nil {
		if ctx.Err() != nil && cmd.Context().Err() == nil {
			a.logger.Info("batch interrupted", "written", sum.Drafted+sum.Failed)
			return context.Canceled
		}
		return runErr
	}
	if closeErr != nil {
		return fmt.Errorf("close output: %w", closeErr)
	}
	a.logger.Info("batch complete", "total", sum.Total, "drafted", sum.Drafted, "failed", sum.Failed)
	return nil
}

func (a *app) buildOutput(cmd *cobra.Command) (output.Output, error) {
	var outs []output.Output
	if a.cfg.OutputIsStdout() {
		outs = append(outs, stdout.New(cmd.OutOrStdout(), a.cfg.Output.Explain, a.cfg.Output.Pretty))
	}
	if a.cfg.Output.Format == "file" || a.cfg.Output.Format == "both" {
		f, err := file.New(a.cfg.Output.FilePath,
			file.WithExplain(a.cfg.Output.Explain),
			file.WithMaxSize(a.cfg.Output.MaxSize),
		)
		if err != nil {
			return nil, err
		}
		outs = append(outs, f)
	}
	if len(outs) == 1 {
		return outs[0], nil
	}
	return multi.New(outs...), nil
}
