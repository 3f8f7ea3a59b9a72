// Package engine runs a batch of (n, k) pairs through one generator and one
// visitor, writing partitions and per-pair results to the configured sinks.
//
// Names are resolved once in New, so a misspelt algorithm or visitor fails
// before any work is done:
//
//	runner, err := engine.New(partition.NewRegistry(), engine.Options{
//	    Mode:      "int",
//	    Algorithm: partition.AlgorithmHindenburg,
//	    Visitor:   partition.VisitorCounter,
//	    Results:   os.Stdout,
//	})
//	if err != nil {
//	    return err // errors.GetAllHints(err) lists the legal names
//	}
//	summary, err := runner.Run(ctx, pairs)
package engine

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/partgen/batch"
	"github.com/teranos/partgen/errors"
	"github.com/teranos/partgen/logger"
	"github.com/teranos/partgen/partition"
	"github.com/teranos/partgen/sink"
)

// Options selects what a Runner enumerates and where output goes
type Options struct {
	Mode      string
	Algorithm string
	Visitor   string

	// Cache answers Counter runs from the counting tables when no
	// partition sink is set.
	Cache bool

	// Partitions receives one line per partition; nil writes none.
	Partitions io.Writer
	// Results receives one record per pair; nil writes none.
	Results io.Writer
	// Format of the result records; empty means text.
	Format sink.Format

	// Counts is shared across runners when set; a fresh table is built otherwise.
	Counts *partition.Counts
}

// Report is the outcome of one pair
type Report struct {
	Pair    batch.Pair
	Result  any
	Elapsed time.Duration
	Cached  bool
}

// Summary is the outcome of a batch
type Summary struct {
	RunID     string
	Mode      partition.Mode
	Algorithm string
	Visitor   string
	Reports   []Report
	// Elapsed is the sum of the per-pair times
	Elapsed time.Duration
}

// Runner executes one batch
type Runner struct {
	runID     string
	mode      partition.Mode
	generator partition.Generator
	visitor   partition.Visitor
	visitName string
	counts    *partition.Counts

	partitions *sink.PartitionWriter
	results    *sink.ResultWriter
	used       bool

	logger *zap.SugaredLogger
}

// New resolves the mode, algorithm and visitor of opts against reg
func New(reg *partition.Registry, opts Options) (*Runner, error) {
	mode, err := partition.ParseMode(opts.Mode)
	if err != nil {
		return nil, err
	}

	gen, ok := reg.Generator(mode, opts.Algorithm)
	if !ok {
		return nil, errors.NewUnknownNameError(errors.ErrUnknownAlgorithm,
			mode.String()+" algorithm", opts.Algorithm, reg.Algorithms(mode))
	}

	visitor, ok := reg.Visitor(opts.Visitor)
	if !ok {
		return nil, errors.NewUnknownNameError(errors.ErrUnknownVisitor, "visitor", opts.Visitor, reg.Visitors())
	}

	format := opts.Format
	if format == "" {
		format = sink.FormatText
	}
	if _, err := sink.ParseFormat(string(format)); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	r := &Runner{
		runID:     runID,
		mode:      mode,
		generator: gen,
		visitor:   visitor,
		visitName: opts.Visitor,
		logger:    logger.ChildLogger(logger.ComponentLogger("engine"), logger.FieldRunID, runID),
	}

	if opts.Partitions != nil {
		r.partitions = sink.NewPartitionWriter(opts.Partitions)
	}
	if opts.Results != nil {
		r.results = sink.NewResultWriter(opts.Results, format)
	}

	// Only plain counts can skip enumeration, and only when nobody wants the partitions
	if opts.Cache && opts.Visitor == partition.VisitorCounter && r.partitions == nil {
		r.counts = opts.Counts
		if r.counts == nil {
			r.counts = partition.NewCounts()
		}
	}

	return r, nil
}

// RunID identifies this runner in logs and result records
func (r *Runner) RunID() string {
	return r.runID
}

// Run processes pairs in order. The context is checked between pairs; a
// pair that has started runs to completion. Run may be called once.
func (r *Runner) Run(ctx context.Context, pairs []batch.Pair) (Summary, error) {
	summary := Summary{
		RunID:     r.runID,
		Mode:      r.mode,
		Algorithm: r.generator.Name(),
		Visitor:   r.visitName,
		Reports:   make([]Report, 0, len(pairs)),
	}
	if r.used {
		return summary, errors.New("runner already used")
	}
	r.used = true

	r.logger.Infow("batch started",
		logger.FieldMode, r.mode.String(),
		logger.FieldAlgorithm, summary.Algorithm,
		logger.FieldVisitor, summary.Visitor,
		logger.FieldPairs, len(pairs),
		logger.FieldCached, r.counts != nil,
	)

	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrapf(err, "batch stopped before pair %d of %d", i+1, len(pairs))
		}

		report, err := r.runPair(pair)
		if err != nil {
			return summary, errors.Wrapf(err, "pair %s", pair)
		}
		summary.Reports = append(summary.Reports, report)
		summary.Elapsed += report.Elapsed

		if err := r.writeResult(report); err != nil {
			return summary, err
		}
	}

	if r.results != nil {
		if err := r.results.Close(); err != nil {
			return summary, errors.Wrap(err, "failed to finish results")
		}
	}

	r.logger.Infow("batch finished",
		logger.FieldPairs, len(summary.Reports),
		logger.FieldDurationMS, summary.Elapsed.Milliseconds(),
	)
	return summary, nil
}

func (r *Runner) runPair(pair batch.Pair) (Report, error) {
	report := Report{Pair: pair}
	r.visitor.Reset()

	if r.counts != nil {
		start := time.Now()
		count, err := r.counts.Count(r.mode, pair.N, pair.K)
		switch {
		case err == nil:
			r.logger.Debugw("count served from table", logger.FieldCount, count)
			report.Result = count
			report.Elapsed = time.Since(start)
			report.Cached = true
			r.logPair(report)
			return report, nil
		case errors.Is(err, errors.ErrCountOverflow):
			r.logger.Warnw("count exceeds 64 bits, enumerating instead",
				logger.FieldN, pair.N, logger.FieldK, pair.K)
		default:
			return report, err
		}
	}

	trace := logger.ShouldOutput(logger.Verbosity, logger.OutputPartitions)
	visit := func(p partition.Partition) error {
		if r.partitions != nil {
			if err := r.partitions.Write(p); err != nil {
				return err
			}
		}
		if trace {
			r.logger.Debugw("partition", logger.FieldPartition, p.String())
		}
		r.visitor.Accept(p)
		return nil
	}

	start := time.Now()
	err := r.generator.Generate(pair.N, pair.K, visit)
	report.Elapsed = time.Since(start)
	if err != nil {
		return report, err
	}

	if r.partitions != nil {
		if err := r.partitions.Flush(); err != nil {
			return report, err
		}
	}

	report.Result = r.visitor.Result()
	r.logPair(report)
	return report, nil
}

func (r *Runner) logPair(report Report) {
	if logger.ShouldOutput(logger.Verbosity, logger.OutputTiming) {
		r.logger.Debugw("pair finished",
			logger.FieldN, report.Pair.N,
			logger.FieldK, report.Pair.K,
			logger.FieldResult, sink.FormatResult(report.Result),
			logger.FieldCached, report.Cached,
			logger.FieldDurationMS, report.Elapsed.Milliseconds(),
		)
		return
	}
	r.logger.Infow("pair finished",
		logger.FieldN, report.Pair.N,
		logger.FieldK, report.Pair.K,
		logger.FieldResult, sink.FormatResult(report.Result),
	)
}

func (r *Runner) writeResult(report Report) error {
	if r.results == nil {
		return nil
	}
	return r.results.Write(sink.Record{
		RunID:     r.runID,
		Mode:      r.mode.String(),
		Algorithm: r.generator.Name(),
		Visitor:   r.visitName,
		N:         report.Pair.N,
		K:         report.Pair.K,
		Result:    report.Result,
		ElapsedMS: float64(report.Elapsed) / float64(time.Millisecond),
		Cached:    report.Cached,
	})
}
