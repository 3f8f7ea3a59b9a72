package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/partgen/batch"
	"github.com/teranos/partgen/config"
	"github.com/teranos/partgen/display"
	"github.com/teranos/partgen/engine"
	"github.com/teranos/partgen/errors"
	"github.com/teranos/partgen/internal/sysinfo"
	"github.com/teranos/partgen/logger"
	"github.com/teranos/partgen/partition"
	"github.com/teranos/partgen/sink"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Enumerate partitions for one or more (n, k) pairs",
		Long: `Enumerate partitions of n into exactly k parts and fold them with a visitor.

Pairs come either from -n and -k, or from a batch file (--file):
  plain text  whitespace separated integers, read two at a time
  .toml       [[pair]] tables with n and k keys

Targets for --pout and --rout: a file path, "std" (or "-") for stdout,
or "" to discard. Partitions are discarded unless --pout is given.

With --cache, Counter runs without a partition sink are answered from
precomputed counting tables instead of enumerating.

Examples:
  partgen generate -n 5 -k 2
  partgen generate --mode set --alg Lexicographic -n 10 -k 3 --visit Checksum
  partgen generate --file pairs.toml --rout results.json --format json
  partgen generate -n 9 -k 3 --pout std --rout ""`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	flags := cmd.Flags()
	flags.String("mode", partition.ModeInteger.String(), "Partition mode: int, set")
	flags.String("alg", partition.AlgorithmSimpleBacktracking, "Generation algorithm (see 'partgen list')")
	flags.String("visit", partition.VisitorCounter, "Visitor folding the partitions: Counter, Checksum, Sample, Histogram")
	flags.Int("sample", partition.DefaultSampleSize, "Partitions kept by the Sample visitor")
	flags.Bool("cache", false, "Answer Counter runs from counting tables when no partitions are written")
	flags.StringP("file", "f", "", "Batch file of (n, k) pairs")
	flags.IntP("size", "n", batch.Missing, "Number to partition (set size in set mode)")
	flags.IntP("parts", "k", batch.Missing, "Number of parts")
	flags.String("pout", sink.TargetDiscard, `Partition output: file path, "std", or "" to discard`)
	flags.String("rout", sink.TargetStdout, `Result output: file path, "std", or "" to discard`)
	flags.String("format", string(sink.FormatText), "Result format: text, json, yaml")

	cmd.MarkFlagsMutuallyExclusive("file", "size")
	cmd.MarkFlagsMutuallyExclusive("file", "parts")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.ComponentLogger("generate")

	v := config.GetViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return err
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputConfig) {
		log.Debugw("configuration loaded", "config", cfg.String())
	}

	// Names are checked before any sink is opened so a typo never truncates a file
	if err := cfg.Validate(); err != nil {
		return err
	}

	pairs, err := readPairs(cmd)
	if err != nil {
		return err
	}

	partitionsOut, err := openSink(cmd, cfg.Output.Partitions)
	if err != nil {
		return err
	}
	defer partitionsOut.Close()

	resultsOut, err := openSink(cmd, cfg.Output.Results)
	if err != nil {
		return err
	}
	defer resultsOut.Close()

	reg := partition.NewRegistry(partition.WithSampleSize(cfg.Generate.SampleSize))
	runner, err := engine.New(reg, engine.Options{
		Mode:       cfg.Generate.Mode,
		Algorithm:  cfg.Generate.Algorithm,
		Visitor:    cfg.Generate.Visitor,
		Cache:      cfg.Generate.Cache,
		Partitions: partitionsOut.writer,
		Results:    resultsOut.writer,
		Format:     sink.Format(cfg.Output.Format),
	})
	if err != nil {
		return err
	}

	summary, err := runner.Run(cmd.Context(), pairs)
	if err != nil {
		return err
	}

	if err := partitionsOut.Close(); err != nil {
		return err
	}
	if err := resultsOut.Close(); err != nil {
		return err
	}

	printer := display.NewPrinter(cmd.ErrOrStderr(), logger.Verbosity)
	if err := printer.Summary(summary); err != nil {
		return err
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputResources) {
		mem, err := sysinfo.ReadMemory()
		if err != nil {
			log.Warnw("memory stats unavailable", logger.FieldError, err)
		} else {
			log.Debugw("memory", logger.FieldRSSBytes, mem.ProcessRSS)
			printer.Memory(mem)
		}
	}
	return nil
}

func readPairs(cmd *cobra.Command) ([]batch.Pair, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		pairs, err := batch.ReadFile(path)
		if err != nil {
			return nil, err
		}
		logger.ComponentLogger("batch").Infow("batch file read", logger.FieldFile, path, logger.FieldPairs, len(pairs))
		return pairs, nil
	}

	n, _ := cmd.Flags().GetInt("size")
	k, _ := cmd.Flags().GetInt("parts")
	return batch.FromArgs(n, k)
}

// openedSink pairs an opened target with the writer handed to the engine.
// writer is nil for a discarded target so the engine skips that output.
type openedSink struct {
	target string
	closer io.Closer
	writer io.Writer
	closed bool
}

func openSink(cmd *cobra.Command, target string) (*openedSink, error) {
	w, err := sink.OpenTo(target, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	s := &openedSink{target: target, closer: w}
	if !sink.IsDiscard(target) {
		s.writer = w
	}
	return s, nil
}

// Close is safe to call twice; only the first call reports an error
func (s *openedSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.closer.Close(); err != nil {
		return errors.Wrapf(err, "failed to close sink %s", s.target)
	}
	return nil
}
