package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/partgen/batch"
	"github.com/teranos/partgen/errors"
	"github.com/teranos/partgen/logger"
	"github.com/teranos/partgen/partition"
	"github.com/teranos/partgen/sink"
)

type outputs struct {
	partitions bytes.Buffer
	results    bytes.Buffer
}

func newRunner(t *testing.T, opts Options, out *outputs) *Runner {
	t.Helper()
	if out != nil {
		opts.Partitions = &out.partitions
		opts.Results = &out.results
	}
	if opts.Algorithm == "" {
		opts.Algorithm = partition.AlgorithmSimpleBacktracking
	}
	if opts.Visitor == "" {
		opts.Visitor = partition.VisitorCounter
	}
	r, err := New(partition.NewRegistry(), opts)
	require.NoError(t, err)
	return r
}

func TestIntegerScenarios(t *testing.T) {
	var out outputs
	r := newRunner(t, Options{Mode: "int"}, &out)

	summary, err := r.Run(context.Background(), []batch.Pair{{N: 5, K: 2}, {N: 4, K: 1}, {N: 3, K: 4}})
	require.NoError(t, err)

	assert.Equal(t, "4 1\n3 2\n4\n", out.partitions.String())
	assert.Equal(t, "5 2 2\n4 1 1\n3 4 0\n", out.results.String())

	require.Len(t, summary.Reports, 3)
	assert.Equal(t, uint64(2), summary.Reports[0].Result)
	assert.Equal(t, uint64(1), summary.Reports[1].Result, "visitor is reset between pairs")
	assert.Equal(t, uint64(0), summary.Reports[2].Result)
	assert.Equal(t, partition.ModeInteger, summary.Mode)
	assert.Equal(t, "SimpleBacktracking", summary.Algorithm)
	assert.Equal(t, "Counter", summary.Visitor)
}

func TestSetScenario(t *testing.T) {
	for _, alg := range []string{partition.AlgorithmSimpleBacktracking, partition.AlgorithmLexicographic} {
		t.Run(alg, func(t *testing.T) {
			var out outputs
			r := newRunner(t, Options{Mode: "set", Algorithm: alg}, &out)

			_, err := r.Run(context.Background(), []batch.Pair{{N: 4, K: 2}})
			require.NoError(t, err)

			want := []string{
				"{0,1,2}{3}",
				"{0,1,3}{2}",
				"{0,1}{2,3}",
				"{0,2,3}{1}",
				"{0,2}{1,3}",
				"{0,3}{1,2}",
				"{0}{1,2,3}",
			}
			assert.Equal(t, strings.Join(want, "\n")+"\n", out.partitions.String())
			assert.Equal(t, "4 2 7\n", out.results.String())
		})
	}
}

func TestEmptyPartition(t *testing.T) {
	for _, mode := range []string{"int", "set"} {
		t.Run(mode, func(t *testing.T) {
			var out outputs
			r := newRunner(t, Options{Mode: mode}, &out)

			summary, err := r.Run(context.Background(), []batch.Pair{{N: 0, K: 0}})
			require.NoError(t, err)

			assert.Equal(t, "\n", out.partitions.String(), "one empty partition")
			assert.Equal(t, uint64(1), summary.Reports[0].Result)
		})
	}
}

func TestDegenerateIsNotAnError(t *testing.T) {
	var out outputs
	r := newRunner(t, Options{Mode: "set"}, &out)

	summary, err := r.Run(context.Background(), []batch.Pair{{N: 3, K: 0}, {N: -1, K: 2}, {N: 2, K: 5}})
	require.NoError(t, err)
	assert.Empty(t, out.partitions.String())
	for _, rep := range summary.Reports {
		assert.Equal(t, uint64(0), rep.Result)
	}
}

func TestUnknownNames(t *testing.T) {
	reg := partition.NewRegistry()

	tests := []struct {
		name     string
		opts     Options
		sentinel error
		hints    []string
	}{
		{
			name:     "mode",
			opts:     Options{Mode: "multiset", Algorithm: "SimpleBacktracking", Visitor: "Counter"},
			sentinel: errors.ErrUnknownMode,
			hints:    []string{"int", "set"},
		},
		{
			name:     "algorithm",
			opts:     Options{Mode: "int", Algorithm: "Lexicographic", Visitor: "Counter"},
			sentinel: errors.ErrUnknownAlgorithm,
			hints:    []string{"Hindenburg", "SimpleBacktracking"},
		},
		{
			name:     "algorithm case",
			opts:     Options{Mode: "set", Algorithm: "lexicographic", Visitor: "Counter"},
			sentinel: errors.ErrUnknownAlgorithm,
			hints:    []string{"Lexicographic", "SimpleBacktracking"},
		},
		{
			name:     "visitor",
			opts:     Options{Mode: "int", Algorithm: "Hindenburg", Visitor: "Printer"},
			sentinel: errors.ErrUnknownVisitor,
			hints:    []string{"Checksum", "Counter", "Histogram", "Sample"},
		},
		{
			name:     "format",
			opts:     Options{Mode: "int", Algorithm: "Hindenburg", Visitor: "Counter", Format: "csv"},
			sentinel: errors.ErrUnknownFormat,
			hints:    []string{"json", "text", "yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(reg, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.True(t, errors.IsConfigError(err))
			assert.Equal(t, tt.hints, errors.GetAllHints(err))
		})
	}
}

func TestCache(t *testing.T) {
	pairs := []batch.Pair{{N: 10, K: 3}, {N: 30, K: 5}, {N: 0, K: 0}, {N: 3, K: 4}}

	for _, mode := range []string{"int", "set"} {
		t.Run(mode, func(t *testing.T) {
			enumerated, err := newRunner(t, Options{Mode: mode}, nil).Run(context.Background(), pairs[:1])
			require.NoError(t, err)

			cached, err := newRunner(t, Options{Mode: mode, Cache: true}, nil).Run(context.Background(), pairs[:1])
			require.NoError(t, err)

			assert.False(t, enumerated.Reports[0].Cached)
			assert.True(t, cached.Reports[0].Cached)
			assert.Equal(t, enumerated.Reports[0].Result, cached.Reports[0].Result)
		})
	}

	counts := partition.NewCounts()
	summary, err := newRunner(t, Options{Mode: "int", Cache: true, Counts: counts}, nil).Run(context.Background(), pairs)
	require.NoError(t, err)
	results := make([]any, len(summary.Reports))
	for i, rep := range summary.Reports {
		assert.True(t, rep.Cached)
		results[i] = rep.Result
	}
	assert.Equal(t, []any{uint64(8), uint64(377), uint64(1), uint64(0)}, results)
}

func TestPairsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.InitializeWithWriter(&buf, true, logger.VerbosityDebug))
	t.Cleanup(func() { _ = logger.InitializeWithWriter(io.Discard, false, logger.VerbosityUser) })

	_, err := newRunner(t, Options{Mode: "int", Cache: true}, nil).Run(context.Background(), []batch.Pair{{N: 10, K: 3}})
	require.NoError(t, err)

	var sawCount, sawResult bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		switch entry["msg"] {
		case "count served from table":
			sawCount = true
			assert.Equal(t, float64(8), entry[logger.FieldCount])
		case "pair finished":
			sawResult = true
			assert.Equal(t, "8", entry[logger.FieldResult])
			assert.Equal(t, true, entry[logger.FieldCached])
		}
	}
	assert.True(t, sawCount, "cache hit logged")
	assert.True(t, sawResult, "pair result logged")
}

func TestCacheBypassed(t *testing.T) {
	t.Run("partition sink set", func(t *testing.T) {
		var out outputs
		summary, err := newRunner(t, Options{Mode: "int", Cache: true}, &out).Run(context.Background(), []batch.Pair{{N: 5, K: 2}})
		require.NoError(t, err)
		assert.False(t, summary.Reports[0].Cached)
		assert.Equal(t, "4 1\n3 2\n", out.partitions.String())
	})

	t.Run("visitor is not Counter", func(t *testing.T) {
		summary, err := newRunner(t, Options{Mode: "int", Cache: true, Visitor: "Checksum"}, nil).Run(context.Background(), []batch.Pair{{N: 5, K: 2}})
		require.NoError(t, err)
		assert.False(t, summary.Reports[0].Cached)
	})
}

func TestVisitorResults(t *testing.T) {
	pair := []batch.Pair{{N: 6, K: 3}}

	summary, err := newRunner(t, Options{Mode: "int", Visitor: "Sample"}, nil).Run(context.Background(), pair)
	require.NoError(t, err)
	assert.Equal(t, []string{"4 1 1", "3 2 1", "2 2 2"}, summary.Reports[0].Result)

	summary, err = newRunner(t, Options{Mode: "int", Visitor: "Histogram"}, nil).Run(context.Background(), pair)
	require.NoError(t, err)
	assert.Equal(t, map[int]uint64{4: 1, 3: 1, 2: 1}, summary.Reports[0].Result)
}

func TestIdempotentChecksum(t *testing.T) {
	var out outputs
	r := newRunner(t, Options{Mode: "int", Algorithm: "Hindenburg", Visitor: "Checksum"}, &out)

	summary, err := r.Run(context.Background(), []batch.Pair{{N: 20, K: 4}, {N: 20, K: 4}})
	require.NoError(t, err)
	assert.Equal(t, summary.Reports[0].Result, summary.Reports[1].Result)

	half := out.partitions.Len() / 2
	assert.Equal(t, out.partitions.String()[:half], out.partitions.String()[half:])
}

func TestJSONRecords(t *testing.T) {
	var out outputs
	r := newRunner(t, Options{Mode: "set", Algorithm: "Lexicographic", Format: sink.FormatJSON}, &out)

	summary, err := r.Run(context.Background(), []batch.Pair{{N: 4, K: 2}})
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.results.Bytes(), &rec))
	assert.Equal(t, r.RunID(), rec["run_id"])
	assert.Equal(t, summary.RunID, rec["run_id"])
	assert.Equal(t, "set", rec["mode"])
	assert.Equal(t, "Lexicographic", rec["algorithm"])
	assert.Equal(t, float64(7), rec["result"])
	assert.Equal(t, false, rec["cached"])
}

func TestElapsedIsSummed(t *testing.T) {
	summary, err := newRunner(t, Options{Mode: "set"}, nil).Run(context.Background(), []batch.Pair{{N: 9, K: 3}, {N: 8, K: 4}})
	require.NoError(t, err)

	var total int64
	for _, rep := range summary.Reports {
		total += int64(rep.Elapsed)
	}
	assert.Equal(t, total, int64(summary.Elapsed))
}

func TestContextCheckedBetweenPairs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out outputs
	summary, err := newRunner(t, Options{Mode: "int"}, &out).Run(ctx, []batch.Pair{{N: 5, K: 2}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, summary.Reports)
	assert.Empty(t, out.results.String())
}

func TestRunOnce(t *testing.T) {
	r := newRunner(t, Options{Mode: "int"}, nil)
	_, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	_, err = r.Run(context.Background(), nil)
	require.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestSinkFailureAborts(t *testing.T) {
	t.Run("partitions", func(t *testing.T) {
		var results bytes.Buffer
		r, err := New(partition.NewRegistry(), Options{
			Mode: "int", Algorithm: "SimpleBacktracking", Visitor: "Counter",
			Partitions: failingWriter{}, Results: &results,
		})
		require.NoError(t, err)

		summary, err := r.Run(context.Background(), []batch.Pair{{N: 5, K: 2}, {N: 6, K: 2}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, io.ErrClosedPipe))
		assert.Empty(t, summary.Reports)
		assert.Empty(t, results.String())
	})

	t.Run("results", func(t *testing.T) {
		r, err := New(partition.NewRegistry(), Options{
			Mode: "int", Algorithm: "SimpleBacktracking", Visitor: "Counter",
			Results: failingWriter{},
		})
		require.NoError(t, err)

		_, err = r.Run(context.Background(), []batch.Pair{{N: 5, K: 2}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, io.ErrClosedPipe))
	})
}
