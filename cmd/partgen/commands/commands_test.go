package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/partgen/config"
	"github.com/teranos/partgen/errors"
	"github.com/teranos/partgen/version"
)

func init() {
	pterm.DisableStyling()
}

// isolate points HOME and the working directory at fresh temp dirs so no
// user or project config leaks into a test. Returns the working directory.
func isolate(t *testing.T) string {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", dir)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestGenerateSinglePair(t *testing.T) {
	isolate(t)

	stdout, stderr, err := execute(t, "generate", "-n", "5", "-k", "2")
	require.NoError(t, err)
	assert.Equal(t, "5 2 2\n", stdout)
	assert.Contains(t, stderr, "Time elapsed: ")
	assert.Equal(t, 1, strings.Count(stderr, "Time elapsed"))
}

func TestGenerateScenarios(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "one part",
			args: []string{"-n", "4", "-k", "1", "--pout", "std"},
			want: "4\n4 1 1\n",
		},
		{
			name: "more parts than n",
			args: []string{"-n", "3", "-k", "4", "--pout", "std"},
			want: "3 4 0\n",
		},
		{
			name: "set partitions",
			args: []string{"--mode", "set", "-n", "4", "-k", "2", "--pout", "-"},
			want: "{0,1,2}{3}\n{0,1,3}{2}\n{0,1}{2,3}\n{0,2,3}{1}\n{0,2}{1,3}\n{0,3}{1,2}\n{0}{1,2,3}\n4 2 7\n",
		},
		{
			name: "empty partition",
			args: []string{"--mode", "set", "-n", "0", "-k", "0"},
			want: "0 0 1\n",
		},
		{
			name: "hindenburg order",
			args: []string{"--alg", "Hindenburg", "-n", "9", "-k", "3", "--pout", "std", "--rout", ""},
			want: "7 1 1\n6 2 1\n5 3 1\n4 4 1\n5 2 2\n4 3 2\n3 3 3\n",
		},
		{
			name: "sample visitor",
			args: []string{"--visit", "Sample", "--sample", "2", "-n", "6", "-k", "3"},
			want: "6 3 [4 1 1, 3 2 1]\n",
		},
		{
			name: "histogram visitor",
			args: []string{"--mode", "set", "--visit", "Histogram", "-n", "4", "-k", "2"},
			want: "4 2 {2:3 3:4}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			stdout, _, err := execute(t, append([]string{"generate"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestGenerateUnknownNames(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		sentinel error
		hints    []string
	}{
		{"mode", []string{"--mode", "bag"}, errors.ErrUnknownMode, []string{"int", "set"}},
		{"algorithm", []string{"--alg", "Nope"}, errors.ErrUnknownAlgorithm, []string{"Hindenburg", "SimpleBacktracking"}},
		{"visitor", []string{"--visit", "counter"}, errors.ErrUnknownVisitor, []string{"Checksum", "Counter", "Histogram", "Sample"}},
		{"format", []string{"--format", "csv"}, errors.ErrUnknownFormat, []string{"json", "text", "yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			stdout, _, err := execute(t, append([]string{"generate", "-n", "5", "-k", "2"}, tt.args...)...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.Equal(t, tt.hints, errors.GetAllHints(err))
			assert.Empty(t, stdout)
		})
	}
}

func TestGenerateBadNameLeavesSinkUntouched(t *testing.T) {
	dir := isolate(t)
	pout := filepath.Join(dir, "partitions.txt")
	require.NoError(t, os.WriteFile(pout, []byte("keep me\n"), 0644))

	_, _, err := execute(t, "generate", "--alg", "Nope", "-n", "5", "-k", "2", "--pout", pout)
	require.Error(t, err)

	data, err := os.ReadFile(pout)
	require.NoError(t, err)
	assert.Equal(t, "keep me\n", string(data))
}

func TestGenerateMissingInput(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "generate", "-n", "5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingInput))
}

func TestGenerateFileAndPairExclusive(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "generate", "--file", "pairs.txt", "-n", "5", "-k", "2")
	require.Error(t, err)
}

func TestGenerateBatchFile(t *testing.T) {
	dir := isolate(t)
	pairs := filepath.Join(dir, "pairs.txt")
	require.NoError(t, os.WriteFile(pairs, []byte("5 2\n4 1\n3 4\n"), 0644))
	results := filepath.Join(dir, "results.json")
	partitions := filepath.Join(dir, "partitions.txt")

	stdout, _, err := execute(t, "generate", "--file", pairs, "--rout", results, "--pout", partitions, "--format", "json")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(partitions)
	require.NoError(t, err)
	assert.Equal(t, "4 1\n3 2\n4\n", string(data))

	f, err := os.Open(results)
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.Len(t, records, 3)
	assert.Equal(t, float64(2), records[0]["result"])
	assert.Equal(t, float64(1), records[1]["result"])
	assert.Equal(t, float64(0), records[2]["result"])
	assert.Equal(t, records[0]["run_id"], records[2]["run_id"])
	assert.NotEmpty(t, records[0]["run_id"])
}

func TestGenerateTOMLBatch(t *testing.T) {
	dir := isolate(t)
	pairs := filepath.Join(dir, "pairs.toml")
	require.NoError(t, os.WriteFile(pairs, []byte("[[pair]]\nn = 10\nk = 3\n\n[[pair]]\nn = 10\nk = 5\n"), 0644))

	stdout, _, err := execute(t, "generate", "--mode", "set", "--alg", "Lexicographic", "-f", pairs, "--cache")
	require.NoError(t, err)
	assert.Equal(t, "10 3 9330\n10 5 42525\n", stdout)
}

func TestGenerateInvalidBatch(t *testing.T) {
	dir := isolate(t)
	pairs := filepath.Join(dir, "pairs.txt")
	require.NoError(t, os.WriteFile(pairs, []byte("5 2\n4\n"), 0644))

	_, _, err := execute(t, "generate", "--file", pairs)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestGenerateCacheRecords(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "generate", "-n", "100", "-k", "10", "--cache", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "result: 2977866")
	assert.Contains(t, stdout, "cached: true")
}

func TestGenerateUsesProjectConfig(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(`
[generate]
mode = "set"
visitor = "Checksum"
`), 0644))

	stdout, _, err := execute(t, "generate", "-n", "4", "-k", "2")
	require.NoError(t, err)
	fields := strings.Fields(stdout)
	require.Len(t, fields, 3)
	assert.Equal(t, []string{"4", "2"}, fields[:2])
	assert.Len(t, fields[2], 16, "checksum is 16 hex digits")

	// flags still win over the file
	stdout, _, err = execute(t, "generate", "--visit", "Counter", "-n", "4", "-k", "2")
	require.NoError(t, err)
	assert.Equal(t, "4 2 7\n", stdout)
}

func TestGenerateEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PARTGEN_GENERATE_MODE", "set")

	stdout, _, err := execute(t, "generate", "-n", "4", "-k", "2")
	require.NoError(t, err)
	assert.Equal(t, "4 2 7\n", stdout)
}

func TestGenerateVerbose(t *testing.T) {
	isolate(t)

	_, stderr, err := execute(t, "generate", "-v", "-n", "5", "-k", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "batch started")
	assert.Contains(t, stderr, "SimpleBacktracking")
	assert.Contains(t, stderr, "Time elapsed")
}

func TestList(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "list")
	require.NoError(t, err)
	for _, name := range []string{"Hindenburg", "Lexicographic", "SimpleBacktracking", "Counter", "Checksum", "Sample", "Histogram"} {
		assert.Contains(t, stdout, name)
	}

	stdout, _, err = execute(t, "list", "--mode", "set")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Lexicographic")
	assert.NotContains(t, stdout, "Hindenburg")

	_, _, err = execute(t, "list", "--mode", "Set")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownMode))
}

func TestConfigShow(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "config", "show", "--format", "json")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, "int", cfg.Generate.Mode)
	assert.Equal(t, "std", cfg.Output.Results)

	config.Reset()
	stdout, _, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[generate]")

	config.Reset()
	stdout, _, err = execute(t, "config", "show", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sample_size: 5")

	_, _, err = execute(t, "config", "show", "--format", "ini")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownFormat))
}

func TestConfigValidate(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := execute(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")

	config.Reset()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("[output]\nformat = \"csv\"\n"), 0644))
	_, _, err = execute(t, "config", "validate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownFormat))
}

func TestConfigValidateFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("PARTGEN_OUTPUT_FORMAT", "csv")

	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("[generate]\nmode = \"set\"\nalgorithm = \"Lexicographic\"\n"), 0644))
	stdout, _, err := execute(t, "config", "validate", "--file", good)
	require.NoError(t, err, "environment is ignored for a single file")
	assert.Contains(t, stdout, "Configuration is valid")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[generate]\nalgorithm = \"Lexicographic\"\n"), 0644))
	_, _, err = execute(t, "config", "validate", "--file", bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownAlgorithm), "Lexicographic is a set algorithm")

	_, _, err = execute(t, "config", "validate", "--file", filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestConfigGet(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "config", "get", "generate.algorithm")
	require.NoError(t, err)
	assert.Equal(t, "SimpleBacktracking\n", stdout)

	_, _, err = execute(t, "config", "get", "generate.nope")
	require.Error(t, err)
}

func TestConfigWhere(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("[generate]\ncache = true\n"), 0644))

	stdout, _, err := execute(t, "config", "where")
	require.NoError(t, err)
	assert.Contains(t, stdout, "generate.cache")
	assert.Contains(t, stdout, "project")
	assert.Contains(t, stdout, "default")
}

func TestVersion(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "partgen dev")
	assert.Contains(t, stdout, "Platform: ")

	stdout, _, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "dev", info.Version)
	assert.False(t, info.Release)
}

func TestVersionCheck(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "version", "--check", ">= 1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partgen dev does not satisfy >= 1.0")

	old := version.Version
	version.Version = "v1.4.0"
	t.Cleanup(func() { version.Version = old })

	_, _, err = execute(t, "version", "--check", ">= 1.2, < 2")
	require.NoError(t, err)

	_, _, err = execute(t, "version", "--check", "^2")
	require.Error(t, err)

	_, _, err = execute(t, "version", "--check", "not a constraint")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid version constraint")
}
