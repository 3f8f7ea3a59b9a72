// Package batch reads the (n, k) pairs a generation run works through.
//
// Plain files hold whitespace separated integers read two at a time, so
// "5 2\n3 4" and "5\n2 3\n4" both yield (5,2) then (3,4). Files ending in
// .toml hold an array of tables:
//
//	[[pair]]
//	n = 5
//	k = 2
package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/partgen/errors"
)

// Missing marks an n or k that was not supplied on the command line
const Missing = -1

// Pair is one enumeration request
type Pair struct {
	N int `toml:"n" json:"n" yaml:"n"`
	K int `toml:"k" json:"k" yaml:"k"`
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.N, p.K)
}

// FromArgs builds the single-pair batch of a command line invocation
func FromArgs(n, k int) ([]Pair, error) {
	var missing []string
	if n < 0 {
		missing = append(missing, "-n")
	}
	if k < 0 {
		missing = append(missing, "-k")
	}
	if len(missing) > 0 {
		err := errors.Wrapf(errors.ErrMissingInput, "no value for %s", strings.Join(missing, " and "))
		return nil, errors.WithHint(err, "pass both -n and -k, or a batch file with --file")
	}
	return []Pair{{N: n, K: k}}, nil
}

// ReadFile reads a batch file, choosing the format by extension
func ReadFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open batch file %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		pairs, err := DecodeTOML(f)
		return pairs, errors.Wrapf(err, "batch file %s", path)
	}
	pairs, err := Parse(f)
	return pairs, errors.Wrapf(err, "batch file %s", path)
}

// Parse reads whitespace separated integer pairs from r
func Parse(r io.Reader) ([]Pair, error) {
	var pairs []Pair
	var pending bool
	var first, firstLine, lineNo int

	// Lines have no length limit
	br := bufio.NewReader(r)

	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, errors.Wrap(readErr, "failed to read batch")
		}
		if line != "" {
			lineNo++
		}
		for _, field := range strings.Fields(line) {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "line %d: %q is not an integer", lineNo, field)
			}
			if !pending {
				first, firstLine, pending = v, lineNo, true
				continue
			}
			pairs = append(pairs, Pair{N: first, K: v})
			pending = false
		}
		if readErr == io.EOF {
			break
		}
	}
	if pending {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "line %d: n=%d has no matching k", firstLine, first)
	}
	return pairs, nil
}

type tomlPair struct {
	N *int `toml:"n"`
	K *int `toml:"k"`
}

type tomlBatch struct {
	Pair []tomlPair `toml:"pair"`
}

// DecodeTOML reads [[pair]] tables from r. Keys other than n and k are rejected.
func DecodeTOML(r io.Reader) ([]Pair, error) {
	var b tomlBatch
	md, err := toml.NewDecoder(r).Decode(&b)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "%v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown key %s", undecoded[0])
	}

	pairs := make([]Pair, 0, len(b.Pair))
	for i, p := range b.Pair {
		if p.N == nil || p.K == nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "pair %d: both n and k are required", i+1)
		}
		pairs = append(pairs, Pair{N: *p.N, K: *p.K})
	}
	return pairs, nil
}
