// Package sink provides the write-only destinations of a generation run:
// the partition stream and the per-pair result records.
package sink

import (
	"io"
	"os"

	"github.com/teranos/partgen/errors"
)

// Target names recognised by Open besides file paths
const (
	TargetDiscard   = ""
	TargetStdout    = "std"
	TargetStdoutAlt = "-"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Open resolves target to a writer: "" discards, "std" and "-" write to
// stdout, anything else creates or truncates the named file.
func Open(target string) (io.WriteCloser, error) {
	return OpenTo(target, os.Stdout)
}

// OpenTo is Open with stdout replaced by w. Closing the result never closes w.
func OpenTo(target string, stdout io.Writer) (io.WriteCloser, error) {
	switch target {
	case TargetDiscard:
		return nopCloser{io.Discard}, nil
	case TargetStdout, TargetStdoutAlt:
		return nopCloser{stdout}, nil
	}

	f, err := os.Create(target)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sink %s", target)
	}
	return f, nil
}

// IsDiscard reports whether target selects the discarding sink
func IsDiscard(target string) bool {
	return target == TargetDiscard
}
