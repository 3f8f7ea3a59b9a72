package sink

import (
	"bufio"
	"io"

	"github.com/teranos/partgen/errors"
	"github.com/teranos/partgen/partition"
)

// PartitionWriter writes one partition per line in generation order.
// Output is buffered; call Flush once a pair is done.
type PartitionWriter struct {
	w       *bufio.Writer
	written uint64
}

func NewPartitionWriter(w io.Writer) *PartitionWriter {
	return &PartitionWriter{w: bufio.NewWriter(w)}
}

func (pw *PartitionWriter) Write(p partition.Partition) error {
	if _, err := pw.w.WriteString(p.String()); err != nil {
		return errors.Wrap(err, "failed to write partition")
	}
	if err := pw.w.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "failed to write partition")
	}
	pw.written++
	return nil
}

func (pw *PartitionWriter) Flush() error {
	if err := pw.w.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush partitions")
	}
	return nil
}

// Written returns the number of partitions written so far
func (pw *PartitionWriter) Written() uint64 {
	return pw.written
}
