package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/partgen/errors"
)

// Format selects how result records are rendered
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats returns the supported result formats in sorted order
func Formats() []string {
	return []string{string(FormatJSON), string(FormatText), string(FormatYAML)}
}

// ParseFormat resolves name to a Format
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", errors.NewUnknownNameError(errors.ErrUnknownFormat, "format", name, Formats())
}

// Record is the outcome of one (n, k) pair
type Record struct {
	RunID     string  `json:"run_id" yaml:"run_id"`
	Mode      string  `json:"mode" yaml:"mode"`
	Algorithm string  `json:"algorithm" yaml:"algorithm"`
	Visitor   string  `json:"visitor" yaml:"visitor"`
	N         int     `json:"n" yaml:"n"`
	K         int     `json:"k" yaml:"k"`
	Result    any     `json:"result" yaml:"result"`
	ElapsedMS float64 `json:"elapsed_ms" yaml:"elapsed_ms"`
	Cached    bool    `json:"cached" yaml:"cached"`
}

// ResultWriter writes one record per pair.
//
//	text: "n k result" per line
//	json: one JSON object per line
//	yaml: one document per record
type ResultWriter struct {
	w      io.Writer
	format Format
	json   *json.Encoder
	yaml   *yaml.Encoder
}

func NewResultWriter(w io.Writer, format Format) *ResultWriter {
	rw := &ResultWriter{w: w, format: format}
	switch format {
	case FormatJSON:
		rw.json = json.NewEncoder(w)
	case FormatYAML:
		rw.yaml = yaml.NewEncoder(w)
		rw.yaml.SetIndent(2)
	}
	return rw
}

func (rw *ResultWriter) Write(r Record) error {
	var err error
	switch rw.format {
	case FormatJSON:
		err = rw.json.Encode(r)
	case FormatYAML:
		err = rw.yaml.Encode(r)
	default:
		_, err = fmt.Fprintf(rw.w, "%d %d %s\n", r.N, r.K, FormatResult(r.Result))
	}
	if err != nil {
		return errors.Wrapf(err, "failed to write result for n=%d k=%d", r.N, r.K)
	}
	return nil
}

// Close finishes the yaml document stream. It does not close the
// underlying writer.
func (rw *ResultWriter) Close() error {
	if rw.yaml != nil {
		return rw.yaml.Close()
	}
	return nil
}

// FormatResult renders a visitor result on a single line
func FormatResult(v any) string {
	switch r := v.(type) {
	case []string:
		return "[" + strings.Join(r, ", ") + "]"
	case map[int]uint64:
		keys := make([]int, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%d:%d", k, r[k])
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return fmt.Sprint(v)
	}
}
