package display

import (
	"encoding/json"
	"io"

	"github.com/teranos/partgen/errors"
)

// MarshalJSON marshals JSON with pretty formatting for human-readable output
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// OutputJSON marshals v with MarshalJSON and writes it to w followed by a newline
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write JSON")
	}
	return nil
}
