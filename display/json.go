// Package display renders command results for humans or machines.
package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/teranos/clustergen/errors"
)

// MarshalJSON pretty-prints v with two-space indentation
func MarshalJSON(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal JSON")
	}
	return data, nil
}

// OutputJSON writes v to w as indented JSON followed by a newline
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
