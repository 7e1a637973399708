package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/treeutil/internal/config"
)

// recordWriter streams records in the selected format as they are produced.
// JSON output is a single array and YAML output a single sequence, so a
// consumer sees one document however many records arrive.
type recordWriter[T any] struct {
	w      io.Writer
	format config.OutputFormat
	text   func(T) string
	n      int
}

func newRecordWriter[T any](w io.Writer, format config.OutputFormat, text func(T) string) *recordWriter[T] {
	return &recordWriter[T]{w: w, format: format, text: text}
}

func (rw *recordWriter[T]) Write(v T) error {
	defer func() { rw.n++ }()

	switch rw.format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(v, "  ", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		sep := ",\n  "
		if rw.n == 0 {
			sep = "[\n  "
		}
		_, err = fmt.Fprintf(rw.w, "%s%s", sep, data)
		return err
	case config.OutputYAML:
		data, err := yaml.Marshal([]T{v})
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = rw.w.Write(data)
		return err
	default:
		_, err := fmt.Fprintln(rw.w, rw.text(v))
		return err
	}
}

// Close terminates the document. It must be called even when nothing was
// written so that JSON and YAML consumers receive an empty list.
func (rw *recordWriter[T]) Close() error {
	var err error
	switch rw.format {
	case config.OutputJSON:
		if rw.n == 0 {
			_, err = fmt.Fprintln(rw.w, "[]")
		} else {
			_, err = fmt.Fprintln(rw.w, "\n]")
		}
	case config.OutputYAML:
		if rw.n == 0 {
			_, err = fmt.Fprintln(rw.w, "[]")
		}
	}
	return err
}

// writeDocument writes a single value as a standalone document.
func writeDocument[T any](w io.Writer, format config.OutputFormat, v T, text func(T) string) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, text(v))
		return err
	}
}
