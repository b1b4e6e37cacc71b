package format

import (
	"encoding/json"
	"io"

	"github.com/cxxtool/cxxhdr/cxx"
)

type JSONEncoder struct {
	w      io.Writer
	header *cxx.Header
	indent string
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w, indent: "  "}
}

// WithIndent sets the indentation string; empty means compact output.
func (e *JSONEncoder) WithIndent(indent string) *JSONEncoder {
	e.indent = indent
	return e
}

func (e *JSONEncoder) Encode(header *cxx.Header) error {
	e.header = header
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.indent == "" {
		return json.Marshal(e.header)
	}
	return json.MarshalIndent(e.header, "", e.indent)
}
