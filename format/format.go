// Package format renders parsed header summaries for output.
package format

import (
	"encoding"

	"github.com/cxxtool/cxxhdr/cxx"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(header *cxx.Header) error
}
