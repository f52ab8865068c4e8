package export

import (
	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

// Encoder turns a formatted report into the bytes of the requested output
// format.
type Encoder interface {
	Encode(report domain.Report, format domain.ReportFormat) ([]byte, error)
}

type encoder struct{}

func NewEncoder() Encoder {
	return &encoder{}
}

func (e *encoder) Encode(report domain.Report, format domain.ReportFormat) ([]byte, error) {
	switch format {
	case domain.ReportFormatCSV:
		return encodeCSV(report)
	case domain.ReportFormatXLSX:
		return encodeXLSX(report)
	default:
		return nil, domain.NewValidationError("unsupported report format %q", format)
	}
}
