package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotPDF is returned when data does not look like a PDF document.
var ErrNotPDF = errors.New("not a pdf document")

// Info describes a rendered PDF.
type Info struct {
	Pages int
	Text  string
}

// InspectPDF returns the page count and plain text of a PDF payload.
func InspectPDF(data []byte) (Info, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF")) {
		return Info{}, ErrNotPDF
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, fmt.Errorf("open pdf: %w", err)
	}
	info := Info{Pages: reader.NumPage()}

	plain, err := reader.GetPlainText()
	if err != nil {
		return info, fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return info, fmt.Errorf("pdf text: %w", err)
	}
	info.Text = strings.TrimSpace(buf.String())
	return info, nil
}
