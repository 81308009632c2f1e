package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// StructuredLayout renders styled sections with automatic page breaks.
type StructuredLayout struct {
	// Compress toggles stream compression; tests disable it to inspect text.
	Compress bool
}

// NewStructuredLayout returns a compressed structured layout.
func NewStructuredLayout() *StructuredLayout {
	return &StructuredLayout{Compress: true}
}

// Name implements Layout.
func (l *StructuredLayout) Name() string { return "structured" }

// Render implements Layout.
func (l *StructuredLayout) Render(ctx context.Context, blocks []Block) (data []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("structured layout panic: %v", r)
		}
	}()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(l.Compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Curriculum Vitae", true)
	pdf.AddPage()
	warnLossyText(l.Name(), blocks)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin

	for i, b := range blocks {
		style := StyleMap[b.Kind]
		if style.SpaceAbove > 0 && i > 0 {
			pdf.Ln(style.SpaceAbove)
		}
		pdf.SetFont(style.Family, style.Style, style.Size)
		pdf.SetTextColor(style.Color[0], style.Color[1], style.Color[2])
		pdf.MultiCell(0, style.LineHeight, tr(b.Text), "", "L", false)

		if b.Kind == BlockHeading {
			y := pdf.GetY()
			pdf.SetDrawColor(headingColor[0], headingColor[1], headingColor[2])
			pdf.SetLineWidth(0.3)
			pdf.Line(pageMargin, y, pageMargin+contentWidth, y)
		}
		if style.SpaceBelow > 0 {
			pdf.Ln(style.SpaceBelow)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("structured layout: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("structured layout output: %w", err)
	}
	return buf.Bytes(), nil
}
