package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	basicWrapChars  = 95
	basicFontSize   = 10
	basicLineHeight = 5.0
	basicTop        = 20.0
	basicLeft       = 15.0
	basicBottom     = 20.0
)

// BasicLayout draws plain text lines on a bare canvas. It is the fallback
// when the structured layout fails.
type BasicLayout struct {
	Compress bool
}

// NewBasicLayout returns a compressed basic layout.
func NewBasicLayout() *BasicLayout {
	return &BasicLayout{Compress: true}
}

// Name implements Layout.
func (l *BasicLayout) Name() string { return "basic" }

// Render implements Layout.
func (l *BasicLayout) Render(ctx context.Context, blocks []Block) (data []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("basic layout panic: %v", r)
		}
	}()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(l.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	warnLossyText(l.Name(), blocks)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()

	y := basicTop
	for _, line := range basicLines(blocks) {
		if y > pageHeight-basicBottom {
			pdf.AddPage()
			y = basicTop
		}
		if line.text != "" {
			pdf.SetFont("Helvetica", line.style, basicFontSize)
			pdf.Text(basicLeft, y, tr(line.text))
		}
		y += basicLineHeight
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("basic layout: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("basic layout output: %w", err)
	}
	return buf.Bytes(), nil
}

type basicLine struct {
	text  string
	style string
}

func basicLines(blocks []Block) []basicLine {
	var lines []basicLine
	for _, b := range blocks {
		style := ""
		text := b.Text
		switch b.Kind {
		case BlockName, BlockEntryTitle:
			style = "B"
		case BlockHeading:
			style = "B"
			lines = append(lines, basicLine{})
			text = strings.ToUpper(text)
		}
		for _, w := range wrap(text, basicWrapChars) {
			lines = append(lines, basicLine{text: w, style: style})
		}
	}
	return lines
}

// wrap splits text into lines of at most width runes, breaking on spaces
// where possible.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	var current []rune
	for _, word := range words {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = append(current, w...)
		case len(current)+1+len(w) <= width:
			current = append(current, ' ')
			current = append(current, w...)
		default:
			lines = append(lines, string(current))
			current = append([]rune(nil), w...)
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}
