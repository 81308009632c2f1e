package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed templates/cv.html.tmpl
var chromeTemplateText string

var chromeTemplate = template.Must(template.New("cv").Parse(chromeTemplateText))

const chromeTimeout = 60 * time.Second

// ChromeLayout renders blocks as HTML and prints them with headless Chrome.
type ChromeLayout struct {
	// ExecPath points at the Chrome binary; empty uses chromedp's lookup.
	ExecPath string
	Timeout  time.Duration
}

// NewChromeLayout returns a Chrome layout using execPath.
func NewChromeLayout(execPath string) *ChromeLayout {
	return &ChromeLayout{ExecPath: execPath, Timeout: chromeTimeout}
}

// Name implements Layout.
func (l *ChromeLayout) Name() string { return "chrome" }

// HTML returns the markup printed by Render.
func (l *ChromeLayout) HTML(blocks []Block) ([]byte, error) {
	var buf bytes.Buffer
	if err := chromeTemplate.Execute(&buf, blocks); err != nil {
		return nil, fmt.Errorf("chrome layout template: %w", err)
	}
	return buf.Bytes(), nil
}

// Render implements Layout.
func (l *ChromeLayout) Render(ctx context.Context, blocks []Block) ([]byte, error) {
	html, err := l.HTML(blocks)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = chromeTimeout
	}
	runCtx, cancelRun := context.WithTimeout(cctx, timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "cv-render-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0o600); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome layout: %w", err)
	}
	return pdfBuf, nil
}
