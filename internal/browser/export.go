package browser

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pders01/drclip/internal/debuglog"
)

// PrintablePage is a tab that can load a URL and render itself to PDF.
type PrintablePage interface {
	Navigate(ctx context.Context, url string) error
	HTML(ctx context.Context) (string, error)
	PrintPDF(ctx context.Context) (io.Reader, error)
	Close() error
}

// PageOpener hands out tabs in fresh, isolated browser contexts.
type PageOpener interface {
	OpenPrintable(ctx context.Context) (PrintablePage, error)
}

// Export describes a written PDF.
type Export struct {
	URL   string
	Path  string
	Title string
}

// ExportPDF opens url in a fresh context and writes it as a PDF to path,
// replacing any existing file. The context is released on every path.
func ExportPDF(ctx context.Context, opener PageOpener, url, path string) (_ *Export, err error) {
	page, err := opener.OpenPrintable(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing export page: %w", closeErr)
		}
	}()

	if err := page.Navigate(ctx, url); err != nil {
		return nil, err
	}

	exp := &Export{URL: url, Path: path}
	log := debuglog.WithFields(debuglog.Fields{"url": url, "path": path})

	// The title only decorates the report.
	if html, err := page.HTML(ctx); err != nil {
		log.Warnf("reading article html: %v", err)
	} else if exp.Title, err = ArticleTitle(strings.NewReader(html)); err != nil {
		log.Warnf("%v", err)
	}

	pdf, err := page.PrintPDF(ctx)
	if err != nil {
		return nil, err
	}

	if err := writeFile(path, pdf); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	log.Infof("article exported: %q", exp.Title)
	return exp, nil
}

// writeFile replaces path with the contents of r, creating parent
// directories as needed.
func writeFile(path string, r io.Reader) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	_, err = io.Copy(f, r)
	return err
}
