package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/pders01/drclip/internal/finder"
)

// Page is a Chromium tab inside its own incognito context.
type Page struct {
	incognito *rod.Browser
	page      *rod.Page
	timeout   time.Duration
}

var _ finder.Page = (*Page)(nil)

// bounded returns the page bound to ctx and limited to d, or to the session
// timeout when d is zero. The returned func releases the timer.
func (p *Page) bounded(ctx context.Context, d time.Duration) (*rod.Page, func()) {
	if d <= 0 {
		d = p.timeout
	}
	pg := p.page.Context(ctx)
	if d <= 0 {
		return pg, func() {}
	}
	pg = pg.Timeout(d)
	return pg, func() { pg.CancelTimeout() }
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	pg, done := p.bounded(ctx, 0)
	defer done()

	if err := pg.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := pg.WaitLoad(); err != nil {
		return fmt.Errorf("loading %s: %w", url, err)
	}
	return nil
}

func (p *Page) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	pg, done := p.bounded(ctx, timeout)
	defer done()

	if _, err := pg.Element(selector); err != nil {
		return fmt.Errorf("waiting for %s: %w", selector, err)
	}
	return nil
}

func (p *Page) Fill(ctx context.Context, selector, text string) error {
	pg, done := p.bounded(ctx, 0)
	defer done()

	el, err := pg.Element(selector)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(text)
}

func (p *Page) Submit(ctx context.Context, selector string) error {
	pg, done := p.bounded(ctx, 0)
	defer done()

	el, err := pg.Element(selector)
	if err != nil {
		return err
	}
	return el.Type(input.Enter)
}

// find looks selector up once without waiting.
func (p *Page) find(ctx context.Context, selector string) (*rod.Element, error) {
	pg, done := p.bounded(ctx, 0)
	defer done()

	has, el, err := pg.Has(selector)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	return el.Context(ctx), nil
}

func (p *Page) Visible(ctx context.Context, selector string) (bool, error) {
	el, err := p.find(ctx, selector)
	if err != nil || el == nil {
		return false, err
	}
	return el.Visible()
}

func (p *Page) Clickable(ctx context.Context, selector string) (bool, error) {
	el, err := p.find(ctx, selector)
	if err != nil || el == nil {
		return false, err
	}
	visible, err := el.Visible()
	if err != nil || !visible {
		return false, err
	}
	disabled, err := el.Property("disabled")
	if err != nil {
		return false, err
	}
	return !disabled.Bool(), nil
}

func (p *Page) Click(ctx context.Context, selector string) error {
	pg, done := p.bounded(ctx, 0)
	defer done()

	el, err := pg.Element(selector)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// Teasers does not wait: an empty list is a valid answer.
func (p *Page) Teasers(ctx context.Context, selector, linkSelector string) ([]finder.Teaser, error) {
	els, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]finder.Teaser, 0, len(els))
	for _, el := range els {
		out = append(out, &teaser{el: el, linkSelector: linkSelector})
	}
	return out, nil
}

func (p *Page) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

// PrintPDF renders the current document. The caller must drain the reader
// before closing the page.
func (p *Page) PrintPDF(ctx context.Context) (io.Reader, error) {
	r, err := p.page.Context(ctx).PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		return nil, fmt.Errorf("printing to PDF: %w", err)
	}
	return r, nil
}

// Close disposes the incognito context and every tab in it.
func (p *Page) Close() error {
	return p.incognito.Close()
}

type teaser struct {
	el           *rod.Element
	linkSelector string
}

func (t *teaser) Text() (string, error) {
	return t.el.Text()
}

var errNoLink = errors.New("teaser has no link")

func (t *teaser) Link() (string, error) {
	has, a, err := t.el.Has(t.linkSelector)
	if err != nil {
		return "", err
	}
	if !has {
		return "", errNoLink
	}
	href, err := a.Attribute("href")
	if err != nil {
		return "", err
	}
	if href == nil {
		return "", errNoLink
	}
	return *href, nil
}
