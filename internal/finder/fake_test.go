package finder

import (
	"context"
	"errors"
	"time"

	"github.com/pders01/drclip/internal/site"
)

var errTimeout = errors.New("context deadline exceeded")

type fakeTeaser struct {
	text string
	link string
}

func (t fakeTeaser) Text() (string, error) { return t.text, nil }
func (t fakeTeaser) Link() (string, error) { return t.link, nil }

// fakePage renders renders[n] after n "load more" clicks. Clicks beyond the
// last render keep showing it.
type fakePage struct {
	sel     site.Selectors
	renders [][]fakeTeaser

	sortVisible    bool
	consentVisible bool
	// moreEnabled decides whether load more is clickable after n clicks.
	// Nil means: enabled while further renders exist.
	moreEnabled func(clicks int) bool

	waitErr map[string]error

	clicks     int
	sortClicks int
	consent    int
	navigated  []string
	filled     string
	submitted  bool
	sleeps     []time.Duration
	waits      []time.Duration
}

func testSelectors() site.Selectors {
	return site.Selectors{
		ConsentAccept:   "button.accept",
		SearchInput:     "input[type='search']",
		Results:         "ul.results",
		Teaser:          "ul.results li",
		TeaserLink:      "a",
		SortByPublished: "#sort-published",
		LoadMore:        "button.more",
	}
}

func testProfile() *site.Profile {
	return &site.Profile{
		Name:      "test",
		BaseURL:   "https://news.test",
		SearchURL: "https://news.test/search",
		Selectors: testSelectors(),
	}
}

func newFakePage(renders ...[]fakeTeaser) *fakePage {
	return &fakePage{sel: testSelectors(), renders: renders, waitErr: map[string]error{}}
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.navigated = append(p.navigated, url)
	return nil
}

func (p *fakePage) WaitFor(_ context.Context, selector string, timeout time.Duration) error {
	if selector == p.sel.Teaser {
		p.waits = append(p.waits, timeout)
	}
	return p.waitErr[selector]
}

func (p *fakePage) Fill(_ context.Context, _ string, text string) error {
	p.filled = text
	return nil
}

func (p *fakePage) Submit(context.Context, string) error {
	p.submitted = true
	return nil
}

func (p *fakePage) Visible(_ context.Context, selector string) (bool, error) {
	switch selector {
	case p.sel.SortByPublished:
		return p.sortVisible, nil
	case p.sel.ConsentAccept:
		return p.consentVisible, nil
	case p.sel.LoadMore:
		return p.loadMoreEnabled(), nil
	}
	return false, nil
}

func (p *fakePage) Clickable(_ context.Context, selector string) (bool, error) {
	if selector == p.sel.LoadMore {
		return p.loadMoreEnabled(), nil
	}
	return false, nil
}

func (p *fakePage) loadMoreEnabled() bool {
	if p.moreEnabled != nil {
		return p.moreEnabled(p.clicks)
	}
	return p.clicks < len(p.renders)-1
}

func (p *fakePage) Click(_ context.Context, selector string) error {
	switch selector {
	case p.sel.LoadMore:
		p.clicks++
	case p.sel.SortByPublished:
		p.sortClicks++
	case p.sel.ConsentAccept:
		p.consent++
	}
	return nil
}

func (p *fakePage) Teasers(context.Context, string, string) ([]Teaser, error) {
	if len(p.renders) == 0 {
		return nil, nil
	}
	idx := p.clicks
	if idx >= len(p.renders) {
		idx = len(p.renders) - 1
	}
	out := make([]Teaser, 0, len(p.renders[idx]))
	for _, t := range p.renders[idx] {
		out = append(out, t)
	}
	return out, nil
}

func (p *fakePage) Sleep(ctx context.Context, d time.Duration) error {
	p.sleeps = append(p.sleeps, d)
	return ctx.Err()
}
