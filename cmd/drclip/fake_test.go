package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/pders01/drclip/internal/browser"
	"github.com/pders01/drclip/internal/config"
	"github.com/pders01/drclip/internal/finder"
	"github.com/pders01/drclip/internal/site"
)

type fakeTeaser struct {
	text string
	link string
}

func (t fakeTeaser) Text() (string, error) { return t.text, nil }
func (t fakeTeaser) Link() (string, error) { return t.link, nil }

// fakePage serves a single page of results with no load-more button.
type fakePage struct {
	teasers  []fakeTeaser
	failURLs map[string]error
	waitErr  error
	pdf      string
	html     string

	visited []string
	closed  int
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.visited = append(p.visited, url)
	return p.failURLs[url]
}

func (p *fakePage) WaitFor(context.Context, string, time.Duration) error { return p.waitErr }
func (p *fakePage) Fill(context.Context, string, string) error           { return nil }
func (p *fakePage) Submit(context.Context, string) error                 { return nil }
func (p *fakePage) Visible(context.Context, string) (bool, error)        { return false, nil }
func (p *fakePage) Clickable(context.Context, string) (bool, error)      { return false, nil }
func (p *fakePage) Click(context.Context, string) error                  { return nil }

func (p *fakePage) Teasers(context.Context, string, string) ([]finder.Teaser, error) {
	out := make([]finder.Teaser, 0, len(p.teasers))
	for _, t := range p.teasers {
		out = append(out, t)
	}
	return out, nil
}

func (p *fakePage) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func (p *fakePage) HTML(context.Context) (string, error) { return p.html, nil }

func (p *fakePage) PrintPDF(context.Context) (io.Reader, error) {
	return strings.NewReader(p.pdf), nil
}

func (p *fakePage) Close() error {
	p.closed++
	return nil
}

type fakeSession struct {
	search *fakePage
	export *fakePage
	closed int
}

func (s *fakeSession) OpenSearchPage(context.Context) (searchPage, error) { return s.search, nil }

func (s *fakeSession) OpenPrintable(context.Context) (browser.PrintablePage, error) {
	return s.export, nil
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

func launcherFor(s *fakeSession) func(context.Context, browser.Options) (session, error) {
	return func(context.Context, browser.Options) (session, error) { return s, nil }
}

var errLaunch = errors.New("chromium not found")

func failingLauncher(context.Context, browser.Options) (session, error) { return nil, errLaunch }

func testProfile() *site.Profile {
	return &site.Profile{
		Name:      "test",
		BaseURL:   "https://news.test",
		HomeURL:   "https://news.test/",
		SearchURL: "https://news.test/search",
		Selectors: site.Selectors{
			ConsentAccept: "#consent",
			SearchInput:   "#q",
			Results:       "#results",
			Teaser:        "#results li",
			TeaserLink:    "a",
			LoadMore:      "#more",
		},
	}
}

func testRunConfig(outPath string) *config.Config {
	cfg := config.TestConfig()
	cfg.Search.Keyword = "sommer"
	cfg.Search.Headline = "første sommerdag"
	cfg.Output.Path = outPath
	return cfg
}
