// Package finder locates an article on a site's search page by driving the
// search form and paging through "load more" until a teaser's text contains
// the wanted headline.
package finder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pders01/drclip/internal/debuglog"
	"github.com/pders01/drclip/internal/site"
)

// Options control the timing and bounds of a search.
type Options struct {
	// Delay is the fixed pause after "load more" and the bound on the
	// post-sort re-render wait.
	Delay time.Duration
	// MaxRounds caps "load more" activations. Zero or less means no cap.
	MaxRounds int
}

// Result is the outcome of one Find call.
type Result struct {
	Found bool
	// Link is the matching teaser's href as rendered, usually a relative path.
	Link string
	// Text is the matching teaser's full text.
	Text string
	// Rounds counts "load more" activations.
	Rounds int
	// Seen lists every distinct teaser text in first-seen order.
	Seen []string
}

type Finder struct {
	page      Page
	searchURL string
	sel       site.Selectors
	opts      Options
	log       *debuglog.FieldLogger
}

func New(page Page, profile *site.Profile, opts Options) *Finder {
	return &Finder{
		page:      page,
		searchURL: profile.SearchURL,
		sel:       profile.Selectors,
		opts:      opts,
		log:       debuglog.WithFields(debuglog.Fields{"component": "finder", "site": profile.Name}),
	}
}

// Find searches for keyword and returns the first teaser, in first-seen order
// across pagination rounds, whose text contains headline.
//
// Teasers are deduplicated by their full text. A text already seen in an
// earlier round is skipped even if it reappears with a different link.
func (f *Finder) Find(ctx context.Context, keyword, headline string) (*Result, error) {
	if err := f.submitSearch(ctx, keyword); err != nil {
		return nil, err
	}
	f.sortByPublished(ctx)

	seen := newSeenSet()
	res := &Result{}

	for {
		teasers, err := f.page.Teasers(ctx, f.sel.Teaser, f.sel.TeaserLink)
		if err != nil {
			return nil, fmt.Errorf("listing teasers: %w", err)
		}

		for _, t := range teasers {
			text, err := t.Text()
			if err != nil {
				return nil, fmt.Errorf("reading teaser text: %w", err)
			}
			if !seen.add(text) {
				continue
			}
			f.log.Debugf("new teaser %q", text)

			if strings.Contains(text, headline) {
				link, err := t.Link()
				if err != nil {
					return nil, fmt.Errorf("reading teaser link: %w", err)
				}
				res.Found = true
				res.Link = link
				res.Text = text
				res.Seen = seen.list()
				f.log.With("rounds", res.Rounds).Infof("match found: %s", link)
				return res, nil
			}
		}

		more, err := f.page.Clickable(ctx, f.sel.LoadMore)
		if err != nil {
			return nil, fmt.Errorf("checking load more: %w", err)
		}
		if !more {
			break
		}
		if f.opts.MaxRounds > 0 && res.Rounds >= f.opts.MaxRounds {
			f.log.Warnf("giving up after %d load-more rounds", res.Rounds)
			break
		}

		if err := f.page.Click(ctx, f.sel.LoadMore); err != nil {
			return nil, fmt.Errorf("clicking load more: %w", err)
		}
		res.Rounds++
		// Fixed settle time; there is no signal for "new teasers rendered".
		if err := f.page.Sleep(ctx, f.opts.Delay); err != nil {
			return nil, err
		}
		f.log.With("seen", seen.len()).Debugf("load more round %d", res.Rounds)
	}

	res.Seen = seen.list()
	f.log.With("rounds", res.Rounds).With("seen", len(res.Seen)).Infof("no match for %q", headline)
	return res, nil
}

func (f *Finder) submitSearch(ctx context.Context, keyword string) error {
	if err := f.page.Navigate(ctx, f.searchURL); err != nil {
		return fmt.Errorf("opening search page: %w", err)
	}
	if err := f.page.WaitFor(ctx, f.sel.SearchInput, 0); err != nil {
		return fmt.Errorf("waiting for search input: %w", err)
	}
	if err := f.page.Fill(ctx, f.sel.SearchInput, keyword); err != nil {
		return fmt.Errorf("filling search input: %w", err)
	}
	if err := f.page.Submit(ctx, f.sel.SearchInput); err != nil {
		return fmt.Errorf("submitting search: %w", err)
	}
	if err := f.page.WaitFor(ctx, f.sel.Results, 0); err != nil {
		return fmt.Errorf("waiting for results: %w", err)
	}
	return nil
}

// sortByPublished switches to newest-first when the control is shown. It is
// best effort: the re-render wait may time out or report ready before the
// list actually changed, and neither stops the search.
func (f *Finder) sortByPublished(ctx context.Context) {
	if f.sel.SortByPublished == "" {
		return
	}
	visible, err := f.page.Visible(ctx, f.sel.SortByPublished)
	if err != nil {
		f.log.Warnf("checking sort control: %v", err)
		return
	}
	if !visible {
		return
	}
	if err := f.page.Click(ctx, f.sel.SortByPublished); err != nil {
		f.log.Warnf("clicking sort control: %v", err)
		return
	}
	if err := f.page.WaitFor(ctx, f.sel.Teaser, f.opts.Delay); err != nil {
		f.log.Warnf("teasers not re-rendered after sort: %v", err)
	}
}

// seenSet records teaser texts for one search, remembering first-seen order.
type seenSet struct {
	texts map[string]struct{}
	order []string
}

func newSeenSet() *seenSet {
	return &seenSet{texts: make(map[string]struct{})}
}

// add records text and reports whether it was new.
func (s *seenSet) add(text string) bool {
	if _, ok := s.texts[text]; ok {
		return false
	}
	s.texts[text] = struct{}{}
	s.order = append(s.order, text)
	return true
}

func (s *seenSet) len() int { return len(s.order) }

func (s *seenSet) list() []string {
	return append([]string(nil), s.order...)
}
