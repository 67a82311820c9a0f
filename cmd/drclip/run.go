package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pders01/drclip/internal/browser"
	"github.com/pders01/drclip/internal/config"
	"github.com/pders01/drclip/internal/debuglog"
	"github.com/pders01/drclip/internal/finder"
	"github.com/pders01/drclip/internal/search"
	"github.com/pders01/drclip/internal/site"
	"github.com/pders01/drclip/internal/ui"
	"github.com/pders01/drclip/internal/validation"
)

const maxSuggestions = 5

type searchPage interface {
	finder.Page
	Close() error
}

type session interface {
	browser.PageOpener
	OpenSearchPage(ctx context.Context) (searchPage, error)
	Close() error
}

type rodSession struct {
	*browser.Session
}

func (s rodSession) OpenSearchPage(ctx context.Context) (searchPage, error) {
	p, err := s.OpenPage(ctx)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func launchRod(ctx context.Context, opts browser.Options) (session, error) {
	s, err := browser.Launch(ctx, opts)
	if err != nil {
		return nil, err
	}
	return rodSession{s}, nil
}

// runner performs one search-and-export run.
type runner struct {
	cfg     *config.Config
	profile *site.Profile
	out     io.Writer
	launch  func(context.Context, browser.Options) (session, error)
	view    func(path string) error
}

func (r *runner) run(ctx context.Context) error {
	s, err := r.launch(ctx, browser.OptionsFromConfig(r.cfg.Browser))
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			debuglog.Warnf("%v", err)
		}
	}()

	page, err := s.OpenSearchPage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := page.Close(); err != nil {
			debuglog.Warnf("closing search page: %v", err)
		}
	}()

	if err := r.openHome(ctx, page); err != nil {
		ui.Status(r.out, ui.StatusError, ui.MsgServerError(err))
	}

	ui.Status(r.out, ui.StatusInfo, ui.MsgSearching(r.cfg.Search.Keyword))
	f := finder.New(page, r.profile, finder.Options{
		Delay:     r.cfg.Search.Delay,
		MaxRounds: r.cfg.Search.MaxRounds,
	})
	res, err := f.Find(ctx, r.cfg.Search.Keyword, r.cfg.Search.Headline)
	if err != nil {
		return fmt.Errorf("searching %s: %w", r.profile.Name, err)
	}
	if !res.Found {
		r.reportNotFound(res)
		return nil
	}

	link, err := validation.ResolveArticleURL(r.profile.BaseURL, res.Link)
	if err != nil {
		return fmt.Errorf("resolving article link: %w", err)
	}
	exp, err := browser.ExportPDF(ctx, s, link, r.cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", link, err)
	}

	ui.Status(r.out, ui.StatusSuccess, ui.MsgFound)
	if exp.Title != "" {
		ui.Status(r.out, ui.StatusInfo, ui.MsgTitle(exp.Title))
	}
	ui.Status(r.out, ui.StatusInfo, ui.MsgSaved(r.cfg.Output.Path))

	if r.cfg.Output.Open && r.view != nil {
		if err := r.view(r.cfg.Output.Path); err != nil {
			ui.Status(r.out, ui.StatusWarn, ui.MsgViewerFailed(err))
		}
	}
	return nil
}

// openHome loads the front page and dismisses the consent overlay.
func (r *runner) openHome(ctx context.Context, page finder.Page) error {
	if err := page.Navigate(ctx, r.profile.HomeURL); err != nil {
		return err
	}
	return finder.DismissConsent(ctx, page, r.profile.Selectors.ConsentAccept, r.cfg.Search.Delay)
}

func (r *runner) reportNotFound(res *finder.Result) {
	ui.Status(r.out, ui.StatusWarn, ui.MsgNotFound)

	suggestions, err := suggest(res.Seen, r.cfg.Search.Headline)
	if err != nil {
		debuglog.Warnf("building suggestions: %v", err)
		return
	}
	report, err := ui.RenderSuggestions(r.cfg.Search.Headline, suggestions, len(res.Seen))
	if err != nil {
		debuglog.Warnf("%v", err)
		return
	}
	fmt.Fprint(r.out, report)
}

func suggest(seen []string, headline string) ([]search.Suggestion, error) {
	if len(seen) == 0 {
		return nil, nil
	}
	s, err := search.NewSuggester()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if err := s.AddAll(seen); err != nil {
		return nil, err
	}
	return s.Suggest(headline, maxSuggestions)
}
