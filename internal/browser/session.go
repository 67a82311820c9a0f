// Package browser runs Chromium through go-rod and adapts its pages to the
// capability set the finder drives.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/pders01/drclip/internal/config"
	"github.com/pders01/drclip/internal/debuglog"
)

type Options struct {
	Headless bool
	// Bin is a Chromium executable. Empty lets go-rod find or download one.
	Bin       string
	NoSandbox bool
	// Timeout bounds every wait that does not carry its own bound.
	Timeout time.Duration
}

// OptionsFromConfig maps the [browser] config section.
func OptionsFromConfig(cfg config.BrowserConfig) Options {
	return Options{
		Headless:  cfg.Headless,
		Bin:       cfg.Bin,
		NoSandbox: cfg.NoSandbox,
		Timeout:   cfg.Timeout,
	}
}

// Session owns one Chromium process and the CDP connection to it.
// Close must be called exactly once the caller is done; it is safe to call
// more than once.
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	closed   bool
}

// Launch starts Chromium and connects to it.
func Launch(ctx context.Context, opts Options) (*Session, error) {
	l := launcher.New().
		Context(ctx).
		Headless(opts.Headless).
		NoSandbox(opts.NoSandbox)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	debuglog.WithFields(debuglog.Fields{"headless": opts.Headless}).Infof("browser started")
	return &Session{launcher: l, browser: b, timeout: opts.Timeout}, nil
}

// Close shuts the browser down and removes the launcher's profile directory.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true

	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	debuglog.Infof("browser stopped")
	if err != nil {
		return fmt.Errorf("closing browser: %w", err)
	}
	return nil
}

// OpenPage opens a tab in a fresh incognito context.
func (s *Session) OpenPage(ctx context.Context) (*Page, error) {
	if s.closed {
		return nil, fmt.Errorf("session closed")
	}
	incognito, err := s.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("creating browser context: %w", err)
	}
	p, err := incognito.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = incognito.Close()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	// Detach the page from the opening context; each call supplies its own.
	return &Page{incognito: incognito, page: p.Context(context.Background()), timeout: s.timeout}, nil
}

// OpenPrintable satisfies PageOpener for ExportPDF.
func (s *Session) OpenPrintable(ctx context.Context) (PrintablePage, error) {
	return s.OpenPage(ctx)
}
