package finder

import (
	"context"
	"time"
)

// Page is the set of browser capabilities the finder and consent handler
// need. internal/browser implements it on top of a real Chromium tab; tests
// use an in-memory fake.
type Page interface {
	// Navigate loads url and waits for the document to load.
	Navigate(ctx context.Context, url string) error
	// WaitFor blocks until selector matches an element. A zero timeout means
	// the engine's default bound.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error
	// Fill replaces the value of the first element matching selector.
	Fill(ctx context.Context, selector, text string) error
	// Submit presses Enter in the first element matching selector.
	Submit(ctx context.Context, selector string) error
	// Visible reports whether selector matches a rendered, visible element.
	// A missing element is not an error.
	Visible(ctx context.Context, selector string) (bool, error)
	// Clickable is Visible plus not disabled.
	Clickable(ctx context.Context, selector string) (bool, error)
	// Click clicks the first element matching selector.
	Click(ctx context.Context, selector string) error
	// Teasers lists the elements matching selector in display order. Each
	// teaser reads its link from the first descendant matching linkSelector.
	Teasers(ctx context.Context, selector, linkSelector string) ([]Teaser, error)
	// Sleep pauses for d unless ctx is done first.
	Sleep(ctx context.Context, d time.Duration) error
}

// Teaser is one rendered search result entry.
type Teaser interface {
	// Text is the entry's rendered text.
	Text() (string, error)
	// Link is the href of the entry's link element. It is only read for the
	// matching teaser.
	Link() (string, error)
}
