package ui

import (
	"fmt"
	"io"
)

// Console messages shown to the user.
const (
	MsgFound       = "Artikel fundet og gemt som PDF"
	MsgNotFound    = "Artikel ikke fundet"
	MsgSuggestions = "Nærmeste overskrifter"
)

// MsgServerError reports a failure while opening the site's front page.
func MsgServerError(err error) string {
	return fmt.Sprintf("Der var en fejl på DR's server: %v", err)
}

func MsgSaved(path string) string {
	return fmt.Sprintf("Gemt i %s", path)
}

func MsgTitle(title string) string {
	return fmt.Sprintf("Overskrift: %s", title)
}

func MsgSearching(keyword string) string {
	return fmt.Sprintf("Søger efter %q…", keyword)
}

func MsgViewerFailed(err error) string {
	return fmt.Sprintf("Kunne ikke åbne PDF: %v", err)
}

// StatusKind indicates severity for status lines.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

func (k StatusKind) render(msg string) string {
	switch k {
	case StatusSuccess:
		return StatusSuccessStyle.Render(msg)
	case StatusWarn:
		return StatusWarnStyle.Render(msg)
	case StatusError:
		return StatusErrorStyle.Render(msg)
	default:
		return StatusInfoStyle.Render(msg)
	}
}

// Status writes msg to w as a single styled line.
func Status(w io.Writer, kind StatusKind, msg string) {
	fmt.Fprintln(w, kind.render(msg))
}
