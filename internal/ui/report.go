package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/pders01/drclip/internal/search"
)

const (
	reportWidth     = 80
	maxSuggestWidth = 100
)

// SuggestionsMarkdown builds the not-found report for headline.
func SuggestionsMarkdown(headline string, suggestions []search.Suggestion, seen int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", MsgNotFound)
	fmt.Fprintf(&b, "Søgte efter *%s* blandt %d overskrifter.\n\n", escapeMarkdown(headline), seen)
	if len(suggestions) == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "### %s\n\n", MsgSuggestions)
	for _, s := range suggestions {
		fmt.Fprintf(&b, "- %s\n", escapeMarkdown(truncateEnd(s.Text, maxSuggestWidth)))
	}
	return b.String()
}

// RenderSuggestions renders the not-found report for a plain terminal.
func RenderSuggestions(headline string, suggestions []search.Suggestion, seen int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(reportWidth),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(SuggestionsMarkdown(headline, suggestions, seen))
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(strings.Join(strings.Fields(s), " "))
}

// truncateEnd shortens s to at most limit runes, ending in an ellipsis when
// it had to cut.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}
