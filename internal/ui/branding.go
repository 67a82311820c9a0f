package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "drclip"

var LogoLines = []string{
	"█▀▄ █▀█ █▀▀ █   █ █▀█",
	"█ █ █▀▄ █   █   █ █▀▀",
	"▀▀  ▀ ▀ ▀▀▀ ▀▀▀ ▀ ▀  ",
}

var BannerColors = []lipgloss.Color{
	lipgloss.Color("#C8102E"),
	lipgloss.Color("#E4572E"),
	lipgloss.Color("#F3A712"),
}

var (
	PrimaryColor = lipgloss.Color("#C8102E")
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarnColor    = lipgloss.Color("#F3A712")
	ErrorColor   = lipgloss.Color("#FF6B6B")
	MutedColor   = lipgloss.Color("#8A8A8A")
)

var (
	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	StatusWarnStyle = lipgloss.NewStyle().
			Foreground(WarnColor)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// ShowBanner writes the boxed logo and tagline to w.
func ShowBanner(w io.Writer, version string) {
	lines := make([]string, 0, len(LogoLines)+2)
	lines = append(lines, LogoLines...)
	lines = append(lines, "")

	tagline := "Artikel-klipper til DR.dk"
	if version != "" && version != "dev" {
		if version[0] != 'v' && version[0] != 'V' {
			version = "v" + version
		}
		tagline += " " + version
	}
	lines = append(lines, tagline)

	colored := make([]string, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			colored = append(colored, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		colored = append(colored, style.Render(line))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(PrimaryColor).
		Padding(0, 2)

	fmt.Fprintln(w, box.Render(lipgloss.JoinVertical(lipgloss.Center, colored...)))
}
