// ABOUTME: Styled search summary printed to stderr
// ABOUTME: Keeps stdout limited to feed URLs so output can be piped

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sgacode/rss-finder/rssfinder"
)

var (
	countStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	emptyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	urlStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func printSummary(w io.Writer, report *rssfinder.Report) {
	stats := dimStyle.Render(fmt.Sprintf("(%d candidates, %d probed, %s)",
		report.Candidates, report.Probed, report.Duration.Round(time.Millisecond)))

	if len(report.Feeds) == 0 {
		fmt.Fprintf(w, "%s %s %s\n", emptyStyle.Render("No feeds found for"), urlStyle.Render(report.URL), stats)
		return
	}

	noun := "feeds"
	if len(report.Feeds) == 1 {
		noun = "feed"
	}
	fmt.Fprintf(w, "%s for %s via %s %s\n",
		countStyle.Render(fmt.Sprintf("%d %s", len(report.Feeds), noun)),
		urlStyle.Render(report.URL),
		report.Strategy,
		stats,
	)
}
