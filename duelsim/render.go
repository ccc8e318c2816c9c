package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultWidth = 80

var (
	HighlightedColor = lipgloss.Color("33")
	ErrorColor       = lipgloss.Color("160")
	DimColor         = lipgloss.Color("245")

	headerStyle = lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder(), false, false, true, false)
	winnerStyle = lipgloss.NewStyle().Bold(true).Foreground(HighlightedColor)
	errorStyle  = lipgloss.NewStyle().Border(lipgloss.BlockBorder(), true).Foreground(ErrorColor)
	logStyle    = lipgloss.NewStyle().PaddingLeft(2).Foreground(DimColor)
)

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}

	return width
}

// renderReport draws one battle. Log lines are left out when quiet is set.
func renderReport(report battleReport, width int, quiet bool) string {
	header := headerStyle.Width(width).Render(fmt.Sprintf("%s vs %s", report.Host, report.Client))

	var summary string
	if report.Err != nil {
		summary = errorStyle.Width(width - 2).Render(fmt.Sprintf("battle failed after %d turns: %s", report.Turns, report.Err))
	} else {
		summary = winnerStyle.Render(fmt.Sprintf("%s won on turn %d", report.Winner, report.Turns))
	}

	if quiet {
		return lipgloss.JoinVertical(lipgloss.Left, header, summary)
	}

	battleLog := logStyle.Width(width).Render(strings.Join(report.Log, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, battleLog, summary, "")
}

func renderTotals(reports []battleReport) string {
	wins := make(map[string]int)
	failed := 0
	for _, report := range reports {
		if report.Err != nil {
			failed++
			continue
		}

		side := "client"
		if report.Winner == report.Host {
			side = "host"
		}
		wins[side]++
	}

	return winnerStyle.Render(fmt.Sprintf("%d battles: hosts won %d, clients won %d, %d failed", len(reports), wins["host"], wins["client"], failed))
}
