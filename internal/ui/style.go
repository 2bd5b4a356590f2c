package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Tone selects the color used by Paint.
type Tone int

const (
	TonePlain Tone = iota
	ToneMuted
	ToneSuccess
	ToneActive
	ToneWarning
	ToneDanger
)

var toneStyles = map[Tone]lipgloss.Style{
	ToneMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	ToneSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	ToneActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
	ToneWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ToneDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))

// Paint colors text when stdout is a color terminal.
func Paint(text string, tone Tone) string {
	style, ok := toneStyles[tone]
	if !ok || text == "" || !ansiEnabled() {
		return text
	}
	return style.Render(text)
}

// Heading styles a section heading.
func Heading(text string) string {
	if !ansiEnabled() {
		return text
	}
	return headingStyle.Render(text)
}

// ansiEnabled is a variable so tests can force plain output.
var ansiEnabled = func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the width of stdout, or fallback when stdout is not
// a terminal.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// ProgressBar renders percent (0 to 100) as a fixed-width ASCII bar followed
// by the percentage.
func ProgressBar(percent float64, width int) string {
	if width < 1 {
		width = 1
	}
	percent = min(max(percent, 0), 100)
	filled := int(percent / 100 * float64(width))
	bar := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("[%s] %5.1f%%", bar, percent)
}
