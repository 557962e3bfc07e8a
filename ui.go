package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel   = lipgloss.NewStyle().Bold(true)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styleTitle.Render(title))
}

func printWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "  %s %s\n", styleWarning.Render(iconWarning), msg)
}

func printError(w io.Writer, msg string) {
	fmt.Fprintf(w, "  %s %s\n", styleError.Render(iconError), msg)
}

func printDetail(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s %s\n", styleInfo.Render(iconInfo), styleDim.Render(label+":"), value)
}

// num formats a coordinate for display.
func num(f float64) string {
	return styleNumber.Render(fmt.Sprintf("%.2f", f))
}
