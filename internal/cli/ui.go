package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette. Statuses reuse the same hues the exported artifacts use,
// mapped onto the 256-color cube.
var (
	colorAccent  = lipgloss.Color("36")  // teal, headings and highlights
	colorOK      = lipgloss.Color("35")  // green
	colorWarn    = lipgloss.Color("220") // amber
	colorFail    = lipgloss.Color("167") // soft red
	colorCommand = lipgloss.Color("75")  // light blue, runnable commands
	colorBright  = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("240")
	colorLabel   = lipgloss.Color("245")
)

var (
	// StyleTitle renders section headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight renders emphasized inline values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleBright  = lipgloss.NewStyle().Foreground(colorBright)
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleFail    = lipgloss.NewStyle().Foreground(colorFail)
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)
)

// keyColumn aligns printKeyValue labels.
const keyColumn = 14

func printSuccess(format string, args ...any) {
	fmt.Println(styleOK.Render("✓") + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleFail.Render("✗") + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleLabel.Render("›") + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted detail line under the previous message.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleMuted.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of an artifact the command wrote.
func printFile(path string) {
	fmt.Println("  " + styleMuted.Render("→") + " " + styleBright.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Width(keyColumn).Render(key) + " " + styleBright.Render(value))
}

// printStats summarizes a layout pass: node and edge counts plus whether the
// result came out of the layout cache.
func printStats(nodeCount, edgeCount int, cacheHit bool) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodeCount),
		fmt.Sprintf("%d edges", edgeCount),
	}
	if cacheHit {
		parts = append(parts, styleOK.Render("cached"))
	} else {
		parts = append(parts, "computed")
	}
	fmt.Println("  " + styleMuted.Render(strings.Join(parts, " · ")))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Println(styleMuted.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
