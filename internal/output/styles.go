package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for every ANSI 256 color the CLI uses.
var (
	// ColorCyan is used for identifiable nouns: entity ids, short ids, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for added entries in catalog diffs.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for changed entries and warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed entries.
	ColorRed = lipgloss.Color("196")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleKey styles property names in key/value listings.
	StyleKey = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleWarning styles soft failures such as unresolved references.
	StyleWarning = lipgloss.NewStyle().Foreground(ColorYellow)
)

// minKeyColumnWidth aligns the values of FormatKeyValue lines.
const minKeyColumnWidth = 14

// FormatKeyValue renders "key:  value" with the key padded so consecutive
// lines align.
func FormatKeyValue(key, value string) string {
	padding := minKeyColumnWidth - len(key)
	if padding < 1 {
		padding = 1
	}
	return StyleKey.Render(key+":") + strings.Repeat(" ", padding) + value
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
