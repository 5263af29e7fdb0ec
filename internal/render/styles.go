// Package render formats compiled arguments for people: segment breakdowns
// and token-level diffs between two launches.
package render

import "github.com/charmbracelet/lipgloss"

var (
	segmentColor = lipgloss.AdaptiveColor{Light: "#6B21A8", Dark: "#C084FC"}
	flagColor    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	addColor     = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	delColor     = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}

	segmentStyle = lipgloss.NewStyle().Foreground(segmentColor).Bold(true).Width(13)
	flagStyle    = lipgloss.NewStyle().Foreground(flagColor)
	commandStyle = lipgloss.NewStyle().Foreground(mutedColor)
	addStyle     = lipgloss.NewStyle().Foreground(addColor)
	delStyle     = lipgloss.NewStyle().Foreground(delColor)
)
