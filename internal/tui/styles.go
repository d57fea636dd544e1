package tui

import "github.com/charmbracelet/lipgloss"

// Styling constants
var (
	// Colors
	primaryColor   = lipgloss.Color("#00C6FF") // button gradient start
	secondaryColor = lipgloss.Color("#F5F5F1") // light cream
	accentColor    = lipgloss.Color("#2C5364") // slate from the page gradient
	mutedColor     = lipgloss.Color("#8A9BA8")
	goldColor      = lipgloss.Color("#FFD700")
	errorColor     = lipgloss.Color("#FF5F5F")

	// Text styles
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	captionStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	normalTextStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(goldColor).
			Bold(true).
			Padding(0, 1)

	// Component styles
	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	focusedInputStyle = inputStyle.
				BorderForeground(primaryColor)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			MarginRight(1)

	focusedCardStyle = cardStyle.
				BorderForeground(primaryColor)

	buttonStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Background(accentColor).
			Padding(0, 1)

	focusedButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#0072FF")).
				Bold(true)

	dividerStyle = lipgloss.NewStyle().
			Foreground(accentColor)
)
