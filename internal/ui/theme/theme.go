package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: dark slate base with an indigo brand accent.
var (
	Primary   = lipgloss.Color("#818CF8") // Indigo
	Secondary = lipgloss.Color("#22D3EE") // Cyan
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#34D399") // Emerald
	Error     = lipgloss.Color("#FB7185") // Rose
	Text      = lipgloss.Color("#F1F5F9") // Near-white
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	ErrorBanner = lipgloss.NewStyle().
			Foreground(Error).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Error).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	GradeGood = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	GradeBad = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// GradeStyle picks a style for a letter grade: A and B range render as
// good, everything else as bad.
func GradeStyle(grade string) lipgloss.Style {
	if grade == "" {
		return Hint
	}
	switch grade[0] {
	case 'A', 'B':
		return GradeGood
	default:
		return GradeBad
	}
}

// DifficultyStyle colors a section difficulty label.
func DifficultyStyle(difficulty string) lipgloss.Style {
	switch difficulty {
	case "Beginner":
		return lipgloss.NewStyle().Foreground(Success)
	case "Intermediate":
		return lipgloss.NewStyle().Foreground(Accent)
	case "Advanced":
		return lipgloss.NewStyle().Foreground(Error)
	default:
		return lipgloss.NewStyle().Foreground(TextDim)
	}
}
