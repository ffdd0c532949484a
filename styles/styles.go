package styles

import "github.com/charmbracelet/lipgloss"

const (
	// Hardcoded document width; the detected terminal width is only used
	// to truncate and avoid jaggy wrapping.
	Width = 72
)

var (
	Color   = lipgloss.AdaptiveColor{Light: "#111222", Dark: "#FAFAFA"}
	Primary = lipgloss.Color("#4636f5")
	Green   = lipgloss.Color("#9dcc3a")
	Red     = lipgloss.Color("#ff0000")
	White   = lipgloss.Color("#ffffff")
	Orange  = lipgloss.Color("#D3A347")

	TextStyle = lipgloss.NewStyle().Foreground(Color)
	BoldStyle = TextStyle.Copy().Bold(true)

	BaseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	// Question header ("On question 2/5").
	HeaderStyle = BoldStyle.Copy().Foreground(Primary)

	// The spelled-out scale under the header.
	PromptStyle = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(Primary).
			Padding(0, 2)

	OptionStyle         = TextStyle.Copy().PaddingLeft(2)
	CorrectAnswerStyle  = lipgloss.NewStyle().Foreground(Green).Bold(true).PaddingLeft(2)
	WrongAnswerStyle    = lipgloss.NewStyle().Foreground(Red).Bold(true).PaddingLeft(2)
	FeedbackStyle       = BoldStyle.Copy().PaddingTop(1)
	ScoreStyle          = BoldStyle.Copy().Foreground(Green)

	MessageText = lipgloss.NewStyle().Align(lipgloss.Left)

	HelpMenu = lipgloss.NewStyle().Align(lipgloss.Center).PaddingTop(2)
	// Page
	DocStyle = lipgloss.NewStyle().Padding(1, 2, 1, 2)
)

// RenderError returns a formatted error string.
func RenderError(msg string) string {
	err := lipgloss.NewStyle().Background(Red).Foreground(White).Bold(true).Padding(0, 1).Render("Error")
	content := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(msg)
	return err + content
}
