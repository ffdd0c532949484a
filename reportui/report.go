package reportui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/scaletui/scaletui/quiz"
	"github.com/scaletui/scaletui/styles"
	"golang.org/x/term"
)

// Model shows the per-question results of a finished session as a table,
// with the overall score underneath.
type Model struct {
	session     *quiz.Session
	resultTable table.Model
	// Where the results were saved, shown for reference. Empty when
	// nothing was written.
	savedTo string
}

func New(session *quiz.Session, savedTo string) Model {
	return Model{
		session:     session,
		resultTable: makeResultsTable(session),
		savedTo:     savedTo,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resultTable.SetWidth(msg.Width - 10)
	}
	newTable, cmd := m.resultTable.Update(msg)
	m.resultTable = newTable
	return m, cmd
}

func (m Model) View() string {
	physicalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	doc := strings.Builder{}

	doc.WriteString(styles.HeaderStyle.Render("Session complete") + "\n\n")
	doc.WriteString(styles.BaseStyle.Width(styles.Width).Render(m.resultTable.View()) + "\n\n")

	score := fmt.Sprintf("You got %d/%d right (%d%%).",
		m.session.Correct(), m.session.Len(), m.session.SuccessPercentage())
	doc.WriteString(styles.ScoreStyle.Render(score) + "\n")

	if m.savedTo != "" {
		doc.WriteString(styles.MessageText.Render("Results saved to "+m.savedTo) + "\n")
	}
	doc.WriteString("\n" + styles.MessageText.Render("Press ctrl+c or esc to quit."))

	docStyle := styles.DocStyle
	if physicalWidth > 0 {
		docStyle = docStyle.MaxWidth(physicalWidth)
	}
	return docStyle.Render(doc.String())
}

func makeResultsTable(session *quiz.Session) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Root", Width: 6},
		{Title: "Scale", Width: 24},
		{Title: "Difficulty", Width: 10},
		{Title: "Result", Width: 10},
	}

	results := session.Results()
	rows := make([]table.Row, 0, len(results))
	for i, res := range results {
		outcome := "wrong"
		if res.Correct {
			outcome = "right"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			res.RootName,
			res.ScaleName,
			res.Difficulty.String(),
			outcome,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}
