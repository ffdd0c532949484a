package scaletui

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/scaletui/scaletui/keymap"
	"github.com/scaletui/scaletui/quiz"
	"github.com/scaletui/scaletui/quizerr"
	"github.com/scaletui/scaletui/quizui"
	"github.com/scaletui/scaletui/reportui"
	"github.com/scaletui/scaletui/scalebook"
	"github.com/scaletui/scaletui/synth"
)

type (
	// Config carries everything Run needs to build a session.
	Config struct {
		Questions  int
		InputPath  string
		OutputPath string
		Difficulty scalebook.Difficulty
		// SoundFontPath is optional; without it the quiz runs silent.
		SoundFontPath string
	}

	appView int

	mainModel struct {
		curView appView
		quiz    tea.Model
		report  tea.Model

		outputPath string
		curError   string
	}
)

const (
	quizView appView = iota
	reportView
)

func newModel(cfg Config, session *quiz.Session, player *synth.Player) mainModel {
	return mainModel{
		curView:    quizView,
		quiz:       quizui.New(session, player),
		outputPath: cfg.OutputPath,
	}
}

func (m mainModel) Init() tea.Cmd {
	return tea.Batch(
		m.quiz.Init(),
	)
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case quizerr.ErrMsg:
		m.curError = msg.Error()

	case tea.KeyMsg:
		switch {
		// Ctrl+c exits. Even with short running programs it's good to have
		// a quit key, just incase your logic is off. Users will be very
		// annoyed if they can't exit.
		case key.Matches(msg, keymap.DefaultMapping.Quit):
			return m, tea.Quit
		}

	case quizui.FinishedMsg:
		savedTo := m.outputPath
		if err := writeResults(msg.Session, m.outputPath); err != nil {
			savedTo = ""
			cmds = append(cmds, m.handleError(err))
		}
		m.report = reportui.New(msg.Session, savedTo)
		m.curView = reportView
	}

	// Call sub-model Updates
	switch m.curView {
	case quizView:
		m.quiz, cmd = m.quiz.Update(msg)
	case reportView:
		m.report, cmd = m.report.Update(msg)
	}

	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m mainModel) View() string {
	switch m.curView {
	case reportView:
		return m.report.View()
	default:
		return m.quiz.View()
	}
}

// Run loads the scale bank, builds a session and hands the terminal to the
// quiz until it finishes or the user quits.
func Run(cfg Config) {
	in, err := os.Open(cfg.InputPath)
	if err != nil {
		bail(fmt.Errorf("open scale bank: %w", err))
	}
	book, err := scalebook.Load(in)
	in.Close()
	if err != nil {
		bail(err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	session, err := quiz.NewSession(book, cfg.Questions, cfg.Difficulty, rng)
	if err != nil {
		bail(err)
	}

	var player *synth.Player
	if cfg.SoundFontPath != "" {
		player, err = synth.NewPlayer(cfg.SoundFontPath)
		if err != nil {
			bail(err)
		}
		sr := beep.SampleRate(synth.SampleRate)
		if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
			bail(fmt.Errorf("init speaker: %w", err))
		}
	}

	p := tea.NewProgram(newModel(cfg, session, player), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		bail(err)
	}
}

func writeResults(session *quiz.Session, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer out.Close()

	if err := session.WriteResults(out); err != nil {
		return err
	}
	return out.Close()
}

func bail(err error) {
	if err != nil {
		fmt.Printf("Uh oh, there was an error: %v\n", err)
		os.Exit(1)
	}
}

func (m mainModel) handleError(err error) tea.Cmd {
	return func() tea.Msg {
		return quizerr.ErrMsg{Err: err}
	}
}
