package quizui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/scaletui/scaletui/keymap"
	"github.com/scaletui/scaletui/quiz"
	"github.com/scaletui/scaletui/quizerr"
	"github.com/scaletui/scaletui/styles"
	"github.com/scaletui/scaletui/synth"
	"golang.org/x/term"
)

// How long each tone of a played scale is held.
const noteDuration = time.Millisecond * 400

type (
	// FinishedMsg is sent once the last question has been answered and
	// passed, so the parent model can switch to the report.
	FinishedMsg struct {
		Session *quiz.Session
	}

	playedMsg struct{}

	model struct {
		session *quiz.Session
		// Player is nil when no SoundFont was loaded; playback is then
		// disabled but the quiz still works.
		player *synth.Player

		answered    bool
		lastChoice  int
		lastCorrect bool

		help     help.Model
		curError string

		log *log.Logger
	}
)

func New(session *quiz.Session, player *synth.Player) model {
	return model{
		session:    session,
		player:     player,
		lastChoice: -1,
		help:       help.New(),
		log:        log.Default(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case quizerr.ErrMsg:
		m.log.Println(msg.Err)
		m.curError = msg.Error()

	case playedMsg:
		// Playback finished, nothing to update.

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keymap.DefaultMapping.Answer):
			if m.answered || m.session.Done() {
				break
			}
			cmds = append(cmds, m.answer(msg.String()))

		case key.Matches(msg, keymap.DefaultMapping.Play):
			cmds = append(cmds, m.playScale())

		case key.Matches(msg, keymap.DefaultMapping.Next):
			if !m.answered {
				break
			}
			m.session.Next()
			m.answered = false
			m.lastChoice = -1
			m.curError = ""
			if m.session.Done() {
				cmds = append(cmds, m.finish())
			}
		}

	case answeredMsg:
		m.answered = true
		m.lastChoice = msg.choice
		m.lastCorrect = msg.correct
	}

	return m, tea.Batch(cmds...)
}

type answeredMsg struct {
	choice  int
	correct bool
}

func (m model) answer(keyPressed string) tea.Cmd {
	return func() tea.Msg {
		choice := int(keyPressed[0] - '1')
		q, err := m.session.Current()
		if err != nil {
			return quizerr.ErrMsg{Err: err}
		}
		if choice < 0 || choice >= len(q.Options) {
			// Fewer options than keys; ignore the stray press.
			return nil
		}
		correct, err := m.session.Answer(choice)
		if err != nil {
			return quizerr.ErrMsg{Err: err}
		}
		return answeredMsg{choice: choice, correct: correct}
	}
}

// PlayScale renders the current question's scale and blocks until the
// speaker has drained it, so a second press cannot overlap the first.
func (m model) playScale() tea.Cmd {
	return func() tea.Msg {
		if m.player == nil {
			return quizerr.ErrMsg{Err: errors.New("playback disabled: no soundfont loaded")}
		}
		q, err := m.session.Current()
		if err != nil {
			return quizerr.ErrMsg{Err: err}
		}
		streamer, err := m.player.RenderScale(q.Entry.Scale, noteDuration)
		if err != nil {
			return quizerr.ErrMsg{Err: fmt.Errorf("render scale: %w", err)}
		}

		done := make(chan struct{})
		speaker.Play(beep.Seq(streamer, beep.Callback(func() {
			close(done)
		})))
		<-done
		return playedMsg{}
	}
}

func (m model) finish() tea.Cmd {
	return func() tea.Msg {
		return FinishedMsg{Session: m.session}
	}
}

func (m model) View() string {
	physicalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	doc := strings.Builder{}

	docStyle := styles.DocStyle
	if physicalWidth > 0 {
		docStyle = docStyle.MaxWidth(physicalWidth)
	}

	if m.session.Done() {
		return docStyle.Render("Writing up your results...")
	}

	q, err := m.session.Current()
	if err != nil {
		return docStyle.Render(styles.RenderError(err.Error()))
	}

	header := styles.HeaderStyle.Render(
		fmt.Sprintf("On question %d/%d", m.session.Index()+1, m.session.Len()),
	)
	doc.WriteString(header + "\n\n")
	doc.WriteString("Which scale is this?\n\n")
	doc.WriteString(styles.PromptStyle.Render(q.Prompt) + "\n\n")

	for i, option := range q.Options {
		line := fmt.Sprintf("%d) %s", i+1, option)
		style := styles.OptionStyle
		if m.answered {
			switch i {
			case q.CorrectIndex:
				style = styles.CorrectAnswerStyle
			case m.lastChoice:
				style = styles.WrongAnswerStyle
			}
		}
		doc.WriteString(style.Render(line) + "\n")
	}

	if m.answered {
		feedback := "Correct!"
		if !m.lastCorrect {
			feedback = fmt.Sprintf("Incorrect. It was %q.", q.Options[q.CorrectIndex])
		}
		doc.WriteString(styles.FeedbackStyle.Render(feedback) + "\n")
	}

	if m.curError != "" {
		doc.WriteString("\n" + styles.RenderError(m.curError) + "\n")
	}

	helpView := m.help.View(keymap.DefaultMapping)
	doc.WriteString(styles.HelpMenu.Render(helpView))

	return docStyle.Render(doc.String())
}
