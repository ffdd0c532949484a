// Package quiz builds multiple-choice sessions out of realised scales and
// keeps score.
package quiz

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/google/uuid"
	"github.com/scaletui/scaletui/scalebook"
)

// NumChoices is how many options a question carries at most; with a small
// scale bank a question may offer fewer.
const NumChoices = 4

// ErrNoMoreQuestions is returned when the session is already finished.
var ErrNoMoreQuestions = errors.New("no questions left in session")

const (
	correctToken    = "CORRECT"
	incorrectToken  = "INCORRECT"
	resultSeparator = ";"
)

type (
	// Question shows the spelled-out notes of a realised scale and asks
	// which scale it was.
	Question struct {
		ID           uuid.UUID
		Entry        scalebook.RealisedEntry
		Prompt       string
		Options      []string
		CorrectIndex int
	}

	// Result is the outcome of one answered question.
	Result struct {
		RootName   string
		ScaleName  string
		Difficulty scalebook.Difficulty
		Correct    bool
	}

	// Session is one quiz run: a fixed list of questions answered in order.
	Session struct {
		ID        uuid.UUID
		questions []Question
		index     int
		answers   []bool
		correct   int
	}
)

// NewSession samples n questions from the book at the given difficulty. The
// options of each question are the correct scale name plus up to
// NumChoices-1 different names from the bank, shuffled.
func NewSession(book *scalebook.Book, n int, difficulty scalebook.Difficulty, rng *rand.Rand) (*Session, error) {
	realised, err := book.RealiseRandom(n, difficulty, rng)
	if err != nil {
		return nil, fmt.Errorf("generate session: %w", err)
	}

	names := book.Names()
	questions := make([]Question, 0, n)
	for _, entry := range realised {
		prompt, err := entry.Scale.Render()
		if err != nil {
			return nil, fmt.Errorf("question %q: %w", entry.Name, err)
		}

		options := makeOptions(entry.Name, names, rng)
		correct := 0
		for i, o := range options {
			if o == entry.Name {
				correct = i
				break
			}
		}

		questions = append(questions, Question{
			ID:           uuid.New(),
			Entry:        entry,
			Prompt:       prompt,
			Options:      options,
			CorrectIndex: correct,
		})
	}

	return &Session{
		ID:        uuid.New(),
		questions: questions,
		answers:   make([]bool, 0, n),
	}, nil
}

// makeOptions picks NumChoices-1 decoy names, dropping every name equal to
// the answer first so the answer appears exactly once.
func makeOptions(answer string, names []string, rng *rand.Rand) []string {
	decoys := make([]string, 0, len(names))
	for _, name := range names {
		if name != answer {
			decoys = append(decoys, name)
		}
	}
	rng.Shuffle(len(decoys), func(i, j int) {
		decoys[i], decoys[j] = decoys[j], decoys[i]
	})
	if len(decoys) > NumChoices-1 {
		decoys = decoys[:NumChoices-1]
	}

	options := append([]string{answer}, decoys...)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// Len returns the total number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the 0-based index of the current question.
func (s *Session) Index() int { return s.index }

// Done reports whether every question has been passed.
func (s *Session) Done() bool { return s.index >= len(s.questions) }

// Current returns the question waiting for an answer.
func (s *Session) Current() (Question, error) {
	if s.Done() {
		return Question{}, ErrNoMoreQuestions
	}
	return s.questions[s.index], nil
}

// Answer records the chosen option (0-based) for the current question and
// reports whether it was right. Answering does not advance; call Next.
func (s *Session) Answer(choice int) (bool, error) {
	q, err := s.Current()
	if err != nil {
		return false, err
	}
	correct := choice == q.CorrectIndex
	s.answers = append(s.answers, correct)
	if correct {
		s.correct++
	}
	return correct, nil
}

// Next moves to the following question.
func (s *Session) Next() { s.index++ }

// Correct returns the number of right answers so far.
func (s *Session) Correct() int { return s.correct }

// SuccessPercentage returns the share of right answers over the whole
// session, truncated to an integer percentage.
func (s *Session) SuccessPercentage() int {
	if len(s.questions) == 0 {
		return 0
	}
	return int(float64(s.correct) / float64(len(s.questions)) * 100)
}

// Results lists the outcome of every answered question in order.
func (s *Session) Results() []Result {
	results := make([]Result, 0, len(s.answers))
	for i, correct := range s.answers {
		q := s.questions[i]
		rootName, err := q.Entry.Scale.Root().Name()
		if err != nil {
			// Roots without names render through the generic form.
			rootName = q.Entry.Scale.Root().String()
		}
		results = append(results, Result{
			RootName:   rootName,
			ScaleName:  q.Entry.Name,
			Difficulty: q.Entry.Difficulty,
			Correct:    correct,
		})
	}
	return results
}

// WriteResults writes one line per answered question:
//
//	Bb Major;0;CORRECT
func (s *Session) WriteResults(w io.Writer) error {
	for _, res := range s.Results() {
		token := incorrectToken
		if res.Correct {
			token = correctToken
		}
		_, err := fmt.Fprintf(w, "%s %s%s%d%s%s\n",
			res.RootName, res.ScaleName,
			resultSeparator, int(res.Difficulty),
			resultSeparator, token)
		if err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}
	return nil
}
