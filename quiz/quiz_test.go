package quiz_test

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/scaletui/scaletui/quiz"
	"github.com/scaletui/scaletui/scalebook"
	"github.com/stretchr/testify/require"
)

const bankCSV = `name;difficulty;degrees
Major;Easy;1,2,3,4,5,6,7
Natural Minor;Easy;1,2,b3,4,5,b6,b7
Harmonic Minor;Medium;1,2,b3,4,5,b6,7
Lydian;Medium;1,2,3,#4,5,6,7
Mixolydian;Medium;1,2,3,4,5,6,b7
`

func newSession(t *testing.T, n int) *quiz.Session {
	t.Helper()
	book, err := scalebook.Load(strings.NewReader(bankCSV))
	require.NoError(t, err)

	s, err := quiz.NewSession(book, n, scalebook.Medium, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s := newSession(t, 8)
	require.Equal(t, 8, s.Len())
	require.False(t, s.Done())

	seen := map[string]bool{}
	for !s.Done() {
		q, err := s.Current()
		require.NoError(t, err)

		require.Len(t, q.Options, quiz.NumChoices)
		require.NotEmpty(t, q.Prompt)
		require.Contains(t, q.Options, q.Entry.Name)
		require.Equal(t, q.Entry.Name, q.Options[q.CorrectIndex])

		// Options never repeat within a question.
		unique := map[string]bool{}
		for _, o := range q.Options {
			unique[o] = true
		}
		require.Len(t, unique, len(q.Options))

		require.False(t, seen[q.ID.String()], "question IDs must be unique")
		seen[q.ID.String()] = true

		_, err = s.Answer(q.CorrectIndex)
		require.NoError(t, err)
		s.Next()
	}

	_, err := s.Current()
	require.ErrorIs(t, err, quiz.ErrNoMoreQuestions)
}

func TestSessionScoring(t *testing.T) {
	s := newSession(t, 4)

	answerWith := func(correct bool) {
		q, err := s.Current()
		require.NoError(t, err)
		choice := q.CorrectIndex
		if !correct {
			choice = (q.CorrectIndex + 1) % len(q.Options)
		}
		got, err := s.Answer(choice)
		require.NoError(t, err)
		require.Equal(t, correct, got)
		s.Next()
	}

	answerWith(true)
	answerWith(false)
	answerWith(true)
	answerWith(true)

	require.True(t, s.Done())
	require.Equal(t, 3, s.Correct())
	require.Equal(t, 75, s.SuccessPercentage())

	results := s.Results()
	require.Len(t, results, 4)
	require.True(t, results[0].Correct)
	require.False(t, results[1].Correct)
}

func TestWriteResults(t *testing.T) {
	s := newSession(t, 3)
	for !s.Done() {
		q, err := s.Current()
		require.NoError(t, err)
		_, err = s.Answer(q.CorrectIndex)
		require.NoError(t, err)
		s.Next()
	}

	var buf bytes.Buffer
	require.NoError(t, s.WriteResults(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	for i, line := range lines {
		fields := strings.Split(line, ";")
		require.Lenf(t, fields, 3, "line %d: %q", i+1, line)
		require.Contains(t, fields[0], " ") // "<root> <scale name>"
		require.Contains(t, []string{"0", "1", "2"}, fields[1])
		require.Equal(t, "CORRECT", fields[2])
	}
}

func TestNewSessionEmptyBook(t *testing.T) {
	book, err := scalebook.Load(strings.NewReader("name;difficulty;degrees\n"))
	require.NoError(t, err)

	_, err = quiz.NewSession(book, 5, scalebook.Easy, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, scalebook.ErrNoScales)
}
