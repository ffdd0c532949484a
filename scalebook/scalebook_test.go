package scalebook_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/scaletui/scaletui/scalebook"
	"github.com/scaletui/scaletui/theory"
	"github.com/stretchr/testify/require"
)

const bankCSV = `name;difficulty;degrees
Major;Easy;1,2,3,4,5,6,7
Natural Minor;Easy;1,2,b3,4,5,b6,b7
Harmonic Minor;Medium;1,2,b3,4,5,b6,7
Lydian;Medium;1,2,3,#4,5,6,7
Whole Tone;Hard;1,2,3,#4,#5,#6
`

func loadBank(t *testing.T) *scalebook.Book {
	t.Helper()
	book, err := scalebook.Load(strings.NewReader(bankCSV))
	require.NoError(t, err)
	return book
}

func TestLoad(t *testing.T) {
	t.Run("loads every row past the header", func(t *testing.T) {
		book := loadBank(t)
		require.Equal(t, 5, book.Len())
		require.Equal(t, []string{
			"Major", "Natural Minor", "Harmonic Minor", "Lydian", "Whole Tone",
		}, book.Names())

		entries := book.Entries()
		require.Equal(t, "Major", entries[0].Name)
		require.Equal(t, scalebook.Easy, entries[0].Difficulty)
		require.Equal(t, "1,2,3,4,5,6,7", entries[0].Scale.Render())
		require.Equal(t, scalebook.Hard, entries[4].Difficulty)
	})

	t.Run("rejects an unknown difficulty with its row number", func(t *testing.T) {
		_, err := scalebook.Load(strings.NewReader(
			"name;difficulty;degrees\nMajor;Impossible;1,2,3\n"))
		require.ErrorContains(t, err, "row 2")
		require.ErrorContains(t, err, "Impossible")
	})

	t.Run("rejects a malformed scale column", func(t *testing.T) {
		_, err := scalebook.Load(strings.NewReader(
			"name;difficulty;degrees\nBroken;Easy;1,b#3\n"))
		require.ErrorIs(t, err, theory.ErrConflictingAccidentals)
	})

	t.Run("rejects a short row", func(t *testing.T) {
		_, err := scalebook.Load(strings.NewReader(
			"name;difficulty;degrees\nMajor;Easy\n"))
		require.ErrorContains(t, err, "expected 3 columns")
	})
}

func TestParseDifficulty(t *testing.T) {
	for text, want := range map[string]scalebook.Difficulty{
		"Easy": scalebook.Easy, "Medium": scalebook.Medium, "Hard": scalebook.Hard,
	} {
		got, err := scalebook.ParseDifficulty(text)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, text, got.String())
	}

	_, err := scalebook.ParseDifficulty("easy")
	require.Error(t, err)
}

func TestRoots(t *testing.T) {
	roots := scalebook.Roots()
	require.Len(t, roots, 13)

	var names []string
	for _, root := range roots {
		name, err := root.Name()
		require.NoError(t, err)
		names = append(names, name)

		// Every root is anchored at middle C's octave with a MIDI value.
		_, err = root.MIDI()
		require.NoError(t, err)
	}
	require.Equal(t, []string{
		"C", "Db", "D", "Eb", "E", "F", "F#", "Gb", "G", "Ab", "A", "Bb", "B",
	}, names)
}

func TestRandomEntries(t *testing.T) {
	book := loadBank(t)
	rng := rand.New(rand.NewSource(1))

	t.Run("stays at or below the requested difficulty", func(t *testing.T) {
		entries, err := book.RandomEntries(50, scalebook.Medium, rng)
		require.NoError(t, err)
		require.Len(t, entries, 50)
		for _, e := range entries {
			require.LessOrEqual(t, e.Difficulty, scalebook.Medium)
		}
	})

	t.Run("empty book fails", func(t *testing.T) {
		empty, err := scalebook.Load(strings.NewReader("name;difficulty;degrees\n"))
		require.NoError(t, err)
		_, err = empty.RandomEntries(1, scalebook.Hard, rng)
		require.ErrorIs(t, err, scalebook.ErrNoScales)
	})

	t.Run("fails when everything is harder than requested", func(t *testing.T) {
		hardOnly, err := scalebook.Load(strings.NewReader(
			"name;difficulty;degrees\nWhole Tone;Hard;1,2,3,#4,#5,#6\n"))
		require.NoError(t, err)
		_, err = hardOnly.RandomEntries(1, scalebook.Easy, rng)
		require.ErrorIs(t, err, scalebook.ErrNoScales)
	})
}

func TestRandomRoots(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	t.Run("easy sessions only see the weighted keys", func(t *testing.T) {
		allowed := map[string]bool{
			"C": true, "D": true, "Eb": true, "F": true,
			"G": true, "A": true, "Bb": true,
		}
		for _, root := range scalebook.RandomRoots(200, scalebook.Easy, rng) {
			name, err := root.Name()
			require.NoError(t, err)
			require.Truef(t, allowed[name], "unexpected easy root %q", name)
		}
	})

	t.Run("hard sessions eventually reach the rare keys", func(t *testing.T) {
		seen := map[string]bool{}
		for _, root := range scalebook.RandomRoots(500, scalebook.Hard, rng) {
			name, err := root.Name()
			require.NoError(t, err)
			seen[name] = true
		}
		for _, rare := range []string{"Db", "F#", "Gb", "B"} {
			require.Truef(t, seen[rare], "never sampled %q", rare)
		}
	})
}

func TestRealiseRandom(t *testing.T) {
	book := loadBank(t)
	rng := rand.New(rand.NewSource(42))

	realised, err := book.RealiseRandom(20, scalebook.Hard, rng)
	require.NoError(t, err)
	require.Len(t, realised, 20)

	for _, re := range realised {
		require.NotEmpty(t, re.Name)
		require.Greater(t, re.Scale.Len(), 0)

		// Every realisation must be fully spelled and playable.
		rendered, err := re.Scale.Render()
		require.NoError(t, err)
		require.NotEmpty(t, rendered)
		for i := 0; i < re.Scale.Len(); i++ {
			_, err := re.Scale.At(i).MIDI()
			require.NoError(t, err)
		}
	}
}
