// Package scalebook loads the scale bank from its CSV form and hands out
// difficulty-weighted random scales and root notes for quiz sessions.
package scalebook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/scaletui/scaletui/theory"
)

// ErrNoScales is returned when a sample is requested before any scales were
// loaded, or none exist at the requested difficulty or below.
var ErrNoScales = errors.New("no scales available")

// CSVSeparator splits the columns of the scale bank file.
const CSVSeparator = ';'

// Difficulty buckets the scales and weighs the root notes.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// ParseDifficulty reads the textual difficulty column.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "Easy":
		return Easy, nil
	case "Medium":
		return Medium, nil
	case "Hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("invalid difficulty %q", s)
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// Clamp pins an arbitrary integer into the valid difficulty range.
func Clamp(d int) Difficulty {
	if d < int(Easy) {
		return Easy
	}
	if d > int(Hard) {
		return Hard
	}
	return Difficulty(d)
}

type (
	// Entry is one loaded scale with its display name and difficulty.
	Entry struct {
		Name       string
		Difficulty Difficulty
		Scale      theory.Scale
	}

	// RealisedEntry pairs an Entry's metadata with a concrete realisation.
	RealisedEntry struct {
		Name       string
		Difficulty Difficulty
		Scale      theory.RealisedScale
	}

	// Book is the loaded scale bank.
	Book struct {
		entries      []Entry
		byDifficulty map[Difficulty][]Entry
		names        []string
	}
)

// Load parses the semicolon-separated scale bank, e.g.
//
//	name;difficulty;degrees
//	Major;Easy;1,2,3,4,5,6,7
//
// The first row is a header and is skipped. Any malformed row fails the
// whole load with its row number.
func Load(r io.Reader) (*Book, error) {
	reader := csv.NewReader(r)
	reader.Comma = CSVSeparator
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read scale bank: %w", err)
	}

	book := Book{byDifficulty: make(map[Difficulty][]Entry)}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) != 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", i+1, len(row))
		}
		difficulty, err := ParseDifficulty(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		scale, err := theory.ParseScale(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse scale: %w", i+1, err)
		}
		entry := Entry{Name: row[0], Difficulty: difficulty, Scale: scale}
		book.entries = append(book.entries, entry)
		book.byDifficulty[difficulty] = append(book.byDifficulty[difficulty], entry)
		book.names = append(book.names, entry.Name)
	}
	return &book, nil
}

// Len returns the number of loaded scales.
func (b *Book) Len() int { return len(b.entries) }

// Names returns a copy of all loaded scale names, in file order.
func (b *Book) Names() []string {
	return append([]string(nil), b.names...)
}

// Entries returns a copy of all loaded entries, in file order.
func (b *Book) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

// The quizzable roots cover the common key spellings only: E major exists,
// so Fb major does not.
var rootDegrees = []theory.Degree{
	{Number: 1},                    // C
	{Number: 2, Accidentals: -1},   // Db
	{Number: 2},                    // D
	{Number: 3, Accidentals: -1},   // Eb
	{Number: 3},                    // E
	{Number: 4},                    // F
	{Number: 4, Accidentals: 1},    // F#
	{Number: 5, Accidentals: -1},   // Gb
	{Number: 5},                    // G
	{Number: 6, Accidentals: -1},   // Ab
	{Number: 6},                    // A
	{Number: 7, Accidentals: -1},   // Bb
	{Number: 7},                    // B
}

// Rare keys only show up at higher difficulties, and higher difficulties
// still favour the everyday ones.
var rootWeights = [3][13]float64{
	{1, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1, 1, 0},
	{1, 0, 1, 1, 1, 1, 0, 0, 1, 1, 1, 1, 0},
	{2, 1, 2, 2, 2, 2, 1, 1, 2, 1, 2, 2, 1},
}

var possibleRoots = makeRoots()

func makeRoots() []theory.Note {
	middleC := theory.MiddleC()
	roots := make([]theory.Note, 0, len(rootDegrees))
	for _, d := range rootDegrees {
		root, err := theory.NoteFromDegree(middleC, d.Number, d.Accidentals)
		if err != nil {
			// Middle C has both facets; this cannot fail for valid degrees.
			panic(err)
		}
		roots = append(roots, root)
	}
	return roots
}

// Roots returns the canonical root notes, all anchored at middle C's octave.
func Roots() []theory.Note {
	return append([]theory.Note(nil), possibleRoots...)
}

// RandomEntries samples n scales. The difficulty of each sample is drawn
// uniformly from the populated buckets at or below the requested difficulty,
// then a scale is drawn uniformly within that bucket.
func (b *Book) RandomEntries(n int, difficulty Difficulty, rng *rand.Rand) ([]Entry, error) {
	var available []Difficulty
	for d := Easy; d <= Clamp(int(difficulty)); d++ {
		if len(b.byDifficulty[d]) > 0 {
			available = append(available, d)
		}
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("%w at difficulty %s or below", ErrNoScales, difficulty)
	}

	sampled := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		bucket := b.byDifficulty[available[rng.Intn(len(available))]]
		sampled = append(sampled, bucket[rng.Intn(len(bucket))])
	}
	return sampled, nil
}

// RandomRoots samples n root notes using the requested difficulty's weights.
func RandomRoots(n int, difficulty Difficulty, rng *rand.Rand) []theory.Note {
	weights := rootWeights[Clamp(int(difficulty))]
	var total float64
	for _, w := range weights {
		total += w
	}

	roots := make([]theory.Note, 0, n)
	for i := 0; i < n; i++ {
		pick := rng.Float64() * total
		idx := 0
		for j, w := range weights {
			pick -= w
			if pick < 0 {
				idx = j
				break
			}
		}
		roots = append(roots, possibleRoots[idx])
	}
	return roots
}

// RealiseRandom pairs sampled scales with sampled roots into concrete
// realised entries.
func (b *Book) RealiseRandom(n int, difficulty Difficulty, rng *rand.Rand) ([]RealisedEntry, error) {
	entries, err := b.RandomEntries(n, difficulty, rng)
	if err != nil {
		return nil, err
	}
	roots := RandomRoots(n, difficulty, rng)

	realised := make([]RealisedEntry, 0, n)
	for i, entry := range entries {
		rs, err := theory.Realise(roots[i], entry.Scale)
		if err != nil {
			return nil, fmt.Errorf("scale %q: %w", entry.Name, err)
		}
		realised = append(realised, RealisedEntry{
			Name:       entry.Name,
			Difficulty: entry.Difficulty,
			Scale:      rs,
		})
	}
	return realised, nil
}
