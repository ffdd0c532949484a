package theory

import (
	"fmt"
	"strings"
)

// RealisedScale is a scale pattern instantiated against a concrete root,
// e.g. "C Major" rather than "Major". Notes are index-aligned with the
// degrees of the originating Scale.
type RealisedScale struct {
	notes []Note
}

// Realise spells out every degree of scale against root. Degree 1 reuses
// the root note untouched, keeping whatever spelling (or spelling ambiguity)
// it arrived with; every other degree goes through NoteFromDegree, and the
// first failure aborts the whole realisation.
func Realise(root Note, scale Scale) (RealisedScale, error) {
	notes := make([]Note, 0, scale.Len())
	for _, d := range scale.degrees {
		if d.Number == 1 {
			notes = append(notes, root)
			continue
		}
		note, err := NoteFromDegree(root, d.Number, d.Accidentals)
		if err != nil {
			return RealisedScale{}, fmt.Errorf("realise %q: %w", scale.Render(), err)
		}
		notes = append(notes, note)
	}
	return RealisedScale{notes: notes}, nil
}

// Root returns the first note of the scale. Scales that do not start on the
// tonic get the "wrong" answer by construction.
func (rs RealisedScale) Root() Note {
	if len(rs.notes) == 0 {
		return Note{}
	}
	return rs.notes[0]
}

// Len returns the number of notes.
func (rs RealisedScale) Len() int { return len(rs.notes) }

// At returns the i'th note.
func (rs RealisedScale) At(i int) Note { return rs.notes[i] }

// Notes returns a copy of the note list.
func (rs RealisedScale) Notes() []Note {
	return append([]Note(nil), rs.notes...)
}

// Render joins the simple names of all notes with the scale separator,
// e.g. "Bb,C,D,Eb,F,G,A". It fails if any note lacks a name.
func (rs RealisedScale) Render() (string, error) {
	parts := make([]string, len(rs.notes))
	for i, n := range rs.notes {
		name, err := n.Name()
		if err != nil {
			return "", fmt.Errorf("note %d: %w", i+1, err)
		}
		parts[i] = name
	}
	return strings.Join(parts, DegreeSeparator), nil
}
