package theory

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrNoMIDIInfo is returned when a MIDI accessor is used on a Note
	// that only carries name information.
	ErrNoMIDIInfo = errors.New("note has no MIDI information")
	// ErrNoNameInfo is returned when a name accessor is used on a Note
	// that only carries MIDI information.
	ErrNoNameInfo = errors.New("note has no name information")
	// ErrNotBothInfo is returned by accessors that need the MIDI value and
	// the name at the same time.
	ErrNotBothInfo = errors.New("note does not have both MIDI and name information")
	// ErrNoInfo is returned when a Note carries nothing at all.
	ErrNoInfo = errors.New("note has no MIDI or name information")
	// ErrInvalidName is returned for note name strings that do not match
	// the <letter><accidentals><octave> grammar.
	ErrInvalidName = errors.New("invalid note name")
	// ErrInvalidDegree rejects the nonexistent 0th scale degree.
	ErrInvalidDegree = errors.New("scale degrees use 1-based indexing")
	// ErrAmbiguousRoot is returned when pitch spelling is requested against
	// a root whose enharmonic spelling is not pinned down.
	ErrAmbiguousRoot = errors.New("scale root needs a MIDI value or exactly one name")
)

type midiInfo struct {
	value  int
	octave int
}

func midiInfoFromValue(v int) midiInfo {
	return midiInfo{
		value:  v,
		octave: MiddleCOctave + floorDiv(v-MiddleCMIDI, NotesPerOctave),
	}
}

// Note is a single musical note. It carries a MIDI value, one or more
// namings (enharmonic spellings), or both; any accessor that needs a missing
// facet reports that with an error. Notes are immutable values: every
// constructor returns a fresh one.
//
// A note created from a MIDI value with name generation enabled can carry
// several namings at once (61 is both C# and Db); such a note cannot anchor
// pitch spelling, see NoteFromDegree.
type Note struct {
	midi    midiInfo
	hasMIDI bool
	namings []Naming
}

// MiddleC returns the reference note: MIDI 60 spelled C, octave 4.
func MiddleC() Note {
	return Note{
		midi:    midiInfoFromValue(MiddleCMIDI),
		hasMIDI: true,
		namings: []Naming{{Letter: 0, Accidentals: 0}},
	}
}

// NoteFromMIDI builds a Note from an absolute MIDI value. With generateNames
// set, every spelling with at most one accidental is attached, so altered
// pitches come back with two namings (sharp spelling first).
func NoteFromMIDI(midi int, generateNames bool) Note {
	n := Note{midi: midiInfoFromValue(midi), hasMIDI: true}
	if generateNames {
		offset := posMod(midi-MiddleCMIDI, NotesPerOctave)
		n.namings = append(n.namings, offsetNamings[offset]...)
	}
	return n
}

// Letters may be any alphabetic run except 'b', which always counts as a
// flat. The octave is an optional signed integer.
var noteNameRe = regexp.MustCompile(`^([ac-zA-Z]*)(b*)(#*)(-?[0-9]*)$`)

// NoteFromName parses names like "C", "F#", "Bb4" or "Cb-1". The result
// always has exactly one naming; a MIDI value is attached only when an
// octave number is present.
func NoteFromName(name string) (Note, error) {
	m := noteNameRe.FindStringSubmatch(name)
	if m == nil {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	letter := -1
	for i, nn := range noteNames {
		if nn == m[1] {
			letter = i
			break
		}
	}
	if letter < 0 {
		return Note{}, fmt.Errorf("%w: %q does not start with a note letter", ErrInvalidName, name)
	}
	if len(m[2]) > 0 && len(m[3]) > 0 {
		return Note{}, fmt.Errorf("%w: %q mixes flats and sharps", ErrInvalidName, name)
	}
	accidentals := len(m[3]) - len(m[2])

	n := Note{namings: []Naming{{Letter: letter, Accidentals: accidentals}}}
	if len(m[4]) > 0 {
		octave, err := strconv.Atoi(m[4])
		if err != nil {
			return Note{}, fmt.Errorf("%w: bad octave in %q", ErrInvalidName, name)
		}
		midi := MiddleCMIDI +
			(octave-MiddleCOctave)*NotesPerOctave +
			letterOffsets[letter] + accidentals
		// The octave is kept as written: Cb4 is MIDI 59 but stays in
		// octave 4 on paper.
		n.midi = midiInfo{value: midi, octave: octave}
		n.hasMIDI = true
	}
	return n, nil
}

// NoteFromDegree builds the note sitting on the given 1-based scale degree
// above root, altered by the requested accidentals. This is the pitch
// spelling operation: degree 3 of any C root is always spelled with the
// letter E, and the accidental count absorbs whatever chromatic adjustment
// that letter needs.
//
// The result has a MIDI value when the root has one, and a naming when the
// root has exactly one naming. A root with no MIDI value and several namings
// fails with ErrAmbiguousRoot; a root with nothing fails with ErrNoInfo.
func NoteFromDegree(root Note, degree, accidentals int) (Note, error) {
	if degree < 1 {
		return Note{}, fmt.Errorf("%w: got %d", ErrInvalidDegree, degree)
	}
	sd := degree - 1

	var n Note
	if root.hasMIDI {
		diff := letterOffsets[sd%NumLetters] +
			NotesPerOctave*(sd/NumLetters) +
			accidentals
		n.midi = midiInfoFromValue(root.midi.value + diff)
		n.hasMIDI = true
	}

	switch {
	case len(root.namings) == 1:
		rootNaming := root.namings[0]
		letter := (rootNaming.Letter + sd) % NumLetters

		// Distances are measured in semitone offsets from C. The target
		// letter's natural offset is unwrapped above the root's offset,
		// then compared against the distance the degree demands; the
		// difference is the accidental count the new letter must carry.
		rootOffset := letterOffsets[rootNaming.Letter] + rootNaming.Accidentals
		naturalOffset := letterOffsets[letter]
		if naturalOffset < rootOffset {
			naturalOffset += NotesPerOctave
		}
		expected := letterOffsets[sd%NumLetters] + accidentals
		needed := expected - (naturalOffset - rootOffset)
		n.namings = []Naming{{Letter: letter, Accidentals: needed}}

	case !root.hasMIDI:
		if len(root.namings) == 0 {
			return Note{}, fmt.Errorf("resolve scale degree %d: %w", degree, ErrNoInfo)
		}
		return Note{}, fmt.Errorf("resolve scale degree %d: %w", degree, ErrAmbiguousRoot)
	}
	return n, nil
}

// HasMIDI reports whether the note carries a MIDI value.
func (n Note) HasMIDI() bool { return n.hasMIDI }

// HasName reports whether the note carries at least one naming.
func (n Note) HasName() bool { return len(n.namings) > 0 }

// MIDI returns the absolute MIDI value.
func (n Note) MIDI() (int, error) {
	if !n.hasMIDI {
		return 0, ErrNoMIDIInfo
	}
	return n.midi.value, nil
}

// Octave returns the octave number, which requires MIDI information.
func (n Note) Octave() (int, error) {
	if !n.hasMIDI {
		return 0, ErrNoMIDIInfo
	}
	return n.midi.octave, nil
}

// Namings returns a copy of the note's namings in generation order.
func (n Note) Namings() []Naming {
	return append([]Naming(nil), n.namings...)
}

// Name returns the simple name of the first naming, e.g. "Eb".
func (n Note) Name() (string, error) {
	if !n.HasName() {
		return "", ErrNoNameInfo
	}
	return n.namings[0].String(), nil
}

// AllNames returns every naming slash-joined, e.g. "C#/Db".
func (n Note) AllNames() (string, error) {
	if !n.HasName() {
		return "", ErrNoNameInfo
	}
	parts := make([]string, len(n.namings))
	for i, nm := range n.namings {
		parts[i] = nm.String()
	}
	return strings.Join(parts, nameSeparator), nil
}

// ComplexName returns the name with octave and raw MIDI value, e.g.
// "C4 (60)". It requires both facets.
func (n Note) ComplexName() (string, error) {
	if !n.hasMIDI || !n.HasName() {
		return "", ErrNotBothInfo
	}
	name, err := n.Name()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d (%d)", name, n.midi.octave, n.midi.value), nil
}

// Render returns the richest available representation: complex name, then
// bare MIDI value, then simple name.
func (n Note) Render() (string, error) {
	switch {
	case n.hasMIDI && n.HasName():
		return n.ComplexName()
	case n.hasMIDI:
		return strconv.Itoa(n.midi.value), nil
	case n.HasName():
		return n.Name()
	}
	return "", ErrNoInfo
}

// String implements fmt.Stringer for logging; an empty note renders as a
// placeholder instead of failing.
func (n Note) String() string {
	s, err := n.Render()
	if err != nil {
		return "(empty note)"
	}
	return s
}
