// Package theory models western pitches and scales symbolically: MIDI
// values, letter-based note names with accidentals, abstract scale degree
// patterns, and the pitch spelling that ties them together.
package theory

const (
	// MiddleCMIDI is the MIDI value of the reference pitch, middle C.
	MiddleCMIDI = 60
	// MiddleCOctave is the octave number of the reference pitch.
	MiddleCOctave = 4
	// NotesPerOctave is the number of chromatic steps in an octave.
	NotesPerOctave = 12
	// NumLetters is the number of natural note letters.
	NumLetters = 7
)

var noteNames = [NumLetters]string{"C", "D", "E", "F", "G", "A", "B"}

const (
	flatSymbol    = "b"
	sharpSymbol   = "#"
	nameSeparator = "/"
)

// Naming is one way to spell a pitch class: a letter index (0 = C .. 6 = B)
// plus a signed accidental count (negative = flats, positive = sharps).
type Naming struct {
	Letter      int
	Accidentals int
}

// String renders the naming as letter plus accidental symbols, e.g. "Eb".
func (nm Naming) String() string {
	symbol := sharpSymbol
	count := nm.Accidentals
	if count < 0 {
		symbol = flatSymbol
		count = -count
	}
	s := noteNames[nm.Letter]
	for i := 0; i < count; i++ {
		s += symbol
	}
	return s
}

// letterOffsets maps a letter index to its semitone offset from C.
var letterOffsets = [NumLetters]int{0, 2, 4, 5, 7, 9, 11}

// offsetNamings maps a semitone offset within the octave to every spelling
// with at most one accidental. Altered offsets carry the sharp spelling
// before the flat one; natural offsets have exactly one entry.
var offsetNamings = [NotesPerOctave][]Naming{
	{{Letter: 0, Accidentals: 0}},
	{{Letter: 0, Accidentals: 1}, {Letter: 1, Accidentals: -1}},
	{{Letter: 1, Accidentals: 0}},
	{{Letter: 1, Accidentals: 1}, {Letter: 2, Accidentals: -1}},
	{{Letter: 2, Accidentals: 0}},
	{{Letter: 3, Accidentals: 0}},
	{{Letter: 3, Accidentals: 1}, {Letter: 4, Accidentals: -1}},
	{{Letter: 4, Accidentals: 0}},
	{{Letter: 4, Accidentals: 1}, {Letter: 5, Accidentals: -1}},
	{{Letter: 5, Accidentals: 0}},
	{{Letter: 5, Accidentals: 1}, {Letter: 6, Accidentals: -1}},
	{{Letter: 6, Accidentals: 0}},
}

// floorDiv divides rounding toward negative infinity, so octave math stays
// correct below the reference pitch.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// posMod reduces a into [0, b) even for negative a.
func posMod(a, b int) int {
	return ((a % b) + b) % b
}
