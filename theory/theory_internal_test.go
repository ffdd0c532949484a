package theory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmbiguousRootSpelling(t *testing.T) {
	// A note holding two namings and no MIDI value cannot be built through
	// the public constructors, but the spelling algorithm still has to
	// refuse it: without knowing which enharmonic the root means, the
	// letters of every other degree are undefined.
	root := Note{namings: []Naming{
		{Letter: 0, Accidentals: 1},
		{Letter: 1, Accidentals: -1},
	}}

	_, err := NoteFromDegree(root, 3, 0)
	require.ErrorIs(t, err, ErrAmbiguousRoot)

	// Degree 1 realisation bypasses the constructor entirely.
	rs, err := Realise(root, NewScale([]Degree{{Number: 1}}))
	require.NoError(t, err)
	require.Equal(t, root, rs.At(0))
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 12, 0},
		{11, 12, 0},
		{12, 12, 1},
		{-1, 12, -1},
		{-12, 12, -1},
		{-13, 12, -2},
	}
	for _, tc := range cases {
		require.Equalf(t, tc.want, floorDiv(tc.a, tc.b), "floorDiv(%d, %d)", tc.a, tc.b)
	}
}

func TestPosMod(t *testing.T) {
	require.Equal(t, 11, posMod(-1, 12))
	require.Equal(t, 0, posMod(-12, 12))
	require.Equal(t, 1, posMod(61-MiddleCMIDI, 12))
	require.Equal(t, 5, posMod(17, 12))
}

func TestOffsetNamingTablesAgree(t *testing.T) {
	// Every naming in the offset table must map back to its own offset
	// through the letter table.
	for offset, namings := range offsetNamings {
		require.NotEmpty(t, namings)
		for _, nm := range namings {
			require.Equal(t, offset, letterOffsets[nm.Letter]+nm.Accidentals)
		}
	}
	// Naturals have one spelling, altered offsets have two.
	for _, natural := range letterOffsets {
		require.Len(t, offsetNamings[natural], 1)
	}
}
