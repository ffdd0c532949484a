package smfout_test

import (
	"bytes"
	"testing"

	"github.com/scaletui/scaletui/smfout"
	"github.com/scaletui/scaletui/theory"
	"github.com/stretchr/testify/require"
)

func realiseMajor(t *testing.T, rootName string) theory.RealisedScale {
	t.Helper()
	root, err := theory.NoteFromName(rootName)
	require.NoError(t, err)
	scale, err := theory.ParseScale("1,2,3,4,5,6,7")
	require.NoError(t, err)
	rs, err := theory.Realise(root, scale)
	require.NoError(t, err)
	return rs
}

func TestTrack(t *testing.T) {
	rs := realiseMajor(t, "C4")

	tr, err := smfout.Track(rs, "C Major")
	require.NoError(t, err)

	// Track name, one on/off pair per note, end of track.
	require.Len(t, tr, 1+2*rs.Len()+1)

	wantKeys := []uint8{60, 62, 64, 65, 67, 69, 71}
	var gotKeys []uint8
	for _, ev := range tr {
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) {
			gotKeys = append(gotKeys, key)
		}
	}
	require.Equal(t, wantKeys, gotKeys)
}

func TestTrackRequiresMIDI(t *testing.T) {
	// A name without an octave realises into name-only notes.
	root, err := theory.NoteFromName("D")
	require.NoError(t, err)
	scale, err := theory.ParseScale("1,2,3")
	require.NoError(t, err)
	rs, err := theory.Realise(root, scale)
	require.NoError(t, err)

	_, err = smfout.Track(rs, "D Major")
	require.ErrorIs(t, err, theory.ErrNoMIDIInfo)
}

func TestTrackRejectsOutOfRangeValues(t *testing.T) {
	root, err := theory.NoteFromName("C9") // MIDI 120
	require.NoError(t, err)
	scale, err := theory.ParseScale("1,8")
	require.NoError(t, err)
	rs, err := theory.Realise(root, scale)
	require.NoError(t, err)

	_, err = smfout.Track(rs, "too high")
	require.ErrorContains(t, err, "out of range")
}

func TestWrite(t *testing.T) {
	rs := realiseMajor(t, "Bb3")

	var buf bytes.Buffer
	require.NoError(t, smfout.Write(rs, "Bb Major", &buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("MThd")))
}
