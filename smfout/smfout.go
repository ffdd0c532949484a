// Package smfout writes realised scales as Standard MIDI Files, one quarter
// note per scale tone.
package smfout

import (
	"fmt"
	"io"
	"os"

	"github.com/scaletui/scaletui/theory"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 960
	channel         = 0
	velocity        = 100
)

// Track builds a single SMF track playing the scale in order, with the
// given name as the track name. Every note needs a MIDI value in 0-127.
func Track(rs theory.RealisedScale, name string) (smf.Track, error) {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))

	for i, note := range rs.Notes() {
		value, err := note.MIDI()
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i+1, err)
		}
		if value < 0 || value > 127 {
			return nil, fmt.Errorf("note %d: MIDI value %d out of range", i+1, value)
		}
		key := uint8(value)
		tr.Add(0, midi.NoteOn(channel, key, velocity))
		tr.Add(ticksPerQuarter, midi.NoteOff(channel, key))
	}
	tr.Close(0)
	return tr, nil
}

// Write emits the scale as a complete single-track SMF.
func Write(rs theory.RealisedScale, name string, w io.Writer) error {
	tr, err := Track(rs, name)
	if err != nil {
		return err
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("write SMF: %w", err)
	}
	return nil
}

// WriteFile writes the scale to a new .mid file at path.
func WriteFile(rs theory.RealisedScale, name, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(rs, name, f); err != nil {
		return err
	}
	return f.Close()
}
