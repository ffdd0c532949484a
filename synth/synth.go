// Package synth renders realised scales to audio through a SoundFont
// synthesizer, producing buffers that play through a beep speaker.
package synth

import (
	"fmt"
	"os"
	"time"

	"github.com/scaletui/scaletui/theory"
	"github.com/sinshu/go-meltysynth/meltysynth"
)

// SampleRate is the fixed render rate, matching the speaker initialisation.
const SampleRate = 44100

const (
	channel  = 0
	velocity = 100
)

type (
	Player struct {
		synth    *meltysynth.Synthesizer
		settings *meltysynth.SynthesizerSettings
	}

	// ScaleStreamer holds a fully rendered stereo buffer and implements
	// beep.Streamer over it.
	ScaleStreamer struct {
		pos   int
		left  []float32
		right []float32
	}
)

// NewPlayer loads the SoundFont at the given path and builds a synthesizer
// around it.
func NewPlayer(soundFontPath string) (*Player, error) {
	sf2, err := os.Open(soundFontPath)
	if err != nil {
		return nil, fmt.Errorf("open soundfont: %w", err)
	}
	defer sf2.Close()

	soundFont, err := meltysynth.NewSoundFont(sf2)
	if err != nil {
		return nil, fmt.Errorf("read soundfont: %w", err)
	}

	settings := meltysynth.NewSynthesizerSettings(SampleRate)
	synthesizer, err := meltysynth.NewSynthesizer(soundFont, settings)
	if err != nil {
		return nil, fmt.Errorf("create synthesizer: %w", err)
	}

	return &Player{synth: synthesizer, settings: settings}, nil
}

// RenderScale synthesizes the scale one note after another, each held for
// noteDuration, into a single streamer. Every note needs a MIDI value.
func (p *Player) RenderScale(rs theory.RealisedScale, noteDuration time.Duration) (*ScaleStreamer, error) {
	perNote := int(SampleRate * noteDuration.Seconds())
	total := perNote * rs.Len()
	streamer := &ScaleStreamer{
		left:  make([]float32, total),
		right: make([]float32, total),
	}

	for i, note := range rs.Notes() {
		midi, err := note.MIDI()
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i+1, err)
		}

		p.synth.NoteOn(channel, int32(midi), velocity)
		// The release tail of each note rings into the next segment,
		// which is what a played scale sounds like.
		p.synth.Render(
			streamer.left[i*perNote:(i+1)*perNote],
			streamer.right[i*perNote:(i+1)*perNote],
		)
		p.synth.NoteOff(channel, int32(midi))
	}
	return streamer, nil
}

// Duration converts the streamer's length into wall time.
func (ms *ScaleStreamer) Duration() time.Duration {
	return time.Duration(len(ms.left)) * time.Second / SampleRate
}

// Stream implements beep.Streamer.
func (ms *ScaleStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if ms.pos >= len(ms.left) {
		return 0, false
	}
	for i := range samples {
		if ms.pos >= len(ms.left) {
			return i, true
		}
		samples[i][0] = float64(ms.left[ms.pos])
		samples[i][1] = float64(ms.right[ms.pos])
		ms.pos++
	}
	return len(samples), true
}

// Len returns the total number of samples.
func (ms *ScaleStreamer) Len() int { return len(ms.left) }

// Position returns the current sample position.
func (ms *ScaleStreamer) Position() int { return ms.pos }

// Seek sets the sample position.
func (ms *ScaleStreamer) Seek(p int) error {
	if p < 0 || p > len(ms.left) {
		return fmt.Errorf("position out of range: %d", p)
	}
	ms.pos = p
	return nil
}

// Err implements beep.Streamer; rendering never produces a mid-stream error.
func (ms *ScaleStreamer) Err() error { return nil }
