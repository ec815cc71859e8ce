package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-stacker/internal/core"
)

// Note frequencies in Hz.
const (
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
)

// CueSound builds the streamer for a cue, or nil for cues without a sound.
func CueSound(c core.Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case core.CuePlace:
		return newVolume(note(noteC4, 60*time.Millisecond, WaveSquare, rate), 0.25)
	case core.CuePerfect:
		return newVolume(beep.Seq(
			note(noteE5, 50*time.Millisecond, WaveSine, rate),
			note(noteG5, 90*time.Millisecond, WaveSine, rate),
		), 0.4)
	case core.CueMilestone:
		d := 350 * time.Millisecond
		return newVolume(beep.Mix(
			note(noteC5, d, WaveSine, rate),
			note(noteE5, d, WaveSine, rate),
			note(noteG5, d, WaveTriangle, rate),
		), 0.2)
	case core.CueMiss:
		d := 120 * time.Millisecond
		return newVolume(beep.Seq(
			note(noteG4, d, WaveTriangle, rate),
			note(noteE4, d, WaveTriangle, rate),
			note(noteC4/2, 2*d, WaveSquare, rate),
		), 0.3)
	default:
		return nil
	}
}
