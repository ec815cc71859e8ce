package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-stacker/internal/core"
)

// SampleRate is the output rate of every generated sound.
const SampleRate beep.SampleRate = 48000

// Player plays cue sounds.
type Player interface {
	Play(cues ...core.Cue)
	Close()
}

// Silent is a Player that discards every cue.
type Silent struct{}

func (Silent) Play(...core.Cue) {}
func (Silent) Close()           {}

// SoundManager mixes cue sounds onto the system speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager opens the speaker. volume is a linear gain in [0, 1].
func NewSoundManager(volume float64) (*SoundManager, error) {
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true

	return sm, nil
}

// Play queues the sounds for the given cues.
func (sm *SoundManager) Play(cues ...core.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	for _, c := range cues {
		s := CueSound(c, SampleRate)
		if s == nil {
			continue
		}
		speaker.Lock()
		sm.mixer.Add(newVolume(s, sm.volume))
		speaker.Unlock()
	}
}

// Close stops playback and releases the device.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Open returns a speaker-backed player when enabled, or Silent otherwise.
// A device error also yields Silent along with the error.
func Open(enabled bool, volume float64) (Player, error) {
	if !enabled {
		return Silent{}, nil
	}
	sm, err := NewSoundManager(volume)
	if err != nil {
		return Silent{}, err
	}
	return sm, nil
}
