package tui

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays short cues for board events. A nil *Sound is silent, which is
// what callers get when the audio device could not be opened.
type Sound struct {
	muted  bool
	volume float64 // linear gain, 0..1
}

// NewSound opens the default speaker.
func NewSound(muted bool) (*Sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Sound{muted: muted, volume: 0.4}, nil
}

// matchPitch rises a semitone for every block past the minimum run of three.
func matchPitch(n int) float64 {
	if n < 3 {
		n = 3
	}
	return 440 * math.Pow(2, float64(n-3)/12)
}

func (s *Sound) withVolume(st beep.Streamer) beep.Streamer {
	if s.muted || s.volume <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(s.volume), Silent: false}
}

// Match plays a blip for a run of n blocks.
func (s *Sound) Match(n int) {
	if s == nil {
		return
	}
	tone, err := generators.SineTone(sampleRate, matchPitch(n))
	if err != nil {
		return
	}
	speaker.Play(s.withVolume(beep.Take(sampleRate.N(60*time.Millisecond), tone)))
}

// ToggleMute flips muting and reports the new state.
func (s *Sound) ToggleMute() bool {
	if s == nil {
		return true
	}
	s.muted = !s.muted
	return s.muted
}

func (s *Sound) Close() {
	if s == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}
