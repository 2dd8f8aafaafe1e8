package domain

import (
	"fmt"
	"time"
)

// Waveform is the oscillator shape of a tone.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
)

// Tone describes a short synthesized sound: the frequency sweeps
// exponentially from StartHz to EndHz while the gain decays exponentially
// from StartGain to EndGain over Duration.
type Tone struct {
	Waveform  Waveform
	StartHz   float64
	EndHz     float64
	StartGain float64
	EndGain   float64
	Duration  time.Duration
}

// SoundEffect names an interface feedback sound.
type SoundEffect string

const (
	SoundHover SoundEffect = "hover"
	SoundClick SoundEffect = "click"
)

// ParseSoundEffect converts a string to a SoundEffect.
func ParseSoundEffect(s string) (SoundEffect, error) {
	switch e := SoundEffect(s); e {
	case SoundHover, SoundClick:
		return e, nil
	default:
		return "", fmt.Errorf("unknown sound effect: %q", s)
	}
}

// Tone returns the synthesis parameters of the effect.
func (e SoundEffect) Tone() Tone {
	if e == SoundClick {
		return Tone{
			Waveform:  WaveTriangle,
			StartHz:   300,
			EndHz:     50,
			StartGain: 0.05,
			EndGain:   0.001,
			Duration:  100 * time.Millisecond,
		}
	}
	return Tone{
		Waveform:  WaveSine,
		StartHz:   400,
		EndHz:     600,
		StartGain: 0.02,
		EndGain:   0.001,
		Duration:  50 * time.Millisecond,
	}
}
