package infrastructure

import (
	"math"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

var (
	_ ports.ToneSynth = (*BeepToneSynth)(nil)
	_ ports.ToneSynth = NopToneSynth{}
)

// NopToneSynth discards every tone. It stands in when no audio device is open.
type NopToneSynth struct{}

// PlayTone does nothing.
func (NopToneSynth) PlayTone(domain.Tone) error { return nil }

// BeepToneSynth mixes synthesized tones into the speaker next to the main
// output.
type BeepToneSynth struct {
	sampleRate beep.SampleRate
}

// NewBeepToneSynth opens the speaker if it is not open yet.
func NewBeepToneSynth() (*BeepToneSynth, error) {
	rate, err := initSpeaker(DefaultSampleRate)
	if err != nil {
		return nil, err
	}
	return &BeepToneSynth{sampleRate: rate}, nil
}

// PlayTone starts tone and returns immediately.
func (s *BeepToneSynth) PlayTone(tone domain.Tone) error {
	speaker.Play(toneStreamer(tone, s.sampleRate))
	return nil
}

// toneStreamer renders tone at rate. Frequency and gain follow exponential
// ramps between their start and end values.
func toneStreamer(tone domain.Tone, rate beep.SampleRate) beep.Streamer {
	total := rate.N(tone.Duration)
	var i int
	var phase float64

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= total {
			return 0, false
		}

		n := 0
		for n < len(samples) && i < total {
			progress := float64(i) / float64(total)
			freq := expRamp(tone.StartHz, tone.EndHz, progress)
			gain := expRamp(tone.StartGain, tone.EndGain, progress)

			v := gain * oscillate(tone.Waveform, phase)
			samples[n] = [2]float64{v, v}

			phase += freq / float64(rate)
			phase -= math.Floor(phase)
			n++
			i++
		}

		return n, true
	})
}

func expRamp(from, to, progress float64) float64 {
	if from <= 0 || to <= 0 {
		return from + (to-from)*progress
	}
	return from * math.Pow(to/from, progress)
}

// oscillate returns the waveform value at phase in [0, 1).
func oscillate(waveform domain.Waveform, phase float64) float64 {
	switch waveform {
	case domain.WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
