package infrastructure

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the rate the speaker is opened with.
const DefaultSampleRate beep.SampleRate = 44100

var (
	speakerOnce       sync.Once
	speakerErr        error
	speakerSampleRate beep.SampleRate
)

// initSpeaker opens the audio device once per process and returns the rate
// it runs at. Every later call returns the result of the first one.
func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerOnce.Do(func() {
		if rate <= 0 {
			rate = DefaultSampleRate
		}
		if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
			speakerErr = fmt.Errorf("failed to initialize speaker: %w", err)
			return
		}
		speakerSampleRate = rate
	})

	return speakerSampleRate, speakerErr
}
