package usecases

import (
	"fmt"
	"log/slog"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// SoundPolicy reports whether interface sound effects are enabled.
type SoundPolicy interface {
	SoundEnabled() bool
}

// SoundEffectsService plays the hover and click feedback tones.
type SoundEffectsService struct {
	synth  ports.ToneSynth
	policy SoundPolicy
}

// NewSoundEffectsService creates a new SoundEffectsService.
func NewSoundEffectsService(synth ports.ToneSynth, policy SoundPolicy) *SoundEffectsService {
	return &SoundEffectsService{
		synth:  synth,
		policy: policy,
	}
}

// Play plays the named effect. Returns false when sound effects are disabled.
// Synthesis failures are logged, never returned.
func (s *SoundEffectsService) Play(kind string) (bool, error) {
	effect, err := domain.ParseSoundEffect(kind)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrUnknownSoundEffect, kind)
	}

	if s.policy != nil && !s.policy.SoundEnabled() {
		return false, nil
	}

	if err := s.synth.PlayTone(effect.Tone()); err != nil {
		slog.Warn("failed to play sound effect", "kind", kind, "error", err)
		return false, nil
	}

	return true, nil
}
