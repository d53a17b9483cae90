// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     pipeline
// Description: Speech output adapter
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package pipeline

import (
	"context"
	"fmt"

	"github.com/ekoester/lectern/internal/audio"
	"github.com/ekoester/lectern/internal/tts"
)

// SynthSpeaker plays synthesized speech through the default output
// device. Playback is synchronous.
type SynthSpeaker struct {
	synth  tts.Synthesizer
	player *audio.Player
}

// NewSynthSpeaker creates a speaker from a synthesizer
func NewSynthSpeaker(synth tts.Synthesizer) *SynthSpeaker {
	return &SynthSpeaker{
		synth:  synth,
		player: audio.NewPlayer(),
	}
}

// Speak synthesizes text and plays it, blocking until playback finishes
func (s *SynthSpeaker) Speak(ctx context.Context, text string) error {
	data, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := s.player.PlayRaw(data, s.synth.SampleRate()); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// Close releases the synthesizer
func (s *SynthSpeaker) Close() error {
	return s.synth.Close()
}
