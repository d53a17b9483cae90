// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     audio
// Description: Synchronous audio playback using PortAudio
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-12
// License:     MIT
// ============================================================================

package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Player plays raw PCM audio to the default output device. Playback is
// synchronous: Play returns only after the last buffer was written.
type Player struct {
	mu      sync.Mutex
	playing bool
}

// NewPlayer creates a new player.
func NewPlayer() *Player {
	return &Player{}
}

// PlayRaw plays little-endian 16-bit signed PCM data at the given rate.
func (p *Player) PlayRaw(data []byte, sampleRate int) error {
	if len(data) < 2 {
		return nil
	}
	return p.play(Dequantize(PCMToSamples(data)), sampleRate)
}

// play writes float32 samples to the default output stream to completion.
func (p *Player) play(samples []float32, sampleRate int) error {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return fmt.Errorf("already playing")
	}
	p.playing = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	}()

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	const bufferSize = 1024
	buffer := make([]float32, bufferSize)

	stream, err := portaudio.OpenDefaultStream(
		0, // input channels
		1, // output channels
		float64(sampleRate),
		bufferSize,
		&buffer,
	)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	for position := 0; position < len(samples); position += bufferSize {
		for i := 0; i < bufferSize; i++ {
			if position+i < len(samples) {
				buffer[i] = samples[position+i]
			} else {
				buffer[i] = 0
			}
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write to stream: %w", err)
		}
	}

	return nil
}

// IsPlaying reports whether playback is in progress.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
