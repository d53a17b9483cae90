// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     pipeline
// Description: Pipeline state machine
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-16
// License:     MIT
// ============================================================================

package pipeline

import (
	"sync"
	"time"
)

// State represents the current state of the pipeline
type State int

const (
	// StateIdle - not capturing
	StateIdle State = iota

	// StateRunning - capture and translation in progress
	StateRunning

	// StateStopping - shutdown requested, draining workers
	StateStopping
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Translating..."
	case StateStopping:
		return "Stopping..."
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the state
func (s State) Icon() string {
	switch s {
	case StateIdle:
		return "⏸"
	case StateRunning:
		return "🎤"
	case StateStopping:
		return "⏳"
	default:
		return "?"
	}
}

// StateChangeListener is called when state changes
type StateChangeListener func(oldState, newState State)

// StateMachine manages state transitions
type StateMachine struct {
	mu           sync.RWMutex
	currentState State
	stateTime    time.Time
	listeners    []StateChangeListener
}

// NewStateMachine creates a new state machine
func NewStateMachine() *StateMachine {
	return &StateMachine{
		currentState: StateIdle,
		stateTime:    time.Now(),
	}
}

// Current returns the current state
func (sm *StateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

// StateTime returns when the current state was entered
func (sm *StateMachine) StateTime() time.Time {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.stateTime
}

// Transition moves to a new state and notifies listeners. Returns false
// if the pipeline is already in that state.
func (sm *StateMachine) Transition(to State) bool {
	sm.mu.Lock()
	if sm.currentState == to {
		sm.mu.Unlock()
		return false
	}
	from := sm.currentState
	sm.currentState = to
	sm.stateTime = time.Now()
	listeners := make([]StateChangeListener, len(sm.listeners))
	copy(listeners, sm.listeners)
	sm.mu.Unlock()

	for _, l := range listeners {
		l(from, to)
	}
	return true
}

// OnChange registers a state change listener
func (sm *StateMachine) OnChange(l StateChangeListener) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.listeners = append(sm.listeners, l)
}
