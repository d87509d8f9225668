// Package config holds the live parameter configuration of a session and the
// preset applier that mutates it.
//
// Every mutation (applying a preset, editing one field, resetting a group) is
// all-or-nothing: the next values are validated and built aside, swapped in with
// a single assignment, and announced with exactly one Change. Nothing in this
// package is safe for concurrent use; an embedding program that drives a
// Session from several goroutines must serialise the calls itself.
package config

import (
	"github.com/google/uuid"
	"github.com/rxtech-lab/synthetic-data-lab/internal/preset"
	"github.com/rxtech-lab/synthetic-data-lab/internal/schema"
)

// State is a snapshot of one group's configuration.
type State struct {
	Group        schema.GroupName `json:"group"`
	Values       schema.Bundle    `json:"values"`
	ActivePreset string           `json:"activePreset"`
}

// IsCustom reports whether the values were edited outside of any preset.
func (s State) IsCustom() bool {
	return s.ActivePreset == preset.CustomPresetName
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{
		Group:        s.Group,
		Values:       s.Values.Clone(),
		ActivePreset: s.ActivePreset,
	}
}

// Cause tells observers which operation produced a Change.
type Cause string

const (
	CausePreset Cause = "preset"
	CauseEdit   Cause = "edit"
	CauseReset  Cause = "reset"
)

// Change is the single notification emitted after a successful mutation.
// It carries the full values of the group, not only the modified keys.
type Change struct {
	ID           uuid.UUID        `json:"id"`
	Group        schema.GroupName `json:"group"`
	Values       schema.Bundle    `json:"values"`
	ActivePreset string           `json:"activePreset"`
	Cause        Cause            `json:"cause"`
	// Key is the edited parameter for CauseEdit and empty otherwise.
	Key string `json:"key,omitempty"`
}

// State returns the configuration the change left behind.
func (c Change) State() State {
	return State{
		Group:        c.Group,
		Values:       c.Values.Clone(),
		ActivePreset: c.ActivePreset,
	}
}

// Observer receives configuration changes.
type Observer interface {
	OnConfigurationChanged(change Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(change Change)

// OnConfigurationChanged calls f(change).
func (f ObserverFunc) OnConfigurationChanged(change Change) {
	f(change)
}
