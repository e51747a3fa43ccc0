// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollview

import (
	"errors"
	"fmt"
)

// Phase is the coarse state of the vote flow.
type Phase int

const (
	AwaitingSelection Phase = iota
	Submitting
	Voted
)

func (p Phase) String() string {
	switch p {
	case AwaitingSelection:
		return "awaiting_selection"
	case Submitting:
		return "submitting"
	case Voted:
		return "voted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// NoSelection marks a flow in which the viewer has not picked an option yet.
const NoSelection = -1

// State is a snapshot of the vote flow. Selection is NoSelection or an index
// into the poll's options; it is meaningless once Phase is Voted.
type State struct {
	Phase     Phase
	Selection int
}

// HasSelection reports whether an option is currently selected.
func (s State) HasSelection() bool {
	return s.Selection != NoSelection
}

var (
	ErrNoSelection        = errors.New("no option selected")
	ErrSubmissionInFlight = errors.New("a vote is already being submitted")
	ErrVoted              = errors.New("vote already submitted")
	ErrSelectionLocked    = errors.New("selection can no longer change")
	ErrNoSubmission       = errors.New("no vote submission in flight")
	ErrOptionOutOfRange   = errors.New("option index out of range")
)

type event int

const (
	evSelect event = iota
	evSubmit
	evSucceeded
	evFailed
)

type transition struct {
	from Phase
	ev   event
	to   Phase
}

// Edges not listed here are rejected by rejection().
var transitions = []transition{
	{from: AwaitingSelection, ev: evSelect, to: AwaitingSelection},
	{from: AwaitingSelection, ev: evSubmit, to: Submitting},
	{from: Submitting, ev: evSucceeded, to: Voted},
	{from: Submitting, ev: evFailed, to: AwaitingSelection},
}

func transitionFor(from Phase, ev event) (Phase, bool) {
	for _, tr := range transitions {
		if tr.from == from && tr.ev == ev {
			return tr.to, true
		}
	}
	return from, false
}

func rejection(from Phase, ev event) error {
	switch ev {
	case evSelect:
		return ErrSelectionLocked
	case evSubmit:
		if from == Voted {
			return ErrVoted
		}
		return ErrSubmissionInFlight
	default:
		return ErrNoSubmission
	}
}

// Flow is the selection -> submission -> results state machine. It performs
// no I/O and is not safe for concurrent use; Session serializes access.
type Flow struct {
	state   State
	options int
}

// NewFlow starts a flow over a poll with optionCount options.
func NewFlow(optionCount int) *Flow {
	return &Flow{
		state:   State{Phase: AwaitingSelection, Selection: NoSelection},
		options: optionCount,
	}
}

// State returns the current state.
func (f *Flow) State() State {
	return f.state
}

func (f *Flow) fire(ev event) error {
	to, ok := transitionFor(f.state.Phase, ev)
	if !ok {
		return rejection(f.state.Phase, ev)
	}
	f.state.Phase = to
	return nil
}

// Select replaces the current selection. It is only accepted while awaiting
// a selection.
func (f *Flow) Select(i int) error {
	if f.state.Phase == AwaitingSelection && (i < 0 || i >= f.options) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOptionOutOfRange, i, f.options)
	}
	if err := f.fire(evSelect); err != nil {
		return err
	}
	f.state.Selection = i
	return nil
}

// BeginSubmit moves the flow into Submitting and returns the option to send.
// Without a selection it is a no-op returning ErrNoSelection.
func (f *Flow) BeginSubmit() (int, error) {
	if f.state.Phase == AwaitingSelection && !f.state.HasSelection() {
		return NoSelection, ErrNoSelection
	}
	if err := f.fire(evSubmit); err != nil {
		return NoSelection, err
	}
	return f.state.Selection, nil
}

// Succeed records an accepted vote.
func (f *Flow) Succeed() error {
	return f.fire(evSucceeded)
}

// Fail records a rejected vote. The selection made before submitting is kept
// so that retrying needs no reselection.
func (f *Flow) Fail() error {
	return f.fire(evFailed)
}

// Reconcile adjusts the flow to a reloaded snapshot with optionCount options,
// dropping a selection that no longer exists.
func (f *Flow) Reconcile(optionCount int) {
	f.options = optionCount
	if f.state.Phase == AwaitingSelection && f.state.Selection >= optionCount {
		f.state.Selection = NoSelection
	}
}
