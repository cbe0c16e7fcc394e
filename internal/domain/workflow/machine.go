// Package workflow holds the bill lifecycle: a draft is submitted once,
// then an admin accepts, refuses or reopens it.
package workflow

import (
	"fmt"
	"sort"
)

// StateMachine tracks the state of one bill and validates transitions
type StateMachine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is permitted in the current state
	CanFire(trigger Trigger) bool

	// Fire executes the trigger, moving to the new state if allowed
	Fire(trigger Trigger) error

	// PermittedTriggers returns the triggers allowed in the current state, sorted
	PermittedTriggers() []Trigger
}

type transitions map[State]map[Trigger]State

// billTransitions is the bill lifecycle
var billTransitions = transitions{
	StateDraft: {
		TriggerSubmit: StatePending,
	},
	StatePending: {
		TriggerAccept: StateAccepted,
		TriggerRefuse: StateRefused,
	},
	StateAccepted: {
		TriggerRefuse: StateRefused,
		TriggerReopen: StatePending,
	},
	StateRefused: {
		TriggerAccept: StateAccepted,
		TriggerReopen: StatePending,
	},
}

type stateMachine struct {
	current State
	table   transitions
}

// NewBillMachine returns a machine positioned at status
func NewBillMachine(status string) (StateMachine, error) {
	state := State(status)
	if !state.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, status)
	}
	return &stateMachine{current: state, table: billTransitions}, nil
}

func (m *stateMachine) State() State {
	return m.current
}

func (m *stateMachine) CanFire(trigger Trigger) bool {
	_, ok := m.table[m.current][trigger]
	return ok
}

func (m *stateMachine) Fire(trigger Trigger) error {
	next, ok := m.table[m.current][trigger]
	if !ok {
		return fmt.Errorf("%w: cannot fire %s from %s", ErrInvalidTransition, trigger, m.current)
	}
	m.current = next
	return nil
}

func (m *stateMachine) PermittedTriggers() []Trigger {
	triggers := make([]Trigger, 0, len(m.table[m.current]))
	for trigger := range m.table[m.current] {
		triggers = append(triggers, trigger)
	}
	sort.Slice(triggers, func(i, j int) bool { return triggers[i] < triggers[j] })
	return triggers
}

// ReviewStatuses lists the statuses an admin may move the bill to next
func ReviewStatuses(m StateMachine) []string {
	statuses := []string{}
	for _, trigger := range m.PermittedTriggers() {
		if status, ok := trigger.ReviewStatus(); ok {
			statuses = append(statuses, status)
		}
	}
	return statuses
}
