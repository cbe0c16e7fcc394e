package workflow

import "github.com/garyjia/expense-bills/internal/domain/entity"

// State is a bill status seen as a lifecycle state
type State string

const (
	StateDraft    State = entity.BillStatusDraft
	StatePending  State = entity.BillStatusPending
	StateAccepted State = entity.BillStatusAccepted
	StateRefused  State = entity.BillStatusRefused
)

var validStates = map[State]bool{
	StateDraft:    true,
	StatePending:  true,
	StateAccepted: true,
	StateRefused:  true,
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known bill status
func (s State) IsValid() bool {
	return validStates[s]
}
