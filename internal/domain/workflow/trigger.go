package workflow

import "github.com/garyjia/expense-bills/internal/domain/entity"

// Trigger is an event that moves a bill between states
type Trigger string

const (
	TriggerSubmit Trigger = "SUBMIT"
	TriggerAccept Trigger = "ACCEPT"
	TriggerRefuse Trigger = "REFUSE"
	TriggerReopen Trigger = "REOPEN"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}

// ReviewTrigger returns the trigger an admin fires to put a bill in status
func ReviewTrigger(status string) (Trigger, bool) {
	switch status {
	case entity.BillStatusAccepted:
		return TriggerAccept, true
	case entity.BillStatusRefused:
		return TriggerRefuse, true
	case entity.BillStatusPending:
		return TriggerReopen, true
	default:
		return "", false
	}
}

// ReviewStatus is the status an admin picks to fire t. Submit is not a review.
func (t Trigger) ReviewStatus() (string, bool) {
	switch t {
	case TriggerAccept:
		return entity.BillStatusAccepted, true
	case TriggerRefuse:
		return entity.BillStatusRefused, true
	case TriggerReopen:
		return entity.BillStatusPending, true
	default:
		return "", false
	}
}
