package domain

type CheckoutStatus string

const (
	CheckoutStatusIdle         CheckoutStatus = "IDLE"
	CheckoutStatusValidating   CheckoutStatus = "VALIDATING"
	CheckoutStatusRejected     CheckoutStatus = "REJECTED"
	CheckoutStatusSnapshotting CheckoutStatus = "SNAPSHOTTING"
	CheckoutStatusClearing     CheckoutStatus = "CLEARING"
)

var checkoutTransitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusIdle:         {CheckoutStatusValidating},
	CheckoutStatusValidating:   {CheckoutStatusRejected, CheckoutStatusSnapshotting},
	CheckoutStatusRejected:     {CheckoutStatusIdle},
	CheckoutStatusSnapshotting: {CheckoutStatusClearing},
	CheckoutStatusClearing:     {CheckoutStatusIdle},
}

// CanTransitionTo reports whether next directly follows s in the checkout state machine.
func (s CheckoutStatus) CanTransitionTo(next CheckoutStatus) bool {
	for _, allowed := range checkoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}
