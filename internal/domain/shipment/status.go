package shipment

// Status represents a shipment's position in its delivery lifecycle
type Status string

const (
	StatusPending              Status = "Pending"
	StatusApproved             Status = "Approved"
	StatusInTransit            Status = "InTransit"
	StatusAtDistributionCenter Status = "AtDistributionCenter"
	StatusOutForDelivery       Status = "OutForDelivery"
	StatusDelivered            Status = "Delivered"
	StatusCancelled            Status = "Cancelled"
	StatusFailed               Status = "Failed"
)

// forwardTransitions enumerates the permitted forward path through the
// lifecycle. Cancelled and Failed are reachable from any non-Delivered state
// and handled separately in CanTransitionTo.
var forwardTransitions = map[Status][]Status{
	StatusPending:              {StatusApproved},
	StatusApproved:             {StatusInTransit},
	StatusInTransit:            {StatusAtDistributionCenter, StatusOutForDelivery, StatusDelivered},
	StatusAtDistributionCenter: {StatusOutForDelivery},
	StatusOutForDelivery:       {StatusDelivered},
}

// IsTerminal reports whether no further transitions are permitted
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusFailed
}

// IsValid reports whether the status is one of the defined values
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusInTransit, StatusAtDistributionCenter,
		StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle permits moving to target
func (s Status) CanTransitionTo(target Status) bool {
	if !target.IsValid() || target == s {
		return false
	}

	// Any non-Delivered state may be cancelled or failed
	if target == StatusCancelled || target == StatusFailed {
		return s != StatusDelivered && s != StatusCancelled && s != StatusFailed
	}

	for _, next := range forwardTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
