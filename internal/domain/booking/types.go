package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsHolding reports whether a booking in this status holds capacity and
// takes part in overlap checks.
func (s Status) IsHolding() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// HoldingStatuses lists the statuses that block an overlapping window.
func HoldingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusActive}
}

type Event string

const (
	EventConfirm  Event = "confirm"
	EventCheckIn  Event = "check_in"
	EventCheckOut Event = "check_out"
	EventCancel   Event = "cancel"
)

func (e Event) String() string {
	return string(e)
}

var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventConfirm: StatusConfirmed,
		EventCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		EventCheckIn: StatusActive,
		EventCancel:  StatusCancelled,
	},
	StatusActive: {
		EventCheckOut: StatusCompleted,
		EventCancel:   StatusCancelled,
	},
}

// Next returns the status reached from s on e, or false when e is not allowed.
func (s Status) Next(e Event) (Status, bool) {
	next, ok := transitions[s][e]
	return next, ok
}
