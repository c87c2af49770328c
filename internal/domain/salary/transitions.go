package salary

// Status is the post-creation lifecycle of a salary record. The computed
// fields never change after generation; only the status moves.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
	StatusPaid      Status = "paid"
)

// Statuses lists every legal status value.
var Statuses = []string{string(StatusDraft), string(StatusFinalized), string(StatusPaid)}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusFinalized, StatusPaid:
		return true
	}
	return false
}

// TransitionTable maps a status to the statuses it may move to. A nil table
// permits every move, which is the legacy accept-anything behavior.
type TransitionTable map[Status][]Status

// DefaultTransitions enforces the forward-only lifecycle.
var DefaultTransitions = TransitionTable{
	StatusDraft:     {StatusFinalized},
	StatusFinalized: {StatusPaid},
}

// AllowAllTransitions disables transition checking.
var AllowAllTransitions TransitionTable = nil

// CanMove reports whether a record may move from one status to another.
// Staying on the same status is always allowed so notes can be updated
// without a lifecycle change.
func (t TransitionTable) CanMove(from, to Status) bool {
	if t == nil || from == to {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}
