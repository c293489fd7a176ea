package loan

// transitions lists every allowed status change. closed and forgiven are terminal.
var transitions = map[Status][]Status{
	StatusActive:    {StatusClosed, StatusForgiven, StatusInArrears},
	StatusInArrears: {StatusActive},
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusInArrears, StatusForgiven:
		return true
	}
	return false
}

func (s Status) Terminal() bool { return s == StatusClosed || s == StatusForgiven }

// CanTransition reports whether a loan in status from may move to status to.
// Re-applying the current status is not a transition.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ManualTarget reports whether an administrator may set to directly.
// closed and forgiven are only reachable through payments and forgiveness.
func ManualTarget(to Status) bool {
	return to == StatusActive || to == StatusInArrears
}
