package domain

// Status is a lead's position in the outreach pipeline.
type Status string

const (
	StatusNew       Status = "New"
	StatusContacted Status = "Contacted"
	StatusReplied   Status = "Replied"
	StatusClosed    Status = "Closed"
)

// AllStatuses lists the workflow states in pipeline order.
var AllStatuses = []Status{StatusNew, StatusContacted, StatusReplied, StatusClosed}

var knownStatuses = map[Status]struct{}{
	StatusNew:       {},
	StatusContacted: {},
	StatusReplied:   {},
	StatusClosed:    {},
}

// IsKnownStatus reports whether s is one of the four workflow states.
func IsKnownStatus(s Status) bool {
	_, ok := knownStatuses[s]
	return ok
}

// CanTransition reports whether a lead may move from one status to another.
// The workflow is deliberately free: any known status may follow any other,
// including itself, so operators can correct a mis-click without a reverse edge.
func CanTransition(from, to Status) bool {
	return IsKnownStatus(from) && IsKnownStatus(to)
}
