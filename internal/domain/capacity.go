package domain

// Admission is the outcome of the capacity policy for one candidate
// registration.
type Admission int

const (
	AdmitConfirmed Admission = iota
	AdmitWaitlist
	RejectFull
)

func (a Admission) String() string {
	switch a {
	case AdmitConfirmed:
		return "ADMIT_CONFIRMED"
	case AdmitWaitlist:
		return "ADMIT_WAITLIST"
	case RejectFull:
		return "REJECT_FULL"
	default:
		return "UNKNOWN"
	}
}

// Decide applies the capacity policy: a nil capacity means unlimited and
// always admits; otherwise a free seat admits as confirmed, a full event
// admits to the waitlist when enabled and rejects when not.
func Decide(confirmedCount int, capacity *int, waitlistEnabled bool) Admission {
	if capacity == nil || confirmedCount < *capacity {
		return AdmitConfirmed
	}
	if waitlistEnabled {
		return AdmitWaitlist
	}
	return RejectFull
}
