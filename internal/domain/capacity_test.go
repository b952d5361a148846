package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	cap2 := 2

	tests := []struct {
		name      string
		confirmed int
		capacity  *int
		waitlist  bool
		want      Admission
	}{
		{"unlimited capacity always confirms", 500, nil, false, AdmitConfirmed},
		{"free seat confirms", 1, &cap2, false, AdmitConfirmed},
		{"full with waitlist", 2, &cap2, true, AdmitWaitlist},
		{"full without waitlist", 2, &cap2, false, RejectFull},
		{"over capacity with waitlist", 3, &cap2, true, AdmitWaitlist},
		{"empty event confirms", 0, &cap2, true, AdmitConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.confirmed, tt.capacity, tt.waitlist))
		})
	}
}

func TestAdmissionString(t *testing.T) {
	assert.Equal(t, "ADMIT_CONFIRMED", AdmitConfirmed.String())
	assert.Equal(t, "ADMIT_WAITLIST", AdmitWaitlist.String())
	assert.Equal(t, "REJECT_FULL", RejectFull.String())
}
