package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_Overlaps(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	appt := &Appointment{StartTime: at(10), EndTime: at(12)}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{"partial overlap at the end", at(11), at(13), true},
		{"partial overlap at the start", at(9), at(11), true},
		{"fully contained", at(10), at(11), true},
		{"fully containing", at(9), at(13), true},
		{"identical window", at(10), at(12), true},
		{"back to back after", at(12), at(14), false},
		{"back to back before", at(8), at(10), false},
		{"disjoint", at(14), at(16), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, appt.Overlaps(tt.start, tt.end))
		})
	}
}
