package appointment

import (
	"testing"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

func TestNext(t *testing.T) {
	cases := []struct {
		from  Status
		ev    Event
		to    Status
		valid bool
	}{
		{StatusPending, EventConfirm, StatusConfirmed, true},
		{StatusConfirmed, EventConfirm, 0, false},
		{StatusCancelled, EventConfirm, 0, false},
		{StatusCompleted, EventConfirm, 0, false},
		{StatusPending, EventCancel, StatusCancelled, true},
		{StatusConfirmed, EventCancel, StatusCancelled, true},
		{StatusCancelled, EventCancel, 0, false},
		{StatusCompleted, EventCancel, 0, false},
		{StatusConfirmed, EventComplete, StatusCompleted, true},
		{StatusPending, EventComplete, 0, false},
		{StatusCompleted, EventComplete, 0, false},
		{StatusPending, EventReschedule, StatusPending, true},
		{StatusConfirmed, EventReschedule, StatusConfirmed, true},
		{StatusCancelled, EventReschedule, 0, false},
		{StatusPending, Event("archive"), 0, false},
	}

	for _, tt := range cases {
		got, err := Next(tt.from, tt.ev)
		if tt.valid {
			if err != nil || got != tt.to {
				t.Fatalf("Next(%s, %s) = %s, %v; want %s", tt.from, tt.ev, got, err, tt.to)
			}
			continue
		}
		if !httperr.IsKind(err, httperr.KindConflict) {
			t.Fatalf("Next(%s, %s) error = %v; want conflict", tt.from, tt.ev, err)
		}
	}
}

func TestTerminalStatesAcceptNothing(t *testing.T) {
	for _, st := range []Status{StatusCompleted, StatusCancelled} {
		for _, ev := range []Event{EventConfirm, EventCancel, EventComplete, EventReschedule} {
			if _, err := Next(st, ev); err == nil {
				t.Fatalf("terminal status %s accepted %s", st, ev)
			}
		}
	}
}
