package models

import "testing"

func TestCanTransitionBooking_Allowed(t *testing.T) {
	allowed := [][2]string{
		{BookingWaitingPayment, BookingWaitingConfirmation},
		{BookingWaitingPayment, BookingConfirmed},
		{BookingWaitingPayment, BookingCancelled},
		{BookingWaitingConfirmation, BookingConfirmed},
		{BookingWaitingConfirmation, BookingCancelled},
		{BookingConfirmed, BookingCompleted},
	}
	for _, pair := range allowed {
		if !CanTransitionBooking(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}
}

func TestCanTransitionBooking_TerminalStatesClosed(t *testing.T) {
	all := []string{
		BookingWaitingPayment, BookingWaitingConfirmation,
		BookingConfirmed, BookingCancelled, BookingCompleted,
	}
	for _, to := range all {
		if CanTransitionBooking(BookingCancelled, to) {
			t.Fatalf("CANCELLED must not transition to %s", to)
		}
		if CanTransitionBooking(BookingCompleted, to) {
			t.Fatalf("COMPLETED must not transition to %s", to)
		}
	}
	// CONFIRMED only exits to COMPLETED
	for _, to := range []string{BookingWaitingPayment, BookingWaitingConfirmation, BookingCancelled} {
		if CanTransitionBooking(BookingConfirmed, to) {
			t.Fatalf("CONFIRMED must not transition to %s", to)
		}
	}
}

func TestIsTerminalBookingStatus(t *testing.T) {
	for _, s := range []string{BookingConfirmed, BookingCancelled, BookingCompleted} {
		if !IsTerminalBookingStatus(s) {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
	for _, s := range []string{BookingWaitingPayment, BookingWaitingConfirmation} {
		if IsTerminalBookingStatus(s) {
			t.Fatalf("expected %s to be non-terminal", s)
		}
	}
}

func TestActiveBookingStatuses(t *testing.T) {
	active := ActiveBookingStatuses()
	if len(active) != 3 {
		t.Fatalf("expected 3 active statuses, got %d", len(active))
	}
	for _, s := range active {
		if s == BookingCancelled || s == BookingCompleted {
			t.Fatalf("%s must not block availability", s)
		}
	}
}
