package domain

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{StatusPending, StatusPaid},
		{StatusPending, StatusCancelled},
		{StatusPaid, StatusShipped},
		{StatusPaid, StatusCancelled},
		{StatusShipped, StatusDelivered},
		{StatusShipped, StatusCancelled},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to OrderStatus }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusPaid, StatusDelivered},
		{StatusShipped, StatusPaid},
		{StatusDelivered, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusPaid, StatusPaid},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tc.from, tc.to)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false, want true", s)
		}
	}
	if ValidStatus(OrderStatus("REFUNDED")) {
		t.Error("ValidStatus(REFUNDED) = true, want false")
	}
}
