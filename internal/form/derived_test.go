package form

import "testing"

func TestTotalAmountEmptyListIsEmptyString(t *testing.T) {
	if got := TotalAmount(nil); got != "" {
		t.Errorf("expected empty string for no payments, got %q", got)
	}
	if got := TotalAmount([]PaymentAllocation{}); got != "" {
		t.Errorf("expected empty string for empty slice, got %q", got)
	}
}

func TestTotalAmountSumsNumericAmounts(t *testing.T) {
	payments := []PaymentAllocation{
		{TypeID: "p1", Amount: "10000"},
		{TypeID: "p2", Amount: "5000"},
	}
	if got := TotalAmount(payments); got != "15000" {
		t.Errorf("expected 15000, got %q", got)
	}
}

func TestTotalAmountTreatsEmptyAmountAsZero(t *testing.T) {
	payments := []PaymentAllocation{
		{TypeID: "p1", Amount: ""},
		{TypeID: "p2", Amount: "300"},
	}
	if got := TotalAmount(payments); got != "300" {
		t.Errorf("expected 300, got %q", got)
	}
}

func TestTotalAmountSinglePaymentWithEmptyAmountIsZero(t *testing.T) {
	payments := []PaymentAllocation{{TypeID: "p1", Amount: ""}}
	if got := TotalAmount(payments); got != "0" {
		t.Errorf("expected \"0\", got %q", got)
	}
}
