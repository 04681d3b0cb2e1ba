package enums

import "testing"

func TestCanTransitionPaymentForwardOnly(t *testing.T) {
	ptr := func(s PaymentStatus) *PaymentStatus { return &s }
	allowed := map[string]bool{
		"->deposit_paid":         true,
		"->paid":                 true,
		"->failed":               true,
		"->canceled":             true,
		"deposit_paid->paid":     true,
		"deposit_paid->failed":   true,
		"deposit_paid->canceled": true,
	}

	froms := []*PaymentStatus{nil, ptr(PaymentStatusDepositPaid), ptr(PaymentStatusPaid), ptr(PaymentStatusFailed), ptr(PaymentStatusCanceled)}
	for _, from := range froms {
		for _, to := range validPaymentStatuses {
			key := "->" + string(to)
			if from != nil {
				key = string(*from) + key
			}
			got := CanTransitionPayment(from, to)
			if got != allowed[key] {
				t.Fatalf("transition %s: expected %v got %v", key, allowed[key], got)
			}
		}
	}
}

func TestPaidIsAbsorbing(t *testing.T) {
	paid := PaymentStatusPaid
	for _, to := range validPaymentStatuses {
		if CanTransitionPayment(&paid, to) {
			t.Fatalf("paid must not move to %s", to)
		}
	}
}

func TestPaymentTypeSettledStatus(t *testing.T) {
	if PaymentTypeDeposit.SettledStatus() != PaymentStatusDepositPaid {
		t.Fatalf("deposit should settle to deposit_paid")
	}
	if PaymentTypeFull.SettledStatus() != PaymentStatusPaid {
		t.Fatalf("full should settle to paid")
	}
	if _, err := ParsePaymentType("partial"); err == nil {
		t.Fatalf("expected invalid payment type error")
	}
}
