package enums

import "fmt"

// PaymentStatus tracks how far a quote has progressed through payment. A quote
// with no payment activity has no status (NULL).
type PaymentStatus string

const (
	PaymentStatusDepositPaid PaymentStatus = "deposit_paid"
	PaymentStatusPaid        PaymentStatus = "paid"
	PaymentStatusFailed      PaymentStatus = "failed"
	PaymentStatusCanceled    PaymentStatus = "canceled"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusDepositPaid,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusCanceled,
}

// paymentStatusSources lists, per target, the statuses a quote may hold before
// moving to it. The empty string stands for "no status yet".
var paymentStatusSources = map[PaymentStatus][]PaymentStatus{
	PaymentStatusDepositPaid: {""},
	PaymentStatusPaid:        {"", PaymentStatusDepositPaid},
	PaymentStatusFailed:      {"", PaymentStatusDepositPaid},
	PaymentStatusCanceled:    {"", PaymentStatusDepositPaid},
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts raw input into a PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	for _, candidate := range validPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}

// PaymentStatusSources returns the statuses from which target may be entered.
// The result includes "" when target is reachable from no status.
func PaymentStatusSources(target PaymentStatus) []PaymentStatus {
	sources := paymentStatusSources[target]
	out := make([]PaymentStatus, len(sources))
	copy(out, sources)
	return out
}

// CanTransitionPayment reports whether a quote holding from (nil for no
// status) may move to to.
func CanTransitionPayment(from *PaymentStatus, to PaymentStatus) bool {
	current := PaymentStatus("")
	if from != nil {
		current = *from
	}
	for _, source := range paymentStatusSources[to] {
		if source == current {
			return true
		}
	}
	return false
}
