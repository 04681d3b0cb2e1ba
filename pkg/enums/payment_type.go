package enums

import "fmt"

// PaymentType selects how much of a quote total a payment intent collects.
type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypeFull    PaymentType = "full"
)

var validPaymentTypes = []PaymentType{PaymentTypeDeposit, PaymentTypeFull}

// String implements fmt.Stringer.
func (p PaymentType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentType.
func (p PaymentType) IsValid() bool {
	for _, candidate := range validPaymentTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentType converts raw input into a PaymentType.
func ParsePaymentType(value string) (PaymentType, error) {
	for _, candidate := range validPaymentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment type %q", value)
}

// SettledStatus is the quote payment status reached when a payment of this
// type succeeds.
func (p PaymentType) SettledStatus() PaymentStatus {
	if p == PaymentTypeDeposit {
		return PaymentStatusDepositPaid
	}
	return PaymentStatusPaid
}
