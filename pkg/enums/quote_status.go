package enums

import "fmt"

// QuoteStatus is the admin review state of a wedding quote.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusApproved,
	QuoteStatusRejected,
}

// String implements fmt.Stringer.
func (s QuoteStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known QuoteStatus.
func (s QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}

// QuoteDecision is the admin action applied to a pending quote.
type QuoteDecision string

const (
	QuoteDecisionApprove QuoteDecision = "approve"
	QuoteDecisionReject  QuoteDecision = "reject"
)

// Status returns the quote status a decision leads to.
func (d QuoteDecision) Status() (QuoteStatus, error) {
	switch d {
	case QuoteDecisionApprove:
		return QuoteStatusApproved, nil
	case QuoteDecisionReject:
		return QuoteStatusRejected, nil
	default:
		return "", fmt.Errorf("invalid quote decision %q", string(d))
	}
}
