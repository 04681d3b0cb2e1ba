package enums

// WeddingEventStatus is the lifecycle of a booked wedding event.
type WeddingEventStatus string

const (
	WeddingEventStatusConfirmed WeddingEventStatus = "confirmed"
	WeddingEventStatusCompleted WeddingEventStatus = "completed"
	WeddingEventStatusCanceled  WeddingEventStatus = "canceled"
)

// String implements fmt.Stringer.
func (s WeddingEventStatus) String() string {
	return string(s)
}
