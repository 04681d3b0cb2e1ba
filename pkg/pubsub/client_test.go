package pubsub

import (
	"testing"

	"github.com/framehouse-studio/booking-backend/pkg/config"
)

func TestTopicResourceName(t *testing.T) {
	cases := []struct {
		project, name, want string
	}{
		{"framehouse", "fh-booking-events", "projects/framehouse/topics/fh-booking-events"},
		{"framehouse", "projects/other/topics/custom", "projects/other/topics/custom"},
		{"", "fh-booking-events", ""},
		{"framehouse", "  ", ""},
	}
	for _, tc := range cases {
		if got := topicResourceName(tc.project, tc.name); got != tc.want {
			t.Fatalf("topicResourceName(%q, %q) = %q, want %q", tc.project, tc.name, got, tc.want)
		}
	}
}

func TestTopicNamesRequireBookingTopic(t *testing.T) {
	if names := topicNames(config.PubSubConfig{DLQTopic: "dlq"}); names != nil {
		t.Fatalf("expected no topics without booking topic, got %v", names)
	}
	names := topicNames(config.PubSubConfig{BookingTopic: "events", DLQTopic: "dlq"})
	if len(names) != 2 || names[0] != "events" {
		t.Fatalf("unexpected topics %v", names)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	if c.Publisher("events") != nil {
		t.Fatalf("expected nil publisher")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
