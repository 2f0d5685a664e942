package events

import (
	"context"
	"testing"
)

func TestMockPublisherFillsEnvelope(t *testing.T) {
	p := NewMockEventPublisher(nil)

	err := p.Publish(context.Background(), &Event{
		Type: EventCoursePurchased,
		Data: &CoursePurchasedEvent{UserID: 1, CourseID: 2, PricePaid: 50},
	})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	published := p.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("got %d events, want 1", len(published))
	}

	ev := published[0]
	if ev.ID == "" {
		t.Error("event ID not assigned")
	}
	if ev.Source != "course-service" {
		t.Errorf("source = %q", ev.Source)
	}
	if ev.Version != "1.0" {
		t.Errorf("version = %q", ev.Version)
	}
	if ev.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	p.ClearEvents()
	if len(p.GetPublishedEvents()) != 0 {
		t.Error("ClearEvents left events behind")
	}
}

func TestTopicRouting(t *testing.T) {
	cases := []struct {
		eventType string
		want      string
	}{
		{EventCoursePurchased, TopicPurchases},
		{EventModuleCompleted, TopicProgress},
		{EventCourseCompleted, TopicProgress},
		{EventCourseCreated, TopicCatalog},
		{EventCourseDeleted, TopicCatalog},
	}

	for _, tc := range cases {
		if got := topicFor(tc.eventType); got != tc.want {
			t.Errorf("topicFor(%s) = %s, want %s", tc.eventType, got, tc.want)
		}
	}
}
