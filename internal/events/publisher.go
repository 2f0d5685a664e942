package events

import (
	"context"
	"time"
)

// Event types emitted by the course service.
const (
	EventCoursePurchased = "course.purchased"
	EventCourseCreated   = "course.created"
	EventCourseUpdated   = "course.updated"
	EventCourseDeleted   = "course.deleted"
	EventModuleCompleted = "module.completed"
	EventCourseCompleted = "course.completed"
)

// Event is the envelope published to the message broker.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// CoursePurchasedEvent is the payload for course.purchased.
type CoursePurchasedEvent struct {
	UserID        uint  `json:"user_id"`
	CourseID      uint  `json:"course_id"`
	TransactionID uint  `json:"transaction_id"`
	PricePaid     int64 `json:"price_paid"`
	NewBalance    int64 `json:"new_balance"`
}

// ModuleCompletedEvent is the payload for module.completed and, at 100%
// progress, course.completed.
type ModuleCompletedEvent struct {
	UserID     uint `json:"user_id"`
	ModuleID   uint `json:"module_id"`
	CourseID   uint `json:"course_id"`
	Percentage int  `json:"percentage"`
}

// CourseLifecycleEvent is the payload for course.created/updated/deleted.
type CourseLifecycleEvent struct {
	CourseID uint   `json:"course_id"`
	Title    string `json:"title"`
}

// EventPublisher publishes domain events. Implementations must be safe for
// concurrent use; publish failures are the caller's to log, never to
// propagate into the business operation.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
