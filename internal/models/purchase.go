package models

import "time"

// Purchase records course ownership. The (user, course) pair is unique at
// the storage layer: that constraint is the backstop against concurrent
// double-purchase, so it must never be relaxed. The record's own ID doubles
// as the transaction identifier surfaced to clients.
type Purchase struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`

	// Price at purchase time; refunds on course removal pay this back.
	PricePaid int64 `json:"price_paid" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (Purchase) TableName() string {
	return "user_courses"
}
