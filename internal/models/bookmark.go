package models

import "time"

// Bookmark is a saved-for-later marker, unique per (user, course).
// Purchasing the course removes it automatically.
type Bookmark struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_user_course_bookmark;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_user_course_bookmark;not null"`

	CreatedAt time.Time `json:"bookmarked_at"`
}

func (Bookmark) TableName() string {
	return "user_course_bookmarks"
}
