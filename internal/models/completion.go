package models

import "time"

// Completion is a binary per-(user, module) marker with upsert semantics:
// completing an already-completed module is a no-op, never a duplicate row.
type Completion struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_user_module;not null"`
	ModuleID uint `json:"module_id" gorm:"uniqueIndex:idx_user_module;not null"`

	// Denormalized for cheap per-course progress counting.
	CourseID uint `json:"course_id" gorm:"index;not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (Completion) TableName() string {
	return "user_module_completions"
}
