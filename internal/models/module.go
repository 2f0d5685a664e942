package models

import "time"

type Module struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CourseID    uint   `json:"course_id" gorm:"uniqueIndex:idx_modules_course_order;not null"`
	Title       string `json:"title" gorm:"not null;size:255"`
	Description string `json:"description" gorm:"type:text"`

	// 1-based position within the course, unique per course. Values are
	// reassigned wholesale by the reorder operation.
	Order int `json:"order" gorm:"column:order_index;uniqueIndex:idx_modules_course_order;not null"`

	VideoPath *string `json:"video_path" gorm:"size:500"`
	PDFPath   *string `json:"pdf_path" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Module) TableName() string {
	return "modules"
}
