package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Title      string `json:"title" gorm:"not null;size:255"`
	Instructor string `json:"instructor" gorm:"not null;size:255"`

	// Lowercased copy of Title carrying the unique index, so titles that
	// differ only in case cannot both be inserted. Maintained by BeforeSave.
	TitleKey string `json:"-" gorm:"uniqueIndex;not null;size:255"`

	Description string `json:"description" gorm:"type:text"`
	Price       int64  `json:"price" gorm:"not null;default:0"`

	// Lowercase tags, normalized at the service layer.
	Topics datatypes.JSONSlice[string] `json:"topics"`

	// Stored asset reference; the absolute URL is derived on read.
	ThumbnailPath *string `json:"thumbnail_path" gorm:"size:500"`

	Modules []Module `json:"modules,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeSave(*gorm.DB) error {
	c.TitleKey = strings.ToLower(strings.TrimSpace(c.Title))
	return nil
}
