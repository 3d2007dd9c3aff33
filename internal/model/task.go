package model

import "time"

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index;not null"`
	Title       string
	Description string
	DueDate     *time.Time `gorm:"index"`
	Completed   bool       `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
