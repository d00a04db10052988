package models

import "time"

// User is a login account. Teachers and students authenticate through the
// same table; Category selects the role carried in the issued token.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Category     string    `gorm:"size:16;not null" json:"category"`
	TeacherID    *uint     `gorm:"index" json:"teacher_id,omitempty"`
	StudentID    *uint     `gorm:"index" json:"student_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	UserCategoryTeacher = "teacher"
	UserCategoryStudent = "student"
)
