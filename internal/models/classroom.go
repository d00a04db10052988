package models

import (
	"time"

	"gorm.io/datatypes"
)

// Class is a school class section. TeacherIDs mirrors Teacher.ClassIDs and
// QuizIDs is the assigned-quiz set read by the pending-quiz resolver; both are
// ordered and duplicate-free.
type Class struct {
	ID         uint                      `gorm:"primaryKey" json:"id"`
	Name       string                    `gorm:"size:128;not null" json:"name"`
	Year       string                    `gorm:"size:16;not null" json:"year"`
	Grade      string                    `gorm:"size:8;not null" json:"grade"`
	Section    string                    `gorm:"size:8;not null" json:"section"`
	SchoolID   *uint                     `gorm:"index" json:"school_id"`
	TeacherIDs datatypes.JSONSlice[uint] `gorm:"type:json" json:"teacher_ids"`
	QuizIDs    datatypes.JSONSlice[uint] `gorm:"type:json" json:"quiz_ids"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

// HasQuiz reports whether the quiz is already assigned to the class.
func (c Class) HasQuiz(quizID uint) bool {
	return containsID(c.QuizIDs, quizID)
}

// HasTeacher reports whether the teacher is already linked to the class.
func (c Class) HasTeacher(teacherID uint) bool {
	return containsID(c.TeacherIDs, teacherID)
}

// School is the institution a class belongs to.
type School struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Address        string    `gorm:"size:512" json:"address"`
	Phone          string    `gorm:"size:32" json:"phone"`
	GraduationYear int       `json:"graduation_year"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func containsID(ids []uint, id uint) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// AppendUniqueID returns ids with id appended when absent, preserving order.
func AppendUniqueID(ids datatypes.JSONSlice[uint], id uint) (datatypes.JSONSlice[uint], bool) {
	if containsID(ids, id) {
		return ids, false
	}
	return append(ids, id), true
}
