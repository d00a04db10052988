package models

import (
	"time"

	"gorm.io/datatypes"
)

// Teacher owns quizzes and is linked to classes. ClassIDs mirrors
// Class.TeacherIDs; the assignment tracker keeps the two sides symmetric.
type Teacher struct {
	ID                  uint                        `gorm:"primaryKey" json:"id"`
	Username            string                      `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Name                string                      `gorm:"size:255;not null" json:"name"`
	Subjects            datatypes.JSONSlice[string] `gorm:"type:json" json:"subjects"`
	SchoolID            *uint                       `gorm:"index" json:"school_id"`
	ClassIDs            datatypes.JSONSlice[uint]   `gorm:"type:json" json:"class_ids"`
	QuizIDs             datatypes.JSONSlice[uint]   `gorm:"type:json" json:"quiz_ids"`
	BookmarkedQuestions datatypes.JSONSlice[uint]   `gorm:"type:json" json:"bookmarked_questions"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

// HasBookmark reports whether the question is already bookmarked.
func (t Teacher) HasBookmark(questionID uint) bool {
	return containsID(t.BookmarkedQuestions, questionID)
}
