package models

import (
	"time"

	"gorm.io/datatypes"
)

// Student belongs to exactly one class. SubmittedQuizIDs is the submitted-quiz
// set: every quiz the student has answered at least once, in submission order.
type Student struct {
	ID               uint                      `gorm:"primaryKey" json:"id"`
	Username         string                    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Name             string                    `gorm:"size:255;not null" json:"name"`
	Section          string                    `gorm:"size:8" json:"section"`
	Age              int                       `json:"age"`
	Address          string                    `gorm:"size:512" json:"address"`
	PhoneNumber      string                    `gorm:"size:32" json:"phone_number"`
	ClassID          uint                      `gorm:"not null;index" json:"class_id"`
	SchoolID         *uint                     `gorm:"index" json:"school_id"`
	SubmittedQuizIDs datatypes.JSONSlice[uint] `gorm:"type:json" json:"submitted_quiz_ids"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// HasSubmitted reports whether the student has already submitted the quiz.
func (s Student) HasSubmitted(quizID uint) bool {
	return containsID(s.SubmittedQuizIDs, quizID)
}
