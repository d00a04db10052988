package models

import (
	"time"

	"gorm.io/datatypes"
)

// Quiz groups an ordered set of questions a teacher hands out to classes.
type Quiz struct {
	ID          uint                      `gorm:"primaryKey" json:"id"`
	Title       string                    `gorm:"size:255;not null" json:"title"`
	QuestionIDs datatypes.JSONSlice[uint] `gorm:"type:json" json:"question_ids"`
	CreatedBy   uint                      `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// HasQuestion reports whether the quiz references the given question.
func (q Quiz) HasQuestion(questionID uint) bool {
	return containsID(q.QuestionIDs, questionID)
}
