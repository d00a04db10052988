package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerRecord captures one answered question inside a quiz attempt. The
// commentary is the grading adapter's free text for image answers and the raw
// answer verbatim otherwise; it carries no parseable score.
type AnswerRecord struct {
	QuestionID uint   `json:"question_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Commentary string `json:"commentary"`
	ImageURL   string `json:"image_url,omitempty"`
}

// QuizAttempt is one submission event for a quiz. Resubmitting a quiz appends
// a new attempt rather than replacing the previous one.
type QuizAttempt struct {
	QuizID      uint           `json:"quiz_id"`
	Answers     []AnswerRecord `json:"answers"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// Response is a student's cumulative response document; at most one row per
// student, created lazily on the first submission.
type Response struct {
	ID        uint                             `gorm:"primaryKey" json:"id"`
	StudentID uint                             `gorm:"not null;uniqueIndex" json:"student_id"`
	Attempts  datatypes.JSONSlice[QuizAttempt] `gorm:"type:json" json:"attempts"`
	CreatedAt time.Time                        `json:"created_at"`
	UpdatedAt time.Time                        `json:"updated_at"`
}
