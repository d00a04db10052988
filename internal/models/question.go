package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question is a single catalog question. Once a quiz references it the record
// is treated as immutable.
type Question struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	Board         string                      `gorm:"size:16;not null;index" json:"board"`
	Grade         string                      `gorm:"size:8;not null;index" json:"grade"`
	Subject       string                      `gorm:"size:64;not null" json:"subject"`
	Chapter       string                      `gorm:"size:128;not null" json:"chapter"`
	Topic         string                      `gorm:"size:128;not null" json:"topic"`
	Type          string                      `gorm:"size:32;not null" json:"type"`
	Text          string                      `gorm:"type:text;not null" json:"text"`
	Options       datatypes.JSONSlice[string] `gorm:"type:json" json:"options"`
	CorrectOption string                      `gorm:"size:255" json:"correct_option"`
	Answer        string                      `gorm:"type:text" json:"answer"`
	Difficulty    string                      `gorm:"size:16;not null;default:medium" json:"difficulty"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

const (
	QuestionTypeMCQ            = "mcq"
	QuestionTypeShortAnswer    = "short answer"
	QuestionTypeMediumAnswer   = "medium answer"
	QuestionTypeLongAnswer     = "long answer"
	QuestionTypeVeryLongAnswer = "very long answer"
	QuestionTypeFill           = "fill"
	QuestionTypeMatch          = "match"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// IsChoiceBased reports whether the question carries an option list that must
// be non-empty and contain the correct option.
func (q Question) IsChoiceBased() bool {
	return q.Type == QuestionTypeMCQ || q.Type == QuestionTypeMatch
}

// ValidQuestionType reports whether the type is one of the supported kinds.
func ValidQuestionType(questionType string) bool {
	switch questionType {
	case QuestionTypeMCQ, QuestionTypeShortAnswer, QuestionTypeMediumAnswer,
		QuestionTypeLongAnswer, QuestionTypeVeryLongAnswer, QuestionTypeFill, QuestionTypeMatch:
		return true
	}
	return false
}
