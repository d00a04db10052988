package dto

import (
	"time"

	"github.com/shiksha-labs/quizroom-api/internal/models"
)

// SubmittedAnswer is one answer within a quiz submission. EvidenceImage holds
// the raw bytes of a photographed written answer; text-only answers leave it
// empty.
type SubmittedAnswer struct {
	QuestionID    uint   `json:"question_id" validate:"required,gt=0"`
	QuestionText  string `json:"question_text" validate:"required"`
	RawAnswer     string `json:"raw_answer"`
	EvidenceImage []byte `json:"-"`
	EvidenceMime  string `json:"-"`
}

// SubmitQuizRequest describes a full quiz submission by a student.
type SubmitQuizRequest struct {
	StudentID uint              `json:"student_id" validate:"required,gt=0"`
	QuizID    uint              `json:"quiz_id" validate:"required,gt=0"`
	Answers   []SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
}

// AnswerRecordView is the serialized form of a graded answer.
type AnswerRecordView struct {
	QuestionID uint   `json:"question_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Commentary string `json:"commentary"`
	ImageURL   string `json:"image_url,omitempty"`
}

// NewAnswerRecordSlice converts stored answer records into DTOs.
func NewAnswerRecordSlice(records []models.AnswerRecord) []AnswerRecordView {
	views := make([]AnswerRecordView, 0, len(records))
	for _, record := range records {
		views = append(views, AnswerRecordView{
			QuestionID: record.QuestionID,
			Question:   record.Question,
			Answer:     record.Answer,
			Commentary: record.Commentary,
			ImageURL:   record.ImageURL,
		})
	}

	return views
}

// SubmissionResponse is returned after a quiz submission is recorded.
type SubmissionResponse struct {
	StudentID   uint               `json:"student_id"`
	QuizID      uint               `json:"quiz_id"`
	QuizTitle   string             `json:"quiz_title"`
	Answers     []AnswerRecordView `json:"answers"`
	SubmittedAt time.Time          `json:"submitted_at"`
}

// AttemptView is one submission event inside a response document, with the
// quiz reference expanded to its title.
type AttemptView struct {
	QuizID      uint               `json:"quiz_id"`
	QuizTitle   string             `json:"quiz_title"`
	Answers     []AnswerRecordView `json:"answers"`
	SubmittedAt time.Time          `json:"submitted_at"`
}

// ResponseDocument is a student's cumulative submission history.
type ResponseDocument struct {
	StudentID uint          `json:"student_id"`
	Attempts  []AttemptView `json:"attempts"`
}
