package dto

import (
	"github.com/shiksha-labs/quizroom-api/internal/models"
)

// QuizCreateRequest describes the payload for authoring a quiz.
type QuizCreateRequest struct {
	Title       string `form:"title" json:"title" validate:"required,min=3"`
	QuestionIDs []uint `form:"question_ids" json:"question_ids" validate:"required,min=1,dive,gt=0"`
}

// QuizResponse is the serialized representation returned to API clients.
type QuizResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	QuestionIDs []uint `json:"question_ids"`
	CreatedBy   uint   `json:"created_by"`
}

// NewQuizResponse converts a model into a DTO.
func NewQuizResponse(model models.Quiz) QuizResponse {
	return QuizResponse{
		ID:          model.ID,
		Title:       model.Title,
		QuestionIDs: model.QuestionIDs,
		CreatedBy:   model.CreatedBy,
	}
}

// NewQuizResponseSlice converts a slice of models into DTOs.
func NewQuizResponseSlice(quizzes []models.Quiz) []QuizResponse {
	responses := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, NewQuizResponse(quiz))
	}

	return responses
}
