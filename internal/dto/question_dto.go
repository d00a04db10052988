package dto

import (
	"github.com/shiksha-labs/quizroom-api/internal/models"
)

// QuestionCreateRequest describes the payload for adding a question to the
// bank. Chapter membership is validated against the curriculum catalog by the
// service layer.
type QuestionCreateRequest struct {
	Board         string   `form:"board" json:"board" validate:"required,oneof=ncert icse"`
	Grade         string   `form:"grade" json:"grade" validate:"required,oneof=9 10"`
	Subject       string   `form:"subject" json:"subject" validate:"required"`
	Chapter       string   `form:"chapter" json:"chapter" validate:"required"`
	Topic         string   `form:"topic" json:"topic" validate:"required"`
	Type          string   `form:"type" json:"type" validate:"required"`
	Text          string   `form:"text" json:"text" validate:"required,min=3"`
	Options       []string `form:"options" json:"options" validate:"omitempty,dive,required"`
	CorrectOption string   `form:"correct_option" json:"correct_option"`
	Answer        string   `form:"answer" json:"answer"`
	Difficulty    string   `form:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// QuestionListRequest filters the question bank listing.
type QuestionListRequest struct {
	Board      string `query:"board" json:"board" validate:"omitempty,oneof=ncert icse"`
	Grade      string `query:"grade" json:"grade" validate:"omitempty,oneof=9 10"`
	Subject    string `query:"subject" json:"subject"`
	Chapter    string `query:"chapter" json:"chapter"`
	Type       string `query:"type" json:"type"`
	Difficulty string `query:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// QuestionResponse is the serialized representation returned to API clients.
type QuestionResponse struct {
	ID            uint     `json:"id"`
	Board         string   `json:"board"`
	Grade         string   `json:"grade"`
	Subject       string   `json:"subject"`
	Chapter       string   `json:"chapter"`
	Topic         string   `json:"topic"`
	Type          string   `json:"type"`
	Text          string   `json:"text"`
	Options       []string `json:"options,omitempty"`
	CorrectOption string   `json:"correct_option,omitempty"`
	Answer        string   `json:"answer,omitempty"`
	Difficulty    string   `json:"difficulty"`
}

// NewQuestionResponse converts a model into a DTO.
func NewQuestionResponse(model models.Question) QuestionResponse {
	return QuestionResponse{
		ID:            model.ID,
		Board:         model.Board,
		Grade:         model.Grade,
		Subject:       model.Subject,
		Chapter:       model.Chapter,
		Topic:         model.Topic,
		Type:          model.Type,
		Text:          model.Text,
		Options:       model.Options,
		CorrectOption: model.CorrectOption,
		Answer:        model.Answer,
		Difficulty:    model.Difficulty,
	}
}

// NewQuestionResponseSlice converts a slice of models into DTOs.
func NewQuestionResponseSlice(questions []models.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, NewQuestionResponse(question))
	}

	return responses
}
