package dto

import (
	"github.com/shiksha-labs/quizroom-api/internal/models"
)

// TeacherCreateRequest describes the payload for registering a teacher.
type TeacherCreateRequest struct {
	Username string   `form:"username" json:"username" validate:"required,min=3,max=64"`
	Name     string   `form:"name" json:"name" validate:"required,min=2"`
	Subjects []string `form:"subjects" json:"subjects" validate:"omitempty,dive,required"`
	SchoolID *uint    `form:"school_id" json:"school_id" validate:"omitempty,gt=0"`
}

// TeacherResponse is the serialized representation returned to API clients.
type TeacherResponse struct {
	ID                  uint     `json:"id"`
	Username            string   `json:"username"`
	Name                string   `json:"name"`
	Subjects            []string `json:"subjects"`
	SchoolID            *uint    `json:"school_id,omitempty"`
	ClassIDs            []uint   `json:"class_ids"`
	QuizIDs             []uint   `json:"quiz_ids"`
	BookmarkedQuestions []uint   `json:"bookmarked_questions"`
}

// NewTeacherResponse converts a model into a DTO.
func NewTeacherResponse(model models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:                  model.ID,
		Username:            model.Username,
		Name:                model.Name,
		Subjects:            model.Subjects,
		SchoolID:            model.SchoolID,
		ClassIDs:            model.ClassIDs,
		QuizIDs:             model.QuizIDs,
		BookmarkedQuestions: model.BookmarkedQuestions,
	}
}

// ClassAssignmentOutcome reports the per-class result of a bulk teacher
// assignment. Status is either "linked" or "not_found".
type ClassAssignmentOutcome struct {
	ClassID uint   `json:"class_id"`
	Status  string `json:"status"`
}

// TeacherAssignmentResult summarises a bulk assignment of a teacher to
// classes, including the teacher's full class list after the operation.
type TeacherAssignmentResult struct {
	TeacherID uint                     `json:"teacher_id"`
	Classes   []ClassAssignmentOutcome `json:"classes"`
	ClassIDs  []uint                   `json:"class_ids"`
}
