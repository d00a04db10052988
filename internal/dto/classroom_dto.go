package dto

import (
	"github.com/shiksha-labs/quizroom-api/internal/models"
)

// SchoolCreateRequest describes the payload for registering a school.
type SchoolCreateRequest struct {
	Name    string `form:"name" json:"name" validate:"required,min=3"`
	Address string `form:"address" json:"address"`
}

// SchoolResponse is the serialized representation returned to API clients.
type SchoolResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// NewSchoolResponse converts a model into a DTO.
func NewSchoolResponse(model models.School) SchoolResponse {
	return SchoolResponse{
		ID:      model.ID,
		Name:    model.Name,
		Address: model.Address,
	}
}

// NewSchoolResponseSlice converts a slice of models into DTOs.
func NewSchoolResponseSlice(schools []models.School) []SchoolResponse {
	responses := make([]SchoolResponse, 0, len(schools))
	for _, school := range schools {
		responses = append(responses, NewSchoolResponse(school))
	}

	return responses
}

// ClassCreateRequest describes the payload for creating a class.
type ClassCreateRequest struct {
	Name     string `form:"name" json:"name" validate:"required,min=2"`
	Year     string `form:"year" json:"year" validate:"required"`
	Grade    string `form:"grade" json:"grade" validate:"required,oneof=9 10"`
	Section  string `form:"section" json:"section" validate:"required"`
	SchoolID *uint  `form:"school_id" json:"school_id" validate:"omitempty,gt=0"`
}

// ClassResponse is the serialized representation returned to API clients.
type ClassResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Year       string `json:"year"`
	Grade      string `json:"grade"`
	Section    string `json:"section"`
	SchoolID   *uint  `json:"school_id,omitempty"`
	TeacherIDs []uint `json:"teacher_ids"`
	QuizIDs    []uint `json:"quiz_ids"`
}

// NewClassResponse converts a model into a DTO.
func NewClassResponse(model models.Class) ClassResponse {
	return ClassResponse{
		ID:         model.ID,
		Name:       model.Name,
		Year:       model.Year,
		Grade:      model.Grade,
		Section:    model.Section,
		SchoolID:   model.SchoolID,
		TeacherIDs: model.TeacherIDs,
		QuizIDs:    model.QuizIDs,
	}
}

// NewClassResponseSlice converts a slice of models into DTOs.
func NewClassResponseSlice(classes []models.Class) []ClassResponse {
	responses := make([]ClassResponse, 0, len(classes))
	for _, class := range classes {
		responses = append(responses, NewClassResponse(class))
	}

	return responses
}

// StudentCreateRequest describes the payload for enrolling a student.
type StudentCreateRequest struct {
	Username    string `form:"username" json:"username" validate:"required,min=3,max=64"`
	Name        string `form:"name" json:"name" validate:"required,min=2"`
	Section     string `form:"section" json:"section"`
	Age         int    `form:"age" json:"age" validate:"omitempty,gte=5,lte=25"`
	Address     string `form:"address" json:"address"`
	PhoneNumber string `form:"phone_number" json:"phone_number"`
	ClassID     uint   `form:"class_id" json:"class_id" validate:"required,gt=0"`
}

// StudentResponse is the serialized representation returned to API clients.
type StudentResponse struct {
	ID               uint   `json:"id"`
	Username         string `json:"username"`
	Name             string `json:"name"`
	Section          string `json:"section,omitempty"`
	Age              int    `json:"age,omitempty"`
	Address          string `json:"address,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	ClassID          uint   `json:"class_id"`
	SchoolID         *uint  `json:"school_id,omitempty"`
	SubmittedQuizIDs []uint `json:"submitted_quiz_ids"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:               model.ID,
		Username:         model.Username,
		Name:             model.Name,
		Section:          model.Section,
		Age:              model.Age,
		Address:          model.Address,
		PhoneNumber:      model.PhoneNumber,
		ClassID:          model.ClassID,
		SchoolID:         model.SchoolID,
		SubmittedQuizIDs: model.SubmittedQuizIDs,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}

	return responses
}
