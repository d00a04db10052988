package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/models"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
)

// SubmissionService records quiz submissions and serves response documents.
type SubmissionService interface {
	SubmitQuiz(ctx context.Context, payload dto.SubmitQuizRequest) (dto.SubmissionResponse, error)
	GetResponses(ctx context.Context, studentID uint) (dto.ResponseDocument, error)
}

type submissionService struct {
	students  repository.StudentRepository
	quizzes   repository.QuizRepository
	questions repository.QuestionRepository
	responses repository.ResponseRepository
	grader    Grader
	validator *validator.Validate
	pending   PendingInvalidator
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(studentRepo repository.StudentRepository, quizRepo repository.QuizRepository, questionRepo repository.QuestionRepository, responseRepo repository.ResponseRepository, grader Grader, validate *validator.Validate, pending PendingInvalidator, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		students:  studentRepo,
		quizzes:   quizRepo,
		questions: questionRepo,
		responses: responseRepo,
		grader:    grader,
		validator: validate,
		pending:   pending,
		logger:    logger.With().Str("component", "submission_service").Logger(),
		now:       time.Now,
	}
}

// SubmitQuiz grades every evidence image first and only then persists, so a
// grading failure leaves both the response document and the submitted-quiz
// set untouched. Resubmitting an already-submitted quiz appends a new attempt
// entry; the submitted-set add stays idempotent.
func (s *submissionService) SubmitQuiz(ctx context.Context, payload dto.SubmitQuizRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	student, err := s.students.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrStudentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	quiz, err := s.quizzes.GetByID(ctx, payload.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrQuizNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	for _, answer := range payload.Answers {
		if !quiz.HasQuestion(answer.QuestionID) {
			return dto.SubmissionResponse{}, fmt.Errorf("%w: question %d, quiz %d", ErrQuestionNotInQuiz, answer.QuestionID, quiz.ID)
		}
	}

	records := make([]models.AnswerRecord, 0, len(payload.Answers))
	for _, answer := range payload.Answers {
		// The raw answer is stored exactly as written. Maths answers use < and
		// >, so no HTML escaping may touch this field.
		record := models.AnswerRecord{
			QuestionID: answer.QuestionID,
			Question:   answer.QuestionText,
			Answer:     answer.RawAnswer,
		}

		if len(answer.EvidenceImage) > 0 {
			if err := validateEvidenceImage(answer.EvidenceImage); err != nil {
				return dto.SubmissionResponse{}, err
			}

			graded, err := s.grader.Grade(ctx, GradeInput{
				Image:        answer.EvidenceImage,
				MimeType:     answer.EvidenceMime,
				QuestionText: answer.QuestionText,
			})
			if err != nil {
				// All-or-nothing: nothing has been persisted yet.
				return dto.SubmissionResponse{}, err
			}

			record.Commentary = graded.Commentary
			record.ImageURL = graded.ImageURL
		} else {
			record.Commentary = record.Answer
		}

		records = append(records, record)
	}

	attempt := models.QuizAttempt{
		QuizID:      quiz.ID,
		Answers:     records,
		SubmittedAt: s.now().UTC(),
	}

	if err := s.responses.AppendAttempt(ctx, student.ID, attempt); err != nil {
		return dto.SubmissionResponse{}, err
	}

	if s.pending != nil {
		s.pending.InvalidateStudent(ctx, student.ID)
	}

	s.logger.Info().
		Uint("student_id", student.ID).
		Uint("quiz_id", quiz.ID).
		Int("answers", len(records)).
		Msg("quiz submitted")

	return dto.SubmissionResponse{
		StudentID:   student.ID,
		QuizID:      quiz.ID,
		QuizTitle:   quiz.Title,
		Answers:     dto.NewAnswerRecordSlice(records),
		SubmittedAt: attempt.SubmittedAt,
	}, nil
}

// GetResponses returns the student's cumulative response document with quiz
// references expanded. A student who has never submitted gets an empty
// document, not an error.
func (s *submissionService) GetResponses(ctx context.Context, studentID uint) (dto.ResponseDocument, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResponseDocument{}, ErrStudentNotFound
		}
		return dto.ResponseDocument{}, err
	}

	response, err := s.responses.GetByStudent(ctx, student.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResponseDocument{StudentID: student.ID, Attempts: []dto.AttemptView{}}, nil
		}
		return dto.ResponseDocument{}, err
	}

	quizIDs := make([]uint, 0, len(response.Attempts))
	for _, attempt := range response.Attempts {
		quizIDs = append(quizIDs, attempt.QuizID)
	}

	quizzes, err := s.quizzes.GetByIDs(ctx, quizIDs)
	if err != nil {
		return dto.ResponseDocument{}, err
	}

	titles := make(map[uint]string, len(quizzes))
	for _, quiz := range quizzes {
		titles[quiz.ID] = quiz.Title
	}

	attempts := make([]dto.AttemptView, 0, len(response.Attempts))
	for _, attempt := range response.Attempts {
		attempts = append(attempts, dto.AttemptView{
			QuizID:      attempt.QuizID,
			QuizTitle:   titles[attempt.QuizID],
			Answers:     dto.NewAnswerRecordSlice(attempt.Answers),
			SubmittedAt: attempt.SubmittedAt,
		})
	}

	return dto.ResponseDocument{StudentID: student.ID, Attempts: attempts}, nil
}

func validateEvidenceImage(data []byte) error {
	detected := mimetype.Detect(data)

	allowed := []string{"image/jpeg", "image/png", "image/webp"}
	for _, a := range allowed {
		if detected.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalidEvidenceImage, detected.String())
}
