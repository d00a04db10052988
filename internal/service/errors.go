package service

import "errors"

// Sentinel errors returned across service boundaries. Handlers map these to
// HTTP statuses; nothing else crosses the boundary untagged except
// validator.ValidationErrors and persistence faults.
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrClassNotFound    = errors.New("class not found")
	ErrTeacherNotFound  = errors.New("teacher not found")
	ErrStudentNotFound  = errors.New("student not found")
	ErrResponseNotFound = errors.New("response document not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrQuestionNotInQuiz flags an answer referencing a question outside
	// the submitted quiz.
	ErrQuestionNotInQuiz = errors.New("question does not belong to quiz")

	// ErrInvalidQuestion flags a question payload that fails curriculum or
	// option rules rather than field validation.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrInvalidEvidenceImage flags an evidence upload that is not a
	// supported image type.
	ErrInvalidEvidenceImage = errors.New("unsupported evidence image type")

	// ErrGradingFailed covers any grading adapter failure, including the
	// upload leg and timeouts; the whole submission batch is rejected.
	ErrGradingFailed = errors.New("grading failed")

	// ErrDuplicate is reserved for a future strict resubmission policy.
	// Current behavior appends a new attempt instead of returning it.
	ErrDuplicate = errors.New("duplicate submission")

	ErrInvalidCredentials = errors.New("invalid credentials")
)
