package vision

import "context"

// GradeRequest contains one photographed answer and the question it responds
// to.
type GradeRequest struct {
	Image        []byte
	MimeType     string
	QuestionText string
}

// Grader describes a vision model capable of reading a handwritten answer
// image and producing free-text commentary on it.
type Grader interface {
	GradeImage(ctx context.Context, request GradeRequest) (string, error)
}
