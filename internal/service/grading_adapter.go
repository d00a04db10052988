package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/shiksha-labs/quizroom-api/pkg/vision"
)

// FileUploader abstracts uploading binary data and returning a durable URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// GradeInput carries one photographed answer to be graded.
type GradeInput struct {
	Image        []byte
	MimeType     string
	QuestionText string
}

// GradeResult is the adapter's output. Commentary is opaque free text; no
// numeric score may be parsed out of it.
type GradeResult struct {
	Commentary string
	ImageURL   string
}

// Grader turns an answer image into teacher-facing commentary plus a stored
// image reference.
type Grader interface {
	Grade(ctx context.Context, input GradeInput) (GradeResult, error)
}

type gradingAdapter struct {
	uploader FileUploader
	model    vision.Grader
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewGradingAdapter composes the object-storage upload and the vision-model
// call behind the single Grader contract the submission recorder uses. Either
// leg failing, or the configured timeout elapsing, surfaces as
// ErrGradingFailed.
func NewGradingAdapter(uploader FileUploader, model vision.Grader, timeout time.Duration, logger zerolog.Logger) Grader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &gradingAdapter{
		uploader: uploader,
		model:    model,
		timeout:  timeout,
		logger:   logger.With().Str("component", "grading_adapter").Logger(),
	}
}

func (g *gradingAdapter) Grade(ctx context.Context, input GradeInput) (GradeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	url, err := g.uploader.Upload(ctx, fmt.Sprintf("answer-%d", time.Now().UnixNano()), bytes.NewReader(input.Image))
	if err != nil {
		g.logger.Error().Err(err).Msg("evidence image upload failed")
		return GradeResult{}, fmt.Errorf("%w: upload: %v", ErrGradingFailed, err)
	}

	commentary, err := g.model.GradeImage(ctx, vision.GradeRequest{
		Image:        input.Image,
		MimeType:     input.MimeType,
		QuestionText: input.QuestionText,
	})
	if err != nil {
		if ctx.Err() != nil {
			g.logger.Warn().Err(err).Msg("grading timed out")
			return GradeResult{}, fmt.Errorf("%w: timeout: %v", ErrGradingFailed, err)
		}
		g.logger.Error().Err(err).Msg("vision grading failed")
		return GradeResult{}, fmt.Errorf("%w: %v", ErrGradingFailed, err)
	}

	return GradeResult{Commentary: commentary, ImageURL: url}, nil
}
