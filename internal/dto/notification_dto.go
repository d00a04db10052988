package dto

import "time"

// AssignmentNotification is the event delivered to students when a quiz is
// assigned to their class.
type AssignmentNotification struct {
	Type      string    `json:"type"`
	ClassID   uint      `json:"class_id"`
	ClassName string    `json:"class_name"`
	QuizID    uint      `json:"quiz_id"`
	QuizTitle string    `json:"quiz_title"`
	SentAt    time.Time `json:"sent_at"`
}
