package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/models"
	"github.com/shiksha-labs/quizroom-api/internal/observability"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
)

const notificationBufferSize = 16

// NotificationService fans quiz-assignment events out to the students of the
// affected class. Events travel through redis and NATS so every node in the
// deployment sees them, and an in-process broker delivers them to streaming
// listeners on this node.
type NotificationService interface {
	AssignmentNotifier
	Subscribe(studentID uint) (<-chan dto.AssignmentNotification, func())
	Start(ctx context.Context)
}

type notificationService struct {
	students    repository.StudentRepository
	redis       *redis.Client
	redisStream string
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	tracer      trace.Tracer
	sanitizer   *bluemonday.Policy
	broker      *notificationBroker
	nodeID      string
}

type notificationEvent struct {
	Source       string                     `json:"source"`
	StudentIDs   []uint                     `json:"student_ids"`
	Notification dto.AssignmentNotification `json:"notification"`
	SentAt       time.Time                  `json:"sent_at"`
}

type notificationBroker struct {
	mu          sync.RWMutex
	subscribers map[uint]map[chan dto.AssignmentNotification]struct{}
}

// NewNotificationService constructs a notification service. channelBase scopes
// the redis channel and NATS subject; an empty base disables cross-node fanout.
func NewNotificationService(studentRepo repository.StudentRepository, redisClient *redis.Client, channelBase string, natsConn *nats.Conn, logger zerolog.Logger) NotificationService {
	stream := ""
	subject := ""
	if channelBase != "" {
		stream = channelBase + ":assignments"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".assignments"
	}

	return &notificationService{
		students:    studentRepo,
		redis:       redisClient,
		redisStream: stream,
		nats:        natsConn,
		natsSubject: subject,
		logger:      logger.With().Str("component", "notification_service").Logger(),
		tracer:      otel.Tracer("github.com/shiksha-labs/quizroom-api/internal/service/notification"),
		sanitizer:   bluemonday.StrictPolicy(),
		broker: &notificationBroker{
			subscribers: make(map[uint]map[chan dto.AssignmentNotification]struct{}),
		},
		nodeID: uuid.NewString(),
	}
}

func (s *notificationService) Start(ctx context.Context) {
	if s.redis != nil && s.redisStream != "" {
		go s.consumeRedis(ctx)
	}
	if s.nats != nil && s.natsSubject != "" {
		go s.consumeNATS(ctx)
	}
}

// QuizAssigned notifies every student enrolled in the class about the newly
// assigned quiz. Delivery is best effort; failures are logged, never returned.
func (s *notificationService) QuizAssigned(ctx context.Context, class models.Class, quiz models.Quiz) {
	attrs := []attribute.KeyValue{
		attribute.Int("assignment.class_id", int(class.ID)),
		attribute.Int("assignment.quiz_id", int(quiz.ID)),
	}
	spanCtx, span := s.tracer.Start(ctx, "notifications.quiz_assigned", trace.WithAttributes(attrs...))
	defer span.End()

	students, err := s.students.ListByClass(spanCtx, class.ID)
	if err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).Uint("class_id", class.ID).Msg("failed to resolve class roster for notification")
		return
	}

	notification := dto.AssignmentNotification{
		Type:      "quiz_assigned",
		ClassID:   class.ID,
		ClassName: strings.TrimSpace(s.sanitizer.Sanitize(class.Name)),
		QuizID:    quiz.ID,
		QuizTitle: strings.TrimSpace(s.sanitizer.Sanitize(quiz.Title)),
		SentAt:    time.Now().UTC(),
	}

	studentIDs := make([]uint, 0, len(students))
	for _, student := range students {
		studentIDs = append(studentIDs, student.ID)
		s.broker.broadcast(student.ID, notification)
	}

	if err := s.publish(spanCtx, studentIDs, notification); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish assignment notification to broker")
	}

	observability.NotificationsPublishedTotal().WithLabelValues(notification.Type).Inc()
}

func (s *notificationService) Subscribe(studentID uint) (<-chan dto.AssignmentNotification, func()) {
	channel := make(chan dto.AssignmentNotification, notificationBufferSize)

	s.broker.subscribe(studentID, channel)
	observability.NotificationListeners().Inc()

	cleanup := func() {
		s.broker.unsubscribe(studentID, channel)
		observability.NotificationListeners().Dec()
	}

	return channel, cleanup
}

func (s *notificationService) publish(ctx context.Context, studentIDs []uint, notification dto.AssignmentNotification) error {
	event := notificationEvent{
		Source:       s.nodeID,
		StudentIDs:   studentIDs,
		Notification: notification,
		SentAt:       time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if s.redis != nil && s.redisStream != "" {
		if err := s.redis.Publish(ctx, s.redisStream, payload).Err(); err != nil {
			return err
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			return err
		}
	}

	return nil
}

func (s *notificationService) consumeRedis(ctx context.Context) {
	pubsub := s.redis.Subscribe(ctx, s.redisStream)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error().Err(err).Msg("assignment redis subscription closed")
			return
		}
		s.handleEvent([]byte(msg.Payload))
	}
}

func (s *notificationService) consumeNATS(ctx context.Context) {
	sub, err := s.nats.QueueSubscribe(s.natsSubject, "quizroom-assignments", func(msg *nats.Msg) {
		s.handleEvent(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats assignments subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain assignment nats subscription")
		}
	}()
}

func (s *notificationService) handleEvent(payload []byte) {
	var event notificationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.logger.Warn().Err(err).Msg("invalid assignment event payload")
		return
	}

	if event.Source == s.nodeID {
		return
	}

	for _, studentID := range event.StudentIDs {
		s.broker.broadcast(studentID, event.Notification)
	}
}

func (b *notificationBroker) subscribe(studentID uint, ch chan dto.AssignmentNotification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[studentID]; !exists {
		b.subscribers[studentID] = make(map[chan dto.AssignmentNotification]struct{})
	}
	b.subscribers[studentID][ch] = struct{}{}
}

func (b *notificationBroker) unsubscribe(studentID uint, ch chan dto.AssignmentNotification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[studentID]; ok {
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(b.subscribers, studentID)
		}
	}
}

func (b *notificationBroker) broadcast(studentID uint, notification dto.AssignmentNotification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subscribers := b.subscribers[studentID]
	for ch := range subscribers {
		select {
		case ch <- notification:
		default:
		}
	}
}
