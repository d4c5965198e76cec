package recomputequeue

import (
	"context"
	"fmt"
	"meetcue-service/internal/app/contracts"
	"meetcue-service/internal/pkg/constvars"
	"meetcue-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Service queues group recompute requests on a durable RabbitMQ queue. Every
// membership or schedule mutation enqueues the affected group; the worker
// drains the queue and rebuilds compacted availability out of band.
type Service struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, queueName string, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	// Publisher confirms so a lost recompute request surfaces as an error.
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

func (s *Service) Enqueue(ctx context.Context, message contracts.RecomputeMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("RecomputeQueue.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingGroupIDKey, message.GroupID),
	)

	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", s.queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), s.queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), s.queueName)
	}
	return nil
}

// FetchN retrieves up to max messages using basic.get without auto-ack.
func (s *Service) FetchN(ctx context.Context, max int) ([]contracts.QueuedRecompute, error) {
	n := max
	if n <= 0 {
		n = 1
	}
	items := make([]contracts.QueuedRecompute, 0, n)

	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(s.queueName, false)
		if err != nil {
			return nil, exceptions.ErrRabbitMQConsumeMessage(err, s.queueName)
		}
		if !ok {
			break
		}
		var payload contracts.RecomputeMessage
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			// Drop poison messages instead of looping on them forever.
			s.log.Warn("RecomputeQueue.FetchN dropping malformed message",
				zap.String(constvars.LoggingQueueNameKey, s.queueName),
				zap.Error(err),
			)
			_ = d.Ack(false)
			continue
		}
		items = append(items, contracts.QueuedRecompute{DeliveryTag: d.DeliveryTag, Message: payload})
	}

	return items, nil
}

func (s *Service) Ack(ctx context.Context, deliveryTag uint64) error {
	if err := s.ch.Ack(deliveryTag, false); err != nil {
		return exceptions.ErrRabbitMQConsumeMessage(err, s.queueName)
	}
	return nil
}
