package contracts

import "context"

// RecomputeMessage asks the background worker to rebuild one group's
// compacted availability.
type RecomputeMessage struct {
	GroupID string `json:"group_id"`
}

type RecomputeQueueService interface {
	Enqueue(ctx context.Context, message RecomputeMessage) error
	FetchN(ctx context.Context, max int) ([]QueuedRecompute, error)
	Ack(ctx context.Context, deliveryTag uint64) error
}

type QueuedRecompute struct {
	DeliveryTag uint64
	Message     RecomputeMessage
}
