package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// DefaultQueue lista de Redis por defecto para avisos.
const DefaultQueue = "jobs:notifications"

// Job sobre genérico que se encola para consumidores externos.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// QueueChannel encola cada aviso en una lista de Redis (LPUSH); el consumidor hace BRPOP.
type QueueChannel struct {
	rdb   redis.Cmdable
	queue string
}

// NewQueueChannel construye el canal. queue vacío usa DefaultQueue.
func NewQueueChannel(rdb redis.Cmdable, queue string) *QueueChannel {
	if queue == "" {
		queue = DefaultQueue
	}
	return &QueueChannel{rdb: rdb, queue: queue}
}

func (c *QueueChannel) Name() string { return "queue" }

func (c *QueueChannel) Deliver(ctx context.Context, n entity.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: "notification." + string(n.Type), Payload: payload})
	if err != nil {
		return err
	}
	if err := c.rdb.LPush(ctx, c.queue, encoded).Err(); err != nil {
		return fmt.Errorf("queue: lpush %s: %w", c.queue, err)
	}
	return nil
}
