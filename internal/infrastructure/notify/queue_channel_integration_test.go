//go:build integration

package notify_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/internal/infrastructure/notify"
)

// Ejecutar con: go test -tags integration ./internal/infrastructure/notify/...
func TestQueueChannel_PushesJobEnvelope(t *testing.T) {
	ctx := context.Background()
	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	defer rdb.Close()

	ch := notify.NewQueueChannel(rdb, "")
	n := entity.Notification{ID: "n-1", Type: entity.NotificationComplaint, EmployeeName: "Jane", Message: "late", Date: time.Now().UTC()}
	require.NoError(t, ch.Deliver(ctx, n))

	res, err := rdb.BRPop(ctx, time.Second, notify.DefaultQueue).Result()
	require.NoError(t, err)
	require.Len(t, res, 2)

	var job notify.Job
	require.NoError(t, json.Unmarshal([]byte(res[1]), &job))
	assert.Equal(t, "notification.complaint", job.Type)
	var got entity.Notification
	require.NoError(t, json.Unmarshal(job.Payload, &got))
	assert.Equal(t, "n-1", got.ID)
	assert.Equal(t, "late", got.Message)
}
