package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-pos/internal/application/notify"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

type captureChannel struct {
	name  string
	err   error
	block chan struct{}

	mu  sync.Mutex
	got []entity.Notification
}

func (c *captureChannel) Name() string { return c.name }

func (c *captureChannel) Deliver(_ context.Context, n entity.Notification) error {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, n)
	return c.err
}

func (c *captureChannel) received() []entity.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Notification(nil), c.got...)
}

type countingObserver struct {
	mu        sync.Mutex
	delivered int
	failed    int
	dropped   int
}

func (o *countingObserver) ObserveDelivery(_ string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.failed++
		return
	}
	o.delivered++
}

func (o *countingObserver) ObserveDropped() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dropped++
}

func TestSink_FormatSale(t *testing.T) {
	s := notify.NewSink(notify.Config{}, logger.Nop(), nil)
	defer func() { _ = s.Close(context.Background()) }()

	n := notify.FromSale(entity.Sale{ID: "1", EmployeeName: "Jane", Amount: decimal.NewFromInt(500)}, "Haircut")
	assert.Equal(t, "New sale notification: Jane sold Haircut for $500", s.Format(n))
}

func TestSink_FormatReports(t *testing.T) {
	s := notify.NewSink(notify.Config{CurrencySymbol: "€"}, logger.Nop(), nil)
	defer func() { _ = s.Close(context.Background()) }()

	complaint := notify.FromReport(entity.NotificationComplaint, "Jane", " Client was rude ")
	assert.Equal(t, "New complaint from Jane: Client was rude", s.Format(complaint))

	report := notify.FromReport(entity.NotificationError, "John", "Card reader down")
	assert.Equal(t, "New error from John: Card reader down", s.Format(report))

	msg := entity.Notification{Type: entity.NotificationMessage, EmployeeName: "admin", Recipient: "Ana", Message: "Your appointment is confirmed"}
	assert.Equal(t, "New message from admin to Ana: Your appointment is confirmed", s.Format(msg))
}

func TestSink_DeliversToEveryChannelAndCountsFailures(t *testing.T) {
	ok := &captureChannel{name: "ok"}
	bad := &captureChannel{name: "bad", err: errors.New("smtp caído")}
	obs := &countingObserver{}
	s := notify.NewSink(notify.Config{QueueSize: 4, Workers: 1}, logger.Nop(), obs, ok, bad)

	s.Notify(context.Background(), notify.FromReport(entity.NotificationError, "Jane", "printer jam"))
	require.NoError(t, s.Close(context.Background()))

	got := ok.received()
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].Date.IsZero())
	assert.Equal(t, "New error from Jane: printer jam", got[0].Text)
	assert.Len(t, bad.received(), 1)
	assert.Equal(t, 1, obs.delivered)
	assert.Equal(t, 1, obs.failed)
}

func TestSink_FullQueueDropsWithoutBlocking(t *testing.T) {
	block := make(chan struct{})
	ch := &captureChannel{name: "slow", block: block}
	obs := &countingObserver{}
	s := notify.NewSink(notify.Config{QueueSize: 1, Workers: 1}, logger.Nop(), obs, ch)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			s.Notify(context.Background(), notify.FromReport(entity.NotificationComplaint, "Jane", "x"))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify bloqueó con la cola llena")
	}
	close(block)
	require.NoError(t, s.Close(context.Background()))

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.GreaterOrEqual(t, obs.dropped, 3)
	assert.Equal(t, 5, obs.dropped+len(ch.received()))
}

func TestSink_CloseTwiceAndNotifyAfterClose(t *testing.T) {
	ch := &captureChannel{name: "log"}
	obs := &countingObserver{}
	s := notify.NewSink(notify.Config{}, logger.Nop(), obs, ch)
	require.NoError(t, s.Close(context.Background()))
	assert.ErrorIs(t, s.Close(context.Background()), notify.ErrClosed)

	s.Notify(context.Background(), notify.FromReport(entity.NotificationError, "Jane", "late"))
	assert.Empty(t, ch.received())
	assert.Equal(t, 1, obs.dropped)
}
