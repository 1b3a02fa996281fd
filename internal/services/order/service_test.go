package order

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-menu/internal/logger"
	"restaurant-menu/internal/models"
	"restaurant-menu/internal/queue"
)

type fakeMenu map[string]map[string]models.Record

func (m fakeMenu) Lookup(category, itemName string) (models.Record, bool) {
	r, ok := m[category][itemName]
	return r, ok
}

type published struct {
	msg        interface{}
	routingKey string
	priority   uint8
}

type fakePublisher struct {
	calls []published
	err   error
}

func (p *fakePublisher) PublishOrder(_ context.Context, msg interface{}, routingKey string, priority uint8) error {
	p.calls = append(p.calls, published{msg: msg, routingKey: routingKey, priority: priority})
	return p.err
}

func testMenu() fakeMenu {
	return fakeMenu{
		"Beverages": {
			"Coca Cola": models.NewBeverage("Coca Cola", 5, "Mediano", 5).Serialize(),
		},
		"Mains": {
			"Paella": models.NewMainCourse("Paella", 20, "Spain", 0).Serialize(),
			"Broken": models.Record{models.KeyName: "Broken", models.KeyPrice: 1.0},
		},
		"Starters": {
			"Nachos": models.NewAppetizer("Nachos", 8, true, 50).Serialize(),
		},
	}
}

func newTestService(pub Publisher) (*Service, *queue.OrderQueue) {
	q := queue.New()
	s := NewService(testMenu(), q, pub, logger.Discard())
	s.now = func() time.Time { return time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC) }
	return s, q
}

func TestPlaceOrder(t *testing.T) {
	s, q := newTestService(nil)

	resp, err := s.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		CustomerName: "Ana",
		Items: []models.OrderLine{
			{Category: "Beverages", Name: "Coca Cola", Quantity: 2},
			{Category: "Mains", Name: "Paella", Quantity: 1},
		},
	}, "req-1")
	require.NoError(t, err)

	// 2 * 4.75 * 0.9 + 20
	assert.InDelta(t, 28.55, resp.TotalAmount, 1e-9)
	assert.Equal(t, "ORD_20241201_001", resp.OrderNumber)
	assert.Equal(t, 3, resp.ItemCount)
	assert.Equal(t, 1, resp.Priority)
	assert.Equal(t, "queued", resp.Status)
	assert.Equal(t, 1, q.Len())
}

func TestPlaceOrder_NumbersIncreaseAndResetDaily(t *testing.T) {
	s, _ := newTestService(nil)
	req := &models.PlaceOrderRequest{
		CustomerName: "Ana",
		Items:        []models.OrderLine{{Category: "Starters", Name: "Nachos", Quantity: 1}},
	}

	first, err := s.PlaceOrder(context.Background(), req, "")
	require.NoError(t, err)
	second, err := s.PlaceOrder(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, "ORD_20241201_001", first.OrderNumber)
	assert.Equal(t, "ORD_20241201_002", second.OrderNumber)

	s.now = func() time.Time { return time.Date(2024, 12, 2, 0, 0, 1, 0, time.UTC) }
	third, err := s.PlaceOrder(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, "ORD_20241202_001", third.OrderNumber)
}

func TestPlaceOrder_UnknownItem(t *testing.T) {
	s, q := newTestService(nil)

	_, err := s.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		CustomerName: "Ana",
		Items:        []models.OrderLine{{Category: "Beverages", Name: "Fanta", Quantity: 1}},
	}, "")
	require.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, 0, q.Len())
}

func TestPlaceOrder_UnreadableRecord(t *testing.T) {
	s, q := newTestService(nil)

	_, err := s.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		CustomerName: "Ana",
		Items:        []models.OrderLine{{Category: "Mains", Name: "Broken", Quantity: 1}},
	}, "")
	require.ErrorIs(t, err, models.ErrUnknownVariant)
	assert.Equal(t, 0, q.Len())
}

func TestPlaceOrder_CancelledContext(t *testing.T) {
	s, q := newTestService(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.PlaceOrder(ctx, &models.PlaceOrderRequest{
		CustomerName: "Ana",
		Items:        []models.OrderLine{{Category: "Starters", Name: "Nachos", Quantity: 1}},
	}, "")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, q.Len())
}

func TestDispatchNext_EmptyQueue(t *testing.T) {
	pub := &fakePublisher{}
	s, _ := newTestService(pub)

	msg, ok, err := s.DispatchNext(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, msg)
	assert.Empty(t, pub.calls)
}

func TestDispatchNext_FIFOAndPublish(t *testing.T) {
	pub := &fakePublisher{}
	s, _ := newTestService(pub)

	for _, name := range []string{"Ana", "Luis"} {
		_, err := s.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
			CustomerName: name,
			Items:        []models.OrderLine{{Category: "Mains", Name: "Paella", Quantity: 3}},
		}, "")
		require.NoError(t, err)
	}

	msg, ok, err := s.DispatchNext(context.Background(), "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ana", msg.CustomerName)
	assert.Len(t, msg.Items, 3)
	assert.Equal(t, 5, msg.Priority)

	require.Len(t, pub.calls, 1)
	assert.Equal(t, "kitchen.order.5", pub.calls[0].routingKey)
	assert.Equal(t, uint8(5), pub.calls[0].priority)
	assert.Same(t, msg, pub.calls[0].msg)

	msg, ok, err = s.DispatchNext(context.Background(), "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Luis", msg.CustomerName)
	assert.Equal(t, 0, s.Pending())
}

func TestDispatchNext_PublishFailureDropsOrder(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	s, _ := newTestService(pub)

	_, err := s.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		CustomerName: "Ana",
		Items:        []models.OrderLine{{Category: "Beverages", Name: "Coca Cola", Quantity: 1}},
	}, "")
	require.NoError(t, err)

	msg, ok, err := s.DispatchNext(context.Background(), "")
	require.Error(t, err)
	assert.True(t, ok)
	require.NotNil(t, msg)
	assert.True(t, math.Abs(msg.TotalAmount-4.75) < 1e-9)
	assert.Equal(t, 0, s.Pending())
}
