package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

// MockPublisher is a mock implementation of EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

// MockProductLookup is a mock implementation of ProductLookup
type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) GetByID(id string) (domain.Product, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Product), args.Error(1)
}

var hoodie = domain.Product{
	ID:       "str-001",
	Name:     "CYBER HOODIE GHOST",
	Price:    299,
	Image:    "hoodie.jpg",
	Colors:   []string{"Black", "Dark Purple"},
	Sizes:    []string{"S", "M", "L"},
	Category: domain.CategoryStreetwear,
	Stock:    45,
}

var hoodieKey = domain.LineKey{ProductID: "str-001", Size: "M", Color: "Black"}

func newTestService(publisher EventPublisher) (*Service, *MockProductLookup) {
	products := new(MockProductLookup)
	products.On("GetByID", "str-001").Return(hoodie, nil).Maybe()
	return NewService(NewRegistry(time.Hour, logger.Nop()), products, publisher, logger.Nop()), products
}

func TestService_CreateSession(t *testing.T) {
	svc, _ := newTestService(nil)

	id, snap := svc.CreateSession()

	assert.NotEqual(t, uuid.Nil, id)
	assert.True(t, snap.IsEmpty())
	assert.False(t, snap.IsOpen)

	got, err := svc.Get(id)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestService_AddItem_Merges(t *testing.T) {
	svc, _ := newTestService(nil)
	id, _ := svc.CreateSession()

	_, err := svc.AddItem(context.Background(), id, hoodieKey)
	require.NoError(t, err)
	snap, err := svc.AddItem(context.Background(), id, hoodieKey)
	require.NoError(t, err)

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 2, snap.Lines[0].Quantity)
	assert.Equal(t, "CYBER HOODIE GHOST", snap.Lines[0].Name)
	assert.Equal(t, "598", snap.TotalPrice.String())
	assert.Equal(t, 2, snap.TotalItems)
}

func TestService_AddItem_Errors(t *testing.T) {
	soldOut := hoodie
	soldOut.ID = "drop-002"
	soldOut.Stock = 0

	tests := []struct {
		name    string
		key     domain.LineKey
		wantErr error
	}{
		{"missing size", domain.LineKey{ProductID: "str-001", Color: "Black"}, domain.ErrInvalidInput},
		{"size not offered", domain.LineKey{ProductID: "str-001", Size: "XXL", Color: "Black"}, domain.ErrInvalidInput},
		{"color not offered", domain.LineKey{ProductID: "str-001", Size: "M", Color: "Red"}, domain.ErrInvalidInput},
		{"unknown product", domain.LineKey{ProductID: "nope", Size: "M", Color: "Black"}, domain.ErrNotFound},
		{"sold out", domain.LineKey{ProductID: "drop-002", Size: "M", Color: "Black"}, domain.ErrOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, products := newTestService(nil)
			products.On("GetByID", "nope").Return(domain.Product{}, domain.ErrNotFound).Maybe()
			products.On("GetByID", "drop-002").Return(soldOut, nil).Maybe()
			id, _ := svc.CreateSession()

			_, err := svc.AddItem(context.Background(), id, tt.key)

			assert.ErrorIs(t, err, tt.wantErr)
			snap, _ := svc.Get(id)
			assert.True(t, snap.IsEmpty())
		})
	}
}

func TestService_UnknownSession(t *testing.T) {
	svc, _ := newTestService(nil)
	missing := uuid.New()
	ctx := context.Background()

	_, err := svc.Get(missing)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.AddItem(ctx, missing, hoodieKey)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.UpdateQuantity(ctx, missing, hoodieKey, 2)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.RemoveItem(ctx, missing, hoodieKey)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Clear(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Open(missing)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Close(missing)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.ToggleSelection(missing, hoodieKey)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestService_UpdateQuantity(t *testing.T) {
	svc, _ := newTestService(nil)
	id, _ := svc.CreateSession()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, id, hoodieKey)
	require.NoError(t, err)

	snap, err := svc.UpdateQuantity(ctx, id, hoodieKey, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.TotalItems)
	assert.Equal(t, "1495", snap.TotalPrice.String())

	snap, err = svc.UpdateQuantity(ctx, id, hoodieKey, 0)
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
}

func TestService_UpdateQuantity_UnknownLineIsNoOp(t *testing.T) {
	svc, _ := newTestService(nil)
	id, _ := svc.CreateSession()

	snap, err := svc.UpdateQuantity(context.Background(), id, hoodieKey, 3)

	assert.NoError(t, err)
	assert.True(t, snap.IsEmpty())
}

func TestService_RemoveAndClear(t *testing.T) {
	svc, _ := newTestService(nil)
	id, _ := svc.CreateSession()
	ctx := context.Background()
	other := domain.LineKey{ProductID: "str-001", Size: "L", Color: "Dark Purple"}

	_, err := svc.AddItem(ctx, id, hoodieKey)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, id, other)
	require.NoError(t, err)

	snap, err := svc.RemoveItem(ctx, id, hoodieKey)
	require.NoError(t, err)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, other, snap.Lines[0].LineKey)

	snap, err = svc.Clear(ctx, id)
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
}

func TestService_OpenCloseAndSelection(t *testing.T) {
	svc, _ := newTestService(nil)
	id, _ := svc.CreateSession()

	_, err := svc.AddItem(context.Background(), id, hoodieKey)
	require.NoError(t, err)

	snap, err := svc.Open(id)
	require.NoError(t, err)
	assert.True(t, snap.IsOpen)

	snap, err = svc.ToggleSelection(id, hoodieKey)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.SelectedCount)
	assert.Equal(t, "299", snap.SelectedTotal.String())
	assert.True(t, snap.Lines[0].Selected)

	snap, err = svc.Close(id)
	require.NoError(t, err)
	assert.False(t, snap.IsOpen)
	assert.Equal(t, 1, snap.TotalItems)
}

func TestService_PublishesEvents(t *testing.T) {
	publisher := new(MockPublisher)
	published := make(chan []byte, 1)
	publisher.On("Publish", mock.Anything, EventsSubject, mock.Anything).
		Run(func(args mock.Arguments) { published <- args.Get(2).([]byte) }).
		Return(nil)

	svc, _ := newTestService(publisher)
	id, _ := svc.CreateSession()

	_, err := svc.AddItem(context.Background(), id, hoodieKey)
	require.NoError(t, err)

	select {
	case data := <-published:
		var event CartEvent
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, EventItemAdded, event.EventType)
		assert.Equal(t, id, event.SessionID)
		require.NotNil(t, event.Item)
		assert.Equal(t, hoodieKey, *event.Item)
		assert.Equal(t, 1, event.Quantity)
		assert.Equal(t, "299", event.TotalPrice.String())
	case <-time.After(time.Second):
		t.Fatal("event was not published")
	}
}

func TestService_PublishFailureDoesNotFailCommand(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("nats: no responders")).Maybe()

	svc, _ := newTestService(publisher)
	id, _ := svc.CreateSession()

	_, err := svc.AddItem(context.Background(), id, hoodieKey)
	require.NoError(t, err)

	snap, err := svc.Clear(context.Background(), id)

	assert.NoError(t, err)
	assert.True(t, snap.IsEmpty())
}

func TestService_NoEventsForUntouchedLines(t *testing.T) {
	publisher := new(MockPublisher)
	published := make(chan []byte, 4)
	publisher.On("Publish", mock.Anything, EventsSubject, mock.Anything).
		Run(func(args mock.Arguments) { published <- args.Get(2).([]byte) }).
		Return(nil).Maybe()

	svc, _ := newTestService(publisher)
	id, _ := svc.CreateSession()
	ctx := context.Background()

	_, err := svc.UpdateQuantity(ctx, id, hoodieKey, 3)
	require.NoError(t, err)
	_, err = svc.UpdateQuantity(ctx, id, hoodieKey, 0)
	require.NoError(t, err)
	_, err = svc.RemoveItem(ctx, id, hoodieKey)
	require.NoError(t, err)
	_, err = svc.Clear(ctx, id)
	require.NoError(t, err)

	select {
	case data := <-published:
		t.Fatalf("unexpected event published: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RemoveItem_PublishesForExistingLine(t *testing.T) {
	publisher := new(MockPublisher)
	published := make(chan []byte, 4)
	publisher.On("Publish", mock.Anything, EventsSubject, mock.Anything).
		Run(func(args mock.Arguments) { published <- args.Get(2).([]byte) }).
		Return(nil)

	svc, _ := newTestService(publisher)
	id, _ := svc.CreateSession()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, id, hoodieKey)
	require.NoError(t, err)
	_, err = svc.RemoveItem(ctx, id, hoodieKey)
	require.NoError(t, err)

	var types []string
	for len(types) < 2 {
		select {
		case data := <-published:
			var event CartEvent
			require.NoError(t, json.Unmarshal(data, &event))
			types = append(types, event.EventType)
		case <-time.After(time.Second):
			t.Fatalf("expected two events, got %v", types)
		}
	}
	assert.ElementsMatch(t, []string{EventItemAdded, EventItemRemoved}, types)
}
