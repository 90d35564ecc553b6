package order

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/merchandise"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/storage"
	"github.com/Beliver-247/sliit-choir-backend/pkg/logger"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *Order) error {
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context, filter Filter) ([]Order, int64, error) {
	var out []Order
	for _, o := range f.orders {
		if filter.MemberID != nil && o.MemberID != *filter.MemberID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, o *Order) error {
	if _, ok := f.orders[o.ID]; !ok {
		return ErrOrderNotFound
	}
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.orders[id]; !ok {
		return ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) Stats(ctx context.Context) (*StatsSummary, error) {
	return &StatsSummary{CountByStatus: map[Status]int64{}}, nil
}

type fakeCatalog struct {
	items map[uuid.UUID]*merchandise.Item
}

func (f *fakeCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]merchandise.Item, error) {
	var out []merchandise.Item
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeCatalog) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	item, ok := f.items[id]
	if !ok {
		return merchandise.ErrItemNotFound
	}
	if item.Stock+delta < 0 {
		return merchandise.ErrInsufficientStock
	}
	item.Stock += delta
	return nil
}

type fakeStore struct {
	saved   int
	removed []string
}

func (f *fakeStore) Save(ctx context.Context, folder, ext string, r io.Reader) (*storage.SavedFile, error) {
	f.saved++
	key := folder + "/receipt" + ext
	return &storage.SavedFile{Key: key, URL: "http://localhost:5000/uploads/" + key, Size: 1}, nil
}

func (f *fakeStore) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

type orderFixture struct {
	svc     Service
	repo    *fakeOrderRepo
	catalog *fakeCatalog
	store   *fakeStore

	admin     member.Caller
	moderator member.Caller
	buyer     member.Caller

	tshirtID uuid.UUID
	hoodieID uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		repo:      &fakeOrderRepo{orders: make(map[uuid.UUID]*Order)},
		catalog:   &fakeCatalog{items: make(map[uuid.UUID]*merchandise.Item)},
		store:     &fakeStore{},
		admin:     member.Caller{ID: uuid.New(), Role: member.RoleAdmin},
		moderator: member.Caller{ID: uuid.New(), Role: member.RoleModerator},
		buyer:     member.Caller{ID: uuid.New(), Role: member.RoleMember},
	}

	f.tshirtID = uuid.New()
	f.catalog.items[f.tshirtID] = &merchandise.Item{ID: f.tshirtID, Name: "Choir T-Shirt", Price: 1500, Stock: 10}
	f.hoodieID = uuid.New()
	f.catalog.items[f.hoodieID] = &merchandise.Item{ID: f.hoodieID, Name: "Choir Hoodie", Price: 4500, Stock: 2}

	f.svc = NewService(f.repo, f.catalog, f.store, logger.NewLogger())
	return f
}

func receipt() CreateInput {
	return CreateInput{Receipt: bytes.NewBufferString("receipt bytes"), ReceiptExt: ".pdf"}
}

func TestCreateOrderTotals(t *testing.T) {
	f := newOrderFixture(t)

	input := receipt()
	input.Items = []ItemInput{
		{MerchandiseID: f.tshirtID, Size: "M", Quantity: 2},
		{MerchandiseID: f.hoodieID, Size: "L", Quantity: 1},
	}

	o, err := f.svc.CreateOrder(context.Background(), f.buyer, input)
	require.NoError(t, err)

	// 2 x 1500 + 1 x 4500
	assert.Equal(t, 7500.0, o.TotalAmount)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, f.buyer.ID, o.MemberID)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Choir T-Shirt", o.Items[0].Name)
	assert.NotEmpty(t, o.ReceiptURL)

	// Stock is reserved at creation time
	assert.Equal(t, 8, f.catalog.items[f.tshirtID].Stock)
	assert.Equal(t, 1, f.catalog.items[f.hoodieID].Stock)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, f.buyer, receipt())
	assert.ErrorIs(t, err, ErrInvalidInput)

	input := CreateInput{Items: []ItemInput{{MerchandiseID: f.tshirtID, Quantity: 1}}}
	_, err = f.svc.CreateOrder(ctx, f.buyer, input)
	assert.ErrorIs(t, err, ErrMissingReceipt)

	input = receipt()
	input.Items = []ItemInput{{MerchandiseID: uuid.New(), Quantity: 1}}
	_, err = f.svc.CreateOrder(ctx, f.buyer, input)
	assert.ErrorIs(t, err, merchandise.ErrItemNotFound)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)

	input := receipt()
	input.Items = []ItemInput{
		{MerchandiseID: f.tshirtID, Quantity: 1},
		{MerchandiseID: f.hoodieID, Quantity: 5},
	}

	_, err := f.svc.CreateOrder(context.Background(), f.buyer, input)
	assert.ErrorIs(t, err, merchandise.ErrInsufficientStock)
	// The t-shirt reservation made before the failure is rolled back
	assert.Equal(t, 10, f.catalog.items[f.tshirtID].Stock)
	assert.Equal(t, 2, f.catalog.items[f.hoodieID].Stock)
}

func TestConfirmAndDeclineOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	input := receipt()
	input.Items = []ItemInput{{MerchandiseID: f.tshirtID, Quantity: 2}}
	o, err := f.svc.CreateOrder(ctx, f.buyer, input)
	require.NoError(t, err)

	_, err = f.svc.ConfirmOrder(ctx, f.buyer, o.ID)
	assert.ErrorIs(t, err, member.ErrForbidden)

	confirmed, err := f.svc.ConfirmOrder(ctx, f.moderator, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ReviewedBy)
	assert.Equal(t, f.moderator.ID, *confirmed.ReviewedBy)

	// A settled order cannot be reviewed again
	_, err = f.svc.DeclineOrder(ctx, f.moderator, o.ID, "late payment")
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestDeclineOrderRestocks(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	input := receipt()
	input.Items = []ItemInput{{MerchandiseID: f.hoodieID, Quantity: 2}}
	o, err := f.svc.CreateOrder(ctx, f.buyer, input)
	require.NoError(t, err)
	assert.Equal(t, 0, f.catalog.items[f.hoodieID].Stock)

	_, err = f.svc.DeclineOrder(ctx, f.moderator, o.ID, "")
	assert.ErrorIs(t, err, ErrMissingReason)

	declined, err := f.svc.DeclineOrder(ctx, f.moderator, o.ID, "receipt unreadable")
	require.NoError(t, err)
	assert.Equal(t, StatusDeclined, declined.Status)
	assert.Equal(t, "receipt unreadable", declined.DeclineReason)
	assert.Equal(t, 2, f.catalog.items[f.hoodieID].Stock)
}

func TestGetOrderVisibility(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	input := receipt()
	input.Items = []ItemInput{{MerchandiseID: f.tshirtID, Quantity: 1}}
	o, err := f.svc.CreateOrder(ctx, f.buyer, input)
	require.NoError(t, err)

	_, err = f.svc.GetOrder(ctx, f.buyer, o.ID)
	assert.NoError(t, err)

	stranger := member.Caller{ID: uuid.New(), Role: member.RoleMember}
	_, err = f.svc.GetOrder(ctx, stranger, o.ID)
	assert.ErrorIs(t, err, member.ErrForbidden)

	_, err = f.svc.GetOrder(ctx, f.admin, o.ID)
	assert.NoError(t, err)
}

func TestDeleteOrderAdminOnly(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	input := receipt()
	input.Items = []ItemInput{{MerchandiseID: f.tshirtID, Quantity: 1}}
	o, err := f.svc.CreateOrder(ctx, f.buyer, input)
	require.NoError(t, err)

	err = f.svc.DeleteOrder(ctx, f.moderator, o.ID)
	assert.ErrorIs(t, err, member.ErrForbidden)

	err = f.svc.DeleteOrder(ctx, f.admin, o.ID)
	require.NoError(t, err)
	assert.Contains(t, f.store.removed, o.ReceiptKey)
}

func TestBuildStats(t *testing.T) {
	rows := []statsRow{
		{Status: StatusConfirmed, Count: 4, Sum: 30000},
		{Status: StatusPending, Count: 2, Sum: 9000},
		{Status: StatusDeclined, Count: 1, Sum: 4500},
	}

	stats := buildStats(rows)

	// Pending and declined orders contribute no revenue
	assert.Equal(t, 30000.0, stats.TotalRevenue)
	assert.Equal(t, int64(7), stats.OrderCount)
	assert.Equal(t, int64(2), stats.CountByStatus[StatusPending])
}
