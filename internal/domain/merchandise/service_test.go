package merchandise

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
)

type fakeRepo struct {
	items map[uuid.UUID]*Item
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]*Item)}
}

func (f *fakeRepo) Create(_ context.Context, item *Item) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]Item, error) {
	var out []Item
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindAll(_ context.Context, filter Filter) ([]Item, int64, error) {
	var out []Item
	for _, item := range f.items {
		if filter.Category != nil && item.Category != *filter.Category {
			continue
		}
		if filter.InStock && item.Stock == 0 {
			continue
		}
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(_ context.Context, item *Item) error {
	if _, ok := f.items[item.ID]; !ok {
		return ErrItemNotFound
	}
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	item, ok := f.items[id]
	if !ok {
		return ErrItemNotFound
	}
	if item.Stock+delta < 0 {
		return ErrInsufficientStock
	}
	item.Stock += delta
	return nil
}

var (
	staff  = member.Caller{ID: uuid.New(), Role: member.RoleModerator}
	singer = member.Caller{ID: uuid.New(), Role: member.RoleMember}
)

func TestCreateItem(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	t.Run("member cannot manage the catalog", func(t *testing.T) {
		_, err := svc.CreateItem(ctx, singer, CreateInput{Name: "Choir Tee", Price: 1500, Category: CategoryTShirt})
		assert.ErrorIs(t, err, member.ErrForbidden)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.CreateItem(ctx, staff, CreateInput{Price: 1500, Category: CategoryTShirt})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.CreateItem(ctx, staff, CreateInput{Name: "Tee", Price: 0, Category: CategoryTShirt})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.CreateItem(ctx, staff, CreateInput{Name: "Tee", Price: 1500, Category: Category("mug")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("sizes round-trip through the JSON column", func(t *testing.T) {
		item, err := svc.CreateItem(ctx, staff, CreateInput{
			Name:     "Choir Tee",
			Price:    1500,
			Stock:    10,
			Sizes:    []string{"S", "M", "L", "XL"},
			Category: CategoryTShirt,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"S", "M", "L", "XL"}, DecodeSizes(item))
	})

	t.Run("nil sizes decode to an empty slice", func(t *testing.T) {
		item, err := svc.CreateItem(ctx, staff, CreateInput{Name: "Wristband", Price: 300, Category: CategoryBand})
		require.NoError(t, err)
		assert.Equal(t, []string{}, DecodeSizes(item))
	})
}

func TestUpdateItem(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, staff, CreateInput{Name: "Hoodie", Price: 4500, Stock: 5, Category: CategoryHoodie})
	require.NoError(t, err)

	t.Run("partial update", func(t *testing.T) {
		price := 4800.0
		got, err := svc.UpdateItem(ctx, staff, item.ID, UpdateInput{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, 4800.0, got.Price)
		assert.Equal(t, "Hoodie", got.Name)
		assert.Equal(t, 5, got.Stock)
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		neg := -1
		_, err := svc.UpdateItem(ctx, staff, item.ID, UpdateInput{Stock: &neg})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown item", func(t *testing.T) {
		name := "X"
		_, err := svc.UpdateItem(ctx, staff, uuid.New(), UpdateInput{Name: &name})
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestDeleteItem(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, staff, CreateInput{Name: "Tote", Price: 800, Category: CategoryBand})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteItem(ctx, singer, item.ID), member.ErrForbidden)
	require.NoError(t, svc.DeleteItem(ctx, staff, item.ID))

	_, err = svc.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestAdjustStockFloor(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, staff, CreateInput{Name: "Tee", Price: 1500, Stock: 3, Category: CategoryTShirt})
	require.NoError(t, err)

	require.NoError(t, repo.AdjustStock(ctx, item.ID, -3))
	assert.ErrorIs(t, repo.AdjustStock(ctx, item.ID, -1), ErrInsufficientStock)
}
