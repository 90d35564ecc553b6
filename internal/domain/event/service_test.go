package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
)

type fakeRepo struct {
	events        map[uuid.UUID]*Event
	registrations map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events:        make(map[uuid.UUID]*Event),
		registrations: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeRepo) Create(_ context.Context, e *Event) error {
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) FindAll(_ context.Context, _ Filter) ([]Event, int64, error) {
	var out []Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(_ context.Context, e *Event) error {
	if _, ok := f.events[e.ID]; !ok {
		return ErrEventNotFound
	}
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) Register(_ context.Context, eventID, memberID uuid.UUID) error {
	regs := f.registrations[eventID]
	if regs == nil {
		regs = make(map[uuid.UUID]bool)
		f.registrations[eventID] = regs
	}
	if regs[memberID] {
		return ErrAlreadyRegistered
	}
	regs[memberID] = true
	return nil
}

func (f *fakeRepo) Unregister(_ context.Context, eventID, memberID uuid.UUID) error {
	if !f.registrations[eventID][memberID] {
		return ErrNotRegistered
	}
	delete(f.registrations[eventID], memberID)
	return nil
}

func (f *fakeRepo) Registrations(_ context.Context, eventID uuid.UUID) ([]Registration, error) {
	var out []Registration
	for memberID := range f.registrations[eventID] {
		out = append(out, Registration{EventID: eventID, MemberID: memberID})
	}
	return out, nil
}

func (f *fakeRepo) CountRegistrations(_ context.Context, eventID uuid.UUID) (int64, error) {
	return int64(len(f.registrations[eventID])), nil
}

var (
	staff  = member.Caller{ID: uuid.New(), Role: member.RoleModerator}
	singer = member.Caller{ID: uuid.New(), Role: member.RoleMember}
)

func seedEvent(t *testing.T, repo *fakeRepo, capacity int) *Event {
	t.Helper()
	e := &Event{
		ID:        uuid.New(),
		Title:     "Christmas Concert",
		EventType: TypeConcert,
		Date:      time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		Capacity:  capacity,
	}
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}

func TestCreateEvent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	t.Run("member cannot create", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, singer, CreateInput{Title: "X", Date: time.Now()})
		assert.ErrorIs(t, err, member.ErrForbidden)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, staff, CreateInput{Date: time.Now()})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, staff, CreateInput{Title: "X", Date: time.Now(), EventType: "rave"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty type defaults to other", func(t *testing.T) {
		e, err := svc.CreateEvent(ctx, staff, CreateInput{Title: "X", Date: time.Now()})
		require.NoError(t, err)
		assert.Equal(t, TypeOther, e.EventType)
		assert.Equal(t, staff.ID, e.CreatedBy)
	})
}

func TestRegisterMemberCapacity(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	e := seedEvent(t, repo, 2)

	require.NoError(t, svc.RegisterMember(ctx, member.Caller{ID: uuid.New(), Role: member.RoleMember}, e.ID))
	require.NoError(t, svc.RegisterMember(ctx, member.Caller{ID: uuid.New(), Role: member.RoleMember}, e.ID))

	err := svc.RegisterMember(ctx, member.Caller{ID: uuid.New(), Role: member.RoleMember}, e.ID)
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestRegisterMemberUnlimitedCapacity(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	e := seedEvent(t, repo, 0)
	for i := 0; i < 50; i++ {
		require.NoError(t, svc.RegisterMember(ctx, member.Caller{ID: uuid.New(), Role: member.RoleMember}, e.ID))
	}
}

func TestRegisterTwiceRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	e := seedEvent(t, repo, 0)
	require.NoError(t, svc.RegisterMember(ctx, singer, e.ID))
	assert.ErrorIs(t, svc.RegisterMember(ctx, singer, e.ID), ErrAlreadyRegistered)
}

func TestUnregister(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	e := seedEvent(t, repo, 0)

	t.Run("not registered", func(t *testing.T) {
		assert.ErrorIs(t, svc.UnregisterMember(ctx, singer, e.ID), ErrNotRegistered)
	})

	t.Run("frees a seat", func(t *testing.T) {
		require.NoError(t, svc.RegisterMember(ctx, singer, e.ID))
		require.NoError(t, svc.UnregisterMember(ctx, singer, e.ID))

		count, err := repo.CountRegistrations(ctx, e.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("unknown event", func(t *testing.T) {
		assert.ErrorIs(t, svc.UnregisterMember(ctx, singer, uuid.New()), ErrEventNotFound)
	})
}

func TestListRegistrationsStaffOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	e := seedEvent(t, repo, 0)
	require.NoError(t, svc.RegisterMember(ctx, singer, e.ID))

	_, err := svc.ListRegistrations(ctx, singer, e.ID)
	assert.ErrorIs(t, err, member.ErrForbidden)

	regs, err := svc.ListRegistrations(ctx, staff, e.ID)
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestUpdateEventPartial(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	e := seedEvent(t, repo, 100)

	newTitle := "Carols by Candlelight"
	updated, err := svc.UpdateEvent(ctx, staff, e.ID, UpdateInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Carols by Candlelight", updated.Title)
	assert.Equal(t, 100, updated.Capacity, "unset fields are untouched")

	_, err = svc.UpdateEvent(ctx, singer, e.ID, UpdateInput{Title: &newTitle})
	assert.ErrorIs(t, err, member.ErrForbidden)
}
