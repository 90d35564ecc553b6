package member

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beliver-247/sliit-choir-backend/pkg/config"
	"github.com/Beliver-247/sliit-choir-backend/pkg/logger"
	"github.com/Beliver-247/sliit-choir-backend/pkg/mail"
	"github.com/Beliver-247/sliit-choir-backend/pkg/security/auth"
)

type fakeRepo struct {
	members map[uuid.UUID]*Member
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{members: make(map[uuid.UUID]*Member)}
}

func (f *fakeRepo) Create(_ context.Context, m *Member) error {
	for _, existing := range f.members {
		if existing.StudentID == m.StudentID {
			return ErrDuplicateStudentID
		}
		if existing.Email == m.Email {
			return ErrDuplicateEmail
		}
	}
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) FindByStudentID(_ context.Context, studentID string) (*Member, error) {
	for _, m := range f.members {
		if m.StudentID == studentID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*Member, error) {
	for _, m := range f.members {
		if m.Email == email {
			cp := *m
			return &cp, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (f *fakeRepo) FindAll(_ context.Context, filter Filter) ([]Member, int64, error) {
	var out []Member
	for _, m := range f.members {
		if filter.Role != nil && m.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(_ context.Context, m *Member) error {
	if _, ok := f.members[m.ID]; !ok {
		return ErrMemberNotFound
	}
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.members[id]; !ok {
		return ErrMemberNotFound
	}
	delete(f.members, id)
	return nil
}

func newTestService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	cfg := &config.Config{}
	svc := NewService(repo, nil, mail.NewConsoleService(logger.NewLogger()), cfg, logger.NewLogger())
	return svc, repo
}

func seedMember(t *testing.T, repo *fakeRepo, role Role, status Status) *Member {
	t.Helper()
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	m := &Member{
		ID:              uuid.New(),
		FirstName:       "Amara",
		LastName:        "Silva",
		StudentID:       "IT" + uuid.NewString()[:8],
		Email:           uuid.NewString()[:8] + "@my.sliit.lk",
		PasswordHash:    hash,
		Role:            role,
		Status:          status,
		IsEmailVerified: true,
	}
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			"missing names",
			RegisterInput{StudentID: "IT22001", Email: "a@b.lk", Password: "longenough", ConfirmPassword: "longenough"},
			ErrInvalidInput,
		},
		{
			"short password",
			RegisterInput{FirstName: "A", LastName: "B", StudentID: "IT22002", Email: "a@b.lk", Password: "short", ConfirmPassword: "short"},
			ErrInvalidInput,
		},
		{
			"password mismatch",
			RegisterInput{FirstName: "A", LastName: "B", StudentID: "IT22003", Email: "a@b.lk", Password: "longenough", ConfirmPassword: "different1"},
			ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterCreatesUnverifiedMember(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	m, err := svc.Register(ctx, RegisterInput{
		FirstName:       "Amara",
		LastName:        "Silva",
		StudentID:       " IT22123456 ",
		Email:           "Amara@MY.SLIIT.LK",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	})
	require.NoError(t, err)

	assert.Equal(t, "IT22123456", m.StudentID, "student ID should be trimmed")
	assert.Equal(t, "amara@my.sliit.lk", m.Email, "email should be normalized")
	assert.Equal(t, RoleMember, m.Role)
	assert.False(t, m.IsEmailVerified)

	stored, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "longenough", stored.PasswordHash)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "longenough"))
}

func TestRegisterRejectsDuplicateStudentID(t *testing.T) {
	svc, repo := newTestService(t)
	existing := seedMember(t, repo, RoleMember, StatusActive)

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName:       "Nuwan",
		LastName:        "Perera",
		StudentID:       existing.StudentID,
		Email:           "other@my.sliit.lk",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	})
	assert.ErrorIs(t, err, ErrDuplicateStudentID)
}

func TestAuthenticate(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	m := seedMember(t, repo, RoleMember, StatusActive)

	t.Run("valid credentials", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, m.StudentID, "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, m.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, m.StudentID, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown student ID maps to invalid credentials", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "IT00000000", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unverified email rejected", func(t *testing.T) {
		unverified := seedMember(t, repo, RoleMember, StatusActive)
		unverified.IsEmailVerified = false
		require.NoError(t, repo.Update(ctx, unverified))

		_, err := svc.Authenticate(ctx, unverified.StudentID, "correct-horse")
		assert.ErrorIs(t, err, ErrEmailNotVerified)
	})

	t.Run("suspended account rejected", func(t *testing.T) {
		suspended := seedMember(t, repo, RoleMember, StatusSuspended)
		_, err := svc.Authenticate(ctx, suspended.StudentID, "correct-horse")
		assert.ErrorIs(t, err, ErrAccountNotActive)
	})
}

func TestUpdateMemberAuthorization(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	admin := seedMember(t, repo, RoleAdmin, StatusActive)
	m := seedMember(t, repo, RoleMember, StatusActive)
	other := seedMember(t, repo, RoleMember, StatusActive)

	newName := "Updated"

	t.Run("member edits own profile", func(t *testing.T) {
		got, err := svc.UpdateMember(ctx, Caller{ID: m.ID, Role: RoleMember}, m.ID, UpdateInput{FirstName: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Updated", got.FirstName)
		assert.Equal(t, m.LastName, got.LastName, "unset fields are untouched")
	})

	t.Run("member cannot edit someone else", func(t *testing.T) {
		_, err := svc.UpdateMember(ctx, Caller{ID: m.ID, Role: RoleMember}, other.ID, UpdateInput{FirstName: &newName})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("role change needs admin", func(t *testing.T) {
		mod := RoleModerator
		_, err := svc.UpdateMember(ctx, Caller{ID: m.ID, Role: RoleMember}, m.ID, UpdateInput{Role: &mod})
		assert.ErrorIs(t, err, ErrForbidden)

		got, err := svc.UpdateMember(ctx, Caller{ID: admin.ID, Role: RoleAdmin}, m.ID, UpdateInput{Role: &mod})
		require.NoError(t, err)
		assert.Equal(t, RoleModerator, got.Role)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		bad := Role("superuser")
		_, err := svc.UpdateMember(ctx, Caller{ID: admin.ID, Role: RoleAdmin}, m.ID, UpdateInput{Role: &bad})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateStatus(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mod := seedMember(t, repo, RoleModerator, StatusActive)
	m := seedMember(t, repo, RoleMember, StatusActive)

	t.Run("moderator suspends a member", func(t *testing.T) {
		got, err := svc.UpdateStatus(ctx, Caller{ID: mod.ID, Role: RoleModerator}, m.ID, StatusSuspended)
		require.NoError(t, err)
		assert.Equal(t, StatusSuspended, got.Status)
	})

	t.Run("member cannot change status", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, Caller{ID: m.ID, Role: RoleMember}, m.ID, StatusActive)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, Caller{ID: mod.ID, Role: RoleModerator}, m.ID, Status("banned"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDeleteMemberAdminOnly(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	admin := seedMember(t, repo, RoleAdmin, StatusActive)
	mod := seedMember(t, repo, RoleModerator, StatusActive)
	m := seedMember(t, repo, RoleMember, StatusActive)

	assert.ErrorIs(t, svc.DeleteMember(ctx, Caller{ID: mod.ID, Role: RoleModerator}, m.ID), ErrForbidden)
	require.NoError(t, svc.DeleteMember(ctx, Caller{ID: admin.ID, Role: RoleAdmin}, m.ID))

	_, err := repo.FindByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestGenerateOTP(t *testing.T) {
	code, err := generateOTP(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, ch := range code {
		assert.True(t, ch >= '0' && ch <= '9')
	}

	// Non-positive lengths fall back to six digits
	code, err = generateOTP(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}
