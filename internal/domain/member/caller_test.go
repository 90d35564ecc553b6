package member

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		allowed []Role
		wantErr bool
	}{
		{"admin allowed", RoleAdmin, []Role{RoleModerator, RoleAdmin}, false},
		{"moderator allowed", RoleModerator, []Role{RoleModerator, RoleAdmin}, false},
		{"member rejected", RoleMember, []Role{RoleModerator, RoleAdmin}, true},
		{"moderator rejected from admin-only", RoleModerator, []Role{RoleAdmin}, true},
		{"empty allowed set rejects everyone", RoleAdmin, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(Caller{ID: uuid.New(), Role: tt.role}, tt.allowed...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthorizeSelfOr(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	t.Run("acting on own record passes regardless of role", func(t *testing.T) {
		err := AuthorizeSelfOr(Caller{ID: self, Role: RoleMember}, self, RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("acting on another record needs an allowed role", func(t *testing.T) {
		err := AuthorizeSelfOr(Caller{ID: self, Role: RoleMember}, other, RoleModerator, RoleAdmin)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("staff may act on another record", func(t *testing.T) {
		err := AuthorizeSelfOr(Caller{ID: self, Role: RoleModerator}, other, RoleModerator, RoleAdmin)
		assert.NoError(t, err)
	})
}

func TestCallerIsStaff(t *testing.T) {
	assert.False(t, Caller{Role: RoleMember}.IsStaff())
	assert.True(t, Caller{Role: RoleModerator}.IsStaff())
	assert.True(t, Caller{Role: RoleAdmin}.IsStaff())
}

func TestRoleAndStatusValidity(t *testing.T) {
	for _, role := range []Role{RoleMember, RoleModerator, RoleAdmin} {
		assert.True(t, role.IsValid(), role)
	}
	assert.False(t, Role("superuser").IsValid())

	for _, status := range []Status{StatusActive, StatusInactive, StatusSuspended} {
		assert.True(t, status.IsValid(), status)
	}
	assert.False(t, Status("banned").IsValid())
}
