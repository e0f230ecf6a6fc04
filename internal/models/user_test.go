package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleUser, RoleUser, true},
		{RoleUser, RoleSeller, false},
		{RoleUser, RoleAdmin, false},
		{RoleSeller, RoleUser, true},
		{RoleSeller, RoleSeller, true},
		{RoleSeller, RoleAdmin, false},
		{RoleAdmin, RoleUser, true},
		{RoleAdmin, RoleAdmin, true},
		{Role(""), RoleUser, false},
		{Role("ROOT"), RoleUser, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.AtLeast(tt.required), "%s >= %s", tt.role, tt.required)
	}
}
