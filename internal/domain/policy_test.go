package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scentlog/scentlog/internal/domain/entity"
)

func TestPolicyCatalogManagement(t *testing.T) {
	p := NewPolicy()
	assert.True(t, p.CanManageCatalog(entity.RoleAdmin))
	assert.False(t, p.CanManageCatalog(entity.RoleModerator))
	assert.False(t, p.CanManageCatalog(entity.RoleUser))
}

func TestPolicyModeration(t *testing.T) {
	p := NewPolicy()
	assert.True(t, p.CanModerate(entity.RoleAdmin))
	assert.True(t, p.CanModerate(entity.RoleModerator))
	assert.False(t, p.CanModerate(entity.RoleUser))
}

func TestPolicyOwnership(t *testing.T) {
	p := NewPolicy()
	assert.True(t, p.CanEditOwn("u1", "u1"))
	assert.False(t, p.CanEditOwn("u1", "u2"))
	assert.False(t, p.CanEditOwn("", ""))
}

func TestPolicyDelete(t *testing.T) {
	p := NewPolicy()
	// Owner deletes their own regardless of role.
	assert.True(t, p.CanDelete("u1", entity.RoleUser, "u1"))
	// Moderators and admins delete anyone's.
	assert.True(t, p.CanDelete("m1", entity.RoleModerator, "u1"))
	assert.True(t, p.CanDelete("a1", entity.RoleAdmin, "u1"))
	// Plain users cannot touch others' content.
	assert.False(t, p.CanDelete("u2", entity.RoleUser, "u1"))
}
