package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestIsFavorite(t *testing.T) {
	u := &User{Favorites: []string{"p1", "p2"}}
	assert.True(t, u.IsFavorite("p1"))
	assert.False(t, u.IsFavorite("p3"))

	empty := &User{}
	assert.False(t, empty.IsFavorite("p1"))
}
