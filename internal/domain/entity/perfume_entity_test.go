package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRating(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4, 4.0},
		{3.333333, 3.3},
		{4.666666, 4.7},
		{4.25, 4.3}, // half rounds up
		{4.24, 4.2},
		{2.95, 3.0},
		{5, 5.0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, RoundRating(c.in), 1e-9, "RoundRating(%v)", c.in)
	}
}

func TestNormalizeNotes(t *testing.T) {
	in := []string{" Bergamot ", "ROSE", "", "  ", "musk"}
	assert.Equal(t, []string{"bergamot", "rose", "musk"}, NormalizeNotes(in))
}

func TestAllNotesDeduplicates(t *testing.T) {
	p := &Perfume{
		NotesTop:    []string{"bergamot", "lemon"},
		NotesMiddle: []string{"rose", "bergamot"},
		NotesBase:   []string{"musk", "rose"},
	}
	assert.Equal(t, []string{"bergamot", "lemon", "rose", "musk"}, p.AllNotes())
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryMen))
	assert.True(t, ValidCategory(CategoryWomen))
	assert.True(t, ValidCategory(CategoryUnisex))
	assert.False(t, ValidCategory(Category("Kids")))
	assert.False(t, ValidCategory(Category("")))
}
