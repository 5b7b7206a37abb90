package entity

import (
	"math"
	"strings"
	"time"
)

// Category is a perfume's catalog category.
type Category string

const (
	CategoryMen    Category = "Men"
	CategoryWomen  Category = "Women"
	CategoryUnisex Category = "Unisex"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryUnisex:
		return true
	}
	return false
}

// Perfume is a catalog entry. The Average* and TotalReviews fields are
// denormalized from the review set: they are a cache, written only by the
// rating recompute, never edited by hand.
type Perfume struct {
	ID          string
	Name        string
	Brand       string
	Designer    string
	Country     string
	Category    Category
	ReleaseYear *int
	Price       *float64
	Description string
	NotesTop    []string
	NotesMiddle []string
	NotesBase   []string
	ImageURL    string
	BuyLink     string

	BuyClickCount int

	AverageRating     float64
	AverageLongevity  float64
	AverageProjection float64
	AverageSillage    float64
	TotalReviews      int

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllNotes returns the union of top, middle and base notes with duplicates
// removed, preserving first-seen order.
func (p *Perfume) AllNotes() []string {
	seen := make(map[string]struct{}, len(p.NotesTop)+len(p.NotesMiddle)+len(p.NotesBase))
	var out []string
	for _, group := range [][]string{p.NotesTop, p.NotesMiddle, p.NotesBase} {
		for _, n := range group {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}

// NormalizeNotes lowercases and trims each note and drops empties. Applied on
// every catalog write so note matching is case-insensitive by construction.
func NormalizeNotes(notes []string) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// RoundRating rounds a rating mean half-up to one decimal place. All four
// denormalized averages and the window means in trending use this rule.
func RoundRating(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
