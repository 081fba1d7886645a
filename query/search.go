// Package query derives read-only views from a store snapshot. Every function
// is pure: the same snapshot and arguments always produce the same result.
package query

import (
	"sort"
	"strings"

	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/store"
)

// SortKey orders professional search results.
type SortKey string

const (
	SortRating    SortKey = "rating"
	SortReviews   SortKey = "reviews"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)

// AllCategories disables the category filter.
const AllCategories = "all"

// SearchProfessionals filters professionals whose name, title or any skill
// contains term (case-insensitive) and who offer a service in category, then
// orders them by key. Ties, and unknown keys, keep snapshot order.
func SearchProfessionals(snap store.Snapshot, term, category string, key SortKey) []models.ProfessionalProfile {
	needle := strings.ToLower(strings.TrimSpace(term))
	category = strings.TrimSpace(category)

	out := make([]models.ProfessionalProfile, 0, len(snap.Professionals))
	for _, p := range snap.Professionals {
		if !matchesTerm(p, needle) {
			continue
		}
		if category != "" && category != AllCategories && !p.HasCategory(category) {
			continue
		}
		out = append(out, p.Clone())
	}

	var less func(a, b models.ProfessionalProfile) bool
	switch key {
	case SortRating:
		less = func(a, b models.ProfessionalProfile) bool { return a.Rating > b.Rating }
	case SortReviews:
		less = func(a, b models.ProfessionalProfile) bool { return a.ReviewCount > b.ReviewCount }
	case SortPriceLow:
		less = func(a, b models.ProfessionalProfile) bool { return a.HourlyRate < b.HourlyRate }
	case SortPriceHigh:
		less = func(a, b models.ProfessionalProfile) bool { return a.HourlyRate > b.HourlyRate }
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func matchesTerm(p models.ProfessionalProfile, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	for _, sk := range p.Skills {
		if strings.Contains(strings.ToLower(sk), needle) {
			return true
		}
	}
	return false
}

// Categories lists the distinct service categories in first-seen order.
func Categories(snap store.Snapshot) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range snap.Professionals {
		for _, s := range p.Services {
			if s.Category == "" || seen[s.Category] {
				continue
			}
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}
