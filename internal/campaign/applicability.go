package campaign

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

// Product is the projection pricing needs.
type Product struct {
	ID         string
	CategoryID string
	Price      decimal.Decimal
}

func FromModel(p models.Product) Product {
	return Product{ID: p.ID, CategoryID: p.CategoryID, Price: p.Price}
}

// IsActive reports whether c is ACTIVE and now lies within
// [StartDate, EndDate], both ends inclusive.
func IsActive(c models.Campaign, now time.Time) bool {
	if c.Status != models.CampaignActive {
		return false
	}
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// FilterActive keeps the campaigns active at now, preserving order.
func FilterActive(campaigns []models.Campaign, now time.Time) []models.Campaign {
	out := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if IsActive(c, now) {
			out = append(out, c)
		}
	}
	return out
}

// AppliesTo reports whether p is in the scope of c: store-wide, listed
// directly, or listed through its category.
func AppliesTo(c models.Campaign, p Product) bool {
	if c.ApplyToAllProducts {
		return true
	}
	if slices.Contains(c.ProductIDs, p.ID) {
		return true
	}
	return p.CategoryID != "" && slices.Contains(c.CategoryIDs, p.CategoryID)
}

// Applicable returns the campaigns that apply to p in input order.
func Applicable(p Product, campaigns []models.Campaign) []models.Campaign {
	var out []models.Campaign
	for _, c := range campaigns {
		if AppliesTo(c, p) {
			out = append(out, c)
		}
	}
	return out
}

// Index answers Applicable in time proportional to the number of matches
// instead of campaigns × scope size. Build one per campaign snapshot when
// pricing many products (a cart, a checkout).
type Index struct {
	campaigns  []models.Campaign
	storeWide  []int
	byProduct  map[string][]int
	byCategory map[string][]int
}

func NewIndex(campaigns []models.Campaign) *Index {
	ix := &Index{
		campaigns:  campaigns,
		byProduct:  make(map[string][]int),
		byCategory: make(map[string][]int),
	}
	for i, c := range campaigns {
		if c.ApplyToAllProducts {
			ix.storeWide = append(ix.storeWide, i)
			continue
		}
		for _, id := range c.ProductIDs {
			ix.byProduct[id] = appendOnce(ix.byProduct[id], i)
		}
		for _, id := range c.CategoryIDs {
			ix.byCategory[id] = appendOnce(ix.byCategory[id], i)
		}
	}
	return ix
}

func appendOnce(positions []int, i int) []int {
	if n := len(positions); n > 0 && positions[n-1] == i {
		return positions
	}
	return append(positions, i)
}

// Applicable returns the same result as the package-level Applicable.
func (ix *Index) Applicable(p Product) []models.Campaign {
	var byCategory []int
	if p.CategoryID != "" {
		byCategory = ix.byCategory[p.CategoryID]
	}
	positions := mergeSorted(ix.storeWide, ix.byProduct[p.ID], byCategory)
	if len(positions) == 0 {
		return nil
	}
	out := make([]models.Campaign, len(positions))
	for i, pos := range positions {
		out[i] = ix.campaigns[pos]
	}
	return out
}

// mergeSorted merges ascending position lists, dropping duplicates.
func mergeSorted(lists ...[]int) []int {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	if total == 0 {
		return nil
	}
	merged := make([]int, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	slices.Sort(merged)
	return slices.Compact(merged)
}
