package quotes

import (
	"github.com/framehouse-studio/booking-backend/pkg/db/models"
	"github.com/google/uuid"
)

// PricedAddon is an add-on selection with the price it had when selected.
type PricedAddon struct {
	AddonID    uuid.UUID
	Name       string
	PriceCents int64
}

// Pricing is the frozen price breakdown of a quote.
type Pricing struct {
	PackagePriceCents int64
	Addons            []PricedAddon
	TotalCents        int64
}

// PriceSelection totals the package price and the price of every selected
// add-on. Repeated add-ons are counted once per selection.
func PriceSelection(pkg models.WeddingPackage, addons []models.WeddingAddon) Pricing {
	p := Pricing{
		PackagePriceCents: pkg.PriceCents,
		Addons:            make([]PricedAddon, 0, len(addons)),
		TotalCents:        pkg.PriceCents,
	}
	for _, addon := range addons {
		p.Addons = append(p.Addons, PricedAddon{AddonID: addon.ID, Name: addon.Name, PriceCents: addon.PriceCents})
		p.TotalCents += addon.PriceCents
	}
	return p
}

// resolveSelections maps requested add-on ids onto catalog rows, keeping the
// request order and duplicates. Ids with no catalog row are returned as
// dropped.
func resolveSelections(requested []uuid.UUID, catalog []models.WeddingAddon) ([]models.WeddingAddon, []uuid.UUID) {
	byID := make(map[uuid.UUID]models.WeddingAddon, len(catalog))
	for _, addon := range catalog {
		byID[addon.ID] = addon
	}
	selected := make([]models.WeddingAddon, 0, len(requested))
	var dropped []uuid.UUID
	for _, id := range requested {
		addon, ok := byID[id]
		if !ok {
			dropped = append(dropped, id)
			continue
		}
		selected = append(selected, addon)
	}
	return selected, dropped
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
