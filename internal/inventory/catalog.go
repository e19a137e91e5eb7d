package inventory

import "sort"

// Priority tiers: 1 is the most urgent, DefaultPriority is used for any item
// name the catalog does not know.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
	DefaultPriority  = 5
)

// catalog maps known item names to their urgency tier. It is never mutated
// after package initialisation.
var catalog = map[string]int{
	// Tier 1: life support and diagnostics
	"Ventilator":          PriorityCritical,
	"ICU Bed":             PriorityCritical,
	"Oxygen Cylinder":     PriorityCritical,
	"Oxygen Concentrator": PriorityCritical,
	"Defibrillator":       PriorityCritical,
	"Chemotherapy Drugs":  PriorityCritical,
	"MRI Machine":         PriorityCritical,
	"CT Scanner":          PriorityCritical,
	"X-Ray Machine":       PriorityCritical,
	"Dialysis Machine":    PriorityCritical,

	// Tier 2
	"Patient Monitor":    PriorityHigh,
	"Infusion Pump":      PriorityHigh,
	"Ultrasound Machine": PriorityHigh,
	"Insulin":            PriorityHigh,
	"Antibiotics":        PriorityHigh,
	"Surgical Kit":       PriorityHigh,
	"N95 Masks":          PriorityHigh,

	// Tier 3
	"Hospital Bed": PriorityMedium,
	"Wheelchair":   PriorityMedium,
	"Stretcher":    PriorityMedium,
	"IV Fluids":    PriorityMedium,
	"Painkillers":  PriorityMedium,
	"Syringes":     PriorityMedium,
	"Gloves":       PriorityMedium,
	"Bandages":     PriorityMedium,
	"Thermometer":  PriorityMedium,

	// Tier 4
	"Disposable Gowns": PriorityLow,
	"Pill Boxes":       PriorityLow,
	"Surgical Masks":   PriorityLow,
	"Face Shields":     PriorityLow,
	"Hand Sanitizer":   PriorityLow,
	"Cotton Rolls":     PriorityLow,
}

// ResolvePriority returns the urgency tier of itemName. Matching is exact;
// unknown names get DefaultPriority instead of an error so new item names
// never block a submission.
func ResolvePriority(itemName string) int {
	if tier, ok := catalog[itemName]; ok {
		return tier
	}
	return DefaultPriority
}

// CatalogEntry is one row of the item catalog as exposed to clients.
type CatalogEntry struct {
	ItemName string `json:"itemName"`
	Priority int    `json:"priority"`
}

// Catalog returns a copy of the catalog ordered by tier, then name.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(catalog))
	for name, tier := range catalog {
		out = append(out, CatalogEntry{ItemName: name, Priority: tier})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out
}
