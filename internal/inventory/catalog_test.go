package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePriorityKnownItems(t *testing.T) {
	cases := map[string]int{
		"Ventilator":       1,
		"ICU Bed":          1,
		"Oxygen Cylinder":  1,
		"MRI Machine":      1,
		"Insulin":          2,
		"Patient Monitor":  2,
		"Wheelchair":       3,
		"Syringes":         3,
		"Disposable Gowns": 4,
		"Pill Boxes":       4,
		"Surgical Masks":   4,
	}
	for name, want := range cases {
		assert.Equal(t, want, ResolvePriority(name), name)
	}
}

func TestResolvePriorityUnknownDefaultsToLowest(t *testing.T) {
	for _, name := range []string{"", "Teddy Bear", "ventilator", " Ventilator", "Ventilators"} {
		assert.Equal(t, DefaultPriority, ResolvePriority(name), "%q", name)
	}
}

func TestCatalogEntriesMatchResolver(t *testing.T) {
	entries := Catalog()
	assert.Len(t, entries, len(catalog))

	for i, e := range entries {
		assert.Equal(t, ResolvePriority(e.ItemName), e.Priority)
		assert.GreaterOrEqual(t, e.Priority, PriorityCritical)
		assert.LessOrEqual(t, e.Priority, PriorityLow)
		if i > 0 {
			assert.LessOrEqual(t, entries[i-1].Priority, e.Priority)
		}
	}

	// mutating the copy must not leak into the catalog
	entries[0].Priority = 99
	assert.NotEqual(t, 99, ResolvePriority(entries[0].ItemName))
}
