package menu

import "time"

// Defaults applied by the normalizer. Downstream code relies on every
// MenuEntry field being populated and never re-checks for absent data.
const (
	DefaultCategory = "uncategorized"

	// UnlimitedStock marks stock as effectively unlimited: physical stock
	// is unknowable from a photographed paper menu.
	UnlimitedStock = 9999
)

// DishName is the bilingual name pair of one dish. Origin is never empty;
// Traveler falls back to Origin when no translation was extracted.
type DishName struct {
	Origin   string `json:"origin"`
	Traveler string `json:"traveler"`
}

// MenuEntry is one canonical extracted dish. Immutable once built.
type MenuEntry struct {
	TempID      string   `json:"temp_id"`
	Name        DishName `json:"name"`
	PriceSmall  int      `json:"price_small"`
	PriceLarge  int      `json:"price_large"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Available   bool     `json:"available"`
	Stock       int      `json:"stock"`
}

// EphemeralMenu is the session-scoped menu produced by one OCR upload.
// Entries keep extraction order; that order is the canonical display and
// summary order for the whole pipeline. Never shared across sessions and
// never mutated after publication.
type EphemeralMenu struct {
	SessionID string      `json:"session_id"`
	StoreID   string      `json:"store_id"`
	CreatedAt time.Time   `json:"created_at"`
	Entries   []MenuEntry `json:"entries"`

	index map[string]int
}

func NewEphemeralMenu(sessionID, storeID string, entries []MenuEntry) *EphemeralMenu {
	m := &EphemeralMenu{
		SessionID: sessionID,
		StoreID:   storeID,
		CreatedAt: time.Now().UTC(),
		Entries:   entries,
	}
	m.buildIndex()
	return m
}

func (m *EphemeralMenu) buildIndex() {
	m.index = make(map[string]int, len(m.Entries))
	for i, e := range m.Entries {
		m.index[e.TempID] = i
	}
}

// Lookup resolves a temp_id in O(1). It is the single point of truth for
// temp_id resolution; entries are never renumbered.
func (m *EphemeralMenu) Lookup(tempID string) (MenuEntry, bool) {
	if m.index == nil {
		m.buildIndex()
	}
	i, ok := m.index[tempID]
	if !ok {
		return MenuEntry{}, false
	}
	return m.Entries[i], true
}
