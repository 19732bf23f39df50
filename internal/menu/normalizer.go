package menu

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/ocr"
)

// MalformedExtractionError marks one unusable raw record. It is absorbed
// inside Normalize (line dropped, menu continues) and never surfaces to
// the traveler.
type MalformedExtractionError struct {
	Index  int
	Reason string
}

func (e *MalformedExtractionError) Error() string {
	return fmt.Sprintf("malformed extraction at record %d: %s", e.Index, e.Reason)
}

// Normalize converts the engine's loosely-typed records into the canonical
// ephemeral menu. This is the single normalization boundary: every nullable
// upstream field is defaulted here exactly once.
//
// temp_id format is "temp_<session>_<i>" where i is the record's position
// in the raw input, so ids stay stable even when earlier records drop out.
func Normalize(sessionID, storeID string, raw []ocr.RawDishRecord) *EphemeralMenu {
	entries := make([]MenuEntry, 0, len(raw))

	for i, rec := range raw {
		entry, err := normalizeRecord(sessionID, i, rec)
		if err != nil {
			// One bad line never aborts the whole menu.
			log.Printf("MENU_LINE_DROPPED session=%s: %v", sessionID, err)
			continue
		}
		entries = append(entries, entry)
	}

	return NewEphemeralMenu(sessionID, storeID, entries)
}

func normalizeRecord(sessionID string, i int, rec ocr.RawDishRecord) (MenuEntry, error) {
	origin := firstNonEmpty(rec.NameOriginal, rec.Name)
	if origin == "" {
		return MenuEntry{}, &MalformedExtractionError{Index: i, Reason: "no usable name field"}
	}

	traveler := stringOr(rec.NameTranslated, origin)

	priceSmall := priceOr(rec.Price, 0)
	priceLarge := priceOr(rec.PriceBig, priceSmall)

	stock := UnlimitedStock
	if v, ok := rec.Stock.Float(); ok && v >= 0 {
		stock = int(math.Round(v))
	}

	category := stringOr(rec.Category, "")
	if category == "" {
		category = DefaultCategory
	}

	return MenuEntry{
		TempID:      fmt.Sprintf("temp_%s_%d", sessionID, i),
		Name:        DishName{Origin: origin, Traveler: traveler},
		PriceSmall:  priceSmall,
		PriceLarge:  priceLarge,
		Category:    category,
		Description: stringOr(rec.Description, ""),
		Available:   true,
		Stock:       stock,
	}, nil
}

func firstNonEmpty(candidates ...*string) string {
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if s := strings.TrimSpace(*c); s != "" {
			return s
		}
	}
	return ""
}

func stringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	if s := strings.TrimSpace(*v); s != "" {
		return s
	}
	return fallback
}

func priceOr(v ocr.Number, fallback int) int {
	f, ok := v.Float()
	if !ok {
		return fallback
	}
	p := int(math.Round(f))
	if p < 0 {
		return fallback
	}
	return p
}
