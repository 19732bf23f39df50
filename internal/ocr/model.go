package ocr

// RawDishRecord is one candidate dish as the OCR/translation engine saw it.
// Every field is nullable on purpose: the engine works from photographed
// paper menus and frequently misses prices, translations, or whole names.
// Nothing downstream consumes these records directly — they go through the
// menu normalizer exactly once.
type RawDishRecord struct {
	NameOriginal   *string `json:"name_original"`
	Name           *string `json:"name"`
	NameTranslated *string `json:"name_translated"`
	Price          Number  `json:"price"`
	PriceBig       Number  `json:"price_big"`
	Category       *string `json:"category"`
	Description    *string `json:"description"`
	Stock          Number  `json:"stock"`
}
