package ocr

import "fmt"

// BuildExtractionPrompt asks for JSON-only output so the reply can be fed
// straight into DecodeRecords.
func BuildExtractionPrompt(travelerLang string) string {
	if travelerLang == "" {
		travelerLang = "en"
	}

	return fmt.Sprintf(`You read a photographed restaurant menu and output dishes as JSON.

Rules:
- Output ONLY a JSON array, no explanation, no markdown.
- One object per dish with keys:
  name_original   (dish name exactly as printed on the menu)
  name_translated (dish name translated into "%s")
  price           (number, the small/default size price)
  price_big       (number, the large size price, omit if the menu shows one price)
  category        (section heading on the menu, omit if none)
  description     (short printed description, omit if none)
- Omit any key you cannot read. Never invent prices.
- Keep dishes in the order they appear on the menu.`, travelerLang)
}
