package ocr

import (
	"strconv"
	"strings"
)

// Number is a JSON number that tolerates the sloppiness of model output:
// plain numbers, numeric strings with currency junk ("30元", "NT$120"), or
// outright garbage. Garbage decodes as absent instead of failing the whole
// array, so one bad field never costs the menu its good lines.
type Number struct {
	value float64
	valid bool
}

func NumberOf(f float64) Number {
	return Number{value: f, valid: true}
}

// Float returns the parsed value and whether one was present.
func (n Number) Float() (float64, bool) {
	return n.value, n.valid
}

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n.value = f
		n.valid = true
		return nil
	}

	// Salvage the digits from strings like "30元" or "NT$120".
	kept := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	f, err := strconv.ParseFloat(kept, 64)
	if err != nil {
		return nil
	}

	n.value = f
	n.valid = true
	return nil
}
