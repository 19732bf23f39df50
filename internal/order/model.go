package order

import (
	"time"

	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/menu"
)

// SizeLarge on a cart line selects price_large; any other value (including
// absent) means the small/default size.
const SizeLarge = "large"

// CartLine is one untrusted line of the traveler's submitted cart. Every
// line is validated against the session's ephemeral menu before use.
type CartLine struct {
	TempID   string `json:"temp_id"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size,omitempty"`
}

// OrderLine is one resolved line. Subtotal is always recomputed server-side.
type OrderLine struct {
	TempID    string        `json:"temp_id"`
	Name      menu.DishName `json:"name"`
	UnitPrice int           `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	Subtotal  int           `json:"subtotal"`
}

// Order is the canonical reconciled order. Lines keep cart submission
// order; TotalAmount always equals the sum of line subtotals.
type Order struct {
	ID          string      `json:"order_id"`
	SessionID   string      `json:"session_id"`
	StoreID     string      `json:"store_id"`
	Lines       []OrderLine `json:"lines"`
	TotalAmount int         `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
}

// DualSummary carries the two aligned text renderings and the voice script.
// Line i in every rendering corresponds to Order.Lines[i]; all three are
// generated from one traversal of the order, never re-fetched.
type DualSummary struct {
	OrderID      string `json:"order_id"`
	OriginText   string `json:"origin_text"`
	TravelerText string `json:"traveler_text"`
	TravelerLang string `json:"traveler_language_code"`
	VoiceScript  string `json:"voice_script"`
	AudioURL     string `json:"audio_url"`
}

// ReadyEvent is what the messaging layer receives once an order is fully
// reconciled. Delivery mechanics live entirely on the messaging side.
type ReadyEvent struct {
	OrderID      string `json:"order_id"`
	SessionID    string `json:"session_id"`
	StoreID      string `json:"store_id"`
	TotalAmount  int    `json:"total_amount"`
	OriginText   string `json:"origin_text"`
	TravelerText string `json:"traveler_text"`
	TravelerLang string `json:"traveler_language_code"`
	VoiceScript  string `json:"voice_script"`
	AudioURL     string `json:"audio_url"`
}
