// Package summary renders the dual-language order summary and the voice
// script. All three artifacts come from one traversal of the order's lines,
// so they can never disagree about line count, ordering, or quantities.
package summary

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/order"
)

// Total-line labels for the traveler languages the client offers. Languages
// without an entry fall back to the English key.
func init() {
	for _, e := range []struct {
		tag language.Tag
		msg string
	}{
		{language.Japanese, "合計: %v %s"},
		{language.Korean, "합계: %v %s"},
		{language.SimplifiedChinese, "总计: %v %s"},
		{language.French, "Total : %v %s"},
		{language.German, "Gesamt: %v %s"},
		{language.Thai, "รวม: %v %s"},
		{language.Vietnamese, "Tổng cộng: %v %s"},
	} {
		_ = message.SetString(e.tag, "Total: %v %s", e.msg)
	}
}

type Generator struct {
	currency string
}

func NewGenerator(currency string) *Generator {
	if currency == "" {
		currency = "TWD"
	}
	return &Generator{currency: currency}
}

// Summarize is a pure function of the order and the traveler language:
// identical inputs always yield byte-identical strings, so resends and
// retries are idempotent.
func (g *Generator) Summarize(o *order.Order, travelerLang string) *order.DualSummary {
	if travelerLang == "" {
		travelerLang = "en"
	}
	p := message.NewPrinter(travelerTag(travelerLang))

	originLines := make([]string, 0, len(o.Lines)+1)
	travelerLines := make([]string, 0, len(o.Lines)+1)
	voiceParts := make([]string, 0, len(o.Lines))

	for _, line := range o.Lines {
		originLines = append(originLines, fmt.Sprintf(
			"%s × %d = %d",
			line.Name.Origin, line.Quantity, line.Subtotal,
		))
		travelerLines = append(travelerLines, p.Sprintf(
			"%s × %d = %v",
			line.Name.Traveler, line.Quantity, number.Decimal(line.Subtotal),
		))
		// Origin names only: playback target is the counter staff.
		voiceParts = append(voiceParts, fmt.Sprintf(
			"%s %d 份",
			line.Name.Origin, line.Quantity,
		))
	}

	originLines = append(originLines, fmt.Sprintf("總計 %d", o.TotalAmount))
	travelerLines = append(travelerLines, p.Sprintf(
		"Total: %v %s", number.Decimal(o.TotalAmount), g.currency,
	))

	return &order.DualSummary{
		OrderID:      o.ID,
		OriginText:   strings.Join(originLines, "\n"),
		TravelerText: strings.Join(travelerLines, "\n"),
		TravelerLang: travelerLang,
		VoiceScript:  "老闆你好，我要 " + strings.Join(voiceParts, "，") + "，謝謝。",
	}
}

func travelerTag(lang string) language.Tag {
	tag := language.Make(lang)
	if tag == language.Und {
		return language.English
	}
	return tag
}
