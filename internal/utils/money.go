package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var krw = message.NewPrinter(language.Korean)

// FormatWon renders an amount in won with thousands separators,
// e.g. 850000 -> "850,000원".
func FormatWon(amount int64) string {
	return krw.Sprintf("%d원", amount)
}
