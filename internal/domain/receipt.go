package domain

import (
	"fmt"
	"time"
)

// FormatDate renders a timestamp the way the payment and ticket pages show
// it alongside the seance time.
func FormatDate(ts int64) string {
	return time.Unix(ts, 0).Format("02.01.2006")
}

// ReceiptText composes the multi-line ticket receipt that ends up inside
// the QR code.
func ReceiptText(sel SeanceSelection, chosenSeats string, dayTimestamp int64) string {
	start := sel.SeanceTime + ", " + FormatDate(dayTimestamp)
	return fmt.Sprintf(
		"Фильм: %s\nРяд/Место: %s, %s\nНачало сеанса: %s\nБилет действителен строго на свой сеанс.",
		sel.MovieName, chosenSeats, sel.HallName, start,
	)
}
