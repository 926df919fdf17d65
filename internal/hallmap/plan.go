// Package hallmap models a hall's seat layout and the operations the
// seat-selection page performs on it: toggling seats, pricing a selection
// and labelling chosen seats.
package hallmap

import (
	"fmt"
	"strings"
)

type SeatKind int

const (
	SeatStandard SeatKind = iota
	SeatVIP
	SeatDisabled
)

// Seat is one chair in the plan. Taken seats arrive from the booking
// service and are never interactive.
type Seat struct {
	Kind     SeatKind
	Taken    bool
	Selected bool
}

func (s Seat) selectable() bool {
	return !s.Taken && s.Kind != SeatDisabled
}

// Plan is the seat layout of a hall, row-major.
type Plan struct {
	Rows [][]Seat
}

// Toggle flips the selection of the seat at the given zero-based physical
// position. Taken and disabled seats never toggle. Reports whether the
// seat changed.
func (p *Plan) Toggle(row, seat int) bool {
	if row < 0 || row >= len(p.Rows) {
		return false
	}
	if seat < 0 || seat >= len(p.Rows[row]) {
		return false
	}
	s := &p.Rows[row][seat]
	if !s.selectable() {
		return false
	}
	s.Selected = !s.Selected
	return true
}

// HasSelection reports whether at least one seat is selected. The
// proceed-to-payment control is enabled iff this holds.
func (p *Plan) HasSelection() bool {
	for _, row := range p.Rows {
		for _, s := range row {
			if s.Selected {
				return true
			}
		}
	}
	return false
}

// SelectedCounts partitions the selection into standard and VIP seats.
func (p *Plan) SelectedCounts() (standard, vip int) {
	for _, row := range p.Rows {
		for _, s := range row {
			if !s.Selected {
				continue
			}
			switch s.Kind {
			case SeatVIP:
				vip++
			case SeatStandard:
				standard++
			}
		}
	}
	return standard, vip
}

// TotalPrice prices the current selection against the two tiers.
func (p *Plan) TotalPrice(standardPrice, vipPrice int) int {
	standard, vip := p.SelectedCounts()
	return standard*standardPrice + vip*vipPrice
}

// SelectedLabels encodes selected seats as 1-indexed "row/seat" pairs in
// row-major order. Disabled seats do not consume a seat number within a
// row; taken seats do.
func (p *Plan) SelectedLabels() []string {
	var labels []string
	for i, row := range p.Rows {
		num := 0
		for _, s := range row {
			if s.Kind == SeatDisabled {
				continue
			}
			num++
			if s.Selected {
				labels = append(labels, fmt.Sprintf("%d/%d", i+1, num))
			}
		}
	}
	return labels
}

// ChosenSeats joins the selected-seat labels into the wire form.
func (p *Plan) ChosenSeats() string {
	return strings.Join(p.SelectedLabels(), ", ")
}
