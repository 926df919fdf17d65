package hallmap

import (
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"
)

// Class vocabulary of the hall configuration markup. The scheduling
// service both produces and accepts this format, so the names are fixed,
// including the historical "standart" spelling.
const (
	classRow      = "conf-step__row"
	classChair    = "conf-step__chair"
	classStandard = "conf-step__chair_standart"
	classVIP      = "conf-step__chair_vip"
	classDisabled = "conf-step__chair_disabled"
	classTaken    = "conf-step__chair_taken"
	classSelected = "conf-step__chair_selected"
)

// Parse decodes hall configuration markup into a Plan.
func Parse(markup string) (*Plan, error) {
	plan := &Plan{}
	rowOpen := false

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if len(plan.Rows) == 0 {
				return nil, errors.Newf("hallmap: no seat rows in markup (%d bytes)", len(markup))
			}
			return plan, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			classes := tokenClasses(tok)
			switch {
			case tok.Data == "div" && classes[classRow]:
				plan.Rows = append(plan.Rows, nil)
				rowOpen = true
			case tok.Data == "span" && classes[classChair]:
				if !rowOpen {
					return nil, errors.New("hallmap: chair outside of a row")
				}
				row := len(plan.Rows) - 1
				plan.Rows[row] = append(plan.Rows[row], seatFromClasses(classes))
			}
		case html.EndTagToken:
			if tok := z.Token(); tok.Data == "div" {
				rowOpen = false
			}
		}
	}
}

func tokenClasses(tok html.Token) map[string]bool {
	classes := map[string]bool{}
	for _, attr := range tok.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			classes[c] = true
		}
	}
	return classes
}

func seatFromClasses(classes map[string]bool) Seat {
	seat := Seat{
		Taken:    classes[classTaken],
		Selected: classes[classSelected],
	}
	switch {
	case classes[classVIP]:
		seat.Kind = SeatVIP
	case classes[classDisabled]:
		seat.Kind = SeatDisabled
	}
	return seat
}

// Render encodes the plan back into hall configuration markup.
func (p *Plan) Render() string {
	var b strings.Builder
	for _, row := range p.Rows {
		b.WriteString(`<div class="` + classRow + `">`)
		for _, s := range row {
			b.WriteString(`<span class="` + s.Classes() + `"></span>`)
		}
		b.WriteString("</div>")
	}
	return b.String()
}

// Classes returns the markup class list of the seat.
func (s Seat) Classes() string {
	return strings.Join(seatClasses(s), " ")
}

func seatClasses(s Seat) []string {
	classes := []string{classChair}
	switch s.Kind {
	case SeatVIP:
		classes = append(classes, classVIP)
	case SeatDisabled:
		classes = append(classes, classDisabled)
	default:
		classes = append(classes, classStandard)
	}
	if s.Taken {
		classes = append(classes, classTaken)
	}
	if s.Selected {
		classes = append(classes, classSelected)
	}
	return classes
}
