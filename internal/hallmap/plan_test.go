package hallmap_test

import (
	"strings"
	"testing"

	"github.com/kinohall/booking-front/internal/hallmap"
)

const sampleMarkup = `
<div class="conf-step__row">
	<span class="conf-step__chair conf-step__chair_standart"></span>
	<span class="conf-step__chair conf-step__chair_standart conf-step__chair_taken"></span>
	<span class="conf-step__chair conf-step__chair_vip"></span>
</div>
<div class="conf-step__row">
	<span class="conf-step__chair conf-step__chair_disabled"></span>
	<span class="conf-step__chair conf-step__chair_standart"></span>
</div>
<div class="conf-step__row">
	<span class="conf-step__chair conf-step__chair_disabled"></span>
	<span class="conf-step__chair conf-step__chair_standart"></span>
	<span class="conf-step__chair conf-step__chair_standart"></span>
</div>
`

func mustParse(t *testing.T, markup string) *hallmap.Plan {
	t.Helper()
	plan, err := hallmap.Parse(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return plan
}

func TestParse(t *testing.T) {
	plan := mustParse(t, sampleMarkup)

	if len(plan.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(plan.Rows))
	}
	if got := len(plan.Rows[0]); got != 3 {
		t.Fatalf("expected 3 seats in row 1, got %d", got)
	}
	if !plan.Rows[0][1].Taken {
		t.Errorf("seat 1/2 should be taken")
	}
	if plan.Rows[0][2].Kind != hallmap.SeatVIP {
		t.Errorf("seat 1/3 should be vip")
	}
	if plan.Rows[1][0].Kind != hallmap.SeatDisabled {
		t.Errorf("seat 2/1 should be disabled")
	}
}

func TestParseRejectsEmptyMarkup(t *testing.T) {
	if _, err := hallmap.Parse(""); err == nil {
		t.Fatal("expected error for empty markup")
	}
	if _, err := hallmap.Parse("<p>no rows here</p>"); err == nil {
		t.Fatal("expected error for markup without rows")
	}
}

func TestToggle(t *testing.T) {
	plan := mustParse(t, sampleMarkup)

	if !plan.Toggle(0, 0) {
		t.Fatal("free standard seat should toggle")
	}
	if !plan.Rows[0][0].Selected {
		t.Fatal("seat should be selected after toggle")
	}
	if !plan.Toggle(0, 0) {
		t.Fatal("selected seat should toggle back")
	}
	if plan.Rows[0][0].Selected {
		t.Fatal("double toggle should restore the original state")
	}

	if plan.Toggle(0, 1) {
		t.Error("taken seat must not toggle")
	}
	if plan.Toggle(1, 0) {
		t.Error("disabled seat must not toggle")
	}
	if plan.Toggle(5, 0) || plan.Toggle(0, 9) {
		t.Error("out-of-range toggle must be rejected")
	}
}

func TestHasSelection(t *testing.T) {
	plan := mustParse(t, sampleMarkup)
	if plan.HasSelection() {
		t.Fatal("fresh plan has no selection")
	}
	plan.Toggle(0, 2)
	if !plan.HasSelection() {
		t.Fatal("expected a selection after toggling")
	}
}

func TestTotalPrice(t *testing.T) {
	plan := mustParse(t, sampleMarkup)
	plan.Toggle(0, 0) // standard
	plan.Toggle(1, 1) // standard
	plan.Toggle(0, 2) // vip

	if got := plan.TotalPrice(300, 500); got != 1100 {
		t.Fatalf("2 standard @ 300 + 1 vip @ 500 = 1100, got %d", got)
	}

	standard, vip := plan.SelectedCounts()
	if standard != 2 || vip != 1 {
		t.Fatalf("expected 2 standard / 1 vip, got %d / %d", standard, vip)
	}
}

func TestSelectedLabelsSkipDisabled(t *testing.T) {
	plan := mustParse(t, sampleMarkup)
	plan.Toggle(0, 0) // row 1, first selectable seat
	plan.Toggle(2, 2) // row 3, second selectable seat (first is disabled)

	if got := plan.ChosenSeats(); got != "1/1, 3/2" {
		t.Fatalf("expected \"1/1, 3/2\", got %q", got)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	plan := mustParse(t, sampleMarkup)
	plan.Toggle(0, 2)

	rendered := plan.Render()
	if !strings.Contains(rendered, "conf-step__chair_selected") {
		t.Fatal("rendered markup should carry the selected marker")
	}

	again := mustParse(t, rendered)
	if !again.Rows[0][2].Selected {
		t.Fatal("selection should survive a render/parse round trip")
	}
	if again.Rows[0][1].Kind != hallmap.SeatStandard || !again.Rows[0][1].Taken {
		t.Fatal("taken standard seat should survive a round trip")
	}
	if again.Rows[1][0].Kind != hallmap.SeatDisabled {
		t.Fatal("disabled seat should survive a round trip")
	}
}
