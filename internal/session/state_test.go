package session_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/kinohall/booking-front/internal/domain"
	"github.com/kinohall/booking-front/internal/session"
)

func TestSelectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	state := session.NewState(session.NewMemoryStore())

	sel := domain.SeanceSelection{MovieName: "Альфа", SeanceTime: "10:00", HallName: "Зал 1"}
	if err := state.SaveSelection(ctx, "sid-1", sel); err != nil {
		t.Fatal(err)
	}

	got, err := state.Selection(ctx, "sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if got != sel {
		t.Fatalf("expected %+v, got %+v", sel, got)
	}
}

func TestSelectionMissingIsPreconditionFailure(t *testing.T) {
	state := session.NewState(session.NewMemoryStore())

	_, err := state.Selection(context.Background(), "unknown")
	if !errors.Is(err, domain.ErrPreconditionNotMet) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestSaveSelectionRejectsIncomplete(t *testing.T) {
	state := session.NewState(session.NewMemoryStore())

	err := state.SaveSelection(context.Background(), "sid-1", domain.SeanceSelection{MovieName: "Альфа"})
	if err == nil {
		t.Fatal("expected validation error for incomplete selection")
	}
}

func TestSelectionIsolatedPerSession(t *testing.T) {
	ctx := context.Background()
	state := session.NewState(session.NewMemoryStore())

	sel := domain.SeanceSelection{MovieName: "Альфа", SeanceTime: "10:00", HallName: "Зал 1"}
	if err := state.SaveSelection(ctx, "sid-1", sel); err != nil {
		t.Fatal(err)
	}
	if _, err := state.Selection(ctx, "sid-2"); !errors.Is(err, domain.ErrPreconditionNotMet) {
		t.Fatalf("expected precondition error for another session, got %v", err)
	}
}

func TestHallsRoundTrip(t *testing.T) {
	ctx := context.Background()
	state := session.NewState(session.NewMemoryStore())

	halls := []domain.Hall{
		{ID: 1, Name: "Зал 1", Open: true, Config: "<div></div>", PriceStandard: 300, PriceVIP: 500},
	}
	if err := state.SaveHalls(ctx, "sid-1", halls); err != nil {
		t.Fatal(err)
	}

	got, err := state.Halls(ctx, "sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Зал 1" || got[0].PriceVIP != 500 {
		t.Fatalf("unexpected halls %+v", got)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	ctx := context.Background()
	state := session.NewState(session.NewMemoryStore())

	draft := domain.BookingDraft{
		HallConfiguration: `<div class="conf-step__row"></div>`,
		ChosenSeats:       "1/1, 3/2",
		TotalPrice:        1100,
	}
	if err := state.SaveDraft(ctx, "sid-1", draft); err != nil {
		t.Fatal(err)
	}

	got, err := state.Draft(ctx, "sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if got != draft {
		t.Fatalf("expected %+v, got %+v", draft, got)
	}
}

func TestDraftMissingIsPreconditionFailure(t *testing.T) {
	state := session.NewState(session.NewMemoryStore())

	_, err := state.Draft(context.Background(), "sid-1")
	if !errors.Is(err, domain.ErrPreconditionNotMet) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestSeatMapRoundTrip(t *testing.T) {
	ctx := context.Background()
	state := session.NewState(session.NewMemoryStore())

	if err := state.SaveSeatMap(ctx, "sid-1", "<div></div>"); err != nil {
		t.Fatal(err)
	}
	got, err := state.SeatMap(ctx, "sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "<div></div>" {
		t.Fatalf("unexpected markup %q", got)
	}
}
