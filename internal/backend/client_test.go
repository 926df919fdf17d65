package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/kinohall/booking-front/internal/backend"
	"github.com/kinohall/booking-front/internal/domain"
	"github.com/kinohall/booking-front/internal/observability"
)

const scheduleBody = `{
	"films":   {"success": true, "result": [
		{"film_id": "1", "film_name": "Альфа", "film_description": "...", "film_duration": "96", "film_origin": "США", "film_poster": "p.png"}
	]},
	"halls":   {"success": true, "result": [
		{"hall_id": "2", "hall_name": "Зал 1", "hall_open": "1", "hall_config": "<div class=\"conf-step__row\"></div>", "hall_price_standart": "300", "hall_price_vip": "500"}
	]},
	"seances": {"success": true, "result": [
		{"seance_id": "10", "seance_hallid": "2", "seance_filmid": "1", "seance_time": "10:00", "seance_start": "600"}
	]}
}`

func TestFetchSchedule(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		gotBody = r.PostForm.Encode()
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %q", ct)
		}
		w.Write([]byte(scheduleBody))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, observability.NewLogger())
	schedule, err := c.FetchSchedule(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if gotBody != "event=update" {
		t.Errorf("expected event=update body, got %q", gotBody)
	}
	if len(schedule.Films) != 1 || len(schedule.Halls) != 1 || len(schedule.Seances) != 1 {
		t.Fatalf("unexpected collection sizes: %+v", schedule)
	}
	hall := schedule.Halls[0]
	if hall.ID != 2 || !hall.Open || hall.PriceStandard != 300 || hall.PriceVIP != 500 {
		t.Errorf("hall not decoded numerically: %+v", hall)
	}
	if schedule.Seances[0].Start != 600 {
		t.Errorf("seance start not decoded: %+v", schedule.Seances[0])
	}
}

func TestFetchScheduleRejectsMalformedNumbers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"films": {"success": true, "result": [{"film_id": "один"}]}, "halls": {"result": []}, "seances": {"result": []}}`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, observability.NewLogger())
	_, err := c.FetchSchedule(context.Background())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestFetchSeatMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("event") != "get_hallConfig" {
			t.Errorf("unexpected event %q", r.PostForm.Get("event"))
		}
		if r.PostForm.Get("timestamp") != "1710450000" || r.PostForm.Get("hallId") != "2" || r.PostForm.Get("seanceId") != "10" {
			t.Errorf("unexpected params: %v", r.PostForm)
		}
		w.Write([]byte(`"<div class=\"conf-step__row\"></div>"`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, observability.NewLogger())
	markup, err := c.FetchSeatMap(context.Background(), backend.SeatMapQuery{
		Timestamp: 1710450000,
		HallID:    2,
		SeanceID:  10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if markup != `<div class="conf-step__row"></div>` {
		t.Fatalf("unexpected markup %q", markup)
	}
}

func TestFetchSeatMapEmptyBodyMeansDefaultLayout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := backend.New(srv.URL, observability.NewLogger())
	markup, err := c.FetchSeatMap(context.Background(), backend.SeatMapQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if markup != "" {
		t.Fatalf("expected empty markup, got %q", markup)
	}
}

func TestSubmitBooking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("event") != "sale_add" {
			t.Errorf("unexpected event %q", r.PostForm.Get("event"))
		}
		if r.PostForm.Get("hallConfiguration") == "" {
			t.Error("hallConfiguration must be carried")
		}
		w.Write([]byte(`"ОК"`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL, observability.NewLogger())
	ack, err := c.SubmitBooking(context.Background(), backend.BookingRequest{
		Timestamp:         1710450000,
		HallID:            2,
		SeanceID:          10,
		HallConfiguration: `<div class="conf-step__row"></div>`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(ack) == 0 {
		t.Fatal("expected an acknowledgment")
	}
}

func TestBackendFailureIsMarked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := backend.New(srv.URL, observability.NewLogger())
	_, err := c.SubmitBooking(context.Background(), backend.BookingRequest{})
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected backend unavailable, got %v", err)
	}
}
