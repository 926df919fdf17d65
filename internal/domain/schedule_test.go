package domain_test

import (
	"testing"
	"time"

	"github.com/kinohall/booking-front/internal/domain"
)

func testSchedule() domain.Schedule {
	return domain.Schedule{
		Films: []domain.Film{
			{ID: 1, Name: "Стражи Галактики", Duration: 121},
			{ID: 2, Name: "Альфа", Duration: 96},
			{ID: 3, Name: "Без сеансов", Duration: 90},
		},
		Halls: []domain.Hall{
			{ID: 1, Name: "Зал 2", Open: true, PriceStandard: 300, PriceVIP: 500},
			{ID: 2, Name: "Зал 1", Open: true, PriceStandard: 250, PriceVIP: 350},
			{ID: 3, Name: "Закрытый зал", Open: false},
		},
		Seances: []domain.Seance{
			{ID: 10, HallID: 1, FilmID: 1, Time: "19:00", Start: 1140},
			{ID: 11, HallID: 1, FilmID: 1, Time: "10:00", Start: 600},
			{ID: 12, HallID: 2, FilmID: 1, Time: "14:00", Start: 840},
			{ID: 13, HallID: 3, FilmID: 2, Time: "12:00", Start: 720},
		},
	}
}

func TestBuildDayScheduleFiltersAndSorts(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	now := day.Add(12 * time.Hour) // noon

	movies := domain.BuildDaySchedule(testSchedule(), day, now)

	// Film 2 only plays in a closed hall, film 3 has no seances at all.
	if len(movies) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(movies))
	}
	m := movies[0]
	if m.Film.ID != 1 {
		t.Fatalf("expected film 1, got %d", m.Film.ID)
	}
	if len(m.Halls) != 2 {
		t.Fatalf("expected 2 halls, got %d", len(m.Halls))
	}
	if m.Halls[0].Hall.Name != "Зал 1" || m.Halls[1].Hall.Name != "Зал 2" {
		t.Errorf("halls not sorted by name: %q, %q", m.Halls[0].Hall.Name, m.Halls[1].Hall.Name)
	}

	seances := m.Halls[1].Seances
	if len(seances) != 2 {
		t.Fatalf("expected 2 seances in hall 1, got %d", len(seances))
	}
	if seances[0].Time != "10:00" || seances[1].Time != "19:00" {
		t.Errorf("seances not sorted by start: %q, %q", seances[0].Time, seances[1].Time)
	}
}

func TestBuildDayScheduleDisablesPastSeances(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	now := day.Add(10 * time.Hour) // exactly 10:00

	movies := domain.BuildDaySchedule(testSchedule(), day, now)
	seances := movies[0].Halls[1].Seances

	if !seances[0].Disabled {
		t.Error("a seance starting exactly now must be disabled")
	}
	if seances[1].Disabled {
		t.Error("an evening seance must stay selectable at 10:00")
	}
}

func TestFindSeance(t *testing.T) {
	sel, seance, ok := domain.FindSeance(testSchedule(), 1, 1, 11)
	if !ok {
		t.Fatal("expected to find the seance")
	}
	want := domain.SeanceSelection{MovieName: "Стражи Галактики", SeanceTime: "10:00", HallName: "Зал 2"}
	if sel != want {
		t.Fatalf("selection mismatch: %+v", sel)
	}
	if seance.Start != 600 {
		t.Fatalf("expected start 600, got %d", seance.Start)
	}

	if _, _, ok := domain.FindSeance(testSchedule(), 1, 2, 11); ok {
		t.Fatal("hall mismatch should not resolve")
	}
}

func TestSeanceStartsAt(t *testing.T) {
	day := time.Date(2024, 3, 15, 17, 45, 0, 0, time.Local)
	s := domain.Seance{Start: 600}
	want := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	if got := s.StartsAt(day); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
