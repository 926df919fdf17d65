package domain

import (
	"sort"
	"time"
)

// SeanceSlot is a seance placed on a concrete day.
type SeanceSlot struct {
	Seance
	StartsAtTime time.Time
	Disabled     bool
}

// HallSchedule lists one hall's seances for a film on a day.
type HallSchedule struct {
	Hall    Hall
	Seances []SeanceSlot
}

// MovieSchedule is one film with all its qualifying halls for a day.
type MovieSchedule struct {
	Film  Film
	Halls []HallSchedule
}

// BuildDaySchedule assembles the rendered schedule for one day.
// A film is included iff at least one open hall has at least one of its
// seances. Halls are ordered by name, seances by start time. A seance whose
// start is at or before now is marked disabled.
func BuildDaySchedule(s Schedule, day, now time.Time) []MovieSchedule {
	var out []MovieSchedule
	for _, film := range s.Films {
		halls := hallsForFilm(s, film.ID)
		if len(halls) == 0 {
			continue
		}
		ms := MovieSchedule{Film: film}
		for _, hall := range halls {
			hs := HallSchedule{Hall: hall}
			for _, seance := range seancesFor(s, film.ID, hall.ID) {
				startsAt := seance.StartsAt(day)
				hs.Seances = append(hs.Seances, SeanceSlot{
					Seance:       seance,
					StartsAtTime: startsAt,
					Disabled:     !startsAt.After(now),
				})
			}
			ms.Halls = append(ms.Halls, hs)
		}
		out = append(out, ms)
	}
	return out
}

func hallsForFilm(s Schedule, filmID int) []Hall {
	var halls []Hall
	for _, hall := range s.Halls {
		if !hall.Open {
			continue
		}
		for _, seance := range s.Seances {
			if seance.HallID == hall.ID && seance.FilmID == filmID {
				halls = append(halls, hall)
				break
			}
		}
	}
	sort.Slice(halls, func(i, j int) bool { return halls[i].Name < halls[j].Name })
	return halls
}

func seancesFor(s Schedule, filmID, hallID int) []Seance {
	var seances []Seance
	for _, seance := range s.Seances {
		if seance.FilmID == filmID && seance.HallID == hallID {
			seances = append(seances, seance)
		}
	}
	sort.Slice(seances, func(i, j int) bool { return seances[i].Start < seances[j].Start })
	return seances
}

// FindSeance resolves the structured selection snapshot for a picked seance.
// The snapshot carries model values, not rendered text.
func FindSeance(s Schedule, filmID, hallID, seanceID int) (SeanceSelection, Seance, bool) {
	for _, seance := range s.Seances {
		if seance.ID != seanceID || seance.HallID != hallID || seance.FilmID != filmID {
			continue
		}
		hall, ok := HallByID(s.Halls, hallID)
		if !ok {
			return SeanceSelection{}, Seance{}, false
		}
		for _, film := range s.Films {
			if film.ID == filmID {
				sel := SeanceSelection{
					MovieName:  film.Name,
					SeanceTime: seance.Time,
					HallName:   hall.Name,
				}
				return sel, seance, true
			}
		}
	}
	return SeanceSelection{}, Seance{}, false
}
