package domain

import "time"

// Film is one movie from the schedule catalog.
type Film struct {
	ID          int
	Name        string
	Description string
	Duration    int // minutes
	Origin      string
	Poster      string
}

// Hall is an auditorium with a default seat layout and two price tiers.
type Hall struct {
	ID            int    `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Open          bool   `json:"open"`
	Config        string `json:"config" validate:"required"`
	PriceStandard int    `json:"priceStandard" validate:"gte=0"`
	PriceVIP      int    `json:"priceVip" validate:"gte=0"`
}

// Seance is a scheduled screening of a film in a hall.
// Start is minutes from the day's midnight.
type Seance struct {
	ID     int
	HallID int
	FilmID int
	Time   string
	Start  int
}

// Schedule is the full dataset returned by the scheduling service.
type Schedule struct {
	Films   []Film
	Halls   []Hall
	Seances []Seance
}

// HallByID finds a hall in the directory.
func HallByID(halls []Hall, id int) (Hall, bool) {
	for _, h := range halls {
		if h.ID == id {
			return h, true
		}
	}
	return Hall{}, false
}

// SeanceSelection is the snapshot taken when the user picks a seance.
// Written once at selection time, display-only afterwards.
type SeanceSelection struct {
	MovieName  string `json:"movieName" validate:"required"`
	SeanceTime string `json:"seanceTime" validate:"required"`
	HallName   string `json:"hallName" validate:"required"`
}

// BookingDraft is the finalized seat selection pending submission.
type BookingDraft struct {
	HallConfiguration string `validate:"required"`
	ChosenSeats       string `validate:"required"`
	TotalPrice        int    `validate:"gte=0"`
}

// StartsAt resolves a seance's absolute start on the given day.
func (s Seance) StartsAt(day time.Time) time.Time {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(time.Duration(s.Start) * time.Minute)
}
