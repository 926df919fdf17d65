package backend

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/kinohall/booking-front/internal/domain"
)

// The scheduling service serializes every field as a string, including ids,
// prices and minute counts. Values are parsed into numbers exactly once,
// here; nothing downstream works with display text.

type listOf[T any] struct {
	Success bool `json:"success"`
	Result  []T  `json:"result"`
}

type wireFilm struct {
	ID          string `json:"film_id"`
	Name        string `json:"film_name"`
	Description string `json:"film_description"`
	Duration    string `json:"film_duration"`
	Origin      string `json:"film_origin"`
	Poster      string `json:"film_poster"`
}

type wireHall struct {
	ID            string `json:"hall_id"`
	Name          string `json:"hall_name"`
	Open          string `json:"hall_open"`
	Config        string `json:"hall_config"`
	PriceStandard string `json:"hall_price_standart"`
	PriceVIP      string `json:"hall_price_vip"`
}

type wireSeance struct {
	ID     string `json:"seance_id"`
	HallID string `json:"seance_hallid"`
	FilmID string `json:"seance_filmid"`
	Time   string `json:"seance_time"`
	Start  string `json:"seance_start"`
}

type scheduleResponse struct {
	Films   listOf[wireFilm]   `json:"films"`
	Halls   listOf[wireHall]   `json:"halls"`
	Seances listOf[wireSeance] `json:"seances"`
}

func (r scheduleResponse) toDomain() (domain.Schedule, error) {
	var s domain.Schedule
	for _, f := range r.Films.Result {
		film, err := f.toDomain()
		if err != nil {
			return domain.Schedule{}, err
		}
		s.Films = append(s.Films, film)
	}
	for _, h := range r.Halls.Result {
		hall, err := h.toDomain()
		if err != nil {
			return domain.Schedule{}, err
		}
		s.Halls = append(s.Halls, hall)
	}
	for _, se := range r.Seances.Result {
		seance, err := se.toDomain()
		if err != nil {
			return domain.Schedule{}, err
		}
		s.Seances = append(s.Seances, seance)
	}
	return s, nil
}

func (f wireFilm) toDomain() (domain.Film, error) {
	id, err := atoi("film_id", f.ID)
	if err != nil {
		return domain.Film{}, err
	}
	duration, err := atoi("film_duration", f.Duration)
	if err != nil {
		return domain.Film{}, err
	}
	return domain.Film{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Duration:    duration,
		Origin:      f.Origin,
		Poster:      f.Poster,
	}, nil
}

func (h wireHall) toDomain() (domain.Hall, error) {
	id, err := atoi("hall_id", h.ID)
	if err != nil {
		return domain.Hall{}, err
	}
	standard, err := atoi("hall_price_standart", h.PriceStandard)
	if err != nil {
		return domain.Hall{}, err
	}
	vip, err := atoi("hall_price_vip", h.PriceVIP)
	if err != nil {
		return domain.Hall{}, err
	}
	return domain.Hall{
		ID:            id,
		Name:          h.Name,
		Open:          h.Open == "1",
		Config:        h.Config,
		PriceStandard: standard,
		PriceVIP:      vip,
	}, nil
}

func (s wireSeance) toDomain() (domain.Seance, error) {
	id, err := atoi("seance_id", s.ID)
	if err != nil {
		return domain.Seance{}, err
	}
	hallID, err := atoi("seance_hallid", s.HallID)
	if err != nil {
		return domain.Seance{}, err
	}
	filmID, err := atoi("seance_filmid", s.FilmID)
	if err != nil {
		return domain.Seance{}, err
	}
	start, err := atoi("seance_start", s.Start)
	if err != nil {
		return domain.Seance{}, err
	}
	return domain.Seance{
		ID:     id,
		HallID: hallID,
		FilmID: filmID,
		Time:   s.Time,
		Start:  start,
	}, nil
}

func atoi(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(domain.ErrInvalidInput, "field %s: %q", field, value)
	}
	return n, nil
}
