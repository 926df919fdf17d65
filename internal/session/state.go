package session

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/kinohall/booking-front/internal/domain"
)

// Keys of the page-to-page contract.
const (
	keyHalls       = "halls"
	keyInfo        = "info"
	keySeatMap     = "seatMap"
	keyHallConfig  = "hallConfiguration"
	keyTotalPrice  = "totalPrice"
	keyChosenSeats = "chosenSeats"
)

// State is the typed view over a Store.
type State struct {
	store    Store
	validate *validator.Validate
}

func NewState(store Store) *State {
	return &State{store: store, validate: validator.New()}
}

func precondition(err error, key string) error {
	return errors.Mark(errors.Wrapf(err, "reading %s", key), domain.ErrPreconditionNotMet)
}

// SaveHalls caches the hall directory fetched with the schedule.
func (s *State) SaveHalls(ctx context.Context, sid string, halls []domain.Hall) error {
	data, err := json.Marshal(halls)
	if err != nil {
		return errors.Wrap(err, "encode halls")
	}
	return s.store.Set(ctx, sid, keyHalls, string(data))
}

// Halls returns the cached hall directory. Every hall a seance points at
// must be present here before the hall page can render.
func (s *State) Halls(ctx context.Context, sid string) ([]domain.Hall, error) {
	raw, err := s.store.Get(ctx, sid, keyHalls)
	if err != nil {
		return nil, precondition(err, keyHalls)
	}
	var halls []domain.Hall
	if err := json.Unmarshal([]byte(raw), &halls); err != nil {
		return nil, precondition(err, keyHalls)
	}
	if len(halls) == 0 {
		return nil, precondition(errors.New("empty hall directory"), keyHalls)
	}
	for _, h := range halls {
		if err := s.validate.Struct(h); err != nil {
			return nil, precondition(err, keyHalls)
		}
	}
	return halls, nil
}

// SaveSelection records the seance snapshot taken on the schedule page.
func (s *State) SaveSelection(ctx context.Context, sid string, sel domain.SeanceSelection) error {
	if err := s.validate.Struct(sel); err != nil {
		return errors.Wrap(err, "invalid selection")
	}
	data, err := json.Marshal(sel)
	if err != nil {
		return errors.Wrap(err, "encode selection")
	}
	return s.store.Set(ctx, sid, keyInfo, string(data))
}

// Selection returns the seance snapshot. The hall page cannot initialize
// without it.
func (s *State) Selection(ctx context.Context, sid string) (domain.SeanceSelection, error) {
	raw, err := s.store.Get(ctx, sid, keyInfo)
	if err != nil {
		return domain.SeanceSelection{}, precondition(err, keyInfo)
	}
	var sel domain.SeanceSelection
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		return domain.SeanceSelection{}, precondition(err, keyInfo)
	}
	if err := s.validate.Struct(sel); err != nil {
		return domain.SeanceSelection{}, precondition(err, keyInfo)
	}
	return sel, nil
}

// SaveSeatMap stores the working seat-map snapshot between toggles.
func (s *State) SaveSeatMap(ctx context.Context, sid, markup string) error {
	return s.store.Set(ctx, sid, keySeatMap, markup)
}

// SeatMap returns the working seat-map snapshot.
func (s *State) SeatMap(ctx context.Context, sid string) (string, error) {
	raw, err := s.store.Get(ctx, sid, keySeatMap)
	if err != nil {
		return "", precondition(err, keySeatMap)
	}
	return raw, nil
}

// SaveDraft freezes the finalized selection under the three contract keys.
func (s *State) SaveDraft(ctx context.Context, sid string, draft domain.BookingDraft) error {
	if err := s.validate.Struct(draft); err != nil {
		return errors.Wrap(err, "invalid draft")
	}
	if err := s.store.Set(ctx, sid, keyHallConfig, draft.HallConfiguration); err != nil {
		return err
	}
	if err := s.store.Set(ctx, sid, keyTotalPrice, strconv.Itoa(draft.TotalPrice)); err != nil {
		return err
	}
	return s.store.Set(ctx, sid, keyChosenSeats, draft.ChosenSeats)
}

// Draft returns the frozen booking draft for the payment and ticket pages.
func (s *State) Draft(ctx context.Context, sid string) (domain.BookingDraft, error) {
	config, err := s.store.Get(ctx, sid, keyHallConfig)
	if err != nil {
		return domain.BookingDraft{}, precondition(err, keyHallConfig)
	}
	priceRaw, err := s.store.Get(ctx, sid, keyTotalPrice)
	if err != nil {
		return domain.BookingDraft{}, precondition(err, keyTotalPrice)
	}
	price, err := strconv.Atoi(priceRaw)
	if err != nil {
		return domain.BookingDraft{}, precondition(err, keyTotalPrice)
	}
	seats, err := s.store.Get(ctx, sid, keyChosenSeats)
	if err != nil {
		return domain.BookingDraft{}, precondition(err, keyChosenSeats)
	}
	draft := domain.BookingDraft{
		HallConfiguration: config,
		ChosenSeats:       seats,
		TotalPrice:        price,
	}
	if err := s.validate.Struct(draft); err != nil {
		return domain.BookingDraft{}, precondition(err, keyChosenSeats)
	}
	return draft, nil
}
