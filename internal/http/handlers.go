package http

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/kinohall/booking-front/internal/backend"
	"github.com/kinohall/booking-front/internal/config"
	"github.com/kinohall/booking-front/internal/domain"
	"github.com/kinohall/booking-front/internal/gesture"
	"github.com/kinohall/booking-front/internal/hallmap"
	"github.com/kinohall/booking-front/internal/observability"
	"github.com/kinohall/booking-front/internal/qr"
	"github.com/kinohall/booking-front/internal/session"
)

// User-facing failure messages, one per remote call, as the pages show them.
const (
	msgScheduleFailed = "Не получилось обновить расписание. Попробуйте ещё раз."
	msgSeanceMissing  = "Сеанс не найден. Выберите сеанс из расписания."
	msgHallBroken     = "Не получилось показать схему зала. Попробуйте ещё раз."
)

type Handlers struct {
	cfg     *config.Config
	backend *backend.Client
	state   *session.State
	log     observability.Logger
	now     func() time.Time

	mu    sync.Mutex
	zooms map[string]*zoomState

	submits sync.WaitGroup
}

type zoomState struct {
	mu   sync.Mutex
	rec  *gesture.Recognizer
	zoom gesture.Zoom
	// transform of the currently applied zoom, kept so page reloads
	// preserve the magnified view
	transform string
	// last access, drives eviction on the session TTL
	touched time.Time
}

func NewHandlers(cfg *config.Config, bc *backend.Client, state *session.State, log observability.Logger) *Handlers {
	return &Handlers{
		cfg:     cfg,
		backend: bc,
		state:   state,
		log:     log,
		now:     time.Now,
		zooms:   map[string]*zoomState{},
	}
}

// Schedule is the entry page: the day-picker calendar and the per-day list
// of movies, halls and seance times. The backing service always returns the
// whole dataset; the chosen day only drives filtering and the disabled
// markers.
func (h *Handlers) Schedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.now()

	chosen := domain.Midnight(now)
	if raw := r.URL.Query().Get("date"); raw != "" {
		if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
			chosen = domain.Midnight(time.Unix(ts, 0))
		}
	}

	schedule, err := h.backend.FetchSchedule(ctx)
	if err != nil {
		h.renderError(w, http.StatusBadGateway, msgScheduleFailed)
		return
	}
	if err := h.state.SaveHalls(ctx, sessionID(ctx), schedule.Halls); err != nil {
		h.fail(w, err)
		return
	}

	view := scheduleView{
		Days:   domain.CalendarDays(now, h.cfg.CalendarDays, chosen),
		Movies: buildMovieViews(schedule, chosen, now),
	}
	h.renderPage(w, http.StatusOK, scheduleTmpl, view)
}

func buildMovieViews(schedule domain.Schedule, day, now time.Time) []movieView {
	var movies []movieView
	for _, ms := range domain.BuildDaySchedule(schedule, day, now) {
		mv := movieView{Film: ms.Film}
		for _, hs := range ms.Halls {
			hv := hallScheduleView{Name: hs.Hall.Name}
			for _, slot := range hs.Seances {
				hv.Seances = append(hv.Seances, seanceView{
					Time:     slot.Time,
					Disabled: slot.Disabled,
					SelectURL: "/seances/select?" + url.Values{
						"movieId":   {strconv.Itoa(ms.Film.ID)},
						"hallId":    {strconv.Itoa(hs.Hall.ID)},
						"seanceId":  {strconv.Itoa(slot.ID)},
						"timestamp": {strconv.FormatInt(slot.StartsAtTime.Unix(), 10)},
					}.Encode(),
				})
			}
			mv.Halls = append(mv.Halls, hv)
		}
		movies = append(movies, mv)
	}
	return movies
}

// SelectSeance records the structured seance snapshot and moves the user to
// the hall page. The snapshot comes from the schedule data, never from
// rendered text.
func (h *Handlers) SelectSeance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	movieID, err1 := queryInt(r, "movieId")
	hallID, err2 := queryInt(r, "hallId")
	seanceID, err3 := queryInt(r, "seanceId")
	if err1 != nil || err2 != nil || err3 != nil {
		h.renderError(w, http.StatusBadRequest, msgSeanceMissing)
		return
	}

	schedule, err := h.backend.FetchSchedule(ctx)
	if err != nil {
		h.renderError(w, http.StatusBadGateway, msgScheduleFailed)
		return
	}
	sel, _, ok := domain.FindSeance(schedule, movieID, hallID, seanceID)
	if !ok {
		h.renderError(w, http.StatusNotFound, msgSeanceMissing)
		return
	}

	sid := sessionID(ctx)
	if err := h.state.SaveHalls(ctx, sid, schedule.Halls); err != nil {
		h.fail(w, err)
		return
	}
	if err := h.state.SaveSelection(ctx, sid, sel); err != nil {
		h.fail(w, err)
		return
	}

	http.Redirect(w, r, carry("/hall", r), http.StatusSeeOther)
}

// Hall renders the seat map for the chosen seance. The hall's default
// layout is the fallback; the authoritative snapshot with taken seats comes
// from the booking service and wins when non-empty.
func (h *Handlers) Hall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := sessionID(ctx)

	sel, err := h.state.Selection(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	hall, q, err := h.hallFromQuery(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	markup := hall.Config
	snap, err := h.backend.FetchSeatMap(ctx, q)
	if err != nil {
		h.log.WithError(err).Warn("seat map unavailable, falling back to the default layout")
	} else if snap != "" {
		markup = snap
	}

	plan, err := hallmap.Parse(markup)
	if err != nil {
		h.log.WithError(err).Error("unusable hall layout")
		h.renderError(w, http.StatusBadGateway, msgHallBroken)
		return
	}
	if err := h.state.SaveSeatMap(ctx, sid, plan.Render()); err != nil {
		h.fail(w, err)
		return
	}

	h.renderHall(w, r, sel, hall, plan)
}

// ToggleSeat flips one seat of the working snapshot and re-renders the
// page. Taken and disabled seats never reach this handler as buttons, but
// the toggle rejects them anyway.
func (h *Handlers) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := sessionID(ctx)

	sel, err := h.state.Selection(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	hall, _, err := h.hallFromQuery(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	markup, err := h.state.SeatMap(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	plan, err := hallmap.Parse(markup)
	if err != nil {
		h.fail(w, err)
		return
	}

	if row, seat, ok := parseSeatRef(r.PostFormValue("seat")); ok {
		if plan.Toggle(row, seat) {
			if err := h.state.SaveSeatMap(ctx, sid, plan.Render()); err != nil {
				h.fail(w, err)
				return
			}
		}
	}

	h.renderHall(w, r, sel, hall, plan)
}

// BookSeats freezes the selection into a draft and moves on to payment.
func (h *Handlers) BookSeats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := sessionID(ctx)

	if _, err := h.state.Selection(ctx, sid); err != nil {
		h.fail(w, err)
		return
	}
	hall, _, err := h.hallFromQuery(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	markup, err := h.state.SeatMap(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	plan, err := hallmap.Parse(markup)
	if err != nil {
		h.fail(w, err)
		return
	}
	if !plan.HasSelection() {
		// the proceed control is disabled without a selection; bounce back
		http.Redirect(w, r, carry("/hall", r), http.StatusSeeOther)
		return
	}

	draft := domain.BookingDraft{
		HallConfiguration: plan.Render(),
		ChosenSeats:       plan.ChosenSeats(),
		TotalPrice:        plan.TotalPrice(hall.PriceStandard, hall.PriceVIP),
	}
	if err := h.state.SaveDraft(ctx, sid, draft); err != nil {
		h.fail(w, err)
		return
	}

	http.Redirect(w, r, carry("/payment", r), http.StatusSeeOther)
}

// Payment shows the read-only order summary.
func (h *Handlers) Payment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := sessionID(ctx)

	sel, err := h.state.Selection(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	draft, err := h.state.Draft(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	ts, err := queryInt64(r, "timestamp")
	if err != nil {
		h.fail(w, errors.Mark(err, domain.ErrPreconditionNotMet))
		return
	}

	view := paymentView{
		Selection:  sel,
		Draft:      draft,
		Start:      sel.SeanceTime + ", " + domain.FormatDate(ts),
		ConfirmURL: carry("/payment/confirm", r),
	}
	h.renderPage(w, http.StatusOK, paymentTmpl, view)
}

// ConfirmPayment navigates to the ticket page immediately and submits the
// booking in the background. Navigation is deliberately not gated on the
// submission: failures are logged and counted, the user keeps their ticket
// view.
func (h *Handlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := sessionID(ctx)

	draft, err := h.state.Draft(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	hallID, err1 := queryInt(r, "hallId")
	seanceID, err2 := queryInt(r, "seanceId")
	ts, err3 := queryInt64(r, "timestamp")
	if err1 != nil || err2 != nil || err3 != nil {
		h.fail(w, errors.Mark(errors.New("booking identifiers missing"), domain.ErrPreconditionNotMet))
		return
	}

	req := backend.BookingRequest{
		Timestamp:         ts,
		HallID:            hallID,
		SeanceID:          seanceID,
		HallConfiguration: draft.HallConfiguration,
	}
	h.submits.Add(1)
	go func() {
		defer h.submits.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := h.backend.SubmitBooking(ctx, req); err != nil {
			observability.SubmitFailuresTotal.Inc()
			h.log.WithError(err).WithField("seanceId", req.SeanceID).Error("booking submission failed after navigation")
		}
	}()

	http.Redirect(w, r, carry("/ticket", r), http.StatusSeeOther)
}

// Ticket shows the receipt and the QR code of the booking.
func (h *Handlers) Ticket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := sessionID(ctx)

	sel, err := h.state.Selection(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	draft, err := h.state.Draft(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	ts, err := queryInt64(r, "timestamp")
	if err != nil {
		h.fail(w, errors.Mark(err, domain.ErrPreconditionNotMet))
		return
	}

	view := ticketView{
		Selection: sel,
		Seats:     draft.ChosenSeats,
		Start:     sel.SeanceTime + ", " + domain.FormatDate(ts),
		QRURL:     carry("/ticket/qr.png", r),
	}
	h.renderPage(w, http.StatusOK, ticketTmpl, view)
}

// TicketQR serves the receipt encoded as a PNG QR code.
func (h *Handlers) TicketQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := sessionID(ctx)

	sel, err := h.state.Selection(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	draft, err := h.state.Draft(ctx, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	ts, err := queryInt64(r, "timestamp")
	if err != nil {
		h.fail(w, errors.Mark(err, domain.ErrPreconditionNotMet))
		return
	}

	img, err := qr.RenderPNG(domain.ReceiptText(sel, draft.ChosenSeats, ts))
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

// HallZoom receives reported touches on the hall diagram and answers
// whether they completed a double tap, toggling the magnified view.
func (h *Handlers) HallZoom(w http.ResponseWriter, r *http.Request) {
	x, err1 := strconv.ParseFloat(r.PostFormValue("x"), 64)
	y, err2 := strconv.ParseFloat(r.PostFormValue("y"), 64)
	width, err3 := strconv.ParseFloat(r.PostFormValue("width"), 64)
	height, err4 := strconv.ParseFloat(r.PostFormValue("height"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		http.Error(w, "malformed touch", http.StatusBadRequest)
		return
	}

	zs := h.zoomState(sessionID(r.Context()))
	zs.mu.Lock()
	fired := zs.rec.Tap(x, y)
	if fired {
		zs.transform = zs.zoom.Toggle(width, height)
	}
	active := zs.zoom.Active()
	transform := zs.transform
	zs.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"doubleTap": fired,
		"zoom":      active,
		"transform": transform,
	})
}

// zoomState returns the per-session zoom state, sweeping entries idle
// for longer than the session TTL so the map tracks live sessions only.
func (h *Handlers) zoomState(sid string) *zoomState {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if ttl := h.cfg.SessionTTL; ttl > 0 {
		for id, zs := range h.zooms {
			if now.Sub(zs.touched) > ttl {
				delete(h.zooms, id)
			}
		}
	}

	zs, ok := h.zooms[sid]
	if !ok {
		zs = &zoomState{rec: gesture.NewRecognizer(h.now)}
		h.zooms[sid] = zs
	}
	zs.touched = now
	return zs
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

// Drain waits for in-flight booking submissions during shutdown.
func (h *Handlers) Drain() {
	h.submits.Wait()
}

func (h *Handlers) renderHall(w http.ResponseWriter, r *http.Request, sel domain.SeanceSelection, hall domain.Hall, plan *hallmap.Plan) {
	rows := make([][]seatView, len(plan.Rows))
	for i, row := range plan.Rows {
		for j, s := range row {
			rows[i] = append(rows[i], seatView{
				Classes:   s.Classes(),
				Row:       i,
				Seat:      j,
				Clickable: s.Kind != hallmap.SeatDisabled && !s.Taken,
			})
		}
	}

	zs := h.zoomState(sessionID(r.Context()))
	zs.mu.Lock()
	transform := zs.transform
	zs.mu.Unlock()

	view := hallView{
		Selection:     sel,
		Rows:          rows,
		PriceStandard: hall.PriceStandard,
		PriceVIP:      hall.PriceVIP,
		HasSelection:  plan.HasSelection(),
		Transform:     template.CSS(transform),
		ToggleURL:     carry("/hall/toggle", r),
		BookURL:       carry("/hall/book", r),
	}
	h.renderPage(w, http.StatusOK, hallTmpl, view)
}

func (h *Handlers) hallFromQuery(r *http.Request) (domain.Hall, backend.SeatMapQuery, error) {
	ctx := r.Context()
	hallID, err := queryInt(r, "hallId")
	if err != nil {
		return domain.Hall{}, backend.SeatMapQuery{}, errors.Mark(err, domain.ErrPreconditionNotMet)
	}
	seanceID, err := queryInt(r, "seanceId")
	if err != nil {
		return domain.Hall{}, backend.SeatMapQuery{}, errors.Mark(err, domain.ErrPreconditionNotMet)
	}
	ts, err := queryInt64(r, "timestamp")
	if err != nil {
		return domain.Hall{}, backend.SeatMapQuery{}, errors.Mark(err, domain.ErrPreconditionNotMet)
	}

	halls, err := h.state.Halls(ctx, sessionID(ctx))
	if err != nil {
		return domain.Hall{}, backend.SeatMapQuery{}, err
	}
	hall, ok := domain.HallByID(halls, hallID)
	if !ok {
		return domain.Hall{}, backend.SeatMapQuery{}, errors.Mark(
			errors.Wrapf(domain.ErrNotFound, "hall %d", hallID), domain.ErrPreconditionNotMet)
	}
	return hall, backend.SeatMapQuery{Timestamp: ts, HallID: hallID, SeanceID: seanceID}, nil
}

// fail translates expected failure modes: a page loaded out of the flow
// sequence redirects back to the schedule, everything else is an error page.
func (h *Handlers) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrPreconditionNotMet) {
		observability.PreconditionRedirects.Inc()
		h.log.WithError(err).Info("page loaded out of sequence")
		w.Header().Set("Location", "/")
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	h.log.WithError(err).Error("page failed")
	h.renderError(w, http.StatusInternalServerError, msgHallBroken)
}

func (h *Handlers) renderError(w http.ResponseWriter, code int, message string) {
	h.renderPage(w, code, errorTmpl, errorView{Message: message})
}

func (h *Handlers) renderPage(w http.ResponseWriter, code int, t *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := render(w, t, data); err != nil {
		h.log.WithError(err).Error("template rendering failed")
	}
}

// carry rebuilds a path with the seance identifiers the flow hands from
// page to page.
func carry(path string, r *http.Request) string {
	src := r.URL.Query()
	dst := url.Values{}
	for _, key := range []string{"movieId", "hallId", "seanceId", "timestamp"} {
		if v := src.Get(key); v != "" {
			dst.Set(key, v)
		}
	}
	if len(dst) == 0 {
		return path
	}
	return path + "?" + dst.Encode()
}

func queryInt(r *http.Request, key string) (int, error) {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0, errors.Wrapf(domain.ErrInvalidInput, "query %s", key)
	}
	return n, nil
}

func queryInt64(r *http.Request, key string) (int64, error) {
	n, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(domain.ErrInvalidInput, "query %s", key)
	}
	return n, nil
}

func parseSeatRef(ref string) (row, seat int, ok bool) {
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	row, err1 := strconv.Atoi(parts[0])
	seat, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return row, seat, true
}
