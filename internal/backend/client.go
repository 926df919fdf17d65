// Package backend is the client of the remote scheduling/booking service.
// The service exposes a single POST endpoint taking form-encoded bodies of
// the shape event=<tag>&key=value&... and answering with JSON.
package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/kinohall/booking-front/internal/domain"
	"github.com/kinohall/booking-front/internal/observability"
)

const (
	eventUpdate     = "update"
	eventHallConfig = "get_hallConfig"
	eventSaleAdd    = "sale_add"
)

type Client struct {
	url        string
	httpClient *http.Client
	log        observability.Logger
	group      singleflight.Group
}

func New(url string, log observability.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// SeatMapQuery identifies the seat-map snapshot of one seance on one day.
type SeatMapQuery struct {
	Timestamp int64
	HallID    int
	SeanceID  int
}

// BookingRequest is the payload of a booking submission.
type BookingRequest struct {
	Timestamp         int64
	HallID            int
	SeanceID          int
	HallConfiguration string
}

// FetchSchedule retrieves the full films/halls/seances dataset. The service
// always returns everything; day filtering happens on our side. Concurrent
// callers share a single in-flight request.
func (c *Client) FetchSchedule(ctx context.Context) (domain.Schedule, error) {
	v, err, _ := c.group.Do(eventUpdate, func() (interface{}, error) {
		var resp scheduleResponse
		if err := c.post(ctx, eventUpdate, nil, &resp); err != nil {
			return domain.Schedule{}, err
		}
		return resp.toDomain()
	})
	if err != nil {
		return domain.Schedule{}, err
	}
	return v.(domain.Schedule), nil
}

// FetchSeatMap retrieves the authoritative seat layout for a seance, with
// already-booked seats marked taken. An empty result means the hall's
// default layout applies; callers fall back to it on error too.
func (c *Client) FetchSeatMap(ctx context.Context, q SeatMapQuery) (string, error) {
	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(q.Timestamp, 10))
	params.Set("hallId", strconv.Itoa(q.HallID))
	params.Set("seanceId", strconv.Itoa(q.SeanceID))

	var markup string
	if err := c.post(ctx, eventHallConfig, params, &markup); err != nil {
		return "", err
	}
	return markup, nil
}

// SubmitBooking reports a finalized booking to the service. There is no
// automatic retry; the caller decides what a failure means.
func (c *Client) SubmitBooking(ctx context.Context, r BookingRequest) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(r.Timestamp, 10))
	params.Set("hallId", strconv.Itoa(r.HallID))
	params.Set("seanceId", strconv.Itoa(r.SeanceID))
	params.Set("hallConfiguration", r.HallConfiguration)

	var ack json.RawMessage
	if err := c.post(ctx, eventSaleAdd, params, &ack); err != nil {
		return nil, err
	}
	return ack, nil
}

func (c *Client) post(ctx context.Context, event string, params url.Values, out interface{}) error {
	tracer := otel.Tracer("backend")
	ctx, span := tracer.Start(ctx, "backend."+event)
	defer span.End()
	span.SetAttributes(attribute.String("backend.event", event))

	body := url.Values{}
	body.Set("event", event)
	for key, vals := range params {
		for _, v := range vals {
			body.Add(key, v)
		}
	}

	start := time.Now()
	err := c.do(ctx, body.Encode(), out)
	observability.BackendRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.BackendRequestsTotal.WithLabelValues(event, "error").Inc()
		span.RecordError(err)
		c.log.WithError(err).WithField("event", event).Warn("scheduling service call failed")
		return errors.Mark(err, domain.ErrBackendUnavailable)
	}
	observability.BackendRequestsTotal.WithLabelValues(event, "ok").Inc()
	return nil
}

func (c *Client) do(ctx context.Context, body string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "transport")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if len(raw) == 0 {
		// get_hallConfig legitimately answers with an empty body when no
		// snapshot exists yet.
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
