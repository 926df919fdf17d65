// Package gesture recognizes the touch gestures of the seat-selection
// page. The hall diagram is dense on small screens; a double tap toggles a
// magnified view centered near the tapped point.
package gesture

import (
	"fmt"
	"math"
	"time"
)

const (
	// DoubleTapWindow is how long after a first tap a second tap still
	// counts as a double tap.
	DoubleTapWindow = 400 * time.Millisecond
	// TapRadius is the maximum per-axis distance, in pixels, between two
	// taps of one double tap.
	TapRadius = 20.0
)

// Recognizer distinguishes a double tap from two independent single taps.
type Recognizer struct {
	now   func() time.Time
	armed bool
	last  time.Time
	x, y  float64
}

// NewRecognizer builds a recognizer on the given clock; nil means
// wall-clock time.
func NewRecognizer(now func() time.Time) *Recognizer {
	if now == nil {
		now = time.Now
	}
	return &Recognizer{now: now}
}

// Tap feeds one touch at page coordinates (x, y). It reports true exactly
// when the touch completes a double tap; the recognizer then rearms, so a
// third touch starts a fresh sequence.
func (r *Recognizer) Tap(x, y float64) bool {
	now := r.now()
	if r.armed && now.Sub(r.last) < DoubleTapWindow &&
		math.Abs(x-r.x) < TapRadius && math.Abs(y-r.y) < TapRadius {
		r.armed = false
		return true
	}
	r.armed = true
	r.last = now
	r.x, r.y = x, y
	return false
}

// Zoom tracks whether the magnified view is applied.
type Zoom struct {
	active bool
}

// Toggle flips the zoom state and returns the CSS transform for the hall
// container: a 2x scale shifted by a quarter of the container's size, or
// the empty string when zoomed out.
func (z *Zoom) Toggle(width, height float64) string {
	z.active = !z.active
	if !z.active {
		return ""
	}
	return fmt.Sprintf("scale(2) translate(%gpx, %gpx)", width/4, height/4)
}

func (z *Zoom) Active() bool {
	return z.active
}
