package booking

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
)

var ErrInvalidWindow = errs.NewKind(errs.ErrValidation, "end time must be after start time")

// TimeWindow is the half-open interval [start, end).
type TimeWindow struct {
	start time.Time
	end   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if start.IsZero() || !end.After(start) {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{start: start, end: end}, nil
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Overlaps uses the half-open convention: windows that only touch do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}
