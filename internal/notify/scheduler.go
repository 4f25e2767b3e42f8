package notify

import (
	"context"
	"time"

	"github.com/expensenote/expensenote/internal/model"
)

// DateLayout is the calendar date format stored in LastNotificationDate.
const DateLayout = "2006-01-02"

// Scheduler raises the unread weekly report flag once per trigger day.
//
// The only persisted state is AppState.LastNotificationDate and
// AppState.HasUnreadReport. A trigger day the process never sees is skipped;
// there is no catch-up.
type Scheduler struct {
	Weekday  time.Weekday
	Location *time.Location
}

// NewScheduler returns a Scheduler that fires on Fridays in the local zone.
func NewScheduler() *Scheduler {
	return &Scheduler{Weekday: time.Friday, Location: time.Local}
}

func (sc *Scheduler) location() *time.Location {
	if sc.Location == nil {
		return time.Local
	}
	return sc.Location
}

// DateString returns the calendar date of t in the scheduler's zone.
func (sc *Scheduler) DateString(t time.Time) string {
	return t.In(sc.location()).Format(DateLayout)
}

// Due reports whether evaluating s at now would fire.
func (sc *Scheduler) Due(s model.AppState, now time.Time) bool {
	local := now.In(sc.location())
	return local.Weekday() == sc.Weekday && s.LastNotificationDate != local.Format(DateLayout)
}

// Evaluate fires when now falls on the trigger day and the scheduler has not
// fired on that date yet. Repeated calls on the same date change nothing.
func (sc *Scheduler) Evaluate(s model.AppState, now time.Time) (model.AppState, bool) {
	if !sc.Due(s, now) {
		return s, false
	}
	s.LastNotificationDate = sc.DateString(now)
	s.HasUnreadReport = true
	return s, true
}

// MarkReportRead clears the unread flag. LastNotificationDate is kept so the
// same day does not fire again.
func MarkReportRead(s model.AppState) model.AppState {
	s.HasUnreadReport = false
	return s
}

// Run calls tick immediately and then every interval until ctx is done.
func Run(ctx context.Context, interval time.Duration, tick func(now time.Time)) {
	tick(time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			tick(now)
		}
	}
}
