// Package scheduler runs the daily prayer trigger loop: it polls wall-clock
// time against the fetched schedule and fires each trigger at most once per
// day.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mkarci/ezan-tools/internal/prayer"
)

// Actions are the OS side effects a trigger performs. The production
// implementation lives in internal/action; tests substitute a fake.
type Actions interface {
	Wake() error
	SetVolume(percent int) error
	OpenURL(url string) error
}

// EventType classifies loop events for the optional Notify callback.
type EventType int

const (
	EventFetched EventType = iota
	EventFetchFailed
	EventFired
	EventSkipped
	EventRollover
)

// Event describes one loop state change (used for metrics and MQTT).
type Event struct {
	Type     EventType
	Prayer   prayer.Name // set for EventFired and EventSkipped
	Schedule *prayer.Schedule
	Err      error // set for EventFetchFailed
}

// Loop owns all per-day state: the current schedule and the set of prayers
// already triggered today. It is driven by a single goroutine calling Tick;
// the mutex only guards read access from the dashboard.
type Loop struct {
	Fetch   func(ctx context.Context, date time.Time) (*prayer.Schedule, error)
	Actions Actions
	URL     func(prayer.Name) string
	Volume  func() int
	Log     *log.Logger

	// Skip, when non-nil and true for a prayer, suppresses the trigger
	// actions but still marks the prayer consumed (office mode).
	Skip func(prayer.Name) bool

	// Notify, when non-nil, is called after every state change.
	Notify func(Event)

	// Now is replaceable for tests; defaults to time.Now.
	Now func() time.Time

	// Settle is how long to wait between waking and opening the URL, so
	// the display is on before the browser comes up.
	Settle time.Duration

	mu       sync.Mutex
	schedule *prayer.Schedule
	consumed map[prayer.Name]bool
}

// Run ticks immediately (so prayers already past at startup fire once on
// boot instead of being skipped), then on every poll interval until the
// context is canceled.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	l.Tick(ctx, l.now())
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			l.Tick(ctx, l.now())
		}
	}
}

func (l *Loop) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Tick advances the day state machine: rollover at midnight, fetch while no
// schedule is held, then fire every due, unconsumed trigger in prayer order.
func (l *Loop) Tick(ctx context.Context, now time.Time) {
	l.mu.Lock()
	events := l.tickLocked(ctx, now)
	l.mu.Unlock()

	// Notify outside the lock; callbacks may call Snapshot.
	if l.Notify != nil {
		for _, ev := range events {
			l.Notify(ev)
		}
	}
}

func (l *Loop) tickLocked(ctx context.Context, now time.Time) (events []Event) {
	if l.schedule != nil && !sameDay(l.schedule.Date(), now) {
		l.Log.Printf("midnight rollover: discarding schedule for %s (%d/5 triggered)",
			l.schedule.Date().Format("2006-01-02"), len(l.consumed))
		l.schedule = nil
		l.consumed = nil
		events = append(events, Event{Type: EventRollover})
	}

	if l.schedule == nil {
		sched, err := l.Fetch(ctx, now)
		if err != nil {
			// Try again next tick; at this call frequency no backoff
			// is needed.
			l.Log.Printf("WARNING: fetching prayer times: %v", err)
			return append(events, Event{Type: EventFetchFailed, Err: err})
		}
		l.schedule = sched
		l.consumed = make(map[prayer.Name]bool)
		l.Log.Printf("prayer times for %s: %s", now.Format("2006-01-02"), describe(sched))
		events = append(events, Event{Type: EventFetched, Schedule: sched})
	}

	for _, name := range prayer.Names {
		if l.consumed[name] {
			continue
		}
		if l.schedule.Time(name) > prayer.At(now) {
			break // times are non-decreasing, nothing further is due
		}
		events = append(events, l.trigger(name))
		// Fire-once: consumed even if an action failed.
		l.consumed[name] = true
	}
	return events
}

func (l *Loop) trigger(name prayer.Name) Event {
	if l.Skip != nil && l.Skip(name) {
		l.Log.Printf("office mode: skipping %s trigger", name)
		return Event{Type: EventSkipped, Prayer: name, Schedule: l.schedule}
	}
	if err := l.Actions.Wake(); err != nil {
		l.Log.Printf("ERROR: waking system for %s: %v", name, err)
	}
	if l.Settle > 0 {
		time.Sleep(l.Settle)
	}
	if err := l.Actions.SetVolume(l.Volume()); err != nil {
		l.Log.Printf("ERROR: setting volume for %s: %v", name, err)
	}
	url := l.URL(name)
	if err := l.Actions.OpenURL(url); err != nil {
		l.Log.Printf("ERROR: opening %s video %s: %v", name, url, err)
		return Event{Type: EventFired, Prayer: name, Schedule: l.schedule, Err: err}
	}
	l.Log.Printf("triggered %s at %v: %s", name, l.schedule.Time(name), url)
	return Event{Type: EventFired, Prayer: name, Schedule: l.schedule}
}

// Snapshot returns the current schedule and a copy of the consumed set for
// read-only consumers (dashboard, MQTT status).
func (l *Loop) Snapshot() (*prayer.Schedule, map[prayer.Name]bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	consumed := make(map[prayer.Name]bool, len(l.consumed))
	for name := range l.consumed {
		consumed[name] = true
	}
	return l.schedule, consumed
}

func describe(s *prayer.Schedule) string {
	var out string
	for i, name := range prayer.Names {
		if i > 0 {
			out += " "
		}
		out += string(name) + "=" + s.Time(name).String()
	}
	return out
}
