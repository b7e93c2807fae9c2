package sim

// Scheduler runs one-shot callbacks against simulated time. Timers due in
// the same Advance fire in due-time order, ties broken by creation order.
type Scheduler struct {
	now    float64
	seq    uint64
	timers []*Timer
}

// Timer is a handle to a scheduled callback.
type Timer struct {
	at      float64
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// Now returns the simulated time in milliseconds.
func (s *Scheduler) Now() float64 { return s.now }

// After schedules fn to run once ms milliseconds from now.
func (s *Scheduler) After(ms float64, fn func()) *Timer {
	if ms < 0 {
		ms = 0
	}
	s.seq++
	t := &Timer{at: s.now + ms, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer. It reports whether the call prevented the callback.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Active reports whether the timer is still waiting to fire.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped && !t.fired
}

// Pending returns the number of timers still waiting.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if t.Active() {
			n++
		}
	}
	return n
}

// Advance moves time forward by ms, firing every timer that comes due.
// Callbacks may schedule new timers; those fire in the same call if due.
func (s *Scheduler) Advance(ms float64) {
	target := s.now + ms
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		if next.at > s.now {
			s.now = next.at
		}
		next.fired = true
		next.fn()
	}
	s.now = target
	s.prune()
}

func (s *Scheduler) nextDue(target float64) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if !t.Active() || t.at > target {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) prune() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if t.Active() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}

// Observers is an ordered list of per-tick callbacks. Removing an observer
// while the list runs takes effect immediately; storage is reclaimed after.
type Observers struct {
	list []*Observer
}

// Observer is a handle to a per-tick callback.
type Observer struct {
	fn      func(delta float64)
	removed bool
}

// Add appends fn to the list.
func (o *Observers) Add(fn func(delta float64)) *Observer {
	obs := &Observer{fn: fn}
	o.list = append(o.list, obs)
	return obs
}

// Remove cancels the observer. Safe to call more than once.
func (obs *Observer) Remove() {
	if obs != nil {
		obs.removed = true
	}
}

// Active reports whether the observer still runs each tick.
func (obs *Observer) Active() bool { return obs != nil && !obs.removed }

// Run invokes every active observer in registration order.
func (o *Observers) Run(delta float64) {
	n := len(o.list)
	for i := 0; i < n; i++ {
		if obs := o.list[i]; !obs.removed {
			obs.fn(delta)
		}
	}

	live := o.list[:0]
	for _, obs := range o.list {
		if !obs.removed {
			live = append(live, obs)
		}
	}
	for i := len(live); i < len(o.list); i++ {
		o.list[i] = nil
	}
	o.list = live
}

// Len returns the number of active observers.
func (o *Observers) Len() int {
	n := 0
	for _, obs := range o.list {
		if !obs.removed {
			n++
		}
	}
	return n
}
