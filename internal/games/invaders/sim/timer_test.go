package sim

import (
	"reflect"
	"testing"
)

func TestSchedulerOrder(t *testing.T) {
	var s Scheduler
	var got []string
	s.After(30, func() { got = append(got, "c") })
	s.After(10, func() { got = append(got, "a") })
	s.After(10, func() { got = append(got, "b") })
	s.After(50, func() { got = append(got, "late") })

	s.Advance(40)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("fired %v, want %v", got, want)
	}
	if s.Now() != 40 {
		t.Errorf("Now = %v, want 40", s.Now())
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", s.Pending())
	}
}

func TestSchedulerStop(t *testing.T) {
	var s Scheduler
	fired := false
	tm := s.After(10, func() { fired = true })
	if !tm.Stop() {
		t.Error("first Stop should report true")
	}
	if tm.Stop() {
		t.Error("second Stop should report false")
	}
	s.Advance(20)
	if fired {
		t.Error("stopped timer fired")
	}

	var nilTimer *Timer
	if nilTimer.Stop() || nilTimer.Active() {
		t.Error("nil timer should be inert")
	}
}

func TestSchedulerRearmInsideCallback(t *testing.T) {
	var s Scheduler
	count := 0
	var rearm func()
	rearm = func() {
		count++
		s.After(10, rearm)
	}
	s.After(10, rearm)

	s.Advance(35)
	if count != 3 {
		t.Errorf("recurring timer fired %d times in 35ms, want 3", count)
	}
}

func TestSchedulerNowDuringCallback(t *testing.T) {
	var s Scheduler
	var at float64
	s.After(25, func() { at = s.Now() })
	s.Advance(100)
	if at != 25 {
		t.Errorf("Now inside callback = %v, want 25", at)
	}
}

func TestObserversRemoveDuringRun(t *testing.T) {
	var obs Observers
	var calls []int
	var second *Observer
	obs.Add(func(float64) {
		calls = append(calls, 1)
		second.Remove()
	})
	second = obs.Add(func(float64) { calls = append(calls, 2) })
	obs.Add(func(float64) { calls = append(calls, 3) })

	obs.Run(1)
	if want := []int{1, 3}; !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if obs.Len() != 2 {
		t.Errorf("Len = %d, want 2", obs.Len())
	}
}

func TestObserversAddDuringRunStartsNextTick(t *testing.T) {
	var obs Observers
	lateCalls := 0
	registered := false
	obs.Add(func(float64) {
		if !registered {
			registered = true
			obs.Add(func(float64) { lateCalls++ })
		}
	})

	obs.Run(1)
	if lateCalls != 0 {
		t.Fatal("observer added mid-run ran in the same pass")
	}
	obs.Run(1)
	if lateCalls != 1 {
		t.Errorf("late observer calls = %d, want 1", lateCalls)
	}
}
