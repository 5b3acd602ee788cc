package clock

import (
	"testing"
	"time"
)

func TestFakeClock_AdvanceFiresDueTimers(t *testing.T) {
	c := Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	var fired []string
	c.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "second") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "first") })

	c.Advance(50 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("No timer should fire before its deadline, got %v", fired)
	}

	c.Advance(150 * time.Millisecond)
	if len(fired) != 2 || fired[0] != "first" || fired[1] != "second" {
		t.Errorf("Expected timers in deadline order, got %v", fired)
	}
	if c.PendingTimers() != 0 {
		t.Errorf("Expected no pending timers, got %d", c.PendingTimers())
	}
}

func TestFakeClock_StopPreventsFiring(t *testing.T) {
	c := Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	fired := false
	timer := c.AfterFunc(100*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop on an armed timer should return true")
	}
	if timer.Stop() {
		t.Error("Second Stop should return false")
	}

	c.Advance(time.Second)
	if fired {
		t.Error("Stopped timer must not fire")
	}
}

func TestFakeClock_NowAdvances(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Fake(start)

	c.Advance(42 * time.Second)
	if got := c.Now(); !got.Equal(start.Add(42 * time.Second)) {
		t.Errorf("Expected now %v, got %v", start.Add(42*time.Second), got)
	}
}
