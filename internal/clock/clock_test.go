package clock

import (
	"testing"
	"time"
)

func TestMoveTimeFixed(t *testing.T) {
	c := New(Limits{MoveTime: 100 * time.Millisecond}, 0, 0)
	if c.TimeUp(0) {
		t.Error("clock should not be up immediately")
	}
	time.Sleep(150 * time.Millisecond)
	if !c.TimeUp(0) {
		t.Error("clock should be up after moveTime elapsed")
	}
}

func TestInfiniteNeverExpires(t *testing.T) {
	c := Infinite()
	if c.TimeUp(1 << 30) {
		t.Error("infinite clock should never report time up from node count alone")
	}
}

func TestNodeLimit(t *testing.T) {
	c := New(Limits{Nodes: 1000, Time: [2]time.Duration{time.Hour, time.Hour}}, 0, 0)
	if c.TimeUp(999) {
		t.Error("should not be up before reaching node limit")
	}
	if !c.TimeUp(1000) {
		t.Error("should be up once node limit reached")
	}
}

func TestSuddenDeathBudget(t *testing.T) {
	c := New(Limits{Time: [2]time.Duration{10 * time.Second, 10 * time.Second}}, 0, 0)
	if c.Optimum() <= 0 {
		t.Error("expected a positive optimum time budget")
	}
	if c.Optimum() > 10*time.Second {
		t.Error("optimum time should not exceed time left")
	}
}
