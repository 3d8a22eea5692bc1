// Package clock implements the search core's time_up() contract: a small
// wall-clock that turns UCI go parameters into a soft/hard deadline and
// reports, on demand, whether the current search should stop.
package clock

import "time"

// Limits mirrors the UCI `go` command's time-control fields.
type Limits struct {
	Time      [2]time.Duration // wtime, btime
	Inc       [2]time.Duration // winc, binc
	MovesToGo int              // 0 = sudden death
	MoveTime  time.Duration    // fixed time per move, overrides the rest
	Depth     int              // 0 = no depth limit
	Nodes     uint64           // 0 = no node limit
	Infinite  bool
}

// Clock tracks one search's deadline and node budget, and answers the
// search core's time_up() predicate plus the softer SoftTimeUp() the
// iterative-deepening loop consults between depths to decide whether
// starting another one is worth it.
type Clock struct {
	start   time.Time
	optimum time.Duration
	maximum time.Duration
	nodes   uint64
}

// New builds a Clock from limits for the side to move us, at game ply ply
// (used to estimate moves-to-go in sudden-death time controls).
func New(limits Limits, us int, ply int) *Clock {
	c := &Clock{start: time.Now(), nodes: limits.Nodes}

	if limits.MoveTime > 0 {
		c.optimum = limits.MoveTime
		c.maximum = limits.MoveTime
		return c
	}
	if limits.Infinite || limits.Time[us] == 0 {
		c.optimum = time.Hour
		c.maximum = time.Hour
		return c
	}

	timeLeft := limits.Time[us]
	inc := limits.Inc[us]

	mtg := limits.MovesToGo
	if mtg == 0 {
		mtg = 50 - ply/4
		if mtg < 10 {
			mtg = 10
		}
		if mtg > 50 {
			mtg = 50
		}
	}

	base := timeLeft/time.Duration(mtg) + inc*9/10
	c.optimum = base
	if ply < 8 {
		c.optimum = base * 85 / 100
	}

	maxFromOptimum := c.optimum * 5
	maxFromRemaining := timeLeft * 8 / 10
	if maxFromOptimum < maxFromRemaining {
		c.maximum = maxFromOptimum
	} else {
		c.maximum = maxFromRemaining
	}
	if safety := timeLeft * 95 / 100; c.maximum > safety {
		c.maximum = safety
	}

	if c.optimum < 10*time.Millisecond {
		c.optimum = 10 * time.Millisecond
	}
	if c.maximum < 50*time.Millisecond {
		c.maximum = 50 * time.Millisecond
	}
	return c
}

// Infinite returns a Clock with a one-hour soft and hard limit and no node
// budget, for `go infinite`; before that hour is up, the search ends only
// on an explicit `stop` command, handled outside this package (see
// cmd/lichee-uci).
func Infinite() *Clock {
	return &Clock{start: time.Now(), optimum: time.Hour, maximum: time.Hour}
}

// Elapsed returns the time since the clock was created.
func (c *Clock) Elapsed() time.Duration { return time.Since(c.start) }

// Optimum returns the soft budget: the iterative-deepening driver should
// not start a new depth once this has elapsed.
func (c *Clock) Optimum() time.Duration { return c.optimum }

// TimeUp implements search.Clock: true once the hard deadline or node
// budget has been reached. The search core polls this from inside
// negamax/quiescence and must stop immediately when it reports true.
func (c *Clock) TimeUp(nodes uint64) bool {
	if c.nodes > 0 && nodes >= c.nodes {
		return true
	}
	return c.Elapsed() >= c.maximum
}

// SoftTimeUp implements search.Clock: true once the optimum budget has
// elapsed. IterativeDeepening checks this before starting a new depth, not
// mid-search, so a depth already underway always runs to completion or to
// the hard deadline.
func (c *Clock) SoftTimeUp() bool {
	return c.Elapsed() >= c.optimum
}
