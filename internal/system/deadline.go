package system

import (
	"time"

	"emoji-merge/internal/physics"
)

// DeadlineMonitor applies the loss rule: some piece must stay above the
// deadline for longer than the grace period without a single clean step.
type DeadlineMonitor struct {
	deadlineY  float64
	exclusionY float64
	grace      time.Duration

	start   time.Time
	running bool
}

// NewDeadlineMonitor creates a monitor for the given deadline height.
// Pieces whose center is still above exclusionY (at the drop point) never
// count.
func NewDeadlineMonitor(deadlineY, exclusionY float64, grace time.Duration) *DeadlineMonitor {
	return &DeadlineMonitor{deadlineY: deadlineY, exclusionY: exclusionY, grace: grace}
}

// Violates reports whether b counts against the deadline.
func (d *DeadlineMonitor) Violates(b physics.Body) bool {
	if b.Static {
		return false
	}
	return b.Position.Y > d.exclusionY && b.Position.Y-b.Radius < d.deadlineY
}

// Check scans this step's pieces and reports whether the session is lost.
// The elapsed time must strictly exceed the grace period.
func (d *DeadlineMonitor) Check(bodies []physics.Body, now time.Time) bool {
	violated := false
	for _, b := range bodies {
		if d.Violates(b) {
			violated = true
			break
		}
	}
	if !violated {
		d.running = false
		return false
	}
	if !d.running {
		d.running = true
		d.start = now
		return false
	}
	return now.Sub(d.start) > d.grace
}

// Pending returns how long the current violation has lasted, if one is
// running.
func (d *DeadlineMonitor) Pending(now time.Time) (time.Duration, bool) {
	if !d.running {
		return 0, false
	}
	return now.Sub(d.start), true
}

// Grace returns the configured grace period.
func (d *DeadlineMonitor) Grace() time.Duration { return d.grace }

// DeadlineY returns the deadline height.
func (d *DeadlineMonitor) DeadlineY() float64 { return d.deadlineY }

// Reset stops any running grace timer.
func (d *DeadlineMonitor) Reset() {
	d.running = false
	d.start = time.Time{}
}
