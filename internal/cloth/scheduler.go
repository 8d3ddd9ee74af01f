package cloth

import "math"

// stepEpsilon absorbs float drift when the accumulator is a hair below one
// substep after repeated subtraction.
const stepEpsilon = 1e-9

// Scheduler turns variable wall-clock deltas into a whole number of fixed
// substeps. Backlog above MaxAccumulated is dropped.
type Scheduler struct {
	MaxSubstep     float64
	MaxAccumulated float64

	accumulator float64
}

func NewScheduler(maxSubstep, maxAccumulated float64) *Scheduler {
	return &Scheduler{MaxSubstep: maxSubstep, MaxAccumulated: maxAccumulated}
}

// Advance adds delta to the accumulator and calls substep once per whole
// substep it can drain, returning the count. Non-finite or non-positive
// deltas are ignored.
func (s *Scheduler) Advance(delta float64, substep func(dt float64)) int {
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta <= 0 {
		return 0
	}

	s.accumulator = math.Min(s.accumulator+delta, s.MaxAccumulated)

	n := 0
	for s.accumulator+stepEpsilon >= s.MaxSubstep {
		s.accumulator -= s.MaxSubstep
		substep(s.MaxSubstep)
		n++
	}
	if s.accumulator < 0 {
		s.accumulator = 0
	}
	return n
}

// Accumulated is the simulated time waiting for the next call.
func (s *Scheduler) Accumulated() float64 { return s.accumulator }

// Reset drops any pending backlog.
func (s *Scheduler) Reset() { s.accumulator = 0 }
