package gesture

import "time"

// StabilizerConfig holds the tunable constants of the temporal
// stabilizer. Earlier revisions of this logic shipped with a window of
// 3, agreement of 2 and a 300ms cooldown; the current defaults are the
// steadier variant.
type StabilizerConfig struct {
	// Window is the capacity of the rolling label buffer.
	Window int

	// MinAgreement is how many buffer entries the most frequent label
	// needs before it becomes the emission candidate.
	MinAgreement int

	// Cooldown is the minimum time between two emitted events.
	Cooldown time.Duration
}

// DefaultStabilizerConfig returns the reference stabilizer tuning.
func DefaultStabilizerConfig() StabilizerConfig {
	return StabilizerConfig{
		Window:       5,
		MinAgreement: 3,
		Cooldown:     800 * time.Millisecond,
	}
}

// Stabilizer converts a noisy per-frame label stream into rate-limited,
// majority-confirmed candidates. It holds the only cross-frame state of
// the engine: a bounded buffer of recent labels and the last emission
// time. One stabilizer serves exactly one in-order frame feed; it is
// not safe for concurrent use.
type Stabilizer struct {
	config   StabilizerConfig
	buffer   []Label
	lastEmit time.Time
}

// NewStabilizer creates a Stabilizer with the given configuration.
// Non-positive fields fall back to the defaults.
func NewStabilizer(config StabilizerConfig) *Stabilizer {
	defaults := DefaultStabilizerConfig()
	if config.Window <= 0 {
		config.Window = defaults.Window
	}
	if config.MinAgreement <= 0 || config.MinAgreement > config.Window {
		config.MinAgreement = defaults.MinAgreement
		if config.MinAgreement > config.Window {
			config.MinAgreement = config.Window
		}
	}
	if config.Cooldown <= 0 {
		config.Cooldown = defaults.Cooldown
	}

	return &Stabilizer{
		config: config,
		buffer: make([]Label, 0, config.Window),
	}
}

// Observe pushes one concrete per-frame label and reports whether a
// gesture should be emitted now. An unknown label must not reach
// Observe; callers route it to Reset instead.
//
// The most frequent label in the buffer becomes the candidate once it
// reaches MinAgreement entries. Ties between equally frequent labels
// resolve to whichever entered the buffer first, which keeps the result
// deterministic for a fixed buffer order. A candidate is only emitted
// when the cooldown since the previous emission has elapsed.
func (s *Stabilizer) Observe(label Label, now time.Time) (Label, bool) {
	if len(s.buffer) >= s.config.Window {
		copy(s.buffer, s.buffer[1:])
		s.buffer = s.buffer[:len(s.buffer)-1]
	}
	s.buffer = append(s.buffer, label)

	candidate, ok := s.majority()
	if !ok {
		return "", false
	}

	if !s.lastEmit.IsZero() && now.Sub(s.lastEmit) <= s.config.Cooldown {
		return "", false
	}

	s.lastEmit = now
	return candidate, true
}

// Reset clears the buffer, returning the stabilizer to idle. Hand loss
// and unknown classifications both land here: a clearly different
// current pose must not inherit stale buffered labels. The last
// emission time survives so the cooldown still applies across a brief
// hand loss.
func (s *Stabilizer) Reset() {
	s.buffer = s.buffer[:0]
}

// Tracking reports whether the stabilizer holds any buffered labels.
func (s *Stabilizer) Tracking() bool {
	return len(s.buffer) > 0
}

// majority returns the most frequent buffered label if its count
// reaches the agreement threshold.
func (s *Stabilizer) majority() (Label, bool) {
	var best Label
	bestCount := 0
	for i, candidate := range s.buffer {
		count := 0
		for _, other := range s.buffer[i:] {
			if other == candidate {
				count++
			}
		}
		// Strict comparison: the earliest label wins ties.
		if count > bestCount {
			best = candidate
			bestCount = count
		}
	}

	if bestCount < s.config.MinAgreement {
		return "", false
	}
	return best, true
}
