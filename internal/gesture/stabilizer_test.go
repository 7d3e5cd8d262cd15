package gesture

import (
	"testing"
	"time"
)

func testClock() (func() time.Time, func(time.Duration)) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestStabilizer_MajorityOfThree(t *testing.T) {
	s := NewStabilizer(StabilizerConfig{Window: 3, MinAgreement: 2, Cooldown: 300 * time.Millisecond})
	now, _ := testClock()

	// [A, B, A] must yield candidate A.
	if _, emit := s.Observe(LabelFist, now()); emit {
		t.Fatal("single observation should not emit")
	}
	if _, emit := s.Observe(LabelPeace, now()); emit {
		t.Fatal("1-1 split should not emit")
	}
	candidate, emit := s.Observe(LabelFist, now())
	if !emit {
		t.Fatal("two of three should confirm a candidate")
	}
	if candidate != LabelFist {
		t.Errorf("candidate = %q, want %q", candidate, LabelFist)
	}
}

func TestStabilizer_AllDistinctYieldsNoCandidate(t *testing.T) {
	s := NewStabilizer(StabilizerConfig{Window: 3, MinAgreement: 2, Cooldown: 300 * time.Millisecond})
	now, _ := testClock()

	for _, label := range []Label{LabelFist, LabelPeace, LabelPointing} {
		if _, emit := s.Observe(label, now()); emit {
			t.Fatalf("distinct label %q should not emit", label)
		}
	}
}

func TestStabilizer_TieBreaksToFirstEncountered(t *testing.T) {
	s := NewStabilizer(StabilizerConfig{Window: 4, MinAgreement: 2, Cooldown: time.Millisecond})
	now, advance := testClock()

	s.Observe(LabelPeace, now())
	advance(10 * time.Millisecond)

	// Buffer [peace, fist]: no majority yet. Buffer [peace, fist, peace]
	// against [peace, fist, fist] decides by order; peace entered first.
	s.Observe(LabelFist, now())
	advance(10 * time.Millisecond)

	candidate, emit := s.Observe(LabelFist, now())
	if !emit {
		t.Fatal("expected a candidate with two fists buffered")
	}
	if candidate != LabelFist {
		t.Errorf("candidate = %q, want %q", candidate, LabelFist)
	}

	advance(10 * time.Millisecond)
	candidate, emit = s.Observe(LabelPeace, now())
	if !emit {
		t.Fatal("expected a candidate with a 2-2 tie buffered")
	}
	// Buffer is [peace, fist, fist, peace]; peace was encountered first.
	if candidate != LabelPeace {
		t.Errorf("tie candidate = %q, want %q (first encountered)", candidate, LabelPeace)
	}
}

func TestStabilizer_WindowEvictsOldest(t *testing.T) {
	s := NewStabilizer(StabilizerConfig{Window: 3, MinAgreement: 3, Cooldown: time.Millisecond})
	now, advance := testClock()

	s.Observe(LabelFist, now())
	s.Observe(LabelPeace, now())
	s.Observe(LabelPeace, now())
	advance(10 * time.Millisecond)

	// Fist is evicted; buffer becomes [peace, peace, peace].
	candidate, emit := s.Observe(LabelPeace, now())
	if !emit {
		t.Fatal("expected emission after window filled with one label")
	}
	if candidate != LabelPeace {
		t.Errorf("candidate = %q, want %q", candidate, LabelPeace)
	}
}

func TestStabilizer_CooldownSuppressesRepeatEmissions(t *testing.T) {
	s := NewStabilizer(DefaultStabilizerConfig())
	now, advance := testClock()

	emissions := 0
	// 12 pointing frames at 100ms spacing: confirmation comes on the
	// third frame, and the 800ms cooldown allows exactly one more
	// emission before the sequence ends.
	for i := 0; i < 12; i++ {
		if _, emit := s.Observe(LabelPointing, now()); emit {
			emissions++
		}
		advance(100 * time.Millisecond)
	}

	if emissions != 2 {
		t.Errorf("emissions = %d, want 2 (confirmation plus one post-cooldown)", emissions)
	}
}

func TestStabilizer_CooldownSurvivesReset(t *testing.T) {
	s := NewStabilizer(StabilizerConfig{Window: 3, MinAgreement: 2, Cooldown: 800 * time.Millisecond})
	now, advance := testClock()

	s.Observe(LabelFist, now())
	advance(50 * time.Millisecond)
	if _, emit := s.Observe(LabelFist, now()); !emit {
		t.Fatal("expected initial emission")
	}

	// Brief hand loss, then the gesture returns inside the cooldown.
	s.Reset()
	advance(100 * time.Millisecond)
	s.Observe(LabelFist, now())
	advance(50 * time.Millisecond)
	if _, emit := s.Observe(LabelFist, now()); emit {
		t.Error("cooldown should still suppress emission after a reset")
	}
}

func TestStabilizer_ResetClearsBuffer(t *testing.T) {
	s := NewStabilizer(DefaultStabilizerConfig())
	now, _ := testClock()

	s.Observe(LabelFist, now())
	s.Observe(LabelFist, now())
	if !s.Tracking() {
		t.Fatal("stabilizer should be tracking after observations")
	}

	// Repeated resets are idempotent.
	s.Reset()
	s.Reset()
	s.Reset()
	if s.Tracking() {
		t.Error("stabilizer should be idle after reset")
	}
}

func TestNewStabilizer_DefaultsInvalidConfig(t *testing.T) {
	s := NewStabilizer(StabilizerConfig{})
	defaults := DefaultStabilizerConfig()

	if s.config.Window != defaults.Window {
		t.Errorf("window = %d, want %d", s.config.Window, defaults.Window)
	}
	if s.config.MinAgreement != defaults.MinAgreement {
		t.Errorf("min agreement = %d, want %d", s.config.MinAgreement, defaults.MinAgreement)
	}
	if s.config.Cooldown != defaults.Cooldown {
		t.Errorf("cooldown = %v, want %v", s.config.Cooldown, defaults.Cooldown)
	}

	// Agreement larger than the window is capped at the window.
	s = NewStabilizer(StabilizerConfig{Window: 2, MinAgreement: 9, Cooldown: time.Second})
	if s.config.MinAgreement != 2 {
		t.Errorf("capped min agreement = %d, want 2", s.config.MinAgreement)
	}
}
