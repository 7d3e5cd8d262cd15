package gesture

import (
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func TestFingers_OpenPalm(t *testing.T) {
	frame := detector.OpenPalmFrame()

	state := Fingers(&frame)
	if state.Count() != 5 {
		t.Fatalf("open palm finger count = %d, want 5", state.Count())
	}
	for finger, up := range state {
		if !up {
			t.Errorf("finger %d should be extended in open palm", finger)
		}
	}
}

func TestFingers_Fist(t *testing.T) {
	frame := detector.FistFrame()

	state := Fingers(&frame)
	if state.Count() != 0 {
		t.Fatalf("fist finger count = %d, want 0 (state %v)", state.Count(), state)
	}
}

func TestFingers_Pointing(t *testing.T) {
	frame := detector.PointingFrame()

	state := Fingers(&frame)
	if !state[Index] {
		t.Error("index should be extended when pointing")
	}
	if state.Count() != 1 {
		t.Errorf("pointing finger count = %d, want 1 (state %v)", state.Count(), state)
	}
}

func TestFingers_PartiallyCurledIndexIsDown(t *testing.T) {
	frame := detector.PointingFrame()

	// Tip above PIP, but PIP not above MCP: a half-curled finger that a
	// tip-vs-PIP-only test would misclassify as extended.
	frame.Points[detector.IndexMCP].Y = 0.60
	frame.Points[detector.IndexPIP].Y = 0.62
	frame.Points[detector.IndexTip].Y = 0.55

	state := Fingers(&frame)
	if state[Index] {
		t.Error("partially curled index should not count as extended")
	}
}

func TestFingers_ThumbHandednessFlip(t *testing.T) {
	right := detector.ThumbsUpFrame()

	rightState := Fingers(&right)
	if !rightState[Thumb] {
		t.Fatal("right-hand thumbs up should extend the thumb")
	}

	// Mirroring x and switching handedness must keep the thumb extended.
	left := right.Mirrored()
	leftState := Fingers(left)
	if !leftState[Thumb] {
		t.Error("mirrored left-hand thumbs up should extend the thumb")
	}

	// Only flipping handedness without mirroring must not.
	wrongHand := right
	wrongHand.Handedness = detector.HandLeft
	if Fingers(&wrongHand)[Thumb] {
		t.Error("right-hand thumb geometry with left handedness should read as curled")
	}
}

func TestFingerState_Count(t *testing.T) {
	tests := []struct {
		state FingerState
		want  int
	}{
		{FingerState{}, 0},
		{FingerState{true, true, true, true, true}, 5},
		{FingerState{false, true, false, false, true}, 2},
	}

	for _, tt := range tests {
		if got := tt.state.Count(); got != tt.want {
			t.Errorf("Count(%v) = %d, want %d", tt.state, got, tt.want)
		}
	}
}
