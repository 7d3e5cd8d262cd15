// Package detector provides hand detection interfaces and the validated
// landmark frame contract consumed by the gesture engine.
package detector

import (
	"fmt"
	"math"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Landmark is a single tracked hand point in normalized image space.
// X and Y are in [0,1]; Z is relative depth with uncalibrated sign/scale.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Handedness identifies which of the person's hands was tracked,
// as reported by the upstream model.
type Handedness string

const (
	// HandLeft is the person's left hand.
	HandLeft Handedness = "Left"
	// HandRight is the person's right hand.
	HandRight Handedness = "Right"
)

// Valid reports whether the handedness is one of the two known values.
func (h Handedness) Valid() bool {
	return h == HandLeft || h == HandRight
}

// HandFrame is one validated frame of 21 hand landmarks for a single
// detected hand. Frames built through NewHandFrame satisfy the engine's
// input contract: exactly 21 finite points and a known handedness, so
// indices 0-20 are addressable without further checks.
type HandFrame struct {
	Points     [NumLandmarks]Landmark `json:"points"`
	Handedness Handedness             `json:"handedness"`
	Score      float64                `json:"score"`
}

// NewHandFrame builds a HandFrame from raw model output, rejecting
// malformed shapes before they can reach the classifier. A frame with
// other than 21 points, non-finite coordinates, or unknown handedness
// is an input-contract violation, not a classification result.
func NewHandFrame(points []Landmark, handedness Handedness, score float64) (*HandFrame, error) {
	if len(points) != NumLandmarks {
		return nil, fmt.Errorf("hand frame has %d landmarks, want %d", len(points), NumLandmarks)
	}

	frame := &HandFrame{
		Handedness: handedness,
		Score:      score,
	}
	copy(frame.Points[:], points)

	if err := frame.Validate(); err != nil {
		return nil, err
	}
	return frame, nil
}

// Validate re-checks an already-built frame against the input contract.
// It returns an error if the handedness is unknown or any coordinate is
// NaN or infinite.
func (f *HandFrame) Validate() error {
	if f == nil {
		return fmt.Errorf("nil hand frame")
	}
	if !f.Handedness.Valid() {
		return fmt.Errorf("unknown handedness %q", f.Handedness)
	}
	for i, p := range f.Points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return fmt.Errorf("landmark %d has non-finite coordinates", i)
		}
	}
	return nil
}

// Mirrored returns a copy of the frame with the x-axis flipped around
// the frame center and the handedness swapped. Classification operates
// on un-mirrored model space; this helper exists for selfie-view
// presentation and for symmetry checks.
func (f *HandFrame) Mirrored() *HandFrame {
	if f == nil {
		return nil
	}

	mirrored := &HandFrame{
		Handedness: f.Handedness.other(),
		Score:      f.Score,
	}
	for i, p := range f.Points {
		mirrored.Points[i] = Landmark{X: 1.0 - p.X, Y: p.Y, Z: p.Z}
	}
	return mirrored
}

// Distance returns the Euclidean distance between two landmarks.
func Distance(a, b Landmark) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (h Handedness) other() Handedness {
	if h == HandLeft {
		return HandRight
	}
	return HandLeft
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
