package gesture

import "github.com/ayusman/mudra/internal/detector"

// Finger indices into a FingerState vector, thumb to pinky.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// FingerState records which fingers are extended, thumb to pinky.
type FingerState [NumFingers]bool

// Count returns the number of extended fingers.
func (f FingerState) Count() int {
	n := 0
	for _, up := range f {
		if up {
			n++
		}
	}
	return n
}

// fingerJoints maps each non-thumb finger to its tip, PIP and MCP
// landmark indices.
var fingerJoints = [NumFingers]struct{ tip, pip, mcp int }{
	Index:  {detector.IndexTip, detector.IndexPIP, detector.IndexMCP},
	Middle: {detector.MiddleTip, detector.MiddlePIP, detector.MiddleMCP},
	Ring:   {detector.RingTip, detector.RingPIP, detector.RingMCP},
	Pinky:  {detector.PinkyTip, detector.PinkyPIP, detector.PinkyMCP},
}

// Fingers derives the extended-finger vector from one hand frame.
//
// A finger is extended only when its joints open monotonically up the
// image (tip above PIP above MCP, smaller y meaning higher). Testing
// the full ordering instead of tip-vs-PIP alone rejects partially
// curled fingers.
//
// The thumb extends sideways rather than vertically, so its test is
// horizontal and depends on handedness: a right-hand thumb is extended
// when its tip lies outboard of the IP joint (greater x), a left-hand
// thumb when the comparison is reversed.
func Fingers(frame *detector.HandFrame) FingerState {
	var state FingerState

	thumbTip := frame.Points[detector.ThumbTip]
	thumbIP := frame.Points[detector.ThumbIP]
	if frame.Handedness == detector.HandRight {
		state[Thumb] = thumbTip.X > thumbIP.X
	} else {
		state[Thumb] = thumbTip.X < thumbIP.X
	}

	for finger := Index; finger <= Pinky; finger++ {
		joints := fingerJoints[finger]
		tip := frame.Points[joints.tip]
		pip := frame.Points[joints.pip]
		mcp := frame.Points[joints.mcp]
		state[finger] = tip.Y < pip.Y && pip.Y < mcp.Y
	}

	return state
}
