package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandFrame
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandFrame) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandFrame, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture frames below are canonical right-hand poses in normalized
// image space (y grows downward). Extended fingers satisfy the
// tip-above-pip-above-mcp ordering the classifier tests for; curled
// fingers invert it, with the tip folded back toward the palm.

// Per-finger MCP anchor columns for the right-hand fixtures.
var fingerColumns = [4]struct {
	mcp, pip, dip, tip int
	x, mcpY            float64
}{
	{IndexMCP, IndexPIP, IndexDIP, IndexTip, 0.56, 0.64},
	{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.51, 0.63},
	{RingMCP, RingPIP, RingDIP, RingTip, 0.46, 0.64},
	{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 0.41, 0.66},
}

// FistFrame returns a right hand with the thumb and all four fingers
// curled. It is the base pose the other fixtures are built from.
func FistFrame() HandFrame {
	frame := HandFrame{
		Handedness: HandRight,
		Score:      0.95,
	}

	frame.Points[Wrist] = Landmark{X: 0.50, Y: 0.85}

	// Thumb curled across the palm: tip x falls behind the IP joint.
	frame.Points[ThumbCMC] = Landmark{X: 0.55, Y: 0.78}
	frame.Points[ThumbMCP] = Landmark{X: 0.57, Y: 0.72}
	frame.Points[ThumbIP] = Landmark{X: 0.56, Y: 0.68, Z: -0.02}
	frame.Points[ThumbTip] = Landmark{X: 0.52, Y: 0.66, Z: -0.03}

	for _, col := range fingerColumns {
		curlFinger(&frame, col.mcp, col.pip, col.dip, col.tip, col.x, col.mcpY)
	}

	return frame
}

// OpenPalmFrame returns a right hand with all five fingers extended.
func OpenPalmFrame() HandFrame {
	frame := FistFrame()
	extendThumbSideways(&frame)
	for _, col := range fingerColumns {
		extendFinger(&frame, col.mcp, col.pip, col.dip, col.tip, col.x, col.mcpY)
	}
	return frame
}

// PointingFrame returns a right hand with only the index finger extended.
func PointingFrame() HandFrame {
	frame := FistFrame()
	col := fingerColumns[0]
	extendFinger(&frame, col.mcp, col.pip, col.dip, col.tip, col.x, col.mcpY)
	return frame
}

// PeaceFrame returns a right hand with index and middle fingers extended.
func PeaceFrame() HandFrame {
	frame := PointingFrame()
	col := fingerColumns[1]
	extendFinger(&frame, col.mcp, col.pip, col.dip, col.tip, col.x, col.mcpY)
	return frame
}

// RockOnFrame returns a right hand with index and pinky fingers extended.
func RockOnFrame() HandFrame {
	frame := PointingFrame()
	col := fingerColumns[3]
	extendFinger(&frame, col.mcp, col.pip, col.dip, col.tip, col.x, col.mcpY)
	return frame
}

// ThumbsUpFrame returns a right hand with only the thumb extended,
// raised above both its MCP and the index MCP.
func ThumbsUpFrame() HandFrame {
	frame := FistFrame()

	frame.Points[ThumbCMC] = Landmark{X: 0.56, Y: 0.76}
	frame.Points[ThumbMCP] = Landmark{X: 0.60, Y: 0.68}
	frame.Points[ThumbIP] = Landmark{X: 0.63, Y: 0.58}
	frame.Points[ThumbTip] = Landmark{X: 0.65, Y: 0.48}

	return frame
}

// OkSignFrame returns a right hand with thumb and index tips pinched
// together and the remaining three fingers extended.
func OkSignFrame() HandFrame {
	frame := FistFrame()

	// Index curled forward so its tip meets the thumb tip.
	frame.Points[IndexMCP] = Landmark{X: 0.56, Y: 0.64}
	frame.Points[IndexPIP] = Landmark{X: 0.57, Y: 0.60}
	frame.Points[IndexDIP] = Landmark{X: 0.58, Y: 0.63, Z: -0.02}
	frame.Points[IndexTip] = Landmark{X: 0.60, Y: 0.66, Z: -0.02}

	frame.Points[ThumbCMC] = Landmark{X: 0.55, Y: 0.78}
	frame.Points[ThumbMCP] = Landmark{X: 0.58, Y: 0.73}
	frame.Points[ThumbIP] = Landmark{X: 0.60, Y: 0.70}
	frame.Points[ThumbTip] = Landmark{X: 0.61, Y: 0.67}

	for _, col := range fingerColumns[1:] {
		extendFinger(&frame, col.mcp, col.pip, col.dip, col.tip, col.x, col.mcpY)
	}

	return frame
}

// curlFinger folds a finger back toward the palm: the tip ends up
// below the PIP joint, failing the extension ordering.
func curlFinger(frame *HandFrame, mcp, pip, dip, tip int, x, mcpY float64) {
	frame.Points[mcp] = Landmark{X: x, Y: mcpY}
	frame.Points[pip] = Landmark{X: x, Y: mcpY - 0.02, Z: -0.05}
	frame.Points[dip] = Landmark{X: x - 0.02, Y: mcpY, Z: -0.04}
	frame.Points[tip] = Landmark{X: x - 0.04, Y: mcpY + 0.03, Z: -0.02}
}

// extendFinger straightens a finger upward with a slight outward drift.
func extendFinger(frame *HandFrame, mcp, pip, dip, tip int, x, mcpY float64) {
	frame.Points[mcp] = Landmark{X: x, Y: mcpY}
	frame.Points[pip] = Landmark{X: x + 0.01, Y: mcpY - 0.12}
	frame.Points[dip] = Landmark{X: x + 0.015, Y: mcpY - 0.21}
	frame.Points[tip] = Landmark{X: x + 0.02, Y: mcpY - 0.30}
}

// extendThumbSideways splays the thumb out to the side of the palm,
// as in an open hand.
func extendThumbSideways(frame *HandFrame) {
	frame.Points[ThumbCMC] = Landmark{X: 0.55, Y: 0.78}
	frame.Points[ThumbMCP] = Landmark{X: 0.62, Y: 0.73}
	frame.Points[ThumbIP] = Landmark{X: 0.68, Y: 0.69}
	frame.Points[ThumbTip] = Landmark{X: 0.73, Y: 0.66}
}
