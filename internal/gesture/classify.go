package gesture

import "github.com/ayusman/mudra/internal/detector"

// Thresholds holds the tunable geometric constants of the classifier.
// They are deliberately loose: the upstream landmark model is noisy but
// topologically consistent, and per-frame false negatives are absorbed
// by the stabilizer's majority vote rather than by tighter geometry.
type Thresholds struct {
	// ThumbOffset is the minimum horizontal distance between the thumb
	// tip and the index MCP for a thumbs-up, as a fraction of frame width.
	ThumbOffset float64

	// PinchDistance is the maximum distance between thumb and index
	// tips for an OK sign, as a fraction of normalized frame size.
	PinchDistance float64
}

// DefaultThresholds returns the reference thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ThumbOffset:   0.05,
		PinchDistance: 0.07,
	}
}

// Classifier maps a single hand frame to a gesture label using an
// ordered set of geometric rules over the extended-finger vector.
// It is stateless; one instance may serve any number of frames.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier creates a Classifier with the given thresholds.
func NewClassifier(thresholds Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

// Classify returns the gesture label for one frame, or LabelUnknown.
// Ambiguous configurations always resolve to LabelUnknown; the
// classifier never guesses.
func (c *Classifier) Classify(frame *detector.HandFrame) Label {
	fingers := Fingers(frame)
	count := fingers.Count()

	switch {
	case count == 0:
		return LabelFist

	case count == 5:
		return LabelOpenPalm

	case count == 1 && fingers[Index]:
		return LabelPointing

	case count == 1 && fingers[Thumb]:
		if c.isThumbVertical(frame) {
			return LabelThumbsUp
		}
		// A sideways lone thumb is not a thumbs-up.
		return LabelUnknown

	case count == 2 && fingers[Index] && fingers[Middle]:
		return LabelPeace

	case count == 2 && fingers[Index] && fingers[Pinky]:
		return LabelRockOn
	}

	if c.isPinch(frame) && looseUpCount(frame, Middle, Ring, Pinky) >= 2 {
		return LabelOkSign
	}

	return LabelUnknown
}

// isThumbVertical checks that a lone extended thumb is genuinely raised:
// its tip sits above both the thumb MCP and the index MCP, offset
// horizontally from the index MCP by more than ThumbOffset.
func (c *Classifier) isThumbVertical(frame *detector.HandFrame) bool {
	tip := frame.Points[detector.ThumbTip]
	thumbMCP := frame.Points[detector.ThumbMCP]
	indexMCP := frame.Points[detector.IndexMCP]

	if tip.Y >= thumbMCP.Y || tip.Y >= indexMCP.Y {
		return false
	}

	offset := tip.X - indexMCP.X
	if offset < 0 {
		offset = -offset
	}
	return offset > c.thresholds.ThumbOffset
}

// isPinch reports whether the thumb and index tips touch.
func (c *Classifier) isPinch(frame *detector.HandFrame) bool {
	d := detector.Distance(frame.Points[detector.ThumbTip], frame.Points[detector.IndexTip])
	return d < c.thresholds.PinchDistance
}

// looseUpCount counts how many of the given fingers pass the loose
// tip-above-PIP test. The OK-sign rule uses this instead of the full
// joint ordering so that fingers splayed behind the pinch still count.
func looseUpCount(frame *detector.HandFrame, fingers ...int) int {
	n := 0
	for _, finger := range fingers {
		joints := fingerJoints[finger]
		if frame.Points[joints.tip].Y < frame.Points[joints.pip].Y {
			n++
		}
	}
	return n
}
