package gesture

import "github.com/ayusman/mudra/internal/detector"

// Confidence estimator bounds and weights. The score expresses the
// estimated reliability of one frame's landmarks, not of the gesture
// label derived from them.
const (
	// MinConfidence and MaxConfidence bound every estimate.
	MinConfidence = 0.5
	MaxConfidence = 0.95

	// visibilityMargin is the border band of the frame; landmarks
	// inside (margin, 1-margin) on both axes count as visible.
	visibilityMargin = 0.1

	// baseConfidence plus the visibility and stability bonuses make up
	// the raw score before clamping.
	baseConfidence  = 0.7
	visibilityBonus = 0.2
	stabilityBonus  = 0.1
)

// DefaultDepthBound is the |z| limit under which a landmark counts as
// depth-stable. Depth from the upstream model is uncalibrated, so this
// is a coarse tunable, not a physical distance.
const DefaultDepthBound = 0.15

// EstimateConfidence scores the landmark quality of one frame into
// [MinConfidence, MaxConfidence]. Both indicators are ratios over all
// 21 landmarks, so no single bad point can saturate or collapse the
// score.
func EstimateConfidence(frame *detector.HandFrame, depthBound float64) float64 {
	if depthBound <= 0 {
		depthBound = DefaultDepthBound
	}

	visible := 0
	stable := 0
	for _, p := range frame.Points {
		if p.X > visibilityMargin && p.X < 1-visibilityMargin &&
			p.Y > visibilityMargin && p.Y < 1-visibilityMargin {
			visible++
		}
		z := p.Z
		if z < 0 {
			z = -z
		}
		if z < depthBound {
			stable++
		}
	}

	visibilityRatio := float64(visible) / detector.NumLandmarks
	stabilityRatio := float64(stable) / detector.NumLandmarks

	score := baseConfidence + visibilityBonus*visibilityRatio + stabilityBonus*stabilityRatio
	if score < MinConfidence {
		return MinConfidence
	}
	if score > MaxConfidence {
		return MaxConfidence
	}
	return score
}
