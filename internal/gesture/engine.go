package gesture

import (
	"fmt"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// Event is one confirmed, rate-limited gesture emission. Its label is
// never LabelUnknown. The landmarks are the frame that triggered the
// emission, carried along so a presentation layer can draw a skeleton
// overlay without asking the engine anything else.
type Event struct {
	Label      Label              `json:"label"`
	Confidence float64            `json:"confidence"`
	Landmarks  detector.HandFrame `json:"landmarks"`
	EmittedAt  time.Time          `json:"emitted_at"`
}

// Config bundles the tunable constants of one engine.
type Config struct {
	Thresholds Thresholds
	Stabilizer StabilizerConfig

	// DepthBound is the |z| limit for the confidence estimator's
	// stability indicator. Zero means DefaultDepthBound.
	DepthBound float64
}

// DefaultConfig returns the reference engine tuning.
func DefaultConfig() Config {
	return Config{
		Thresholds: DefaultThresholds(),
		Stabilizer: DefaultStabilizerConfig(),
		DepthBound: DefaultDepthBound,
	}
}

// Engine is the frame-to-event transformer for one detection session.
// Each call to Process classifies one frame and runs it through the
// stabilizer; the result is either one Event or nothing.
//
// The engine owns its stabilizer state exclusively and must be driven
// by a single loop delivering frames in non-decreasing timestamp order.
// Concurrent sessions need one engine each.
type Engine struct {
	classifier *Classifier
	stabilizer *Stabilizer
	depthBound float64
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(config Config) *Engine {
	return &Engine{
		classifier: NewClassifier(config.Thresholds),
		stabilizer: NewStabilizer(config.Stabilizer),
		depthBound: config.DepthBound,
	}
}

// Process ingests one frame observed at the given instant.
//
// A nil frame means the upstream model saw no hand: stabilization
// resets and nothing is emitted. A frame that violates the input
// contract is rejected with an error and treated like hand loss rather
// than classified; a misleading label would be worse than none. A
// valid frame is classified and stabilized, yielding at most one Event.
func (e *Engine) Process(frame *detector.HandFrame, now time.Time) (*Event, error) {
	if frame == nil {
		e.stabilizer.Reset()
		return nil, nil
	}

	if err := frame.Validate(); err != nil {
		e.stabilizer.Reset()
		return nil, fmt.Errorf("invalid hand frame: %w", err)
	}

	label := e.classifier.Classify(frame)
	if label == LabelUnknown {
		e.stabilizer.Reset()
		return nil, nil
	}

	candidate, emit := e.stabilizer.Observe(label, now)
	if !emit {
		return nil, nil
	}

	return &Event{
		Label:      candidate,
		Confidence: EstimateConfidence(frame, e.depthBound),
		Landmarks:  *frame,
		EmittedAt:  now,
	}, nil
}

// Reset returns the engine to its initial idle state. Called when a
// detection session stops or restarts.
func (e *Engine) Reset() {
	e.stabilizer.Reset()
	e.stabilizer.lastEmit = time.Time{}
}

// Tracking reports whether the engine holds any buffered frame labels.
func (e *Engine) Tracking() bool {
	return e.stabilizer.Tracking()
}
