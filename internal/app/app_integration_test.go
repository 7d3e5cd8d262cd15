package app

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// TestApp_FullPipeline runs the real pipeline loop against a mock
// camera and mock detector: alternating frames keep motion detection
// firing, the detector reports a steady pointing hand and the engine
// should confirm and emit the gesture.
func TestApp_FullPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	// Alternating black and white frames so every frame diff reads as motion
	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	a := New(Config{
		Store:        s,
		PluginDir:    t.TempDir(),
		MotionThresh: 0.5,
	})
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{&black, &white}, true))

	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandFrame{detector.PointingFrame()})
	a.SetDetector(mock)

	var (
		mu     sync.Mutex
		events []*gesture.Event
	)
	a.AddListener(func(e *gesture.Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	a.SetEnabled(true)
	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	sessionID := a.SessionID()
	if sessionID == "" {
		t.Fatal("Start() did not open a session")
	}

	// Idle frames come at 5 FPS and confirmation needs three agreeing
	// active frames, so allow a generous window.
	deadline := time.Now().Add(5 * time.Second)
	for {
		mu.Lock()
		n := len(events)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("pipeline never emitted a gesture event")
		}
		time.Sleep(50 * time.Millisecond)
	}

	mu.Lock()
	first := events[0]
	mu.Unlock()

	if first.Label != gesture.LabelPointing {
		t.Errorf("emitted label = %q, want %q", first.Label, gesture.LabelPointing)
	}
	if first.Confidence < gesture.MinConfidence || first.Confidence > gesture.MaxConfidence {
		t.Errorf("confidence %f outside [%f, %f]", first.Confidence, gesture.MinConfidence, gesture.MaxConfidence)
	}

	// The event must also be in the store, attached to the open session
	stored, err := s.Events().ListBySession(sessionID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(stored) == 0 {
		t.Error("emitted event was not persisted")
	}
}

// TestApp_StartStop verifies session bookkeeping across a start/stop
// cycle without any camera activity.
func TestApp_StartStop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	a := New(Config{Store: s, PluginDir: t.TempDir()})
	a.SetCamera(capture.NewMockCamera(nil, false))
	a.SetDetector(detector.NewMockDetector())

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	sessionID := a.SessionID()
	if sessionID == "" {
		t.Fatal("Start() did not open a session")
	}

	// Second Start is a no-op while running
	if err := a.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	if a.SessionID() != sessionID {
		t.Error("second Start() should not open a new session")
	}

	a.Stop()

	if a.SessionID() != "" {
		t.Error("SessionID() should be empty after Stop()")
	}

	sess, err := s.Sessions().GetByID(sessionID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if sess.StoppedAt == nil {
		t.Error("session row was not closed on Stop()")
	}
}
