// Package app provides the main application logic for the Mudra gesture control system.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
	// PluginTimeout bounds each plugin action execution.
	PluginTimeout = 5 * time.Second
)

// Listener receives every gesture event the engine emits.
type Listener func(*gesture.Event)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64
}

// App orchestrates the detection pipeline: camera frames through motion
// gating, hand detection and the gesture engine, then emitted events to
// the store, bound plugin actions and registered listeners.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	engine     *gesture.Engine
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	listeners  []Listener
	sessionID  string
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		engine:     gesture.NewEngine(gesture.DefaultConfig()),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(PluginTimeout),
		enabled:    false,
		stopCh:     nil,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// AddListener registers a callback invoked for every emitted event.
func (a *App) AddListener(l Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, l)
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// loadTuning builds the engine configuration, overlaying any stored
// tuning values on the built-in defaults.
func (a *App) loadTuning() gesture.Config {
	cfg := gesture.DefaultConfig()
	if a.config.Store == nil {
		return cfg
	}

	settings := a.config.Store.Settings()
	cfg.Stabilizer.Window = settings.GetInt(store.SettingStabilizerWindow, cfg.Stabilizer.Window)
	cfg.Stabilizer.MinAgreement = settings.GetInt(store.SettingStabilizerAgreement, cfg.Stabilizer.MinAgreement)
	cooldownMs := settings.GetInt(store.SettingStabilizerCooldown, int(cfg.Stabilizer.Cooldown/time.Millisecond))
	cfg.Stabilizer.Cooldown = time.Duration(cooldownMs) * time.Millisecond
	cfg.Thresholds.ThumbOffset = settings.GetFloat(store.SettingThumbOffset, cfg.Thresholds.ThumbOffset)
	cfg.Thresholds.PinchDistance = settings.GetFloat(store.SettingPinchDistance, cfg.Thresholds.PinchDistance)
	cfg.DepthBound = settings.GetFloat(store.SettingDepthBound, cfg.DepthBound)
	return cfg
}

// Start begins the detection pipeline. Engine tuning is reloaded from
// settings and a new session row is opened.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	a.engine = gesture.NewEngine(a.loadTuning())

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	if a.config.Store != nil {
		sess := &store.Session{ID: uuid.New().String(), StartedAt: time.Now()}
		if err := a.config.Store.Sessions().Start(sess); err != nil {
			a.camera.Close()
			return err
		}
		a.sessionID = sess.ID
	}

	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline, closes the session row and
// releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.config.Store != nil && a.sessionID != "" {
		if err := a.config.Store.Sessions().Stop(a.sessionID, time.Now()); err != nil {
			log.Printf("Error closing session: %v", err)
		}
		a.sessionID = ""
	}

	a.engine.Reset()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// SessionID returns the id of the currently open session, or "" when
// the pipeline is not running.
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Engine returns the gesture engine.
func (a *App) Engine() *gesture.Engine {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.engine
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
